package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const locationColumns = `id, name, description, display_order, is_active, created_at, updated_at`

func scanLocation(row scanner) (*models.RestaurantLocation, error) {
	var l models.RestaurantLocation
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.DisplayOrder, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) ListLocations(ctx context.Context) ([]models.RestaurantLocation, error) {
	locations, err := queryList(ctx, s, scanLocation, `
		SELECT `+locationColumns+` FROM restaurant_locations
		WHERE is_active
		ORDER BY display_order, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (s *Store) GetLocation(ctx context.Context, id uuid.UUID) (*models.RestaurantLocation, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+locationColumns+` FROM restaurant_locations WHERE id = $1`, id)
	defer cancel()

	l, err := scanLocation(row)
	if err != nil {
		return nil, notFound(err, "Location")
	}
	return l, nil
}

func (s *Store) CreateLocation(ctx context.Context, l *models.RestaurantLocation) (*models.RestaurantLocation, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO restaurant_locations (name, description, display_order, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING `+locationColumns,
		l.Name, l.Description, l.DisplayOrder, l.IsActive)
	defer cancel()

	created, err := scanLocation(row)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateLocation(ctx context.Context, id uuid.UUID, p *models.LocationPatch) (*models.RestaurantLocation, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE restaurant_locations SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			display_order = COALESCE($4, display_order),
			is_active = COALESCE($5, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+locationColumns,
		id, p.Name, p.Description, p.DisplayOrder, p.IsActive)
	defer cancel()

	l, err := scanLocation(row)
	if err != nil {
		return nil, notFound(err, "Location")
	}
	return l, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "restaurant_locations", "Location", id, true)
}
