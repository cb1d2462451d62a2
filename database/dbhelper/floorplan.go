package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const elementColumns = `id, location_id, element_type, name, x_position, y_position, width, height,
	rotation, color, is_active, created_at, updated_at`

func scanElement(row scanner) (*models.FloorPlanElement, error) {
	var e models.FloorPlanElement
	err := row.Scan(&e.ID, &e.LocationID, &e.ElementType, &e.Name, &e.XPosition, &e.YPosition,
		&e.Width, &e.Height, &e.Rotation, &e.Color, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListFloorPlanElements(ctx context.Context) ([]models.FloorPlanElement, error) {
	elements, err := queryList(ctx, s, scanElement, `
		SELECT `+elementColumns+` FROM floor_plan_elements
		WHERE is_active
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list floor plan elements: %w", err)
	}
	return elements, nil
}

func (s *Store) ListFloorPlanElementsByLocation(ctx context.Context, locationID uuid.UUID) ([]models.FloorPlanElement, error) {
	elements, err := queryList(ctx, s, scanElement, `
		SELECT `+elementColumns+` FROM floor_plan_elements
		WHERE is_active AND location_id = $1
		ORDER BY created_at`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list floor plan elements: %w", err)
	}
	return elements, nil
}

func (s *Store) GetFloorPlanElement(ctx context.Context, id uuid.UUID) (*models.FloorPlanElement, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+elementColumns+` FROM floor_plan_elements WHERE id = $1`, id)
	defer cancel()

	e, err := scanElement(row)
	if err != nil {
		return nil, notFound(err, "Floor plan element")
	}
	return e, nil
}

func (s *Store) CreateFloorPlanElement(ctx context.Context, e *models.FloorPlanElement) (*models.FloorPlanElement, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO floor_plan_elements (location_id, element_type, name, x_position, y_position,
			width, height, rotation, color, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+elementColumns,
		e.LocationID, e.ElementType, e.Name, e.XPosition, e.YPosition, e.Width, e.Height, e.Rotation, e.Color, e.IsActive)
	defer cancel()

	created, err := scanElement(row)
	if err != nil {
		return nil, fmt.Errorf("create floor plan element: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateFloorPlanElement(ctx context.Context, id uuid.UUID, p *models.FloorPlanElementPatch) (*models.FloorPlanElement, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE floor_plan_elements SET
			location_id = COALESCE($2, location_id),
			element_type = COALESCE($3, element_type),
			name = COALESCE($4, name),
			x_position = COALESCE($5, x_position),
			y_position = COALESCE($6, y_position),
			width = COALESCE($7, width),
			height = COALESCE($8, height),
			rotation = COALESCE($9, rotation),
			color = COALESCE($10, color),
			is_active = COALESCE($11, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+elementColumns,
		id, p.LocationID, p.ElementType, p.Name, p.XPosition, p.YPosition, p.Width, p.Height, p.Rotation, p.Color, p.IsActive)
	defer cancel()

	e, err := scanElement(row)
	if err != nil {
		return nil, notFound(err, "Floor plan element")
	}
	return e, nil
}

func (s *Store) DeleteFloorPlanElement(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "floor_plan_elements", "Floor plan element", id, true)
}
