package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const tableColumns = `id, name, capacity, min_capacity, max_capacity, table_type, location, location_id, shape,
	description, x_position, y_position, width, height, is_active, is_premium, created_at, updated_at`

func scanTable(row scanner) (*models.Table, error) {
	var t models.Table
	err := row.Scan(&t.ID, &t.Name, &t.Capacity, &t.MinCapacity, &t.MaxCapacity, &t.TableType, &t.Area,
		&t.LocationID, &t.Shape, &t.Description, &t.XPosition, &t.YPosition, &t.Width, &t.Height,
		&t.IsActive, &t.IsPremium, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTables returns active tables in no particular order.
func (s *Store) ListTables(ctx context.Context) ([]models.Table, error) {
	tables, err := queryList(ctx, s, scanTable, `SELECT `+tableColumns+` FROM tables WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// ListAllTables includes soft-deleted tables for the back office.
func (s *Store) ListAllTables(ctx context.Context) ([]models.Table, error) {
	tables, err := queryList(ctx, s, scanTable, `SELECT `+tableColumns+` FROM tables ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list all tables: %w", err)
	}
	return tables, nil
}

func (s *Store) ListTablesByLocationAndCapacity(ctx context.Context, locationID uuid.UUID, partySize int) ([]models.Table, error) {
	tables, err := queryList(ctx, s, scanTable, `
		SELECT `+tableColumns+` FROM tables
		WHERE is_active AND location_id = $1 AND capacity >= $2`, locationID, partySize)
	if err != nil {
		return nil, fmt.Errorf("list bookable tables: %w", err)
	}
	return tables, nil
}

func (s *Store) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
	defer cancel()

	t, err := scanTable(row)
	if err != nil {
		return nil, notFound(err, "Table")
	}
	return t, nil
}

func (s *Store) CreateTable(ctx context.Context, t *models.Table) (*models.Table, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO tables (name, capacity, min_capacity, max_capacity, table_type, location, location_id, shape,
			description, x_position, y_position, width, height, is_active, is_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+tableColumns,
		t.Name, t.Capacity, t.MinCapacity, t.MaxCapacity, t.TableType, t.Area, t.LocationID, t.Shape,
		t.Description, t.XPosition, t.YPosition, t.Width, t.Height, t.IsActive, t.IsPremium)
	defer cancel()

	created, err := scanTable(row)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateTable(ctx context.Context, id uuid.UUID, p *models.TablePatch) (*models.Table, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE tables SET
			name = COALESCE($2, name),
			capacity = COALESCE($3, capacity),
			min_capacity = COALESCE($4, min_capacity),
			max_capacity = COALESCE($5, max_capacity),
			table_type = COALESCE($6, table_type),
			location = COALESCE($7, location),
			location_id = COALESCE($8, location_id),
			shape = COALESCE($9, shape),
			description = COALESCE($10, description),
			x_position = COALESCE($11, x_position),
			y_position = COALESCE($12, y_position),
			width = COALESCE($13, width),
			height = COALESCE($14, height),
			is_active = COALESCE($15, is_active),
			is_premium = COALESCE($16, is_premium),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+tableColumns,
		id, p.Name, p.Capacity, p.MinCapacity, p.MaxCapacity, p.TableType, p.Area, p.LocationID, p.Shape,
		p.Description, p.XPosition, p.YPosition, p.Width, p.Height, p.IsActive, p.IsPremium)
	defer cancel()

	t, err := scanTable(row)
	if err != nil {
		return nil, notFound(err, "Table")
	}
	return t, nil
}

func (s *Store) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "tables", "Table", id, true)
}
