package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const (
	categoryColumns = `id, name, display_order, is_active, created_at`
	itemColumns     = `id, category_id, name, description, price, is_active, display_order, created_at`
)

func scanCategory(row scanner) (*models.MenuCategory, error) {
	var c models.MenuCategory
	if err := row.Scan(&c.ID, &c.Name, &c.DisplayOrder, &c.IsActive, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanItem(row scanner) (*models.MenuItem, error) {
	var i models.MenuItem
	err := row.Scan(&i.ID, &i.CategoryID, &i.Name, &i.Description, &i.Price, &i.IsActive, &i.DisplayOrder, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Store) ListMenuCategories(ctx context.Context) ([]models.MenuCategory, error) {
	categories, err := queryList(ctx, s, scanCategory, `
		SELECT `+categoryColumns+` FROM menu_categories
		WHERE is_active
		ORDER BY display_order`)
	if err != nil {
		return nil, fmt.Errorf("list menu categories: %w", err)
	}
	return categories, nil
}

func (s *Store) GetMenuCategory(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+categoryColumns+` FROM menu_categories WHERE id = $1`, id)
	defer cancel()

	c, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err, "Menu category")
	}
	return c, nil
}

func (s *Store) CreateMenuCategory(ctx context.Context, c *models.MenuCategory) (*models.MenuCategory, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO menu_categories (name, display_order, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns, c.Name, c.DisplayOrder, c.IsActive)
	defer cancel()

	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create menu category: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateMenuCategory(ctx context.Context, id uuid.UUID, p *models.MenuCategoryPatch) (*models.MenuCategory, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE menu_categories SET
			name = COALESCE($2, name),
			display_order = COALESCE($3, display_order),
			is_active = COALESCE($4, is_active)
		WHERE id = $1
		RETURNING `+categoryColumns, id, p.Name, p.DisplayOrder, p.IsActive)
	defer cancel()

	c, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err, "Menu category")
	}
	return c, nil
}

func (s *Store) DeleteMenuCategory(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "menu_categories", "Menu category", id, false)
}

func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := queryList(ctx, s, scanItem, `
		SELECT `+itemColumns+` FROM menu_items
		WHERE is_active
		ORDER BY display_order`)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (s *Store) ListMenuItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.MenuItem, error) {
	items, err := queryList(ctx, s, scanItem, `
		SELECT `+itemColumns+` FROM menu_items
		WHERE is_active AND category_id = $1
		ORDER BY display_order`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list menu items by category: %w", err)
	}
	return items, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+itemColumns+` FROM menu_items WHERE id = $1`, id)
	defer cancel()

	i, err := scanItem(row)
	if err != nil {
		return nil, notFound(err, "Menu item")
	}
	return i, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, i *models.MenuItem) (*models.MenuItem, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO menu_items (category_id, name, description, price, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		i.CategoryID, i.Name, i.Description, i.Price, i.IsActive, i.DisplayOrder)
	defer cancel()

	created, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, id uuid.UUID, p *models.MenuItemPatch) (*models.MenuItem, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE menu_items SET
			category_id = COALESCE($2, category_id),
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			price = COALESCE($5, price),
			is_active = COALESCE($6, is_active),
			display_order = COALESCE($7, display_order)
		WHERE id = $1
		RETURNING `+itemColumns,
		id, p.CategoryID, p.Name, p.Description, p.Price, p.IsActive, p.DisplayOrder)
	defer cancel()

	i, err := scanItem(row)
	if err != nil {
		return nil, notFound(err, "Menu item")
	}
	return i, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "menu_items", "Menu item", id, false)
}
