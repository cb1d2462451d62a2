package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuCategory struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type MenuCategoryRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	DisplayOrder *int   `json:"displayOrder" validate:"required,min=0,max=2147483647"`
	IsActive     *bool  `json:"isActive"`
}

func (r *MenuCategoryRequest) Category() *MenuCategory {
	return &MenuCategory{
		Name:         r.Name,
		DisplayOrder: intOr(r.DisplayOrder, 0),
		IsActive:     boolOr(r.IsActive, true),
	}
}

type MenuCategoryPatch struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool   `json:"isActive"`
}

type MenuItem struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	CategoryID   *uuid.UUID      `db:"category_id" json:"categoryId"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	IsActive     bool            `db:"is_active" json:"isActive"`
	DisplayOrder int             `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}

type MenuItemRequest struct {
	CategoryID   *uuid.UUID       `json:"categoryId"`
	Name         string           `json:"name" validate:"required,max=255"`
	Description  string           `json:"description" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required,gte=0,lte=99999999.99"`
	IsActive     *bool            `json:"isActive"`
	DisplayOrder *int             `json:"displayOrder" validate:"required,min=0,max=2147483647"`
}

func (r *MenuItemRequest) Item() *MenuItem {
	return &MenuItem{
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        decimalOr(r.Price).Round(2),
		IsActive:     boolOr(r.IsActive, true),
		DisplayOrder: intOr(r.DisplayOrder, 0),
	}
}

type MenuItemPatch struct {
	CategoryID   *uuid.UUID       `json:"categoryId"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string          `json:"description" validate:"omitempty,min=1"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lte=99999999.99"`
	IsActive     *bool            `json:"isActive"`
	DisplayOrder *int             `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
}

func decimalOr(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
