package models

import (
	"time"

	"github.com/google/uuid"
)

type RestaurantLocation struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type LocationRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool   `json:"isActive"`
}

func (r *LocationRequest) Location() *RestaurantLocation {
	return &RestaurantLocation{
		Name:         r.Name,
		Description:  r.Description,
		DisplayOrder: intOr(r.DisplayOrder, 0),
		IsActive:     boolOr(r.IsActive, true),
	}
}

type LocationPatch struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool   `json:"isActive"`
}

type Table struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Capacity    int        `db:"capacity" json:"capacity"`
	MinCapacity int        `db:"min_capacity" json:"minCapacity"`
	MaxCapacity int        `db:"max_capacity" json:"maxCapacity"`
	TableType   string     `db:"table_type" json:"tableType"`
	Area        string     `db:"location" json:"location"`
	LocationID  *uuid.UUID `db:"location_id" json:"locationId"`
	Shape       string     `db:"shape" json:"shape"`
	Description *string    `db:"description" json:"description"`
	XPosition   int        `db:"x_position" json:"xPosition"`
	YPosition   int        `db:"y_position" json:"yPosition"`
	Width       int        `db:"width" json:"width"`
	Height      int        `db:"height" json:"height"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	IsPremium   bool       `db:"is_premium" json:"isPremium"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Seats reports whether the table belongs to locationID and fits partySize.
func (t *Table) Seats(locationID uuid.UUID, partySize int) bool {
	return t.LocationID != nil && *t.LocationID == locationID && t.Capacity >= partySize
}

type TableRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Capacity    int        `json:"capacity" validate:"required,min=1,max=2147483647"`
	MinCapacity *int       `json:"minCapacity" validate:"omitempty,min=1,max=2147483647"`
	MaxCapacity *int       `json:"maxCapacity" validate:"omitempty,min=1,max=2147483647"`
	TableType   *string    `json:"tableType" validate:"omitempty,oneof=standard booth high-top outdoor private"`
	Area        *string    `json:"location" validate:"omitempty,max=64"`
	LocationID  *uuid.UUID `json:"locationId"`
	Shape       *string    `json:"shape" validate:"omitempty,oneof=round square rectangular"`
	Description *string    `json:"description"`
	XPosition   *int       `json:"xPosition" validate:"required,min=-2147483648,max=2147483647"`
	YPosition   *int       `json:"yPosition" validate:"required,min=-2147483648,max=2147483647"`
	Width       *int       `json:"width" validate:"omitempty,min=1,max=2147483647"`
	Height      *int       `json:"height" validate:"omitempty,min=1,max=2147483647"`
	IsActive    *bool      `json:"isActive"`
	IsPremium   *bool      `json:"isPremium"`
}

func (r *TableRequest) Table() *Table {
	return &Table{
		Name:        r.Name,
		Capacity:    r.Capacity,
		MinCapacity: intOr(r.MinCapacity, 1),
		MaxCapacity: intOr(r.MaxCapacity, 8),
		TableType:   stringOr(r.TableType, "standard"),
		Area:        stringOr(r.Area, "main"),
		LocationID:  r.LocationID,
		Shape:       stringOr(r.Shape, "round"),
		Description: r.Description,
		XPosition:   intOr(r.XPosition, 0),
		YPosition:   intOr(r.YPosition, 0),
		Width:       intOr(r.Width, 60),
		Height:      intOr(r.Height, 60),
		IsActive:    boolOr(r.IsActive, true),
		IsPremium:   boolOr(r.IsPremium, false),
	}
}

type TablePatch struct {
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Capacity    *int       `json:"capacity" validate:"omitempty,min=1,max=2147483647"`
	MinCapacity *int       `json:"minCapacity" validate:"omitempty,min=1,max=2147483647"`
	MaxCapacity *int       `json:"maxCapacity" validate:"omitempty,min=1,max=2147483647"`
	TableType   *string    `json:"tableType" validate:"omitempty,oneof=standard booth high-top outdoor private"`
	Area        *string    `json:"location" validate:"omitempty,max=64"`
	LocationID  *uuid.UUID `json:"locationId"`
	Shape       *string    `json:"shape" validate:"omitempty,oneof=round square rectangular"`
	Description *string    `json:"description"`
	XPosition   *int       `json:"xPosition" validate:"omitempty,min=-2147483648,max=2147483647"`
	YPosition   *int       `json:"yPosition" validate:"omitempty,min=-2147483648,max=2147483647"`
	Width       *int       `json:"width" validate:"omitempty,min=1,max=2147483647"`
	Height      *int       `json:"height" validate:"omitempty,min=1,max=2147483647"`
	IsActive    *bool      `json:"isActive"`
	IsPremium   *bool      `json:"isPremium"`
}

// PositionRequest moves a table or floor-plan element on the floor plan.
type PositionRequest struct {
	XPosition *int `json:"xPosition" validate:"required,min=-2147483648,max=2147483647"`
	YPosition *int `json:"yPosition" validate:"required,min=-2147483648,max=2147483647"`
}

type FloorPlanElement struct {
	ID          uuid.UUID `db:"id" json:"id"`
	LocationID  uuid.UUID `db:"location_id" json:"locationId"`
	ElementType string    `db:"element_type" json:"elementType"`
	Name        string    `db:"name" json:"name"`
	XPosition   int       `db:"x_position" json:"xPosition"`
	YPosition   int       `db:"y_position" json:"yPosition"`
	Width       int       `db:"width" json:"width"`
	Height      int       `db:"height" json:"height"`
	Rotation    int       `db:"rotation" json:"rotation"`
	Color       string    `db:"color" json:"color"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type FloorPlanElementRequest struct {
	LocationID  uuid.UUID `json:"locationId" validate:"required"`
	ElementType string    `json:"elementType" validate:"required,oneof=bar stairs toilet restroom window door wall kitchen"`
	Name        string    `json:"name" validate:"required,max=255"`
	XPosition   *int      `json:"xPosition" validate:"required,min=-2147483648,max=2147483647"`
	YPosition   *int      `json:"yPosition" validate:"required,min=-2147483648,max=2147483647"`
	Width       int       `json:"width" validate:"required,min=1,max=2147483647"`
	Height      int       `json:"height" validate:"required,min=1,max=2147483647"`
	Rotation    *int      `json:"rotation" validate:"omitempty,oneof=0 90 180 270"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor"`
	IsActive    *bool     `json:"isActive"`
}

func (r *FloorPlanElementRequest) Element() *FloorPlanElement {
	return &FloorPlanElement{
		LocationID:  r.LocationID,
		ElementType: r.ElementType,
		Name:        r.Name,
		XPosition:   intOr(r.XPosition, 0),
		YPosition:   intOr(r.YPosition, 0),
		Width:       r.Width,
		Height:      r.Height,
		Rotation:    intOr(r.Rotation, 0),
		Color:       stringOr(r.Color, "#746899"),
		IsActive:    boolOr(r.IsActive, true),
	}
}

type FloorPlanElementPatch struct {
	LocationID  *uuid.UUID `json:"locationId"`
	ElementType *string    `json:"elementType" validate:"omitempty,oneof=bar stairs toilet restroom window door wall kitchen"`
	Name        *string    `json:"name" validate:"omitempty,min=1,max=255"`
	XPosition   *int       `json:"xPosition" validate:"omitempty,min=-2147483648,max=2147483647"`
	YPosition   *int       `json:"yPosition" validate:"omitempty,min=-2147483648,max=2147483647"`
	Width       *int       `json:"width" validate:"omitempty,min=1,max=2147483647"`
	Height      *int       `json:"height" validate:"omitempty,min=1,max=2147483647"`
	Rotation    *int       `json:"rotation" validate:"omitempty,oneof=0 90 180 270"`
	Color       *string    `json:"color" validate:"omitempty,hexcolor"`
	IsActive    *bool      `json:"isActive"`
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
