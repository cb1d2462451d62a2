package models

import (
	"time"

	"github.com/google/uuid"
)

type GalleryImage struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	URL          string    `db:"url" json:"url"`
	Alt          string    `db:"alt" json:"alt"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type GalleryImageRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	URL          string `json:"url" validate:"required,max=2048"`
	Alt          string `json:"alt" validate:"required,max=255"`
	DisplayOrder *int   `json:"displayOrder" validate:"required,min=0,max=2147483647"`
	IsActive     *bool  `json:"isActive"`
}

func (r *GalleryImageRequest) Image() *GalleryImage {
	return &GalleryImage{
		Title:        r.Title,
		URL:          r.URL,
		Alt:          r.Alt,
		DisplayOrder: intOr(r.DisplayOrder, 0),
		IsActive:     boolOr(r.IsActive, true),
	}
}

type GalleryImagePatch struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=255"`
	URL          *string `json:"url" validate:"omitempty,min=1,max=2048"`
	Alt          *string `json:"alt" validate:"omitempty,min=1,max=255"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool   `json:"isActive"`
}

type ContactInfo struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Type         string    `db:"type" json:"type"`
	Label        string    `db:"label" json:"label"`
	Value        string    `db:"value" json:"value"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type ContactInfoRequest struct {
	Type         string `json:"type" validate:"required,max=64"`
	Label        string `json:"label" validate:"required,max=255"`
	Value        string `json:"value" validate:"required"`
	DisplayOrder *int   `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool  `json:"isActive"`
}

func (r *ContactInfoRequest) Contact() *ContactInfo {
	return &ContactInfo{
		Type:         r.Type,
		Label:        r.Label,
		Value:        r.Value,
		DisplayOrder: intOr(r.DisplayOrder, 0),
		IsActive:     boolOr(r.IsActive, true),
	}
}

type ContactInfoPatch struct {
	Type         *string `json:"type" validate:"omitempty,min=1,max=64"`
	Label        *string `json:"label" validate:"omitempty,min=1,max=255"`
	Value        *string `json:"value" validate:"omitempty,min=1"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0,max=2147483647"`
	IsActive     *bool   `json:"isActive"`
}

// OpeningHours is one weekday row; DayOfWeek 0 is Sunday.
type OpeningHours struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DayOfWeek int       `db:"day_of_week" json:"dayOfWeek"`
	DayName   string    `db:"day_name" json:"dayName"`
	OpenTime  *string   `db:"open_time" json:"openTime"`
	CloseTime *string   `db:"close_time" json:"closeTime"`
	IsClosed  bool      `db:"is_closed" json:"isClosed"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type OpeningHoursRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"required,min=0,max=6"`
	DayName   string  `json:"dayName" validate:"required,max=32"`
	OpenTime  *string `json:"openTime" validate:"omitempty,max=16"`
	CloseTime *string `json:"closeTime" validate:"omitempty,max=16"`
	IsClosed  *bool   `json:"isClosed"`
	IsActive  *bool   `json:"isActive"`
}

func (r *OpeningHoursRequest) Hours() *OpeningHours {
	return &OpeningHours{
		DayOfWeek: intOr(r.DayOfWeek, 0),
		DayName:   r.DayName,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
		IsClosed:  boolOr(r.IsClosed, false),
		IsActive:  boolOr(r.IsActive, true),
	}
}

type OpeningHoursPatch struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	DayName   *string `json:"dayName" validate:"omitempty,min=1,max=32"`
	OpenTime  *string `json:"openTime" validate:"omitempty,max=16"`
	CloseTime *string `json:"closeTime" validate:"omitempty,max=16"`
	IsClosed  *bool   `json:"isClosed"`
	IsActive  *bool   `json:"isActive"`
}

const SettingRegistrationEnabled = "registration_enabled"

type SystemSetting struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	Value       *string   `db:"value" json:"value"`
	Description *string   `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type SystemSettingRequest struct {
	Key         string  `json:"key" validate:"required,max=128"`
	Value       *string `json:"value"`
	Description *string `json:"description"`
}
