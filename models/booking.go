package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingUnconfirmed BookingStatus = "unconfirmed"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingCancelled   BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	return s == BookingUnconfirmed || s == BookingConfirmed || s == BookingCancelled
}

type Booking struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	UserID          *uuid.UUID    `db:"user_id" json:"userId"`
	TableID         *uuid.UUID    `db:"table_id" json:"tableId"`
	LocationID      *uuid.UUID    `db:"location_id" json:"locationId"`
	CustomerName    string        `db:"customer_name" json:"customerName"`
	CustomerEmail   string        `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string        `db:"customer_phone" json:"customerPhone"`
	Date            string        `db:"date" json:"date"`
	Time            string        `db:"time" json:"time"`
	PartySize       int           `db:"party_size" json:"partySize"`
	SpecialRequests *string       `db:"special_requests" json:"specialRequests"`
	Status          BookingStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
}

// Holds reports whether b occupies tableID at time as a confirmed booking.
func (b *Booking) Holds(tableID uuid.UUID, time string) bool {
	return b.Status == BookingConfirmed && b.TableID != nil && *b.TableID == tableID && b.Time == time
}

// BookingRequest is the public reservation form. A status sent by the client is ignored.
type BookingRequest struct {
	UserID          *uuid.UUID `json:"userId"`
	TableID         *uuid.UUID `json:"tableId"`
	LocationID      *uuid.UUID `json:"locationId"`
	CustomerName    string     `json:"customerName" validate:"required,max=255"`
	CustomerEmail   string     `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string     `json:"customerPhone" validate:"required,max=64"`
	Date            string     `json:"date" validate:"required,max=32"`
	Time            string     `json:"time" validate:"required,max=32"`
	PartySize       int        `json:"partySize" validate:"required,min=1,max=100"`
	SpecialRequests *string    `json:"specialRequests" validate:"omitempty,max=2000"`
}

func (r *BookingRequest) Booking() *Booking {
	return &Booking{
		UserID:          r.UserID,
		TableID:         r.TableID,
		LocationID:      r.LocationID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		SpecialRequests: r.SpecialRequests,
		Status:          BookingUnconfirmed,
	}
}

type BookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required"`
}

// BookingPatch edits a booking from the back office. Status changes go through BookingStatusRequest.
type BookingPatch struct {
	TableID         *uuid.UUID `json:"tableId"`
	LocationID      *uuid.UUID `json:"locationId"`
	CustomerName    *string    `json:"customerName" validate:"omitempty,min=1,max=255"`
	CustomerEmail   *string    `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   *string    `json:"customerPhone" validate:"omitempty,min=1,max=64"`
	Date            *string    `json:"date" validate:"omitempty,min=1,max=32"`
	Time            *string    `json:"time" validate:"omitempty,min=1,max=32"`
	PartySize       *int       `json:"partySize" validate:"omitempty,min=1,max=100"`
	SpecialRequests *string    `json:"specialRequests" validate:"omitempty,max=2000"`
}

// Apply returns b with the patch's non-nil fields written over it.
func (p *BookingPatch) Apply(b Booking) Booking {
	if p.TableID != nil {
		b.TableID = p.TableID
	}
	if p.LocationID != nil {
		b.LocationID = p.LocationID
	}
	if p.CustomerName != nil {
		b.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		b.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		b.CustomerPhone = *p.CustomerPhone
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Time != nil {
		b.Time = *p.Time
	}
	if p.PartySize != nil {
		b.PartySize = *p.PartySize
	}
	if p.SpecialRequests != nil {
		b.SpecialRequests = p.SpecialRequests
	}
	return b
}

// TableAvailability is a bookable table annotated for one requested slot.
type TableAvailability struct {
	Table
	Available bool `json:"available"`
}
