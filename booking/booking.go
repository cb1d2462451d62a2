// Package booking decides which tables can be offered to a guest and records
// reservations against them.
//
// Two policies are supported. PolicyObserved accepts any well-formed request
// and lets an admin confirm several bookings for one table slot; the
// conflict signal is advisory and surfaced through Availability. PolicyStrict
// checks capacity and location on create and serializes each (table, date,
// time) slot so only one booking can hold it confirmed.
package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/config"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

const invalidBookingData = "Invalid booking data"

type Repository interface {
	ListTablesByLocationAndCapacity(ctx context.Context, locationID uuid.UUID, partySize int) ([]models.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	ListConfirmedBookingsByDate(ctx context.Context, date string) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, p *models.BookingPatch) (*models.Booking, error)
	// WithBookingSlotLock runs fn while no other caller holds the same slot.
	WithBookingSlotLock(ctx context.Context, tableID uuid.UUID, date, time string, fn func(ctx context.Context) error) error
}

type Service struct {
	repo   Repository
	policy config.BookingPolicy
}

func NewService(repo Repository, policy config.BookingPolicy) *Service {
	if policy == "" {
		policy = config.PolicyObserved
	}
	return &Service{repo: repo, policy: policy}
}

func (s *Service) Policy() config.BookingPolicy {
	return s.policy
}

// ListBookableTables returns active tables at locationID seating at least
// partySize. date does not narrow the result; slot clashes are resolved
// against ListConfirmedBookingsForDate.
func (s *Service) ListBookableTables(ctx context.Context, locationID uuid.UUID, partySize int, date string) ([]models.Table, error) {
	if partySize < 1 {
		return nil, apperr.Validation(apperr.KindValidation, "Invalid availability query", []apperr.FieldError{
			{Path: "partySize", Message: "Must be greater than or equal to 1"},
		})
	}

	tables, err := s.repo.ListTablesByLocationAndCapacity(ctx, locationID, partySize)
	if err != nil {
		return nil, err
	}

	bookable := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.IsActive && t.Seats(locationID, partySize) {
			bookable = append(bookable, t)
		}
	}
	return bookable, nil
}

func (s *Service) ListConfirmedBookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.repo.ListConfirmedBookingsByDate(ctx, date)
}

// SlotTaken reports whether any confirmed booking holds tableID at time.
func SlotTaken(bookings []models.Booking, tableID uuid.UUID, time string) bool {
	for i := range bookings {
		if bookings[i].Holds(tableID, time) {
			return true
		}
	}
	return false
}

// Availability annotates each bookable table with whether the requested time
// is still free. An empty time marks every table available.
func (s *Service) Availability(ctx context.Context, locationID uuid.UUID, partySize int, date, time string) ([]models.TableAvailability, error) {
	tables, err := s.ListBookableTables(ctx, locationID, partySize, date)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.ListConfirmedBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make([]models.TableAvailability, 0, len(tables))
	for _, t := range tables {
		result = append(result, models.TableAvailability{
			Table:     t,
			Available: time == "" || !SlotTaken(booked, t.ID, time),
		})
	}
	return result, nil
}

// CreateBooking validates req and stores it as unconfirmed.
func (s *Service) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	if err := utils.Validate(req, apperr.KindInvalidBookingData, invalidBookingData); err != nil {
		return nil, err
	}
	b := req.Booking()

	if s.policy != config.PolicyStrict || b.TableID == nil {
		return s.repo.CreateBooking(ctx, b)
	}

	var created *models.Booking
	err := s.repo.WithBookingSlotLock(ctx, *b.TableID, b.Date, b.Time, func(ctx context.Context) error {
		if err := s.checkTable(ctx, b); err != nil {
			return err
		}
		if err := s.checkSlotFree(ctx, b, uuid.Nil); err != nil {
			return err
		}

		var err error
		created, err = s.repo.CreateBooking(ctx, b)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateBookingStatus moves a booking to any status. Under PolicyStrict a
// confirm fails when another booking already holds the slot.
func (s *Service) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, apperr.Validation(apperr.KindInvalidStatus, "Invalid status", []apperr.FieldError{
			{Path: "status", Message: "Must be one of: unconfirmed, confirmed, cancelled"},
		})
	}

	if s.policy != config.PolicyStrict || status != models.BookingConfirmed {
		return s.repo.UpdateBookingStatus(ctx, id, status)
	}

	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.TableID == nil {
		return s.repo.UpdateBookingStatus(ctx, id, status)
	}

	var updated *models.Booking
	err = s.repo.WithBookingSlotLock(ctx, *current.TableID, current.Date, current.Time, func(ctx context.Context) error {
		// re-read under the lock; the slot may have moved since
		current, err := s.repo.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkSlotFree(ctx, current, current.ID); err != nil {
			return err
		}

		updated, err = s.repo.UpdateBookingStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateBooking edits booking details. Under PolicyStrict a confirmed booking
// moved to another table, date or time must find that slot free.
func (s *Service) UpdateBooking(ctx context.Context, id uuid.UUID, p *models.BookingPatch) (*models.Booking, error) {
	if err := utils.Validate(p, apperr.KindInvalidBookingData, invalidBookingData); err != nil {
		return nil, err
	}
	if s.policy != config.PolicyStrict {
		return s.repo.UpdateBooking(ctx, id, p)
	}

	current, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	target := p.Apply(*current)
	if target.Status != models.BookingConfirmed || target.TableID == nil || !movesSlot(current, &target) {
		return s.repo.UpdateBooking(ctx, id, p)
	}

	var updated *models.Booking
	err = s.repo.WithBookingSlotLock(ctx, *target.TableID, target.Date, target.Time, func(ctx context.Context) error {
		current, err := s.repo.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		target := p.Apply(*current)
		if target.Status == models.BookingConfirmed {
			if err := s.checkSlotFree(ctx, &target, id); err != nil {
				return err
			}
		}

		updated, err = s.repo.UpdateBooking(ctx, id, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func movesSlot(from, to *models.Booking) bool {
	sameTable := from.TableID != nil && to.TableID != nil && *from.TableID == *to.TableID
	return !sameTable || from.Date != to.Date || from.Time != to.Time
}

// CancelBooking is the delete operation for bookings.
func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.UpdateBookingStatus(ctx, id, models.BookingCancelled)
}

func (s *Service) checkTable(ctx context.Context, b *models.Booking) error {
	table, err := s.repo.GetTable(ctx, *b.TableID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return invalidField("tableId", "Table does not exist")
		}
		return err
	}

	switch {
	case !table.IsActive:
		return invalidField("tableId", "Table is not available")
	case b.LocationID != nil && (table.LocationID == nil || *table.LocationID != *b.LocationID):
		return invalidField("tableId", "Table is not in the selected location")
	case table.Capacity < b.PartySize:
		return invalidField("partySize", fmt.Sprintf("Table seats at most %d", table.Capacity))
	}
	return nil
}

// checkSlotFree fails when a confirmed booking other than except holds b's slot.
func (s *Service) checkSlotFree(ctx context.Context, b *models.Booking, except uuid.UUID) error {
	if b.TableID == nil {
		return nil
	}
	booked, err := s.repo.ListConfirmedBookingsByDate(ctx, b.Date)
	if err != nil {
		return err
	}
	for i := range booked {
		if booked[i].ID != except && booked[i].Holds(*b.TableID, b.Time) {
			logrus.WithFields(logrus.Fields{
				"tableId": b.TableID.String(),
				"date":    b.Date,
				"time":    b.Time,
				"holder":  booked[i].ID.String(),
			}).Info("booking slot already confirmed")
			return apperr.Conflict("Table is already booked for this time")
		}
	}
	return nil
}

func invalidField(path, message string) error {
	return apperr.Validation(apperr.KindInvalidBookingData, invalidBookingData, []apperr.FieldError{{Path: path, Message: message}})
}
