package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const bookingColumns = `id, user_id, table_id, location_id, customer_name, customer_email, customer_phone,
	date, time, party_size, special_requests, status, created_at`

func scanBooking(row scanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.TableID, &b.LocationID, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.Date, &b.Time, &b.PartySize, &b.SpecialRequests, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings returns every booking, newest first.
func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := queryList(ctx, s, scanBooking, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListConfirmedBookingsByDate matches date as an exact string.
func (s *Store) ListConfirmedBookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	bookings, err := queryList(ctx, s, scanBooking, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE date = $1 AND status = $2`, date, models.BookingConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	return bookings, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	defer cancel()

	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err, "Booking")
	}
	return b, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO bookings (user_id, table_id, location_id, customer_name, customer_email, customer_phone,
			date, time, party_size, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+bookingColumns,
		b.UserID, b.TableID, b.LocationID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.Date, b.Time, b.PartySize, b.SpecialRequests, b.Status)
	defer cancel()

	created, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateBooking(ctx context.Context, id uuid.UUID, p *models.BookingPatch) (*models.Booking, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE bookings SET
			table_id = COALESCE($2, table_id),
			location_id = COALESCE($3, location_id),
			customer_name = COALESCE($4, customer_name),
			customer_email = COALESCE($5, customer_email),
			customer_phone = COALESCE($6, customer_phone),
			date = COALESCE($7, date),
			time = COALESCE($8, time),
			party_size = COALESCE($9, party_size),
			special_requests = COALESCE($10, special_requests)
		WHERE id = $1
		RETURNING `+bookingColumns,
		id, p.TableID, p.LocationID, p.CustomerName, p.CustomerEmail, p.CustomerPhone,
		p.Date, p.Time, p.PartySize, p.SpecialRequests)
	defer cancel()

	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err, "Booking")
	}
	return b, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	row, cancel := s.queryRow(ctx, `UPDATE bookings SET status = $2 WHERE id = $1 RETURNING `+bookingColumns, id, status)
	defer cancel()

	b, err := scanBooking(row)
	if err != nil {
		return nil, notFound(err, "Booking")
	}
	return b, nil
}
