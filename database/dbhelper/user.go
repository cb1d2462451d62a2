package dbhelper

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
)

const userColumns = `id, email, password, first_name, last_name, profile_image_url, role, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, nu models.NewUser) (*models.User, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		nu.Email, nu.PasswordHash, nu.FirstName, nu.LastName, nu.Role)
	defer cancel()

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.KindDuplicateEmail, "Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	defer cancel()

	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
	defer cancel()

	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return u, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	row, cancel := s.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email)
	defer cancel()

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (s *Store) CreateSession(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (*models.Session, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO sessions (user_id, expires_at) VALUES ($1, $2)
		RETURNING id, user_id, expires_at, created_at`, userID, expiresAt)
	defer cancel()

	var sess models.Session
	if err := row.Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	row, cancel := s.queryRow(ctx, `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`, id)
	defer cancel()

	var sess models.Session
	if err := row.Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return nil, notFound(err, "Session")
	}
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.executor(ctx).ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.executor(ctx).ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
