package dbhelper

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/models"
)

const (
	galleryColumns = `id, title, url, alt, display_order, is_active, created_at`
	contactColumns = `id, type, label, value, display_order, is_active, created_at, updated_at`
	hoursColumns   = `id, day_of_week, day_name, open_time, close_time, is_closed, is_active, created_at, updated_at`
	settingColumns = `id, key, value, description, updated_at`
)

func scanImage(row scanner) (*models.GalleryImage, error) {
	var g models.GalleryImage
	if err := row.Scan(&g.ID, &g.Title, &g.URL, &g.Alt, &g.DisplayOrder, &g.IsActive, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanContact(row scanner) (*models.ContactInfo, error) {
	var c models.ContactInfo
	if err := row.Scan(&c.ID, &c.Type, &c.Label, &c.Value, &c.DisplayOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanHours(row scanner) (*models.OpeningHours, error) {
	var h models.OpeningHours
	err := row.Scan(&h.ID, &h.DayOfWeek, &h.DayName, &h.OpenTime, &h.CloseTime, &h.IsClosed, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func scanSetting(row scanner) (*models.SystemSetting, error) {
	var st models.SystemSetting
	if err := row.Scan(&st.ID, &st.Key, &st.Value, &st.Description, &st.UpdatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

// gallery

func (s *Store) ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error) {
	images, err := queryList(ctx, s, scanImage, `SELECT `+galleryColumns+` FROM gallery_images WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

func (s *Store) GetGalleryImage(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+galleryColumns+` FROM gallery_images WHERE id = $1`, id)
	defer cancel()

	g, err := scanImage(row)
	if err != nil {
		return nil, notFound(err, "Gallery image")
	}
	return g, nil
}

func (s *Store) CreateGalleryImage(ctx context.Context, g *models.GalleryImage) (*models.GalleryImage, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO gallery_images (title, url, alt, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+galleryColumns, g.Title, g.URL, g.Alt, g.DisplayOrder, g.IsActive)
	defer cancel()

	created, err := scanImage(row)
	if err != nil {
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateGalleryImage(ctx context.Context, id uuid.UUID, p *models.GalleryImagePatch) (*models.GalleryImage, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE gallery_images SET
			title = COALESCE($2, title),
			url = COALESCE($3, url),
			alt = COALESCE($4, alt),
			display_order = COALESCE($5, display_order),
			is_active = COALESCE($6, is_active)
		WHERE id = $1
		RETURNING `+galleryColumns, id, p.Title, p.URL, p.Alt, p.DisplayOrder, p.IsActive)
	defer cancel()

	g, err := scanImage(row)
	if err != nil {
		return nil, notFound(err, "Gallery image")
	}
	return g, nil
}

func (s *Store) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "gallery_images", "Gallery image", id, false)
}

// contact info

func (s *Store) ListContactInfo(ctx context.Context) ([]models.ContactInfo, error) {
	contacts, err := queryList(ctx, s, scanContact, `
		SELECT `+contactColumns+` FROM contact_info
		WHERE is_active
		ORDER BY display_order`)
	if err != nil {
		return nil, fmt.Errorf("list contact info: %w", err)
	}
	return contacts, nil
}

func (s *Store) GetContactInfo(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+contactColumns+` FROM contact_info WHERE id = $1`, id)
	defer cancel()

	c, err := scanContact(row)
	if err != nil {
		return nil, notFound(err, "Contact info")
	}
	return c, nil
}

func (s *Store) CreateContactInfo(ctx context.Context, c *models.ContactInfo) (*models.ContactInfo, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO contact_info (type, label, value, display_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns, c.Type, c.Label, c.Value, c.DisplayOrder, c.IsActive)
	defer cancel()

	created, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact info: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateContactInfo(ctx context.Context, id uuid.UUID, p *models.ContactInfoPatch) (*models.ContactInfo, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE contact_info SET
			type = COALESCE($2, type),
			label = COALESCE($3, label),
			value = COALESCE($4, value),
			display_order = COALESCE($5, display_order),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+contactColumns, id, p.Type, p.Label, p.Value, p.DisplayOrder, p.IsActive)
	defer cancel()

	c, err := scanContact(row)
	if err != nil {
		return nil, notFound(err, "Contact info")
	}
	return c, nil
}

func (s *Store) DeleteContactInfo(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "contact_info", "Contact info", id, true)
}

// opening hours

func (s *Store) ListOpeningHours(ctx context.Context) ([]models.OpeningHours, error) {
	hours, err := queryList(ctx, s, scanHours, `
		SELECT `+hoursColumns+` FROM opening_hours
		WHERE is_active
		ORDER BY day_of_week`)
	if err != nil {
		return nil, fmt.Errorf("list opening hours: %w", err)
	}
	return hours, nil
}

func (s *Store) GetOpeningHours(ctx context.Context, id uuid.UUID) (*models.OpeningHours, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+hoursColumns+` FROM opening_hours WHERE id = $1`, id)
	defer cancel()

	h, err := scanHours(row)
	if err != nil {
		return nil, notFound(err, "Opening hours")
	}
	return h, nil
}

func (s *Store) CreateOpeningHours(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO opening_hours (day_of_week, day_name, open_time, close_time, is_closed, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+hoursColumns, h.DayOfWeek, h.DayName, h.OpenTime, h.CloseTime, h.IsClosed, h.IsActive)
	defer cancel()

	created, err := scanHours(row)
	if err != nil {
		return nil, fmt.Errorf("create opening hours: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateOpeningHours(ctx context.Context, id uuid.UUID, p *models.OpeningHoursPatch) (*models.OpeningHours, error) {
	row, cancel := s.queryRow(ctx, `
		UPDATE opening_hours SET
			day_of_week = COALESCE($2, day_of_week),
			day_name = COALESCE($3, day_name),
			open_time = COALESCE($4, open_time),
			close_time = COALESCE($5, close_time),
			is_closed = COALESCE($6, is_closed),
			is_active = COALESCE($7, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+hoursColumns, id, p.DayOfWeek, p.DayName, p.OpenTime, p.CloseTime, p.IsClosed, p.IsActive)
	defer cancel()

	h, err := scanHours(row)
	if err != nil {
		return nil, notFound(err, "Opening hours")
	}
	return h, nil
}

func (s *Store) DeleteOpeningHours(ctx context.Context, id uuid.UUID) error {
	return s.softDelete(ctx, "opening_hours", "Opening hours", id, true)
}

// system settings

func (s *Store) GetSystemSetting(ctx context.Context, key string) (*models.SystemSetting, error) {
	row, cancel := s.queryRow(ctx, `SELECT `+settingColumns+` FROM system_settings WHERE key = $1`, key)
	defer cancel()

	st, err := scanSetting(row)
	if err != nil {
		return nil, notFound(err, "Setting")
	}
	return st, nil
}

// SetSystemSetting creates key if absent, otherwise overwrites it.
func (s *Store) SetSystemSetting(ctx context.Context, key string, value, description *string) (*models.SystemSetting, error) {
	row, cancel := s.queryRow(ctx, `
		INSERT INTO system_settings (key, value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			description = COALESCE(EXCLUDED.description, system_settings.description),
			updated_at = NOW()
		RETURNING `+settingColumns, key, value, description)
	defer cancel()

	st, err := scanSetting(row)
	if err != nil {
		return nil, fmt.Errorf("set setting %s: %w", key, err)
	}
	return st, nil
}
