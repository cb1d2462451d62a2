package handlers_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
)

// memStore is an in-memory stand-in for dbhelper.Store.
type memStore struct {
	mu sync.Mutex

	users     map[uuid.UUID]models.User
	sessions  map[uuid.UUID]models.Session
	locations map[uuid.UUID]models.RestaurantLocation
	tables    map[uuid.UUID]models.Table
	elements  map[uuid.UUID]models.FloorPlanElement
	bookings  []models.Booking
	cats      map[uuid.UUID]models.MenuCategory
	items     map[uuid.UUID]models.MenuItem
	images    map[uuid.UUID]models.GalleryImage
	contacts  map[uuid.UUID]models.ContactInfo
	hours     map[uuid.UUID]models.OpeningHours
	settings  map[string]models.SystemSetting

	failSessions bool
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[uuid.UUID]models.User{},
		sessions:  map[uuid.UUID]models.Session{},
		locations: map[uuid.UUID]models.RestaurantLocation{},
		tables:    map[uuid.UUID]models.Table{},
		elements:  map[uuid.UUID]models.FloorPlanElement{},
		cats:      map[uuid.UUID]models.MenuCategory{},
		items:     map[uuid.UUID]models.MenuItem{},
		images:    map[uuid.UUID]models.GalleryImage{},
		contacts:  map[uuid.UUID]models.ContactInfo{},
		hours:     map[uuid.UUID]models.OpeningHours{},
		settings:  map[string]models.SystemSetting{},
	}
}

func get[T any](m map[uuid.UUID]T, id uuid.UUID, what string) (*T, error) {
	v, ok := m[id]
	if !ok {
		return nil, apperr.NotFound(what)
	}
	return &v, nil
}

func values[T any](m map[uuid.UUID]T, keep func(T) bool) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// users and sessions

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.users, id, "User")
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memStore) CreateUser(_ context.Context, nu models.NewUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	u := models.User{
		ID:        uuid.New(),
		Email:     nu.Email,
		Password:  nu.PasswordHash,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) CreateSession(_ context.Context, userID uuid.UUID, expiresAt time.Time) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSessions {
		return nil, errors.New("session store unavailable")
	}
	s := models.Session{ID: uuid.New(), UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	m.sessions[s.ID] = s
	return &s, nil
}

func (m *memStore) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.sessions, id, "Session")
}

func (m *memStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteExpiredSessions(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now()
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// locations

func (m *memStore) ListLocations(_ context.Context) ([]models.RestaurantLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.locations, func(l models.RestaurantLocation) bool { return l.IsActive }), nil
}

func (m *memStore) GetLocation(_ context.Context, id uuid.UUID) (*models.RestaurantLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.locations, id, "Location")
}

func (m *memStore) CreateLocation(_ context.Context, l *models.RestaurantLocation) (*models.RestaurantLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *l
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.locations[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateLocation(_ context.Context, id uuid.UUID, p *models.LocationPatch) (*models.RestaurantLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, err := get(m.locations, id, "Location")
	if err != nil {
		return nil, err
	}
	set(&l.Name, p.Name)
	if p.Description != nil {
		l.Description = p.Description
	}
	set(&l.DisplayOrder, p.DisplayOrder)
	set(&l.IsActive, p.IsActive)
	m.locations[id] = *l
	return l, nil
}

func (m *memStore) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateLocation(ctx, id, &models.LocationPatch{IsActive: &inactive})
	return err
}

// tables

func (m *memStore) ListTables(_ context.Context) ([]models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.tables, func(t models.Table) bool { return t.IsActive }), nil
}

func (m *memStore) ListAllTables(_ context.Context) ([]models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.tables, nil), nil
}

func (m *memStore) ListTablesByLocationAndCapacity(_ context.Context, locationID uuid.UUID, partySize int) ([]models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.tables, func(t models.Table) bool { return t.IsActive && t.Seats(locationID, partySize) }), nil
}

func (m *memStore) GetTable(_ context.Context, id uuid.UUID) (*models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.tables, id, "Table")
}

func (m *memStore) CreateTable(_ context.Context, t *models.Table) (*models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *t
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.tables[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateTable(_ context.Context, id uuid.UUID, p *models.TablePatch) (*models.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := get(m.tables, id, "Table")
	if err != nil {
		return nil, err
	}
	set(&t.Name, p.Name)
	set(&t.Capacity, p.Capacity)
	set(&t.MinCapacity, p.MinCapacity)
	set(&t.MaxCapacity, p.MaxCapacity)
	set(&t.TableType, p.TableType)
	set(&t.Area, p.Area)
	if p.LocationID != nil {
		t.LocationID = p.LocationID
	}
	set(&t.Shape, p.Shape)
	if p.Description != nil {
		t.Description = p.Description
	}
	set(&t.XPosition, p.XPosition)
	set(&t.YPosition, p.YPosition)
	set(&t.Width, p.Width)
	set(&t.Height, p.Height)
	set(&t.IsActive, p.IsActive)
	set(&t.IsPremium, p.IsPremium)
	t.UpdatedAt = time.Now()
	m.tables[id] = *t
	return t, nil
}

func (m *memStore) DeleteTable(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateTable(ctx, id, &models.TablePatch{IsActive: &inactive})
	return err
}

// floor plan

func (m *memStore) ListFloorPlanElements(_ context.Context) ([]models.FloorPlanElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.elements, func(e models.FloorPlanElement) bool { return e.IsActive }), nil
}

func (m *memStore) ListFloorPlanElementsByLocation(_ context.Context, locationID uuid.UUID) ([]models.FloorPlanElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.elements, func(e models.FloorPlanElement) bool { return e.IsActive && e.LocationID == locationID }), nil
}

func (m *memStore) GetFloorPlanElement(_ context.Context, id uuid.UUID) (*models.FloorPlanElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.elements, id, "Floor plan element")
}

func (m *memStore) CreateFloorPlanElement(_ context.Context, e *models.FloorPlanElement) (*models.FloorPlanElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *e
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.elements[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateFloorPlanElement(_ context.Context, id uuid.UUID, p *models.FloorPlanElementPatch) (*models.FloorPlanElement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := get(m.elements, id, "Floor plan element")
	if err != nil {
		return nil, err
	}
	set(&e.LocationID, p.LocationID)
	set(&e.ElementType, p.ElementType)
	set(&e.Name, p.Name)
	set(&e.XPosition, p.XPosition)
	set(&e.YPosition, p.YPosition)
	set(&e.Width, p.Width)
	set(&e.Height, p.Height)
	set(&e.Rotation, p.Rotation)
	set(&e.Color, p.Color)
	set(&e.IsActive, p.IsActive)
	m.elements[id] = *e
	return e, nil
}

func (m *memStore) DeleteFloorPlanElement(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateFloorPlanElement(ctx, id, &models.FloorPlanElementPatch{IsActive: &inactive})
	return err
}

// bookings

func (m *memStore) ListBookings(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0, len(m.bookings))
	for i := len(m.bookings) - 1; i >= 0; i-- {
		out = append(out, m.bookings[i])
	}
	return out, nil
}

func (m *memStore) ListConfirmedBookingsByDate(_ context.Context, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Booking, 0)
	for _, b := range m.bookings {
		if b.Date == date && b.Status == models.BookingConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) booking(id uuid.UUID) (*models.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			return &m.bookings[i], nil
		}
	}
	return nil, apperr.NotFound("Booking")
}

func (m *memStore) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.booking(id)
	if err != nil {
		return nil, err
	}
	found := *b
	return &found, nil
}

func (m *memStore) CreateBooking(_ context.Context, b *models.Booking) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *b
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	m.bookings = append(m.bookings, created)
	return &created, nil
}

func (m *memStore) UpdateBookingStatus(_ context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.booking(id)
	if err != nil {
		return nil, err
	}
	b.Status = status
	updated := *b
	return &updated, nil
}

func (m *memStore) UpdateBooking(_ context.Context, id uuid.UUID, p *models.BookingPatch) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.booking(id)
	if err != nil {
		return nil, err
	}
	*b = p.Apply(*b)
	updated := *b
	return &updated, nil
}

func (m *memStore) WithBookingSlotLock(ctx context.Context, _ uuid.UUID, _, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// menu

func (m *memStore) ListMenuCategories(_ context.Context) ([]models.MenuCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.cats, func(c models.MenuCategory) bool { return c.IsActive })
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *memStore) GetMenuCategory(_ context.Context, id uuid.UUID) (*models.MenuCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.cats, id, "Menu category")
}

func (m *memStore) CreateMenuCategory(_ context.Context, c *models.MenuCategory) (*models.MenuCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *c
	created.ID = uuid.New()
	m.cats[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateMenuCategory(_ context.Context, id uuid.UUID, p *models.MenuCategoryPatch) (*models.MenuCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := get(m.cats, id, "Menu category")
	if err != nil {
		return nil, err
	}
	set(&c.Name, p.Name)
	set(&c.DisplayOrder, p.DisplayOrder)
	set(&c.IsActive, p.IsActive)
	m.cats[id] = *c
	return c, nil
}

func (m *memStore) DeleteMenuCategory(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateMenuCategory(ctx, id, &models.MenuCategoryPatch{IsActive: &inactive})
	return err
}

func (m *memStore) ListMenuItems(_ context.Context) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.items, func(i models.MenuItem) bool { return i.IsActive })
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *memStore) ListMenuItemsByCategory(_ context.Context, categoryID uuid.UUID) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.items, func(i models.MenuItem) bool {
		return i.IsActive && i.CategoryID != nil && *i.CategoryID == categoryID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (m *memStore) GetMenuItem(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.items, id, "Menu item")
}

func (m *memStore) CreateMenuItem(_ context.Context, i *models.MenuItem) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *i
	created.ID = uuid.New()
	m.items[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateMenuItem(_ context.Context, id uuid.UUID, p *models.MenuItemPatch) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, err := get(m.items, id, "Menu item")
	if err != nil {
		return nil, err
	}
	if p.CategoryID != nil {
		i.CategoryID = p.CategoryID
	}
	set(&i.Name, p.Name)
	set(&i.Description, p.Description)
	set(&i.Price, p.Price)
	set(&i.IsActive, p.IsActive)
	set(&i.DisplayOrder, p.DisplayOrder)
	m.items[id] = *i
	return i, nil
}

func (m *memStore) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateMenuItem(ctx, id, &models.MenuItemPatch{IsActive: &inactive})
	return err
}

// content

func (m *memStore) ListGalleryImages(_ context.Context) ([]models.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.images, func(g models.GalleryImage) bool { return g.IsActive }), nil
}

func (m *memStore) GetGalleryImage(_ context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.images, id, "Gallery image")
}

func (m *memStore) CreateGalleryImage(_ context.Context, g *models.GalleryImage) (*models.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *g
	created.ID = uuid.New()
	m.images[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateGalleryImage(_ context.Context, id uuid.UUID, p *models.GalleryImagePatch) (*models.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, err := get(m.images, id, "Gallery image")
	if err != nil {
		return nil, err
	}
	set(&g.Title, p.Title)
	set(&g.URL, p.URL)
	set(&g.Alt, p.Alt)
	set(&g.DisplayOrder, p.DisplayOrder)
	set(&g.IsActive, p.IsActive)
	m.images[id] = *g
	return g, nil
}

func (m *memStore) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateGalleryImage(ctx, id, &models.GalleryImagePatch{IsActive: &inactive})
	return err
}

func (m *memStore) ListContactInfo(_ context.Context) ([]models.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return values(m.contacts, func(c models.ContactInfo) bool { return c.IsActive }), nil
}

func (m *memStore) GetContactInfo(_ context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.contacts, id, "Contact info")
}

func (m *memStore) CreateContactInfo(_ context.Context, c *models.ContactInfo) (*models.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *c
	created.ID = uuid.New()
	m.contacts[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateContactInfo(_ context.Context, id uuid.UUID, p *models.ContactInfoPatch) (*models.ContactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := get(m.contacts, id, "Contact info")
	if err != nil {
		return nil, err
	}
	set(&c.Type, p.Type)
	set(&c.Label, p.Label)
	set(&c.Value, p.Value)
	set(&c.DisplayOrder, p.DisplayOrder)
	set(&c.IsActive, p.IsActive)
	m.contacts[id] = *c
	return c, nil
}

func (m *memStore) DeleteContactInfo(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateContactInfo(ctx, id, &models.ContactInfoPatch{IsActive: &inactive})
	return err
}

func (m *memStore) ListOpeningHours(_ context.Context) ([]models.OpeningHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := values(m.hours, func(h models.OpeningHours) bool { return h.IsActive })
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (m *memStore) GetOpeningHours(_ context.Context, id uuid.UUID) (*models.OpeningHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return get(m.hours, id, "Opening hours")
}

func (m *memStore) CreateOpeningHours(_ context.Context, h *models.OpeningHours) (*models.OpeningHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *h
	created.ID = uuid.New()
	m.hours[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateOpeningHours(_ context.Context, id uuid.UUID, p *models.OpeningHoursPatch) (*models.OpeningHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := get(m.hours, id, "Opening hours")
	if err != nil {
		return nil, err
	}
	set(&h.DayOfWeek, p.DayOfWeek)
	set(&h.DayName, p.DayName)
	if p.OpenTime != nil {
		h.OpenTime = p.OpenTime
	}
	if p.CloseTime != nil {
		h.CloseTime = p.CloseTime
	}
	set(&h.IsClosed, p.IsClosed)
	set(&h.IsActive, p.IsActive)
	m.hours[id] = *h
	return h, nil
}

func (m *memStore) DeleteOpeningHours(ctx context.Context, id uuid.UUID) error {
	inactive := false
	_, err := m.UpdateOpeningHours(ctx, id, &models.OpeningHoursPatch{IsActive: &inactive})
	return err
}

// settings

func (m *memStore) GetSystemSetting(_ context.Context, key string) (*models.SystemSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[key]
	if !ok {
		return nil, apperr.NotFound("Setting")
	}
	return &s, nil
}

func (m *memStore) SetSystemSetting(_ context.Context, key string, value, description *string) (*models.SystemSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[key]
	if !ok {
		s = models.SystemSetting{ID: uuid.New(), Key: key}
	}
	s.Value = value
	if description != nil {
		s.Description = description
	}
	s.UpdatedAt = time.Now()
	m.settings[key] = s
	return &s, nil
}
