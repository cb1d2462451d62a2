package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/booking"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

// Store is the persistence surface the HTTP layer depends on.
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, nu models.NewUser) (*models.User, error)
	CreateSession(ctx context.Context, userID uuid.UUID, expiresAt time.Time) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	ListLocations(ctx context.Context) ([]models.RestaurantLocation, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*models.RestaurantLocation, error)
	CreateLocation(ctx context.Context, l *models.RestaurantLocation) (*models.RestaurantLocation, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, p *models.LocationPatch) (*models.RestaurantLocation, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	ListTables(ctx context.Context) ([]models.Table, error)
	ListAllTables(ctx context.Context) ([]models.Table, error)
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	CreateTable(ctx context.Context, t *models.Table) (*models.Table, error)
	UpdateTable(ctx context.Context, id uuid.UUID, p *models.TablePatch) (*models.Table, error)
	DeleteTable(ctx context.Context, id uuid.UUID) error

	ListFloorPlanElements(ctx context.Context) ([]models.FloorPlanElement, error)
	ListFloorPlanElementsByLocation(ctx context.Context, locationID uuid.UUID) ([]models.FloorPlanElement, error)
	GetFloorPlanElement(ctx context.Context, id uuid.UUID) (*models.FloorPlanElement, error)
	CreateFloorPlanElement(ctx context.Context, e *models.FloorPlanElement) (*models.FloorPlanElement, error)
	UpdateFloorPlanElement(ctx context.Context, id uuid.UUID, p *models.FloorPlanElementPatch) (*models.FloorPlanElement, error)
	DeleteFloorPlanElement(ctx context.Context, id uuid.UUID) error

	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	ListMenuCategories(ctx context.Context) ([]models.MenuCategory, error)
	GetMenuCategory(ctx context.Context, id uuid.UUID) (*models.MenuCategory, error)
	CreateMenuCategory(ctx context.Context, c *models.MenuCategory) (*models.MenuCategory, error)
	UpdateMenuCategory(ctx context.Context, id uuid.UUID, p *models.MenuCategoryPatch) (*models.MenuCategory, error)
	DeleteMenuCategory(ctx context.Context, id uuid.UUID) error

	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	ListMenuItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, i *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, p *models.MenuItemPatch) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error

	ListGalleryImages(ctx context.Context) ([]models.GalleryImage, error)
	GetGalleryImage(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error)
	CreateGalleryImage(ctx context.Context, g *models.GalleryImage) (*models.GalleryImage, error)
	UpdateGalleryImage(ctx context.Context, id uuid.UUID, p *models.GalleryImagePatch) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, id uuid.UUID) error

	ListContactInfo(ctx context.Context) ([]models.ContactInfo, error)
	GetContactInfo(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error)
	CreateContactInfo(ctx context.Context, c *models.ContactInfo) (*models.ContactInfo, error)
	UpdateContactInfo(ctx context.Context, id uuid.UUID, p *models.ContactInfoPatch) (*models.ContactInfo, error)
	DeleteContactInfo(ctx context.Context, id uuid.UUID) error

	ListOpeningHours(ctx context.Context) ([]models.OpeningHours, error)
	GetOpeningHours(ctx context.Context, id uuid.UUID) (*models.OpeningHours, error)
	CreateOpeningHours(ctx context.Context, h *models.OpeningHours) (*models.OpeningHours, error)
	UpdateOpeningHours(ctx context.Context, id uuid.UUID, p *models.OpeningHoursPatch) (*models.OpeningHours, error)
	DeleteOpeningHours(ctx context.Context, id uuid.UUID) error

	GetSystemSetting(ctx context.Context, key string) (*models.SystemSetting, error)
	SetSystemSetting(ctx context.Context, key string, value, description *string) (*models.SystemSetting, error)
}

type SessionOptions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

type Handler struct {
	store    Store
	bookings *booking.Service
	session  SessionOptions
}

func New(store Store, bookings *booking.Service, session SessionOptions) *Handler {
	return &Handler{store: store, bookings: bookings, session: session}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return parseUUIDParam(mux.Vars(r)["id"], "id")
}

func parseUUIDParam(raw, path string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(apperr.KindValidation, "Invalid "+path, []apperr.FieldError{
			{Path: path, Message: "Must be a valid UUID"},
		})
	}
	return id, nil
}

func listEntities[T any](w http.ResponseWriter, r *http.Request, list func(context.Context) ([]T, error)) {
	items, err := list(r.Context())
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func getEntity[T any](w http.ResponseWriter, r *http.Request, get func(context.Context, uuid.UUID) (*T, error)) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	item, err := get(r.Context(), id)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func createEntity[Req any, T any](w http.ResponseWriter, r *http.Request, invalid string,
	build func(*Req) *T, create func(context.Context, *T) (*T, error)) {
	var req Req
	if err := utils.ParseBody(r, &req, apperr.KindValidation, invalid); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	item, err := create(r.Context(), build(&req))
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, item)
}

func updateEntity[P any, T any](w http.ResponseWriter, r *http.Request, invalid string,
	update func(context.Context, uuid.UUID, *P) (*T, error)) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	var patch P
	if err := utils.ParseBody(r, &patch, apperr.KindValidation, invalid); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	item, err := update(r.Context(), id, &patch)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, item)
}

func deleteEntity(w http.ResponseWriter, r *http.Request, what string, del func(context.Context, uuid.UUID) error) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondMessage(w, http.StatusOK, what+" deleted successfully")
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, r, apperr.New(apperr.KindNotFound, "Not found"))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondError(w, r, apperr.New(apperr.KindMethodNotAllowed, "Method not allowed"))
}
