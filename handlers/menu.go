package handlers

import (
	"net/http"

	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

func (h *Handler) ListMenuCategories(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListMenuCategories)
}

func (h *Handler) GetMenuCategory(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetMenuCategory)
}

func (h *Handler) CreateMenuCategory(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid category data", (*models.MenuCategoryRequest).Category, h.store.CreateMenuCategory)
}

func (h *Handler) UpdateMenuCategory(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid category data", h.store.UpdateMenuCategory)
}

func (h *Handler) DeleteMenuCategory(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Menu category", h.store.DeleteMenuCategory)
}

// ListMenuItems narrows to one category when categoryId is given.
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("categoryId")
	if raw == "" {
		listEntities(w, r, h.store.ListMenuItems)
		return
	}

	categoryID, err := parseUUIDParam(raw, "categoryId")
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	items, err := h.store.ListMenuItemsByCategory(r.Context(), categoryID)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetMenuItem)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid menu item data", (*models.MenuItemRequest).Item, h.store.CreateMenuItem)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid menu item data", h.store.UpdateMenuItem)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Menu item", h.store.DeleteMenuItem)
}
