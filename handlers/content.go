package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

// gallery

func (h *Handler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListGalleryImages)
}

func (h *Handler) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetGalleryImage)
}

func (h *Handler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid image data", (*models.GalleryImageRequest).Image, h.store.CreateGalleryImage)
}

func (h *Handler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid image data", h.store.UpdateGalleryImage)
}

func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Gallery image", h.store.DeleteGalleryImage)
}

// contact

func (h *Handler) ListContactInfo(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListContactInfo)
}

func (h *Handler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetContactInfo)
}

func (h *Handler) CreateContactInfo(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid contact data", (*models.ContactInfoRequest).Contact, h.store.CreateContactInfo)
}

func (h *Handler) UpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid contact data", h.store.UpdateContactInfo)
}

func (h *Handler) DeleteContactInfo(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Contact info", h.store.DeleteContactInfo)
}

// opening hours

func (h *Handler) ListOpeningHours(w http.ResponseWriter, r *http.Request) {
	listEntities(w, r, h.store.ListOpeningHours)
}

func (h *Handler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	getEntity(w, r, h.store.GetOpeningHours)
}

func (h *Handler) CreateOpeningHours(w http.ResponseWriter, r *http.Request) {
	createEntity(w, r, "Invalid opening hours data", (*models.OpeningHoursRequest).Hours, h.store.CreateOpeningHours)
}

func (h *Handler) UpdateOpeningHours(w http.ResponseWriter, r *http.Request) {
	updateEntity(w, r, "Invalid opening hours data", h.store.UpdateOpeningHours)
}

func (h *Handler) DeleteOpeningHours(w http.ResponseWriter, r *http.Request) {
	deleteEntity(w, r, "Opening hours", h.store.DeleteOpeningHours)
}

// settings

type settingValue struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

func (h *Handler) GetSystemSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	setting, err := h.store.GetSystemSetting(r.Context(), key)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			utils.RespondJSON(w, http.StatusOK, settingValue{Key: key})
			return
		}
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, setting)
}

func (h *Handler) SetSystemSetting(w http.ResponseWriter, r *http.Request) {
	var req models.SystemSettingRequest
	if err := utils.ParseBody(r, &req, apperr.KindValidation, "Invalid setting data"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	setting, err := h.store.SetSystemSetting(r.Context(), req.Key, req.Value, req.Description)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, setting)
}

// RegistrationStatus exposes only the registration flag to anonymous callers.
// A missing setting means registration is open.
func (h *Handler) RegistrationStatus(w http.ResponseWriter, r *http.Request) {
	enabled := true
	setting, err := h.store.GetSystemSetting(r.Context(), models.SettingRegistrationEnabled)
	switch {
	case err == nil:
		enabled = setting.Value == nil || *setting.Value != "false"
	case !apperr.Is(err, apperr.KindNotFound):
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}
