package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/middlewares"
	"github.com/ray-remotestate/calluna/models"
	"github.com/ray-remotestate/calluna/utils"
)

const invalidCredentials = "Invalid credentials"

// Register creates an account and signs it in. Every self-registered
// account is an admin.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	setting, err := h.store.GetSystemSetting(ctx, models.SettingRegistrationEnabled)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		utils.RespondError(w, r, err)
		return
	}
	if setting != nil && setting.Value != nil && *setting.Value == "false" {
		utils.RespondError(w, r, apperr.New(apperr.KindRegistrationDisabled, "Registration is currently disabled"))
		return
	}

	var req models.RegisterRequest
	if err := utils.ParseBody(r, &req, apperr.KindValidation, "Invalid registration data"); err != nil {
		utils.RespondError(w, r, err)
		return
	}

	exists, err := h.store.EmailExists(ctx, req.Email)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	if exists {
		utils.RespondError(w, r, apperr.New(apperr.KindDuplicateEmail, "Email already exists"))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	user, err := h.store.CreateUser(ctx, models.NewUser{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	logrus.WithField("userId", user.ID.String()).Info("user registered")

	// the account exists either way; the client can log in to get a session
	if err := h.startSession(w, r, user); err != nil {
		logrus.WithError(err).WithField("userId", user.ID.String()).Error("failed to start session after registration")
	}
	utils.RespondJSON(w, http.StatusCreated, user)
}

// Login answers unknown emails and wrong passwords identically.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		utils.RespondError(w, r, apperr.New(apperr.KindInvalidCredentials, invalidCredentials))
		return
	}

	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			// keep timing in line with the wrong-password path
			utils.ComparePassword(req.Password, dummyHash)
			utils.RespondError(w, r, apperr.New(apperr.KindInvalidCredentials, invalidCredentials))
			return
		}
		utils.RespondError(w, r, err)
		return
	}
	if !utils.ComparePassword(req.Password, user.Password) {
		utils.RespondError(w, r, apperr.New(apperr.KindInvalidCredentials, invalidCredentials))
		return
	}

	if n, err := h.store.DeleteExpiredSessions(ctx); err != nil {
		logrus.WithError(err).Warn("failed to prune expired sessions")
	} else if n > 0 {
		logrus.WithField("count", n).Debug("pruned expired sessions")
	}

	if err := h.startSession(w, r, user); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if identity, err := middlewares.GetAuthenticatedUser(r); err == nil {
		if err := h.store.DeleteSession(r.Context(), identity.SessionID); err != nil {
			logrus.WithError(err).Error("failed to delete session")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
	utils.RespondMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, r, apperr.New(apperr.KindUnauthorized, "Unauthorized"))
		return
	}
	utils.RespondJSON(w, http.StatusOK, identity.User)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	expiresAt := time.Now().Add(h.session.TTL)

	session, err := h.store.CreateSession(r.Context(), user.ID, expiresAt)
	if err != nil {
		return err
	}
	token, err := utils.GenerateSessionToken(h.session.Secret, session.ID, user.ID, expiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		HttpOnly: true,
		Secure:   h.session.Secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  expiresAt,
	})
	return nil
}

// dummyHash is a well-formed digest that no password is expected to match.
const dummyHash = "5d1f3bd9b63e4bd2d0d0b9ad04b06e5d06d0a1f4f5c0b6b8f7c9a3a2e1d4c7b85d1f3bd9b63e4bd2d0d0b9ad04b06e5d06d0a1f4f5c0b6b8f7c9a3a2e1d4c7b8.6b3f2a0c9e8d7f1a2b3c4d5e6f708192"
