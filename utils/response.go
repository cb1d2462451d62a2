package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/calluna/apperr"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func RespondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorResponse{Message: message})
}

// RespondError maps err onto its HTTP status. Anything that is not an
// *apperr.Error is logged and reduced to a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || apperr.Status(appErr.Kind) == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		RespondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	RespondJSON(w, apperr.Status(appErr.Kind), errorResponse{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// ParseBody decodes a JSON request body into dst and validates it.
// Decode and validation failures are reported as the given kind.
func ParseBody(r *http.Request, dst interface{}, kind apperr.Kind, message string) error {
	if err := DecodeBody(r, dst, kind, message); err != nil {
		return err
	}
	return Validate(dst, kind, message)
}

// DecodeBody decodes without validating, for callers that validate further down.
func DecodeBody(r *http.Request, dst interface{}, kind apperr.Kind, message string) error {
	if r.Body == nil {
		return apperr.Validation(kind, message, []apperr.FieldError{{Path: "body", Message: "Required"}})
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation(kind, message, []apperr.FieldError{{Path: "body", Message: decodeMessage(err)}})
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "Required"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("Expected %s for %s", typeErr.Type, typeErr.Field)
	default:
		return "Malformed JSON"
	}
}
