package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/models"
)

type errorBody struct {
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors"`
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"notFound", apperr.NotFound("Table"), http.StatusNotFound, "Table not found"},
		{"forbidden", apperr.New(apperr.KindRegistrationDisabled, "Registration is currently disabled"), http.StatusForbidden, "Registration is currently disabled"},
		{"conflict", apperr.Conflict("Slot already booked"), http.StatusConflict, "Slot already booked"},
		{"plainError", errors.New("pq: relation \"tables\" does not exist"), http.StatusInternalServerError, "Internal server error"},
		{"wrappedInternal", apperr.Wrap(errors.New("dial tcp"), apperr.KindInternal, "db down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)

			RespondError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
		})
	}
}

func TestParseBodyReportsFieldPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings",
		strings.NewReader(`{"customerName":"","customerEmail":"nope","customerPhone":"555","date":"2024-05-01","time":"19:00","partySize":0}`))

	var dst models.BookingRequest
	err := ParseBody(req, &dst, apperr.KindInvalidBookingData, "Invalid booking data")

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Kind != apperr.KindInvalidBookingData {
		t.Errorf("kind = %s", appErr.Kind)
	}

	paths := map[string]bool{}
	for _, f := range appErr.Fields {
		paths[f.Path] = true
	}
	for _, want := range []string{"customerName", "customerEmail", "partySize"} {
		if !paths[want] {
			t.Errorf("missing field error for %s; got %+v", want, appErr.Fields)
		}
	}
	if paths["date"] || paths["time"] {
		t.Errorf("unexpected field errors: %+v", appErr.Fields)
	}
}

func TestParseBodyMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":     "",
		"notJSON":   "{",
		"wrongType": `{"partySize":"four"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
			var dst models.BookingRequest
			err := ParseBody(req, &dst, apperr.KindInvalidBookingData, "Invalid booking data")
			if apperr.KindOf(err) != apperr.KindInvalidBookingData {
				t.Fatalf("err = %v, want InvalidBookingData", err)
			}
		})
	}
}

func TestValidateDecimalPrice(t *testing.T) {
	order := 1
	req := httptest.NewRequest(http.MethodPost, "/api/admin/menu/items",
		strings.NewReader(`{"name":"Soup","description":"Hot","price":"-1.00","displayOrder":1}`))
	var dst models.MenuItemRequest
	err := ParseBody(req, &dst, apperr.KindValidation, "Invalid menu item data")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("negative price accepted: %v", err)
	}

	dst = models.MenuItemRequest{Name: "Soup", Description: "Hot", DisplayOrder: &order}
	if err := Validate(&dst, apperr.KindValidation, "Invalid menu item data"); err == nil {
		t.Fatal("missing price accepted")
	}
}
