package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidBookingData, http.StatusBadRequest},
		{KindValidation, http.StatusBadRequest},
		{KindInvalidStatus, http.StatusBadRequest},
		{KindDuplicateEmail, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInvalidCredentials, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindRegistrationDisabled, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindMethodNotAllowed, http.StatusMethodNotAllowed},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
		{Kind("somethingElse"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := Status(tt.kind); got != tt.want {
				t.Errorf("Status(%s) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("get table: %w", NotFound("table"))
	if got := KindOf(err); got != KindNotFound {
		t.Fatalf("KindOf = %s, want %s", got, KindNotFound)
	}
	if !Is(err, KindNotFound) {
		t.Fatal("Is(err, KindNotFound) = false")
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("KindOf(plain) = %s, want %s", got, KindInternal)
	}
	if Is(nil, KindInternal) {
		t.Fatal("nil error must not match any kind")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, KindInternal, "failed to list tables")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable through errors.Is")
	}
	if err.Error() != "failed to list tables: connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
