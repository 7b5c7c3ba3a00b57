package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToAPIErrorMapsUserFacingErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", ValidationError{Field: "order_id", Msg: "id invalid"}, http.StatusBadRequest, "order_id: id invalid"},
		{"not found", NotFoundError{Resource: "order", Msg: "Comanda nu a fost găsită."}, http.StatusNotFound, "Comanda nu a fost găsită."},
		{"conflict wrapped", fmt.Errorf("retry: %w", ConflictError{Msg: "Comanda este deja plătită."}), http.StatusConflict, "Comanda este deja plătită."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr, ok := AsAPIError(ToAPIError(tc.err))
			if !ok {
				t.Fatalf("expected *APIError, got %T", ToAPIError(tc.err))
			}
			if apiErr.Status != tc.status {
				t.Fatalf("status: got %d want %d", apiErr.Status, tc.status)
			}
			if apiErr.Message != tc.msg {
				t.Fatalf("message: got %q want %q", apiErr.Message, tc.msg)
			}
		})
	}
}

func TestToAPIErrorKeepsInternalErrorsUntyped(t *testing.T) {
	internal := InternalError{Msg: "db down", Err: errors.New("dial tcp")}
	if _, ok := AsAPIError(ToAPIError(internal)); ok {
		t.Fatalf("internal errors must not become API errors")
	}
	plain := errors.New("boom")
	if got := ToAPIError(plain); got != plain {
		t.Fatalf("plain error changed: %v", got)
	}
	if ToAPIError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	if got := (&APIError{Status: 502}).Error(); got != "api error: status 502" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&APIError{Message: "Plata a eșuat."}).Error(); got != "Plata a eșuat." {
		t.Fatalf("unexpected message %q", got)
	}
}
