package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusAndKind(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")

	tests := []struct {
		name       string
		err        APIError
		wantStatus int
		wantKind   string
	}{
		{"value not unique", NewValueNotUniqueError("User", cause), http.StatusConflict, "value_not_unique"},
		{"integrity violation", NewIntegrityViolationError(cause), http.StatusBadRequest, "integrity_violation"},
		{"database error", NewDatabaseError(cause), http.StatusInternalServerError, "database_error"},
		{"bad request", NewBadRequestError("invalid payload"), http.StatusBadRequest, "bad_request"},
		{"unauthorized", NewUnauthorizedError("missing token"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", NewForbiddenError("not yours"), http.StatusForbidden, "forbidden"},
		{"not found", NewNotFoundError("article"), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Status(); got != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, got)
			}
			if got := tt.err.Kind(); got != tt.wantKind {
				t.Fatalf("expected kind %q, got %q", tt.wantKind, got)
			}
		})
	}
}

func TestValueNotUniqueErrorMessage(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.username")
	err := NewValueNotUniqueError("User", cause)

	want := "cannot create `User`, value already in use [UNIQUE constraint failed: users.username]"
	if err.Error() != want {
		t.Fatalf("unexpected message:\nwant %q\ngot  %q", want, err.Error())
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("driver failure")

	for _, err := range []error{
		NewValueNotUniqueError("User", cause),
		NewIntegrityViolationError(cause),
		NewDatabaseError(cause),
	} {
		if !errors.Is(err, cause) {
			t.Fatalf("%T does not unwrap to its cause", err)
		}
	}
}

func TestWriteAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, NewNotFoundError("article"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if payload["error"] != "not_found" || payload["message"] != "article not found" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestWriteWrappedAPIError(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, fmt.Errorf("loading article: %w", NewValueNotUniqueError("Article", errors.New("dup"))))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected wrapped APIError to keep its status, got %d", rr.Code)
	}
}

func TestWriteUnknownError(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, errors.New("something exploded"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if payload["message"] == "something exploded" {
		t.Fatal("internal error message leaked into the response body")
	}
}
