package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// body is the JSON error payload sent to API clients.
type body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write renders err as a JSON error response. Errors implementing APIError
// keep their status code and kind; anything else becomes a generic 500 so
// internal details never leak into response bodies.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var apiErr APIError
	if !errors.As(err, &apiErr) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(body{Error: "internal", Message: "Internal Server Error"})
		return
	}

	w.WriteHeader(apiErr.Status())
	_ = json.NewEncoder(w).Encode(body{Error: apiErr.Kind(), Message: apiErr.Error()})
}
