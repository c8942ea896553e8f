package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// uuidVar extracts a path variable and validates it as a UUID
func uuidVar(r *http.Request, name string) (string, error) {
	raw := mux.Vars(r)[name]
	if _, err := uuid.Parse(raw); err != nil {
		return "", NewInvalidRequestError(name + " must be a valid UUID")
	}
	return raw, nil
}
