// internal/adapters/in/http/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	fscommon "huddle/internal/adapters/out/firestore/common"
	usecase "huddle/internal/application/usecase"
	comdom "huddle/internal/domain/community"
	postdom "huddle/internal/domain/post"
	snipdom "huddle/internal/domain/snippet"
)

// writeErr maps domain sentinels onto HTTP status codes. Transient store
// failures all collapse to 503: callers get "retryable", not the cause.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, comdom.ErrInvalidName),
		errors.Is(err, comdom.ErrInvalidPrivacy),
		errors.Is(err, comdom.ErrInvalidCreator),
		errors.Is(err, snipdom.ErrInvalidUserID),
		errors.Is(err, snipdom.ErrInvalidCommunityID),
		errors.Is(err, postdom.ErrInvalidTitle),
		errors.Is(err, postdom.ErrInvalidCommunityID),
		errors.Is(err, postdom.ErrInvalidCreator):
		code = http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotAuthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, comdom.ErrNotFound),
		errors.Is(err, snipdom.ErrNotFound),
		errors.Is(err, postdom.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, comdom.ErrAlreadyExists),
		errors.Is(err, snipdom.ErrAlreadyMember),
		errors.Is(err, snipdom.ErrNotMember):
		code = http.StatusConflict
	case fscommon.IsTransient(err):
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
