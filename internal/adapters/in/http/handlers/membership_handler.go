// internal/adapters/in/http/handlers/membership_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"huddle/internal/adapters/in/http/middleware"
	usecase "huddle/internal/application/usecase"
	snipdom "huddle/internal/domain/snippet"
)

// MembershipHandler serves the signed-in user's own membership view.
type MembershipHandler struct {
	membershipUC *usecase.MembershipUsecase
}

func NewMembershipHandler(membershipUC *usecase.MembershipUsecase) http.Handler {
	return &MembershipHandler{membershipUC: membershipUC}
}

func (h *MembershipHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.TrimRight(r.URL.Path, "/") == "/me/communities":
		h.list(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	}
}

// GET /me/communities
//
// The first call in a session loads the view from the store; afterwards the
// cached view is served, kept current by the join/leave paths.
func (h *MembershipHandler) list(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	var (
		snippets []snipdom.Snippet
		err      error
	)
	if sess.SnippetsFetched() {
		snippets = sess.Snippets()
	} else {
		snippets, err = h.membershipUC.LoadMemberships(r.Context(), sess)
		if err != nil {
			writeErr(w, err)
			return
		}
	}

	if snippets == nil {
		snippets = []snipdom.Snippet{}
	}
	_ = json.NewEncoder(w).Encode(snippets)
}
