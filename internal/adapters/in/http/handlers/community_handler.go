// internal/adapters/in/http/handlers/community_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"huddle/internal/adapters/in/http/middleware"
	usecase "huddle/internal/application/usecase"
	postdom "huddle/internal/domain/post"
)

// CommunityHandler serves /communities endpoints: creation, lookup, the
// top-N listing, the join/leave/toggle membership actions, and the posts
// sub-resource.
type CommunityHandler struct {
	communityUC      *usecase.CommunityUsecase
	membershipUC     *usecase.MembershipUsecase
	recommendationUC *usecase.RecommendationUsecase
	postUC           *usecase.PostUsecase
}

func NewCommunityHandler(
	communityUC *usecase.CommunityUsecase,
	membershipUC *usecase.MembershipUsecase,
	recommendationUC *usecase.RecommendationUsecase,
	postUC *usecase.PostUsecase,
) http.Handler {
	return &CommunityHandler{
		communityUC:      communityUC,
		membershipUC:     membershipUC,
		recommendationUC: recommendationUC,
		postUC:           postUC,
	}
}

func (h *CommunityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/communities"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case r.Method == http.MethodPost && rest == "":
		h.create(w, r)
	case r.Method == http.MethodGet && rest == "":
		h.top(w, r)
	case r.Method == http.MethodGet && len(parts) == 1:
		h.get(w, r, parts[0])
	case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "join":
		h.join(w, r, parts[0])
	case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "leave":
		h.leave(w, r, parts[0])
	case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "toggle":
		h.toggle(w, r, parts[0])
	case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "posts":
		h.createPost(w, r, parts[0])
	case r.Method == http.MethodGet && len(parts) == 2 && parts[1] == "posts":
		h.listPosts(w, r, parts[0])
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	}
}

// POST /communities
func (h *CommunityHandler) create(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	var req struct {
		Name        string `json:"name"`
		PrivacyType string `json:"privacyType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid json"})
		return
	}

	c, err := h.communityUC.Create(r.Context(), sess, req.Name, req.PrivacyType)
	if err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /communities/{id}
func (h *CommunityHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := middleware.SessionFromContext(r.Context())

	c, err := h.membershipUC.LoadCommunity(r.Context(), sess, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(c)
}

// GET /communities?limit=N
func (h *CommunityHandler) top(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	out, err := h.recommendationUC.TopCommunities(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// POST /communities/{id}/posts
func (h *CommunityHandler) createPost(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid json"})
		return
	}

	p, err := h.postUC.Create(r.Context(), sess, id, displayName(r), req.Title, req.Body)
	if err != nil {
		writeErr(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// GET /communities/{id}/posts?limit=N
func (h *CommunityHandler) listPosts(w http.ResponseWriter, r *http.Request, id string) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	out, err := h.postUC.ListByCommunity(r.Context(), id, limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	if out == nil {
		out = []postdom.Post{}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// displayName derives the author's display name from the verified email
// claim, localpart only. Falls back to the uid downstream when no email claim
// was present.
func displayName(r *http.Request) string {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		return ""
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// POST /communities/{id}/join
func (h *CommunityHandler) join(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	c, err := h.membershipUC.LoadCommunity(r.Context(), sess, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	s, err := h.membershipUC.Join(r.Context(), sess, c)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(s)
}

// POST /communities/{id}/leave
func (h *CommunityHandler) leave(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	if err := h.membershipUC.Leave(r.Context(), sess, id); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"left": true})
}

// POST /communities/{id}/toggle
func (h *CommunityHandler) toggle(w http.ResponseWriter, r *http.Request, id string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeErr(w, usecase.ErrNotAuthenticated)
		return
	}

	var req struct {
		IsJoined bool `json:"isJoined"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid json"})
		return
	}

	c, err := h.membershipUC.LoadCommunity(r.Context(), sess, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	if err := h.membershipUC.JoinOrLeave(r.Context(), sess, c, req.IsJoined); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"joined": !req.IsJoined})
}
