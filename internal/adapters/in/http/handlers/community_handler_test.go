package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/adapters/in/http/middleware"
	usecase "huddle/internal/application/usecase"
	comdom "huddle/internal/domain/community"
	postdom "huddle/internal/domain/post"
	snipdom "huddle/internal/domain/snippet"
)

// stubStore backs the handler tests with just enough of the three ports.
type stubStore struct {
	mu          sync.Mutex
	communities map[string]comdom.Community
	snippets    map[string]map[string]snipdom.Snippet
	posts       []postdom.Post
}

func newStubStore() *stubStore {
	return &stubStore{
		communities: make(map[string]comdom.Community),
		snippets:    make(map[string]map[string]snipdom.Snippet),
	}
}

func (s *stubStore) GetByID(_ context.Context, id string) (comdom.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.communities[id]
	if !ok {
		return comdom.Community{}, comdom.ErrNotFound
	}
	return c, nil
}

func (s *stubStore) CreateWithFounder(_ context.Context, c comdom.Community) (comdom.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.communities[c.ID]; ok {
		return comdom.Community{}, comdom.ErrAlreadyExists
	}
	c.CreatedAt = time.Now().UTC()
	s.communities[c.ID] = c
	s.put(c.CreatorID, snipdom.Snippet{CommunityID: c.ID, IsModerator: true})
	return c, nil
}

func (s *stubStore) TopByMembers(_ context.Context, limit int) ([]comdom.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []comdom.Community
	for _, c := range s.communities {
		out = append(out, c)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) ListByUser(_ context.Context, userID string) ([]snipdom.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []snipdom.Snippet
	for _, sn := range s.snippets[userID] {
		out = append(out, sn)
	}
	return out, nil
}

func (s *stubStore) Join(_ context.Context, userID string, sn snipdom.Snippet) (snipdom.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.communities[sn.CommunityID]
	if !ok {
		return snipdom.Snippet{}, comdom.ErrNotFound
	}
	s.put(userID, sn)
	c.NumberOfMembers++
	s.communities[sn.CommunityID] = c
	return sn, nil
}

func (s *stubStore) Leave(_ context.Context, userID, communityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.communities[communityID]
	if !ok {
		return comdom.ErrNotFound
	}
	delete(s.snippets[userID], communityID)
	c.NumberOfMembers--
	s.communities[communityID] = c
	return nil
}

func (s *stubStore) Create(_ context.Context, p postdom.Post) (postdom.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = "p1"
	p.CreatedAt = time.Now().UTC()
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *stubStore) ListByCommunity(_ context.Context, communityID string, limit int) ([]postdom.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []postdom.Post
	for i := len(s.posts) - 1; i >= 0 && len(out) < limit; i-- {
		if s.posts[i].CommunityID == communityID {
			out = append(out, s.posts[i])
		}
	}
	return out, nil
}

func (s *stubStore) put(userID string, sn snipdom.Snippet) {
	if s.snippets[userID] == nil {
		s.snippets[userID] = make(map[string]snipdom.Snippet)
	}
	s.snippets[userID][sn.CommunityID] = sn
}

func newHandlerFixture() (*stubStore, http.Handler) {
	store := newStubStore()
	communityUC := usecase.NewCommunityUsecase(store)
	membershipUC := usecase.NewMembershipUsecase(store, store)
	recommendationUC := usecase.NewRecommendationUsecase(store)
	postUC := usecase.NewPostUsecase(store, store)
	return store, NewCommunityHandler(communityUC, membershipUC, recommendationUC, postUC)
}

func authed(r *http.Request, sess *usecase.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func TestCreateCommunityEndpoint(t *testing.T) {
	_, handler := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/communities",
		strings.NewReader(`{"name":"gophers","privacyType":"public"}`))
	req = authed(req, usecase.NewSession("u1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)

	var c comdom.Community
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	assert.Equal(t, "gophers", c.ID)
	assert.Equal(t, "u1", c.CreatorID)
	assert.Equal(t, int64(1), c.NumberOfMembers)
}

func TestCreateCommunityEndpointErrors(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["taken"] = comdom.Community{ID: "taken", NumberOfMembers: 1}

	cases := []struct {
		name string
		body string
		sess *usecase.Session
		want int
	}{
		{"unauthenticated", `{"name":"gophers"}`, nil, http.StatusUnauthorized},
		{"bad name", `{"name":"go phers"}`, usecase.NewSession("u1"), http.StatusBadRequest},
		{"bad privacy", `{"name":"gophers","privacyType":"hidden"}`, usecase.NewSession("u1"), http.StatusBadRequest},
		{"name taken", `{"name":"taken"}`, usecase.NewSession("u1"), http.StatusConflict},
		{"bad json", `{`, usecase.NewSession("u1"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/communities", strings.NewReader(tc.body))
			if tc.sess != nil {
				req = authed(req, tc.sess)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			assert.Equal(t, tc.want, resp.Code)
		})
	}
}

func TestJoinLeaveEndpoints(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", CreatorID: "u1", NumberOfMembers: 1}

	sess := usecase.NewSession("u2")

	req := authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/join", nil), sess)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(2), store.communities["gophers"].NumberOfMembers)

	// leaving when not a member conflicts
	other := usecase.NewSession("u3")
	req = authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/leave", nil), other)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusConflict, resp.Code)

	req = authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/leave", nil), sess)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(1), store.communities["gophers"].NumberOfMembers)

	// unknown community is a 404
	req = authed(httptest.NewRequest(http.MethodPost, "/communities/ghost/join", nil), sess)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestToggleEndpoint(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", CreatorID: "u1", NumberOfMembers: 1}

	sess := usecase.NewSession("u2")

	req := authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/toggle",
		strings.NewReader(`{"isJoined":false}`)), sess)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(2), store.communities["gophers"].NumberOfMembers)

	req = authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/toggle",
		strings.NewReader(`{"isJoined":true}`)), sess)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(1), store.communities["gophers"].NumberOfMembers)
}

func TestGetCommunityEndpoint(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", NumberOfMembers: 9}

	// anonymous read works
	req := httptest.NewRequest(http.MethodGet, "/communities/gophers", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var c comdom.Community
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&c))
	assert.Equal(t, int64(9), c.NumberOfMembers)

	req = httptest.NewRequest(http.MethodGet, "/communities/ghost", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreatePostEndpoint(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", NumberOfMembers: 1, ImageURL: "https://img/g.png"}

	req := authed(httptest.NewRequest(http.MethodPost, "/communities/gophers/posts",
		strings.NewReader(`{"title":"Generics in practice","body":"a body"}`)), usecase.NewSession("u1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	var p postdom.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "gophers", p.CommunityID)
	assert.Equal(t, "u1", p.CreatorID)
	assert.Equal(t, "u1", p.CreatorDisplayName, "no email claim, uid stands in")
	assert.Equal(t, "https://img/g.png", p.CommunityImageURL)
}

func TestCreatePostEndpointErrors(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", NumberOfMembers: 1}

	cases := []struct {
		name string
		path string
		body string
		sess *usecase.Session
		want int
	}{
		{"unauthenticated", "/communities/gophers/posts", `{"title":"t"}`, nil, http.StatusUnauthorized},
		{"empty title", "/communities/gophers/posts", `{"title":"  "}`, usecase.NewSession("u1"), http.StatusBadRequest},
		{"unknown community", "/communities/ghost/posts", `{"title":"t"}`, usecase.NewSession("u1"), http.StatusNotFound},
		{"bad json", "/communities/gophers/posts", `{`, usecase.NewSession("u1"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			if tc.sess != nil {
				req = authed(req, tc.sess)
			}
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)
			assert.Equal(t, tc.want, resp.Code)
		})
	}
}

func TestListPostsEndpoint(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["gophers"] = comdom.Community{ID: "gophers", NumberOfMembers: 1}
	store.posts = []postdom.Post{
		{ID: "p1", CommunityID: "gophers", Title: "first"},
		{ID: "p2", CommunityID: "gophers", Title: "second"},
	}

	// anonymous read works
	req := httptest.NewRequest(http.MethodGet, "/communities/gophers/posts", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var out []postdom.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "second", out[0].Title, "newest first")

	// no posts encodes as an empty array, not null
	store.posts = nil
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/communities/gophers/posts", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]\n", resp.Body.String())
}

func TestTopCommunitiesEndpoint(t *testing.T) {
	store, handler := newHandlerFixture()
	store.communities["a"] = comdom.Community{ID: "a", NumberOfMembers: 3}
	store.communities["b"] = comdom.Community{ID: "b", NumberOfMembers: 2}

	req := httptest.NewRequest(http.MethodGet, "/communities?limit=1", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var out []comdom.Community
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out, 1)

	req = httptest.NewRequest(http.MethodGet, "/communities?limit=x", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
