// internal/application/usecase/session.go
package usecase

import (
	"errors"
	"strings"
	"sync"

	comdom "huddle/internal/domain/community"
	snipdom "huddle/internal/domain/snippet"
)

var ErrNotAuthenticated = errors.New("usecase: not authenticated")

// Session holds one signed-in user's cached view of their membership
// snippets, plus communities looked up during the session.
//
// The snippet view mirrors the store: it is populated wholesale by
// LoadMemberships, then adjusted incrementally only after the store has
// acknowledged a join or leave. It is never mutated while a batch is in
// flight, so a concurrent reader sees either the full pre-state or the full
// post-state, never an intermediate.
type Session struct {
	userID string

	mu          sync.RWMutex
	snippets    []snipdom.Snippet
	fetched     bool
	communities map[string]comdom.Community
}

func NewSession(userID string) *Session {
	return &Session{
		userID:      strings.TrimSpace(userID),
		communities: make(map[string]comdom.Community),
	}
}

func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.userID
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.userID != ""
}

// Snippets returns a copy of the cached membership view.
func (s *Session) Snippets() []snipdom.Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]snipdom.Snippet, len(s.snippets))
	copy(out, s.snippets)
	return out
}

// SnippetsFetched reports whether LoadMemberships has run for this session.
func (s *Session) SnippetsFetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

// IsJoined reports whether the cached view contains a snippet for the
// community. Advisory only: it reflects the store as of the last
// acknowledged operation, not the store's live state.
func (s *Session) IsJoined(communityID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sn := range s.snippets {
		if sn.CommunityID == communityID {
			return true
		}
	}
	return false
}

// Community returns a community cached earlier in this session.
func (s *Session) Community(id string) (comdom.Community, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.communities[id]
	return c, ok
}

func (s *Session) replaceSnippets(snippets []snipdom.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snippets = append(s.snippets[:0:0], snippets...)
	s.fetched = true
}

func (s *Session) appendSnippet(sn snipdom.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snippets = append(s.snippets, sn)
}

func (s *Session) removeSnippet(communityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.snippets[:0]
	for _, sn := range s.snippets {
		if sn.CommunityID != communityID {
			kept = append(kept, sn)
		}
	}
	s.snippets = kept
}

func (s *Session) rememberCommunity(c comdom.Community) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.communities[c.ID] = c
}

// SessionRegistry tracks live sessions by user ID. Sign-in constructs a fresh
// session; a user switch gets its own fresh session rather than inheriting
// another identity's view, so stale-merge artifacts cannot survive.
type SessionRegistry struct {
	mu    sync.Mutex
	byUID map[string]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{byUID: make(map[string]*Session)}
}

// SignIn returns the session for uid, constructing it on first sight.
func (r *SessionRegistry) SignIn(uid string) *Session {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byUID[uid]; ok {
		return s
	}
	s := NewSession(uid)
	r.byUID[uid] = s
	return s
}

// SignOut tears the session down; the cached view goes with it.
func (r *SessionRegistry) SignOut(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUID, uid)
}
