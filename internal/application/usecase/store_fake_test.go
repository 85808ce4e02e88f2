package usecase

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	comdom "huddle/internal/domain/community"
	postdom "huddle/internal/domain/post"
	snipdom "huddle/internal/domain/snippet"
)

// fakeStore is an in-memory stand-in for the Firestore adapters. One mutex
// plays the role of the store's transaction isolation: the existence check
// and both creating writes happen under it, and a join/leave applies both
// halves or, when a fault is injected, neither.
type fakeStore struct {
	mu          sync.Mutex
	communities map[string]comdom.Community
	snippets    map[string]map[string]snipdom.Snippet // userID -> communityID
	posts       []postdom.Post                        // insertion order, newest last

	failCreate error
	failJoin   error
	failLeave  error
	failList   error
	failPost   error

	writes int // store mutation attempts that reached the fake
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		communities: make(map[string]comdom.Community),
		snippets:    make(map[string]map[string]snipdom.Snippet),
	}
}

var (
	_ comdom.Repository  = (*fakeStore)(nil)
	_ snipdom.Ledger     = (*fakeStore)(nil)
	_ postdom.Repository = (*fakeStore)(nil)
)

func (f *fakeStore) GetByID(_ context.Context, id string) (comdom.Community, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.communities[id]
	if !ok {
		return comdom.Community{}, comdom.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) CreateWithFounder(_ context.Context, c comdom.Community) (comdom.Community, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	if f.failCreate != nil {
		return comdom.Community{}, f.failCreate
	}
	if _, ok := f.communities[c.ID]; ok {
		return comdom.Community{}, comdom.ErrAlreadyExists
	}

	c.CreatedAt = time.Now().UTC()
	f.communities[c.ID] = c
	f.putSnippet(c.CreatorID, snipdom.Snippet{
		CommunityID: c.ID,
		IsModerator: true,
		ImageURL:    c.ImageURL,
	})
	return c, nil
}

func (f *fakeStore) TopByMembers(_ context.Context, limit int) ([]comdom.Community, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]comdom.Community, 0, len(f.communities))
	for _, c := range f.communities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NumberOfMembers > out[j].NumberOfMembers
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]snipdom.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failList != nil {
		return nil, f.failList
	}
	var out []snipdom.Snippet
	for _, s := range f.snippets[userID] {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) Join(_ context.Context, userID string, s snipdom.Snippet) (snipdom.Snippet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	if f.failJoin != nil {
		return snipdom.Snippet{}, f.failJoin
	}
	c, ok := f.communities[s.CommunityID]
	if !ok {
		return snipdom.Snippet{}, comdom.ErrNotFound
	}

	f.putSnippet(userID, s)
	c.NumberOfMembers++
	f.communities[s.CommunityID] = c
	return s, nil
}

func (f *fakeStore) Leave(_ context.Context, userID, communityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	if f.failLeave != nil {
		return f.failLeave
	}
	c, ok := f.communities[communityID]
	if !ok {
		return comdom.ErrNotFound
	}

	delete(f.snippets[userID], communityID)
	c.NumberOfMembers--
	f.communities[communityID] = c
	return nil
}

func (f *fakeStore) Create(_ context.Context, p postdom.Post) (postdom.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++

	if f.failPost != nil {
		return postdom.Post{}, f.failPost
	}
	p.ID = "p" + strconv.Itoa(len(f.posts)+1)
	p.CreatedAt = time.Now().UTC()
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeStore) ListByCommunity(_ context.Context, communityID string, limit int) ([]postdom.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []postdom.Post
	for i := len(f.posts) - 1; i >= 0 && len(out) < limit; i-- {
		if f.posts[i].CommunityID == communityID {
			out = append(out, f.posts[i])
		}
	}
	return out, nil
}

func (f *fakeStore) putSnippet(userID string, s snipdom.Snippet) {
	if f.snippets[userID] == nil {
		f.snippets[userID] = make(map[string]snipdom.Snippet)
	}
	f.snippets[userID][s.CommunityID] = s
}

// test helpers

func (f *fakeStore) memberCount(id string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.communities[id].NumberOfMembers
}

func (f *fakeStore) hasSnippet(userID, communityID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.snippets[userID][communityID]
	return ok
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeStore) seed(id, creatorID string, members int64) {
	f.seedWithImage(id, creatorID, members, "")
}

func (f *fakeStore) seedWithImage(id, creatorID string, members int64, imageURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.communities[id] = comdom.Community{
		ID:              id,
		CreatorID:       creatorID,
		CreatedAt:       time.Now().UTC(),
		NumberOfMembers: members,
		PrivacyType:     comdom.PrivacyPublic,
		ImageURL:        imageURL,
	}
}
