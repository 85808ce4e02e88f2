// internal/adapters/out/firestore/community_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	fscommon "huddle/internal/adapters/out/firestore/common"
	comdom "huddle/internal/domain/community"
	snipdom "huddle/internal/domain/snippet"
)

const (
	communitiesCollection = "communities"
	usersCollection       = "users"
	snippetsCollection    = "communitySnippets"
)

// CommunityRepositoryFS is a Firestore-based implementation of
// community.Repository. Uses the "communities" collection; the community name
// is the document ID.
type CommunityRepositoryFS struct {
	Client *firestore.Client
}

func NewCommunityRepositoryFS(client *firestore.Client) *CommunityRepositoryFS {
	return &CommunityRepositoryFS{Client: client}
}

func (r *CommunityRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(communitiesCollection)
}

func (r *CommunityRepositoryFS) snippetDoc(userID, communityID string) *firestore.DocumentRef {
	return r.Client.Collection(usersCollection).Doc(userID).Collection(snippetsCollection).Doc(communityID)
}

// Compile-time check
var _ comdom.Repository = (*CommunityRepositoryFS)(nil)

// ========================
// Queries
// ========================

func (r *CommunityRepositoryFS) GetByID(ctx context.Context, id string) (comdom.Community, error) {
	if r.Client == nil {
		return comdom.Community{}, errors.New("firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return comdom.Community{}, comdom.ErrNotFound
	}

	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if fscommon.IsNotFound(err) {
			return comdom.Community{}, comdom.ErrNotFound
		}
		return comdom.Community{}, err
	}

	var c comdom.Community
	if err := doc.DataTo(&c); err != nil {
		return comdom.Community{}, err
	}
	c.ID = doc.Ref.ID
	return c, nil
}

func (r *CommunityRepositoryFS) TopByMembers(ctx context.Context, limit int) ([]comdom.Community, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	if limit <= 0 {
		return nil, nil
	}

	q := r.col().OrderBy("numberOfMembers", firestore.Desc).Limit(limit)
	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]comdom.Community, 0, limit)
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var c comdom.Community
		if err := doc.DataTo(&c); err != nil {
			return nil, err
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

// ========================
// Commands
// ========================

// CreateWithFounder runs the name-uniqueness check and both creating writes in
// one transaction. First committer wins; a racing creator of the same name
// observes the existing document and fails with ErrAlreadyExists.
//
// The serverTimestamp createdAt only exists after commit, so it is fetched
// with a follow-up read. When that read (or decode) fails the commit has
// already happened, so this returns success with a zero CreatedAt instead of
// an error; the stored document is intact either way.
func (r *CommunityRepositoryFS) CreateWithFounder(ctx context.Context, c comdom.Community) (comdom.Community, error) {
	if r.Client == nil {
		return comdom.Community{}, errors.New("firestore client is nil")
	}
	if err := comdom.ValidateName(c.ID); err != nil {
		return comdom.Community{}, err
	}
	creatorID := strings.TrimSpace(c.CreatorID)
	if creatorID == "" {
		return comdom.Community{}, comdom.ErrInvalidCreator
	}

	ref := r.col().Doc(c.ID)

	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil && !fscommon.IsNotFound(err) {
			return err
		}
		if snap != nil && snap.Exists() {
			return comdom.ErrAlreadyExists
		}

		if err := tx.Set(ref, c); err != nil {
			return err
		}

		founder := snipdom.Snippet{
			CommunityID: c.ID,
			IsModerator: true,
			ImageURL:    c.ImageURL,
		}
		return tx.Set(r.snippetDoc(creatorID, c.ID), founder)
	})
	if err != nil {
		return comdom.Community{}, err
	}

	// Pick up the server-assigned createdAt.
	snap, err := ref.Get(ctx)
	if err != nil {
		log.Printf("[community_repo_fs] created id=%s but readback failed: %v", c.ID, err)
		return c, nil
	}
	var out comdom.Community
	if err := snap.DataTo(&out); err != nil {
		log.Printf("[community_repo_fs] created id=%s but readback decode failed: %v", c.ID, err)
		return c, nil
	}
	out.ID = snap.Ref.ID

	log.Printf("[community_repo_fs] created id=%s creator=%s privacy=%s", out.ID, creatorID, out.PrivacyType)
	return out, nil
}
