// internal/adapters/out/firestore/post_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	postdom "huddle/internal/domain/post"
)

const postsCollection = "posts"

// PostRepositoryFS is a Firestore-based implementation of post.Repository.
// Uses the "posts" collection with store-assigned document IDs.
type PostRepositoryFS struct {
	Client *firestore.Client
}

func NewPostRepositoryFS(client *firestore.Client) *PostRepositoryFS {
	return &PostRepositoryFS{Client: client}
}

func (r *PostRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(postsCollection)
}

// Compile-time check
var _ postdom.Repository = (*PostRepositoryFS)(nil)

// Create writes the post under a fresh document ID. Like CreateWithFounder,
// the returned CreatedAt comes from a post-write readback and may be zero if
// that readback fails; the stored document always carries the server
// timestamp.
func (r *PostRepositoryFS) Create(ctx context.Context, p postdom.Post) (postdom.Post, error) {
	if r.Client == nil {
		return postdom.Post{}, errors.New("firestore client is nil")
	}
	if strings.TrimSpace(p.CommunityID) == "" {
		return postdom.Post{}, postdom.ErrInvalidCommunityID
	}

	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, p); err != nil {
		return postdom.Post{}, err
	}
	p.ID = ref.ID

	snap, err := ref.Get(ctx)
	if err != nil {
		log.Printf("[post_repo_fs] created id=%s but readback failed: %v", ref.ID, err)
		return p, nil
	}
	var out postdom.Post
	if err := snap.DataTo(&out); err != nil {
		log.Printf("[post_repo_fs] created id=%s but readback decode failed: %v", ref.ID, err)
		return p, nil
	}
	out.ID = snap.Ref.ID

	log.Printf("[post_repo_fs] created id=%s community=%s creator=%s", out.ID, out.CommunityID, out.CreatorID)
	return out, nil
}

func (r *PostRepositoryFS) ListByCommunity(ctx context.Context, communityID string, limit int) ([]postdom.Post, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	communityID = strings.TrimSpace(communityID)
	if communityID == "" {
		return nil, postdom.ErrInvalidCommunityID
	}
	if limit <= 0 {
		return nil, nil
	}

	q := r.col().
		Where("communityId", "==", communityID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]postdom.Post, 0, limit)
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var p postdom.Post
		if err := doc.DataTo(&p); err != nil {
			return nil, err
		}
		p.ID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}
