// internal/adapters/out/firestore/snippet_ledger_fs.go
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

// SnippetLedgerFS is a Firestore-based implementation of snippet.Ledger over
// the users/{userId}/communitySnippets subcollection.
//
// Join and Leave pair the snippet write with the member-count delta in one
// write batch. The count delta uses firestore.Increment, never a client-side
// read-modify-write, so concurrent joins commute. The count stays a derived
// aggregate: it is not reconciled against the actual snippet set, and can
// drift within the blast radius of operations issued outside this ledger.
type SnippetLedgerFS struct {
	Client *firestore.Client
}

func NewSnippetLedgerFS(client *firestore.Client) *SnippetLedgerFS {
	return &SnippetLedgerFS{Client: client}
}

func (r *SnippetLedgerFS) userCol(userID string) *firestore.CollectionRef {
	return r.Client.Collection(usersCollection).Doc(userID).Collection(snippetsCollection)
}

func (r *SnippetLedgerFS) communityDoc(communityID string) *firestore.DocumentRef {
	return r.Client.Collection(communitiesCollection).Doc(communityID)
}

// Compile-time check
var _ snipdom.Ledger = (*SnippetLedgerFS)(nil)

// ========================
// Queries
// ========================

func (r *SnippetLedgerFS) ListByUser(ctx context.Context, userID string) ([]snipdom.Snippet, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, snipdom.ErrInvalidUserID
	}

	it := r.userCol(userID).Documents(ctx)
	defer it.Stop()

	var out []snipdom.Snippet
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var s snipdom.Snippet
		if err := doc.DataTo(&s); err != nil {
			return nil, err
		}
		if s.CommunityID == "" {
			s.CommunityID = doc.Ref.ID
		}
		out = append(out, s)
	}
	return out, nil
}

// ========================
// Commands
// ========================

func (r *SnippetLedgerFS) Join(ctx context.Context, userID string, s snipdom.Snippet) (snipdom.Snippet, error) {
	if r.Client == nil {
		return snipdom.Snippet{}, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return snipdom.Snippet{}, snipdom.ErrInvalidUserID
	}
	if strings.TrimSpace(s.CommunityID) == "" {
		return snipdom.Snippet{}, snipdom.ErrInvalidCommunityID
	}

	batch := r.Client.Batch()
	batch.Set(r.userCol(userID).Doc(s.CommunityID), s)
	batch.Update(r.communityDoc(s.CommunityID), []firestore.Update{
		{Path: "numberOfMembers", Value: firestore.Increment(1)},
	})

	if _, err := batch.Commit(ctx); err != nil {
		// Update on a missing community document fails the whole batch,
		// so the snippet write is discarded with it.
		if fscommon.IsNotFound(err) {
			return snipdom.Snippet{}, comdom.ErrNotFound
		}
		return snipdom.Snippet{}, err
	}

	log.Printf("[snippet_ledger_fs] join user=%s community=%s moderator=%t", userID, s.CommunityID, s.IsModerator)
	return s, nil
}

func (r *SnippetLedgerFS) Leave(ctx context.Context, userID, communityID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	communityID = strings.TrimSpace(communityID)
	if userID == "" {
		return snipdom.ErrInvalidUserID
	}
	if communityID == "" {
		return snipdom.ErrInvalidCommunityID
	}

	batch := r.Client.Batch()
	batch.Delete(r.userCol(userID).Doc(communityID))
	batch.Update(r.communityDoc(communityID), []firestore.Update{
		{Path: "numberOfMembers", Value: firestore.Increment(-1)},
	})

	if _, err := batch.Commit(ctx); err != nil {
		if fscommon.IsNotFound(err) {
			return comdom.ErrNotFound
		}
		return err
	}

	log.Printf("[snippet_ledger_fs] leave user=%s community=%s", userID, communityID)
	return nil
}
