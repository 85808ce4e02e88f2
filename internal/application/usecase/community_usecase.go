// internal/application/usecase/community_usecase.go
package usecase

import (
	"context"
	"strings"

	comdom "huddle/internal/domain/community"
	snipdom "huddle/internal/domain/snippet"
)

// CommunityUsecase orchestrates community creation and lookup.
type CommunityUsecase struct {
	repo comdom.Repository
}

func NewCommunityUsecase(repo comdom.Repository) *CommunityUsecase {
	return &CommunityUsecase{repo: repo}
}

// Commands

// Create validates the requested name, then creates the community together
// with the creator's own moderator snippet in a single store transaction.
// Validation failures never reach the store. A lost name race surfaces as
// community.ErrAlreadyExists with no partial writes.
func (u *CommunityUsecase) Create(ctx context.Context, sess *Session, name string, privacy string) (comdom.Community, error) {
	if !sess.Authenticated() {
		return comdom.Community{}, ErrNotAuthenticated
	}

	pt, err := comdom.ParsePrivacy(privacy)
	if err != nil {
		return comdom.Community{}, err
	}

	c, err := comdom.New(name, sess.UserID(), pt)
	if err != nil {
		return comdom.Community{}, err
	}

	created, err := u.repo.CreateWithFounder(ctx, c)
	if err != nil {
		return comdom.Community{}, err
	}

	// Mirror the store only after it acknowledged the transaction.
	sess.appendSnippet(snipdom.Snippet{
		CommunityID: created.ID,
		IsModerator: true,
		ImageURL:    created.ImageURL,
	})
	sess.rememberCommunity(created)

	return created, nil
}

// Queries

func (u *CommunityUsecase) GetByID(ctx context.Context, id string) (comdom.Community, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}
