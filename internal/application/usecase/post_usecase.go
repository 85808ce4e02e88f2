// internal/application/usecase/post_usecase.go
package usecase

import (
	"context"
	"strings"

	comdom "huddle/internal/domain/community"
	postdom "huddle/internal/domain/post"
)

// DefaultPostFeed is the listing limit used when callers do not ask for one.
const DefaultPostFeed = 10

// PostUsecase creates and lists posts within a community.
type PostUsecase struct {
	posts       postdom.Repository
	communities comdom.Repository
}

func NewPostUsecase(posts postdom.Repository, communities comdom.Repository) *PostUsecase {
	return &PostUsecase{posts: posts, communities: communities}
}

// Commands

// Create validates the post, confirms the community exists, and writes the
// post with the community's image carried along for display. displayName may
// be empty; the creator's ID then stands in.
func (u *PostUsecase) Create(ctx context.Context, sess *Session, communityID, displayName, title, body string) (postdom.Post, error) {
	if !sess.Authenticated() {
		return postdom.Post{}, ErrNotAuthenticated
	}

	p, err := postdom.New(communityID, sess.UserID(), displayName, title, body)
	if err != nil {
		return postdom.Post{}, err
	}

	c, err := u.communities.GetByID(ctx, p.CommunityID)
	if err != nil {
		return postdom.Post{}, err
	}
	p.CommunityImageURL = c.ImageURL

	return u.posts.Create(ctx, p)
}

// Queries

func (u *PostUsecase) ListByCommunity(ctx context.Context, communityID string, limit int) ([]postdom.Post, error) {
	if limit <= 0 {
		limit = DefaultPostFeed
	}
	return u.posts.ListByCommunity(ctx, strings.TrimSpace(communityID), limit)
}
