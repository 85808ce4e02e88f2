// internal/domain/post/repository_port.go
package post

import "context"

// Repository is the persistence port for the posts collection.
type Repository interface {
	// Create writes the post under a store-assigned ID and returns it with
	// ID and server timestamp filled in.
	Create(ctx context.Context, p Post) (Post, error)

	// ListByCommunity returns up to limit posts for a community, newest
	// first.
	ListByCommunity(ctx context.Context, communityID string, limit int) ([]Post, error)
}
