// internal/domain/community/repository_port.go
package community

import "context"

// Repository is the persistence port for the community registry.
type Repository interface {
	// GetByID returns the community document or ErrNotFound.
	GetByID(ctx context.Context, id string) (Community, error)

	// CreateWithFounder writes the community and the creator's own membership
	// snippet (isModerator=true) inside one transaction. The existence check
	// on the community ID and both writes are a single atomic unit; if the ID
	// is already taken the transaction aborts with ErrAlreadyExists and
	// nothing is written.
	//
	// On success the returned Community carries the store-assigned CreatedAt
	// when the implementation can read it back. If that readback fails after
	// the commit, the creation still succeeded and the returned CreatedAt is
	// the zero time; callers needing the timestamp can GetByID later.
	CreateWithFounder(ctx context.Context, c Community) (Community, error)

	// TopByMembers returns up to limit communities ordered by member count
	// descending. Read-only; no coupling to the mutation paths.
	TopByMembers(ctx context.Context, limit int) ([]Community, error)
}
