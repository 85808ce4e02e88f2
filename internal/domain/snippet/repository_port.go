// internal/domain/snippet/repository_port.go
package snippet

import "context"

// Ledger is the persistence port for the per-user membership partition.
//
// Join and Leave each pair the snippet write with the registry's member-count
// delta in one atomic batch: both land or neither does. The count itself is
// never read-modify-written at the client; only commutative increments are
// issued, so concurrent joins on the same community cannot lose updates.
type Ledger interface {
	// ListByUser returns every membership snippet for the user. Order carries
	// no meaning.
	ListByUser(ctx context.Context, userID string) ([]Snippet, error)

	// Join upserts the snippet under the user and increments the community's
	// member count by one, atomically.
	Join(ctx context.Context, userID string, s Snippet) (Snippet, error)

	// Leave deletes the snippet and decrements the member count by one,
	// atomically. The store does not verify the snippet exists; callers guard
	// against leave-of-non-member before issuing the batch.
	Leave(ctx context.Context, userID, communityID string) error
}
