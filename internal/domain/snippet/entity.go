// internal/domain/snippet/entity.go
package snippet

import (
	"errors"
	"strings"
)

// Snippet is one per-user membership record, stored under
// users/{userId}/communitySnippets/{communityId}. Its existence is the sole
// authority for "user is a member of community"; the registry's member count
// is a derived aggregate.
type Snippet struct {
	CommunityID string `json:"communityId" firestore:"communityId"`
	IsModerator bool   `json:"isModerator" firestore:"isModerator"`
	ImageURL    string `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
}

// Errors (single source)
var (
	ErrInvalidUserID      = errors.New("snippet: invalid user id")
	ErrInvalidCommunityID = errors.New("snippet: invalid community id")
	ErrNotFound           = errors.New("snippet: not found")
	ErrNotMember          = errors.New("snippet: not a member")
	ErrAlreadyMember      = errors.New("snippet: already a member")
)

// New constructs a Snippet with validation.
func New(communityID string, isModerator bool, imageURL string) (Snippet, error) {
	if strings.TrimSpace(communityID) == "" {
		return Snippet{}, ErrInvalidCommunityID
	}
	return Snippet{
		CommunityID: communityID,
		IsModerator: isModerator,
		ImageURL:    imageURL,
	}, nil
}
