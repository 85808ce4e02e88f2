// internal/domain/post/entity.go
package post

import (
	"errors"
	"strings"
	"time"
)

// MaxTitleLen bounds post titles.
const MaxTitleLen = 300

// Post is one submission in a community, stored in the "posts" collection
// under a store-assigned ID.
type Post struct {
	ID                 string    `json:"id" firestore:"-"`
	CommunityID        string    `json:"communityId" firestore:"communityId"`
	CommunityImageURL  string    `json:"communityImageURL,omitempty" firestore:"communityImageURL,omitempty"`
	CreatorID          string    `json:"creatorId" firestore:"creatorId"`
	CreatorDisplayName string    `json:"creatorDisplayName" firestore:"creatorDisplayName"`
	Title              string    `json:"title" firestore:"title"`
	Body               string    `json:"body" firestore:"body"`
	NumberOfComments   int64     `json:"numberOfComments" firestore:"numberOfComments"`
	VoteStatus         int64     `json:"voteStatus" firestore:"voteStatus"`
	CreatedAt          time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// Errors (single source)
var (
	ErrInvalidTitle       = errors.New("post: invalid title")
	ErrInvalidCommunityID = errors.New("post: invalid community id")
	ErrInvalidCreator     = errors.New("post: invalid creator id")
	ErrNotFound           = errors.New("post: not found")
)

// New constructs a Post with validation. Comment and vote counters start at
// zero; CreatedAt is left to the store.
func New(communityID, creatorID, displayName, title, body string) (Post, error) {
	if strings.TrimSpace(communityID) == "" {
		return Post{}, ErrInvalidCommunityID
	}
	if strings.TrimSpace(creatorID) == "" {
		return Post{}, ErrInvalidCreator
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLen {
		return Post{}, ErrInvalidTitle
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = creatorID
	}
	return Post{
		CommunityID:        communityID,
		CreatorID:          creatorID,
		CreatorDisplayName: displayName,
		Title:              title,
		Body:               body,
	}, nil
}
