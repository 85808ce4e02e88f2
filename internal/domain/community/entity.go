// internal/domain/community/entity.go
package community

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// nameRe accepts letters, digits and underscore only. The name doubles as the
// document ID, is case-sensitive and immutable once created.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// PrivacyType classifies who can view and post in a community.
type PrivacyType string

const (
	PrivacyPublic     PrivacyType = "public"
	PrivacyRestricted PrivacyType = "restricted"
	PrivacyPrivate    PrivacyType = "private"
)

// Community is the registry entity. The ID is the community name chosen at
// creation time. NumberOfMembers is a derived aggregate maintained by atomic
// increments; the per-user snippet records are the source of truth for
// membership (see snippet package).
type Community struct {
	ID              string      `json:"id" firestore:"-"`
	CreatorID       string      `json:"creatorId" firestore:"creatorId"`
	CreatedAt       time.Time   `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	NumberOfMembers int64       `json:"numberOfMembers" firestore:"numberOfMembers"`
	PrivacyType     PrivacyType `json:"privacyType" firestore:"privacyType"`
	ImageURL        string      `json:"imageURL,omitempty" firestore:"imageURL,omitempty"`
}

// Errors (single source)
var (
	ErrInvalidName    = errors.New("community: invalid name")
	ErrInvalidPrivacy = errors.New("community: invalid privacy type")
	ErrInvalidCreator = errors.New("community: invalid creator id")
	ErrNotFound       = errors.New("community: not found")
	ErrAlreadyExists  = errors.New("community: name already taken")
)

// ValidateName reports whether name may be used as a community ID.
// Names are 3-21 characters of letters, digits and underscore.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// ParsePrivacy validates a privacy string coming in over the wire.
// Empty input defaults to public, matching the creation form default.
func ParsePrivacy(s string) (PrivacyType, error) {
	switch PrivacyType(strings.TrimSpace(s)) {
	case "":
		return PrivacyPublic, nil
	case PrivacyPublic:
		return PrivacyPublic, nil
	case PrivacyRestricted:
		return PrivacyRestricted, nil
	case PrivacyPrivate:
		return PrivacyPrivate, nil
	default:
		return "", ErrInvalidPrivacy
	}
}

// New constructs a Community with validation. CreatedAt is left zero; the
// store assigns the server timestamp on write.
func New(name, creatorID string, privacy PrivacyType) (Community, error) {
	if err := ValidateName(name); err != nil {
		return Community{}, err
	}
	if strings.TrimSpace(creatorID) == "" {
		return Community{}, ErrInvalidCreator
	}
	if _, err := ParsePrivacy(string(privacy)); err != nil {
		return Community{}, err
	}
	return Community{
		ID:              name,
		CreatorID:       creatorID,
		NumberOfMembers: 1,
		PrivacyType:     privacy,
	}, nil
}
