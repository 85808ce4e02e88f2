// internal/application/usecase/membership_usecase.go
package usecase

import (
	"context"
	"strings"

	comdom "huddle/internal/domain/community"
	snipdom "huddle/internal/domain/snippet"
)

// MembershipUsecase performs join/leave mutations and keeps the session's
// cached membership view mirroring the store.
type MembershipUsecase struct {
	ledger      snipdom.Ledger
	communities comdom.Repository
}

func NewMembershipUsecase(ledger snipdom.Ledger, communities comdom.Repository) *MembershipUsecase {
	return &MembershipUsecase{ledger: ledger, communities: communities}
}

// Commands

// Join adds the user to the community: one atomic batch writes the snippet
// and increments the member count, then the session view gains the snippet.
// The moderator flag is granted only to the community's creator.
func (u *MembershipUsecase) Join(ctx context.Context, sess *Session, c comdom.Community) (snipdom.Snippet, error) {
	if !sess.Authenticated() {
		return snipdom.Snippet{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(c.ID) == "" {
		return snipdom.Snippet{}, snipdom.ErrInvalidCommunityID
	}
	if err := u.ensureView(ctx, sess); err != nil {
		return snipdom.Snippet{}, err
	}
	if sess.IsJoined(c.ID) {
		return snipdom.Snippet{}, snipdom.ErrAlreadyMember
	}

	s := snipdom.Snippet{
		CommunityID: c.ID,
		IsModerator: sess.UserID() == c.CreatorID,
		ImageURL:    c.ImageURL,
	}

	joined, err := u.ledger.Join(ctx, sess.UserID(), s)
	if err != nil {
		return snipdom.Snippet{}, err
	}

	sess.appendSnippet(joined)
	return joined, nil
}

// Leave removes the user from the community: one atomic batch deletes the
// snippet and decrements the member count, then the session view drops the
// snippet. The not-a-member guard consults the cached view only; it keeps a
// stray leave from decrementing the count below the true membership, but is
// advisory, not enforced transactionally against the store.
func (u *MembershipUsecase) Leave(ctx context.Context, sess *Session, communityID string) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	communityID = strings.TrimSpace(communityID)
	if communityID == "" {
		return snipdom.ErrInvalidCommunityID
	}
	if err := u.ensureView(ctx, sess); err != nil {
		return err
	}
	if !sess.IsJoined(communityID) {
		return snipdom.ErrNotMember
	}

	if err := u.ledger.Leave(ctx, sess.UserID(), communityID); err != nil {
		return err
	}

	sess.removeSnippet(communityID)
	return nil
}

// JoinOrLeave is the toggle dispatch: leave when currently joined, join
// otherwise. Pure routing; there is no transient "joining" state.
func (u *MembershipUsecase) JoinOrLeave(ctx context.Context, sess *Session, c comdom.Community, isJoined bool) error {
	if isJoined {
		return u.Leave(ctx, sess, c.ID)
	}
	_, err := u.Join(ctx, sess, c)
	return err
}

// ensureView loads the membership view once per session so the advisory
// joined/not-joined guards have something real to consult.
func (u *MembershipUsecase) ensureView(ctx context.Context, sess *Session) error {
	if sess.SnippetsFetched() {
		return nil
	}
	_, err := u.LoadMemberships(ctx, sess)
	return err
}

// Queries

// LoadMemberships fetches the user's snippets and replaces the session view
// wholesale. Runs at session start and on identity change; incremental
// updates cover everything in between.
func (u *MembershipUsecase) LoadMemberships(ctx context.Context, sess *Session) ([]snipdom.Snippet, error) {
	if !sess.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	snippets, err := u.ledger.ListByUser(ctx, sess.UserID())
	if err != nil {
		return nil, err
	}

	sess.replaceSnippets(snippets)
	return sess.Snippets(), nil
}

// LoadCommunity returns a community, reading through the session cache.
// A community already seen this session is not re-fetched; the staleness
// window on numberOfMembers/privacyType is accepted.
func (u *MembershipUsecase) LoadCommunity(ctx context.Context, sess *Session, id string) (comdom.Community, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return comdom.Community{}, comdom.ErrNotFound
	}

	if sess != nil {
		if c, ok := sess.Community(id); ok {
			return c, nil
		}
	}

	c, err := u.communities.GetByID(ctx, id)
	if err != nil {
		return comdom.Community{}, err
	}

	if sess != nil {
		sess.rememberCommunity(c)
	}
	return c, nil
}
