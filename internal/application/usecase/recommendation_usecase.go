// internal/application/usecase/recommendation_usecase.go
package usecase

import (
	"context"

	comdom "huddle/internal/domain/community"
)

// DefaultTopCommunities is the limit used when callers do not ask for one.
const DefaultTopCommunities = 7

// TopReader defines the minimal read port needed by RecommendationUsecase.
type TopReader interface {
	TopByMembers(ctx context.Context, limit int) ([]comdom.Community, error)
}

// RecommendationUsecase serves the top-N communities by member count.
// Read-only and independent of the mutation paths: a failure here carries no
// state and cannot disturb create/join/leave.
type RecommendationUsecase struct {
	reader TopReader
}

func NewRecommendationUsecase(reader TopReader) *RecommendationUsecase {
	return &RecommendationUsecase{reader: reader}
}

func (u *RecommendationUsecase) TopCommunities(ctx context.Context, limit int) ([]comdom.Community, error) {
	if limit <= 0 {
		limit = DefaultTopCommunities
	}
	return u.reader.TopByMembers(ctx, limit)
}
