// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"huddle/internal/adapters/in/http/handlers"
	"huddle/internal/adapters/in/http/middleware"
	usecase "huddle/internal/application/usecase"
)

// RouterDeps collects the usecases and auth dependencies injected from the
// DI container.
type RouterDeps struct {
	CommunityUC      *usecase.CommunityUsecase
	MembershipUC     *usecase.MembershipUsecase
	RecommendationUC *usecase.RecommendationUsecase
	PostUC           *usecase.PostUsecase

	FirebaseAuth *middleware.FirebaseAuthClient
	Sessions     *usecase.SessionRegistry
}

// NewRouter sets up HTTP routing.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	auth := &middleware.Auth{
		FirebaseAuth: deps.FirebaseAuth,
		Sessions:     deps.Sessions,
	}

	if deps.CommunityUC != nil && deps.MembershipUC != nil && deps.RecommendationUC != nil && deps.PostUC != nil {
		communities := handlers.NewCommunityHandler(deps.CommunityUC, deps.MembershipUC, deps.RecommendationUC, deps.PostUC)
		// Lookup, top-N, and post listing are public; create/join/leave and
		// posting check the session.
		mux.Handle("/communities", auth.Optional(communities))
		mux.Handle("/communities/", auth.Optional(communities))
	}

	if deps.MembershipUC != nil {
		mux.Handle("/me/communities", auth.Handler(handlers.NewMembershipHandler(deps.MembershipUC)))
	}

	return middleware.Recover(mux)
}
