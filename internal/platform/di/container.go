// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	httpin "huddle/internal/adapters/in/http"
	fsrepo "huddle/internal/adapters/out/firestore"
	usecase "huddle/internal/application/usecase"
	appcfg "huddle/internal/infra/config"
)

// Container is the bundle of dependencies main.go needs. Firestore is strict
// (init failure is fatal); Firebase Auth is best-effort so the read-only
// routes keep working when auth is misconfigured.
type Container struct {
	Config *appcfg.Config

	// Clients (owned; Close-managed)
	Firestore    *firestore.Client
	FirebaseApp  *firebase.App
	FirebaseAuth *firebaseauth.Client

	// Application
	Sessions         *usecase.SessionRegistry
	CommunityUC      *usecase.CommunityUsecase
	MembershipUC     *usecase.MembershipUsecase
	RecommendationUC *usecase.RecommendationUsecase
	PostUC           *usecase.PostUsecase
}

func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if cfg.FirestoreProjectID == "" {
		return nil, errors.New("di: FIRESTORE_PROJECT_ID / GCP_PROJECT_ID not set")
	}

	var opts []option.ClientOption
	if cfg.FirestoreCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirestoreCredentialsFile))
	}

	fsClient, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, err
	}
	log.Printf("[di] firestore client ready project=%s", cfg.FirestoreProjectID)

	c := &Container{
		Config:    cfg,
		Firestore: fsClient,
		Sessions:  usecase.NewSessionRegistry(),
	}

	// Firebase Auth: warn and continue without it.
	if app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...); err != nil {
		log.Printf("[di] WARN: firebase app init failed: %v", err)
	} else {
		c.FirebaseApp = app
		if authClient, err := app.Auth(ctx); err != nil {
			log.Printf("[di] WARN: firebase auth init failed: %v", err)
		} else {
			c.FirebaseAuth = authClient
		}
	}

	communityRepo := fsrepo.NewCommunityRepositoryFS(fsClient)
	ledger := fsrepo.NewSnippetLedgerFS(fsClient)
	postRepo := fsrepo.NewPostRepositoryFS(fsClient)

	c.CommunityUC = usecase.NewCommunityUsecase(communityRepo)
	c.MembershipUC = usecase.NewMembershipUsecase(ledger, communityRepo)
	c.RecommendationUC = usecase.NewRecommendationUsecase(communityRepo)
	c.PostUC = usecase.NewPostUsecase(postRepo, communityRepo)

	return c, nil
}

// RouterDeps exposes the dependency bundle the HTTP router mounts from.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		CommunityUC:      c.CommunityUC,
		MembershipUC:     c.MembershipUC,
		RecommendationUC: c.RecommendationUC,
		PostUC:           c.PostUC,
		FirebaseAuth:     c.FirebaseAuth,
		Sessions:         c.Sessions,
	}
}

// Close releases owned clients.
func (c *Container) Close() {
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
}
