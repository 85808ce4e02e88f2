// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	usecase "huddle/internal/application/usecase"
)

// FirebaseAuthClient is an alias so RouterDeps can carry the concrete client
// without importing the firebase package everywhere.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeyUID     = ctxKey{name: "uid"}
	ctxKeyEmail   = ctxKey{name: "email"}
	ctxKeySession = ctxKey{name: "session"}
)

// Auth verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// against Firebase, signs the user into the session registry, and passes uid
// and session down via context. Mutating handlers behind it never run
// unauthenticated; the usecases still re-check, as the contract demands.
type Auth struct {
	FirebaseAuth *FirebaseAuthClient
	Sessions     *usecase.SessionRegistry
}

func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil || m.Sessions == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		sess := m.Sessions.SignIn(uid)

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		ctx = context.WithValue(ctx, ctxKeySession, sess)
		if email := claimEmail(token.Claims); email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional lets anonymous requests through without a session, but a request
// that does present a bearer token is held to the same bar as Handler: a
// token that fails verification gets 401, never a silent anonymous
// downgrade.
func (m *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		if m.FirebaseAuth == nil || m.Sessions == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		sess := m.Sessions.SignIn(uid)
		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		ctx = context.WithValue(ctx, ctxKeySession, sess)
		if email := claimEmail(token.Claims); email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimEmail(claims map[string]interface{}) string {
	email, _ := claims["email"].(string)
	return strings.TrimSpace(email)
}

// UIDFromContext returns the authenticated uid, if any.
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(ctxKeyUID).(string)
	return uid, ok && uid != ""
}

// EmailFromContext returns the verified email claim, if the token carried
// one.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(ctxKeyEmail).(string)
	return email, ok && email != ""
}

// SessionFromContext returns the signed-in session, if any.
func SessionFromContext(ctx context.Context) (*usecase.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(*usecase.Session)
	return s, ok && s != nil
}

// WithSession injects a session into the context. Test helper for handlers
// that normally sit behind Auth.
func WithSession(ctx context.Context, s *usecase.Session) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, s.UserID())
	return context.WithValue(ctx, ctxKeySession, s)
}
