package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

// SessionFunc resolves a bearer ID token to the uid it was minted for.
// The identity provider is the source of truth; an error means the
// token is missing, expired or forged.
type SessionFunc func(ctx context.Context, idToken string) (uid string, err error)

// SessionMiddleware establishes the caller identity on authenticated
// endpoints. Requests without a verifiable bearer token are rejected
// before the handler runs.
func SessionMiddleware(verify SessionFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeUnauthenticated(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			uid, err := verify(ctx, raw)
			if err != nil {
				log.Warn("session verification failed", "err", err)
				writeUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, CtxKeyUserID, uid)))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthenticated", "You must be signed in")
}
