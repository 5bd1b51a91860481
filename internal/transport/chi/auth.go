package chi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/logger"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware resolves the caller identity from a Bearer token.
// Tokens map to identities; with no tokens configured every non-exempt
// request is rejected.
func BearerAuthMiddleware(tokens map[string]identity.Identity) func(http.Handler) http.Handler {
	valid := make(map[string]identity.Identity, len(tokens))
	for tok, id := range tokens {
		if tok != "" && id.UserID != "" && id.Role.Valid() {
			valid[tok] = id
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			id, ok := valid[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid token")
				return
			}

			ctx := identity.NewContext(r.Context(), id)
			ctx = logger.ContextWithLogger(ctx, logger.FromContext(ctx).With(
				zap.String("user_id", id.UserID),
				zap.String("role", string(id.Role)),
			))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
