// Package requestid assigns each request a UUID and makes it available
// to handlers and log fields.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the response header carrying the request id.
const Header = "X-Request-Id"

type ctxKey struct{}

// Middleware attaches a request id to the context and echoes it in the
// response headers. An inbound X-Request-Id is honored so ids can be
// threaded through upstream proxies.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		ctx := context.WithValue(r.Context(), ctxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the request id, or "" when the middleware did not
// run.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
