// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the /users subrouter. Registration, login, and the
// refresh exchange are public; everything else requires a bearer token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/refresh-token", h.HandleRefreshToken)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireBearer(h.Log))

		pr.Get("/me", h.ServeMe)
		pr.Post("/logout", h.HandleLogout)
	})

	return r
}
