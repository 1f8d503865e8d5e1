// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the /groups subrouter. Invitation acceptance is
// credential-authenticated inside its handler; everything else requires
// a bearer token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/accept-invitation/{token}", h.HandleAcceptInvitation)

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireBearer(h.Log))

		pr.Get("/public", h.ServeGroupsList)
		pr.Post("/", h.HandleCreateGroup)

		pr.Post("/{groupID}/join", h.HandleJoinGroup)
		pr.Post("/{groupID}/invite-user/{userID}", h.HandleInviteUser)

		pr.Get("/data", h.ServeUserAnalytics)
		pr.Get("/group-data/{groupID}", h.ServeGroupData)

		pr.Put("/edit-group/{groupID}", h.HandleEditGroup)
		pr.Delete("/{groupID}", h.HandleDeleteGroup)
	})

	return r
}
