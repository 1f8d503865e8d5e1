// internal/app/features/messages/routes.go
package messages

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the /messages subrouter. Everything requires a bearer
// token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireBearer(h.Log))

		pr.Post("/send-message", h.HandleSendMessage)
		pr.Post("/get-all-messages", h.HandleGetAllMessages)
	})

	return r
}
