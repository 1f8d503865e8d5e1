// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	groupsfeature "github.com/huddlehq/huddle/internal/app/features/groups"
	healthfeature "github.com/huddlehq/huddle/internal/app/features/health"
	messagesfeature "github.com/huddlehq/huddle/internal/app/features/messages"
	usersfeature "github.com/huddlehq/huddle/internal/app/features/users"
	"github.com/huddlehq/huddle/internal/app/system/auth"
	"github.com/huddlehq/huddle/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Huddle builds the token manager from the configured secret and mounts
// the feature routers: users (accounts and tokens), groups (membership
// and invitations), and messages, plus the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.AccessTokenTTL, appCfg.RefreshTokenTTL)
	db := deps.HuddleMongoDatabase

	r := chi.NewRouter()

	// Tag every request so log lines can be correlated.
	r.Use(requestid.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.HuddleMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts and tokens
	usersHandler := usersfeature.NewHandler(db, tokens, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Groups, membership, and invitations
	groupsHandler := groupsfeature.NewHandler(db, tokens, appCfg.BaseURL, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	// Messaging
	messagesHandler := messagesfeature.NewHandler(db, tokens, logger)
	r.Mount("/messages", messagesfeature.Routes(messagesHandler))

	return r, nil
}
