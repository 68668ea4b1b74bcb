// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	announcementsfeature "github.com/dalemusser/schoolboard/internal/app/features/announcements"
	healthfeature "github.com/dalemusser/schoolboard/internal/app/features/health"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The service surface is deliberately
// small: the announcement resource and a health probe. Teacher sign-in,
// sessions, and the rest of the school system live in other services;
// the only authentication performed here is the teacher-existence gate
// inside the announcement handlers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// The announcement resource
	annHandler := announcementsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/announcements", announcementsfeature.Routes(annHandler))

	return r, nil
}
