// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	teacherstore "github.com/dalemusser/schoolboard/internal/app/store/teachers"
	"github.com/dalemusser/schoolboard/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("handler timeouts configured from environment", zap.Int("count", n))
	}

	if appCfg.SeedTeacherUsername != "" {
		if err := ensureSeedTeacher(ctx, deps, appCfg, logger); err != nil {
			return err
		}
	}

	return nil
}

// ensureSeedTeacher creates the configured teacher account if it does not
// already exist. Without at least one directory entry a fresh deployment
// can never pass the teacher-existence gate on the management endpoints.
func ensureSeedTeacher(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	store := teacherstore.New(deps.MongoDatabase)

	_, err := store.Create(ctx, teacherstore.CreateInput{
		Username:    appCfg.SeedTeacherUsername,
		DisplayName: appCfg.SeedTeacherDisplayName,
		Password:    appCfg.SeedTeacherPassword,
	})
	if errors.Is(err, teacherstore.ErrDuplicateUsername) {
		logger.Info("seed teacher already exists", zap.String("username", appCfg.SeedTeacherUsername))
		return nil
	}
	if err != nil {
		logger.Error("seed teacher creation failed", zap.Error(err))
		return err
	}

	logger.Info("seed teacher created", zap.String("username", appCfg.SeedTeacherUsername))
	return nil
}
