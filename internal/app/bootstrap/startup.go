// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/matpredict/internal/app/resources"
	"github.com/dalemusser/matpredict/internal/app/system/viewdata"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the catalog is
// loaded and before the HTTP handler is built: shared templates, site
// settings and the idle-session sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := resources.LoadSharedTemplates(); err != nil {
		logger.Error("shared templates", zap.Error(err))
		return err
	}

	viewdata.Init(models.SiteSettings{
		SiteName:   appCfg.SiteName,
		FooterHTML: appCfg.FooterHTML,
	})

	if deps.Sweeper != nil && appCfg.SessionIdleTTL > 0 {
		deps.Sweeper.Start()
	} else {
		logger.Info("session sweeper disabled", zap.Duration("idle_ttl", appCfg.SessionIdleTTL))
	}
	return nil
}
