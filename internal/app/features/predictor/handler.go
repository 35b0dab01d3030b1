// internal/app/features/predictor/handler.go
package predictor

import (
	"github.com/dalemusser/matpredict/internal/app/catalog"
	uierrors "github.com/dalemusser/matpredict/internal/app/features/errors"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	"go.uber.org/zap"
)

// Handler owns the predictor page, its form actions and the JSON API.
//
// It is constructed once at startup in bootstrap with the shared catalog,
// the prediction runner and the logger. Per-visitor state arrives through
// the request context (websession.LoadSession).
type Handler struct {
	Catalog *catalog.Catalog
	Runner  *interaction.Runner
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
}

// NewHandler constructs a Handler.
func NewHandler(cat *catalog.Catalog, runner *interaction.Runner, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: cat,
		Runner:  runner,
		Log:     logger,
		ErrLog:  errLog,
	}
}
