// internal/app/interaction/runner.go
package interaction

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/noise"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDelay is the simulated model latency.
const DefaultDelay = 500 * time.Millisecond

// Runner performs predictions for visitor states.
type Runner struct {
	Catalog *catalog.Catalog
	Noise   *noise.Injector
	Delay   time.Duration
	Log     *zap.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewRunner constructs a Runner. A negative delay is treated as zero.
func NewRunner(cat *catalog.Catalog, n *noise.Injector, delay time.Duration, logger *zap.Logger) *Runner {
	if delay < 0 {
		delay = 0
	}
	return &Runner{
		Catalog: cat,
		Noise:   n,
		Delay:   delay,
		Log:     logger,
		now:     time.Now,
	}
}

// Run starts a prediction for st and waits for it.
//
// The state enters Predicting immediately. After Delay the selection is
// looked up and perturbed, and the state is resolved or failed. The timer is
// never cancelled: if ctx ends first Run returns ctx.Err(), and the state
// still settles when the timer fires.
func (rn *Runner) Run(ctx context.Context, st *State) (Result, error) {
	sel, err := st.BeginPredict()
	if err != nil {
		return Result{}, err
	}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)

	time.AfterFunc(rn.Delay, func() {
		res, err := rn.Predict(sel)
		if err != nil {
			rn.Log.Warn("prediction failed",
				zap.String("formula", sel.Formula),
				zap.String("crystal_system", sel.CrystalSystem),
				zap.String("space_group", sel.SpaceGroup),
				zap.Error(err))
			_ = st.Fail(FailureMessage)
			done <- outcome{err: err}
			return
		}
		_ = st.Resolve(res)
		done <- outcome{res: res}
	})

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		rn.Log.Info("prediction request ended before the result; state will settle in the background",
			zap.Error(ctx.Err()))
		return Result{}, ctx.Err()
	}
}

// Predict looks up sel and builds a Result with a perturbed copy. It does
// not wait and does not touch any visitor state.
func (rn *Runner) Predict(sel Selection) (Result, error) {
	actual, err := rn.Catalog.Predict(sel.Formula, sel.CrystalSystem, sel.SpaceGroup)
	if err != nil {
		return Result{}, err
	}
	now := time.Now
	if rn.now != nil {
		now = rn.now
	}
	return Result{
		ID:        uuid.NewString(),
		Actual:    actual,
		Predicted: rn.Noise.PerturbRecord(actual),
		At:        now().UTC(),
	}, nil
}

// IsLookupFailure reports whether err is the catalog's not-found condition.
func IsLookupFailure(err error) bool {
	return errors.Is(err, catalog.ErrLookupFailure)
}
