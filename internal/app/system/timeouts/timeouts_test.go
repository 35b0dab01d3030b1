package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/matpredict/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	defer timeouts.Reset()

	timeouts.Configure(timeouts.Config{Load: time.Minute})

	if got := timeouts.Load(); got != time.Minute {
		t.Errorf("Load: got %v, want %v", got, time.Minute)
	}
	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping: got %v, want default %v", got, timeouts.DefaultPing)
	}
	if got := timeouts.Seed(); got != timeouts.DefaultSeed {
		t.Errorf("Seed: got %v, want default %v", got, timeouts.DefaultSeed)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("Err: got %v, want DeadlineExceeded", ctx.Err())
	}
}
