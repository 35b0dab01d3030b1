package interaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/app/interaction"
	"github.com/dalemusser/matpredict/internal/app/noise"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"go.uber.org/zap"
)

func TestRunner_ResolvesAfterDelay(t *testing.T) {
	cat := testCatalog(t)
	st := readyState(t)
	rn := interaction.NewRunner(cat, noise.NewSeeded(11), 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	res, err := rn.Run(context.Background(), st)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Run returned after %v, before the delay", elapsed)
	}

	if res.ID == "" {
		t.Error("result should carry an id")
	}
	want := models.MaterialRecord{Formula: "A", CrystalSystem: "cubic", SpaceGroup: "Fm-3m", BandGap: 1.1}
	if res.Actual != want {
		t.Errorf("Actual: got %+v, want %+v", res.Actual, want)
	}
	if res.Predicted.IsMetal != res.Actual.IsMetal {
		t.Error("IsMetal must not be perturbed")
	}
	if res.Predicted.BandGap < 0.93 || res.Predicted.BandGap > 0.99 {
		t.Errorf("Predicted.BandGap = %v, want about 1.1*[0.85,0.90)", res.Predicted.BandGap)
	}

	v := st.Snapshot()
	if v.Phase != interaction.Resolved || v.Result == nil || v.Result.ID != res.ID {
		t.Errorf("state not resolved: phase %q result %+v", v.Phase, v.Result)
	}
}

func TestRunner_CancelledRequestStillSettlesState(t *testing.T) {
	cat := testCatalog(t)
	st := readyState(t)
	rn := interaction.NewRunner(cat, noise.NewSeeded(1), 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rn.Run(ctx, st); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: got %v, want context.Canceled", err)
	}
	if st.Phase() != interaction.Predicting {
		t.Fatalf("Phase right after cancel: got %q, want predicting", st.Phase())
	}

	deadline := time.Now().Add(2 * time.Second)
	for st.Phase() == interaction.Predicting && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if st.Phase() != interaction.Resolved {
		t.Errorf("Phase: got %q, want resolved", st.Phase())
	}
}

func TestRunner_BusyWhilePredicting(t *testing.T) {
	cat := testCatalog(t)
	st := readyState(t)
	rn := interaction.NewRunner(cat, noise.NewSeeded(1), 100*time.Millisecond, zap.NewNop())

	errc := make(chan error, 1)
	go func() {
		_, err := rn.Run(context.Background(), st)
		errc <- err
	}()

	deadline := time.Now().Add(time.Second)
	for st.Phase() != interaction.Predicting && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if _, err := rn.Run(context.Background(), st); !errors.Is(err, interaction.ErrBusy) {
		t.Errorf("second Run: got %v, want ErrBusy", err)
	}
	if err := <-errc; err != nil {
		t.Errorf("first Run failed: %v", err)
	}
}

func TestRunner_LookupFailureFailsState(t *testing.T) {
	st := readyState(t)

	// The runner's catalog lacks the selected record.
	other, err := catalog.New([]models.MaterialRecord{
		{Formula: "Q", CrystalSystem: "cubic", SpaceGroup: "Pm-3m"},
	})
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	rn := interaction.NewRunner(other, noise.NewSeeded(1), 0, zap.NewNop())

	_, err = rn.Run(context.Background(), st)
	if !interaction.IsLookupFailure(err) {
		t.Fatalf("Run: got %v, want lookup failure", err)
	}
	v := st.Snapshot()
	if v.Phase != interaction.Failed {
		t.Errorf("Phase: got %q, want failed", v.Phase)
	}
	if v.Error != interaction.FailureMessage {
		t.Errorf("Error: got %q, want %q", v.Error, interaction.FailureMessage)
	}
}

func TestRunner_PredictIsStateless(t *testing.T) {
	rn := interaction.NewRunner(testCatalog(t), noise.NewSeeded(2), time.Hour, zap.NewNop())

	res, err := rn.Predict(interaction.Selection{Formula: "B", CrystalSystem: "tetragonal", SpaceGroup: "I4_1/amd"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if res.Actual.BandGap != 3.1 {
		t.Errorf("Actual.BandGap: got %v, want 3.1", res.Actual.BandGap)
	}

	if _, err := rn.Predict(interaction.Selection{Formula: "B"}); !interaction.IsLookupFailure(err) {
		t.Errorf("incomplete selection: got %v, want lookup failure", err)
	}
}
