package materialstore_test

import (
	"errors"
	"testing"

	materialstore "github.com/dalemusser/matpredict/internal/app/store/materials"
	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/dalemusser/matpredict/internal/testutil"
)

func TestSeedAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := materialstore.New(db, "")
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	records := testutil.Records()
	n, err := store.SeedIfEmpty(ctx, records)
	if err != nil {
		t.Fatalf("SeedIfEmpty failed: %v", err)
	}
	if n != len(records) {
		t.Errorf("seeded %d, want %d", n, len(records))
	}

	// A second seed is a no-op.
	n, err = store.SeedIfEmpty(ctx, records)
	if err != nil || n != 0 {
		t.Errorf("second SeedIfEmpty: n=%d err=%v, want 0, nil", n, err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("List returned %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestInsertMany_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := materialstore.New(db, "catalog")
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	rec := models.MaterialRecord{Formula: "Si", CrystalSystem: "cubic", SpaceGroup: "Fd-3m", BandGap: 0.61}
	if err := store.InsertMany(ctx, []models.MaterialRecord{rec}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	rec.BandGap = 1.0
	err := store.InsertMany(ctx, []models.MaterialRecord{rec})
	if !errors.Is(err, materialstore.ErrDuplicate) {
		t.Fatalf("duplicate insert: got %v, want ErrDuplicate", err)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestInsertMany_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := materialstore.New(db, "").InsertMany(ctx, nil); err != nil {
		t.Errorf("InsertMany(nil) = %v, want nil", err)
	}
}
