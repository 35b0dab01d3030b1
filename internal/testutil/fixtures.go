package testutil

import (
	"testing"

	"github.com/dalemusser/matpredict/internal/app/catalog"
	"github.com/dalemusser/matpredict/internal/domain/models"
)

// Records returns a small catalog fixture:
//
//	A  cubic      Fm-3m
//	A  hexagonal  P6_3mc
//	B  hexagonal  P6_3mc
//	B  hexagonal  P6_3/mmc
//	B  tetragonal I4_1/amd
func Records() []models.MaterialRecord {
	return []models.MaterialRecord{
		{Formula: "A", CrystalSystem: "cubic", SpaceGroup: "Fm-3m", BandGap: 1.1},
		{Formula: "A", CrystalSystem: "hexagonal", SpaceGroup: "P6_3mc", EnergyAboveHull: 0.02, BandGap: 0.9},
		{Formula: "B", CrystalSystem: "hexagonal", SpaceGroup: "P6_3mc", IsMetal: true, TotalMagnetization: 2.2},
		{Formula: "B", CrystalSystem: "hexagonal", SpaceGroup: "P6_3/mmc", IsMetal: true, TotalMagnetization: 1.8},
		{Formula: "B", CrystalSystem: "tetragonal", SpaceGroup: "I4_1/amd", EnergyAboveHull: 0.1, BandGap: 3.2},
	}
}

// Catalog builds a catalog from Records.
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(Records())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return cat
}
