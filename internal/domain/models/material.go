// internal/domain/models/material.go
package models

// MaterialRecord is one entry of the materials catalog: a structure identified
// by its formula, crystal system and space group, plus its measured properties.
//
// Records are loaded once at startup and never modified afterwards. The
// (Formula, CrystalSystem, SpaceGroup) triple is unique across a catalog.
type MaterialRecord struct {
	Formula       string `bson:"formula" json:"formula"`
	CrystalSystem string `bson:"crystal_system" json:"crystal_system"`
	SpaceGroup    string `bson:"space_group" json:"space_group"`

	EnergyAboveHull    float64 `bson:"energy_above_hull" json:"energy_above_hull"` // eV
	BandGap            float64 `bson:"band_gap" json:"band_gap"`                   // eV
	IsMetal            bool    `bson:"is_metal" json:"is_metal"`
	TotalMagnetization float64 `bson:"total_magnetization" json:"total_magnetization"` // µB
}

// Key returns the identifying triple of the record.
func (m MaterialRecord) Key() MaterialKey {
	return MaterialKey{Formula: m.Formula, CrystalSystem: m.CrystalSystem, SpaceGroup: m.SpaceGroup}
}

// MaterialKey is the (formula, crystal system, space group) triple that
// identifies a record.
type MaterialKey struct {
	Formula       string
	CrystalSystem string
	SpaceGroup    string
}

// Complete reports whether all three parts of the key are set.
func (k MaterialKey) Complete() bool {
	return k.Formula != "" && k.CrystalSystem != "" && k.SpaceGroup != ""
}

func (k MaterialKey) String() string {
	return k.Formula + " / " + k.CrystalSystem + " / " + k.SpaceGroup
}
