// internal/domain/models/crystalsystems.go
package models

// The seven crystal systems. Catalog records must use one of these values.
const (
	CrystalTriclinic    = "triclinic"
	CrystalMonoclinic   = "monoclinic"
	CrystalOrthorhombic = "orthorhombic"
	CrystalTetragonal   = "tetragonal"
	CrystalTrigonal     = "trigonal"
	CrystalHexagonal    = "hexagonal"
	CrystalCubic        = "cubic"
)

// CrystalSystems lists the valid crystal systems from lowest to highest symmetry.
var CrystalSystems = []string{
	CrystalTriclinic,
	CrystalMonoclinic,
	CrystalOrthorhombic,
	CrystalTetragonal,
	CrystalTrigonal,
	CrystalHexagonal,
	CrystalCubic,
}

// IsCrystalSystem reports whether s is one of the seven crystal systems.
func IsCrystalSystem(s string) bool {
	for _, cs := range CrystalSystems {
		if cs == s {
			return true
		}
	}
	return false
}
