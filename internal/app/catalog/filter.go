// internal/app/catalog/filter.go
package catalog

import (
	"slices"

	"github.com/dalemusser/matpredict/internal/domain/models"
)

// Options is the set of dropdown values still consistent with a partial
// selection. Both slices keep first-seen catalog order and are never nil.
type Options struct {
	CrystalSystems []string `json:"crystal_systems"`
	SpaceGroups    []string `json:"space_groups"`
}

// HasCrystalSystem reports whether cs is among the offered crystal systems.
func (o Options) HasCrystalSystem(cs string) bool {
	return slices.Contains(o.CrystalSystems, cs)
}

// HasSpaceGroup reports whether sg is among the offered space groups.
func (o Options) HasSpaceGroup(sg string) bool {
	return slices.Contains(o.SpaceGroups, sg)
}

// FilterOptions narrows the crystal systems and space groups for a partial
// selection. An empty argument places no constraint on that field.
//
// Crystal systems depend on the formula only. Space groups depend on both the
// formula and the crystal system.
func (c *Catalog) FilterOptions(formula, crystalSystem string) Options {
	byFormula := func(r models.MaterialRecord) bool {
		return formula == "" || r.Formula == formula
	}
	byBoth := func(r models.MaterialRecord) bool {
		return byFormula(r) && (crystalSystem == "" || r.CrystalSystem == crystalSystem)
	}

	return Options{
		CrystalSystems: distinct(c.records, byFormula, func(r models.MaterialRecord) string { return r.CrystalSystem }),
		SpaceGroups:    distinct(c.records, byBoth, func(r models.MaterialRecord) string { return r.SpaceGroup }),
	}
}
