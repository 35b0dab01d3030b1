// internal/app/catalog/catalog.go

// Package catalog holds the immutable materials catalog and the two
// operations the predictor page is built on: narrowing the dropdown options
// for a partial selection, and looking up the record for a full selection.
package catalog

import (
	"fmt"
	"strings"

	"github.com/dalemusser/matpredict/internal/domain/models"
)

// Catalog is an immutable, ordered set of material records. It is safe for
// concurrent use because nothing mutates it after New returns.
type Catalog struct {
	records []models.MaterialRecord
	byKey   map[models.MaterialKey]int

	formulas       []string
	crystalSystems []string
	spaceGroups    []string
}

// New builds a Catalog from records, keeping their order.
//
// It rejects records with an empty formula, crystal system or space group,
// records whose crystal system is not one of the seven crystal systems, and
// any repeated (formula, crystal system, space group) triple.
func New(records []models.MaterialRecord) (*Catalog, error) {
	c := &Catalog{
		records: make([]models.MaterialRecord, 0, len(records)),
		byKey:   make(map[models.MaterialKey]int, len(records)),
	}

	for i, rec := range records {
		rec.Formula = strings.TrimSpace(rec.Formula)
		rec.CrystalSystem = strings.TrimSpace(rec.CrystalSystem)
		rec.SpaceGroup = strings.TrimSpace(rec.SpaceGroup)

		key := rec.Key()
		if !key.Complete() {
			return nil, fmt.Errorf("catalog record %d: formula, crystal system and space group are required", i)
		}
		if !models.IsCrystalSystem(rec.CrystalSystem) {
			return nil, fmt.Errorf("catalog record %d (%s): unknown crystal system %q", i, key, rec.CrystalSystem)
		}
		if prev, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("catalog record %d duplicates record %d (%s)", i, prev, key)
		}

		c.byKey[key] = len(c.records)
		c.records = append(c.records, rec)
	}

	c.formulas = distinct(c.records, nil, func(r models.MaterialRecord) string { return r.Formula })
	c.crystalSystems = distinct(c.records, nil, func(r models.MaterialRecord) string { return r.CrystalSystem })
	c.spaceGroups = distinct(c.records, nil, func(r models.MaterialRecord) string { return r.SpaceGroup })

	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns a copy of all records in catalog order.
func (c *Catalog) Records() []models.MaterialRecord {
	out := make([]models.MaterialRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Formulas returns every distinct formula in first-seen order.
func (c *Catalog) Formulas() []string { return clone(c.formulas) }

// CrystalSystems returns every distinct crystal system in first-seen order.
func (c *Catalog) CrystalSystems() []string { return clone(c.crystalSystems) }

// SpaceGroups returns every distinct space group in first-seen order.
func (c *Catalog) SpaceGroups() []string { return clone(c.spaceGroups) }

// distinct collects field(r) for every record accepted by keep (nil keeps
// all), dropping repeats and preserving first-seen order. The result is
// never nil.
func distinct(records []models.MaterialRecord, keep func(models.MaterialRecord) bool, field func(models.MaterialRecord) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range records {
		if keep != nil && !keep(r) {
			continue
		}
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
