// internal/app/catalog/predict.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/dalemusser/matpredict/internal/domain/models"
)

// ErrLookupFailure is returned (wrapped in a *LookupError) when a selection
// does not resolve to a catalog record.
var ErrLookupFailure = errors.New("material not found in catalog")

// LookupError records the selection that failed to resolve.
type LookupError struct {
	Key models.MaterialKey
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLookupFailure.Error(), e.Key)
}

// Unwrap lets errors.Is match ErrLookupFailure.
func (e *LookupError) Unwrap() error { return ErrLookupFailure }

// Predict returns the record matching all three fields exactly.
//
// Callers are expected to pass a complete selection; an empty field is
// reported as a lookup failure like any other miss.
func (c *Catalog) Predict(formula, crystalSystem, spaceGroup string) (models.MaterialRecord, error) {
	key := models.MaterialKey{Formula: formula, CrystalSystem: crystalSystem, SpaceGroup: spaceGroup}
	if !key.Complete() {
		return models.MaterialRecord{}, &LookupError{Key: key}
	}
	i, ok := c.byKey[key]
	if !ok {
		return models.MaterialRecord{}, &LookupError{Key: key}
	}
	return c.records[i], nil
}
