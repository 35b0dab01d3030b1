// internal/app/catalog/source.go
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dalemusser/matpredict/internal/domain/models"
)

// Catalog sources selectable with the catalog_source setting.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceMongo    = "mongo"
	SourceSQLite   = "sqlite"
)

// IsValidSource reports whether s names a known catalog source.
func IsValidSource(s string) bool {
	switch s {
	case SourceEmbedded, SourceFile, SourceMongo, SourceSQLite:
		return true
	}
	return false
}

//go:embed data/materials.json
var bundled []byte

// EmbeddedRecords decodes the dataset bundled into the binary.
func EmbeddedRecords() ([]models.MaterialRecord, error) {
	return Decode(bytes.NewReader(bundled))
}

// Embedded builds a Catalog from the bundled dataset.
func Embedded() (*Catalog, error) {
	recs, err := EmbeddedRecords()
	if err != nil {
		return nil, err
	}
	return New(recs)
}

// LoadFile builds a Catalog from a JSON array of records on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	recs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(recs)
}

// Decode reads a JSON array of records. Unknown fields are rejected so a
// misspelled property does not silently load as zero.
func Decode(r io.Reader) ([]models.MaterialRecord, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var recs []models.MaterialRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return recs, nil
}
