// internal/app/store/materialsql/materialsql.go
package materialsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/matpredict/internal/domain/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDBFile is used when no path is configured.
const DefaultDBFile = "matpredict.sqlite3"

// ErrDuplicate is returned when a record with the same formula, crystal
// system and space group is already stored.
var ErrDuplicate = errors.New("a material with this formula, crystal system and space group already exists")

var errClientNil = errors.New("materialsql: client is nil")

// Client reads and seeds the material catalog in a SQLite file.
type Client struct {
	DB *gorm.DB
	db *sql.DB
}

// materialRow is the table layout. The unique index enforces one row per
// (formula, crystal_system, space_group).
type materialRow struct {
	ID                 uint    `gorm:"primaryKey;autoIncrement"`
	Formula            string  `gorm:"not null;uniqueIndex:idx_material_key,priority:1;index:idx_formula"`
	CrystalSystem      string  `gorm:"not null;uniqueIndex:idx_material_key,priority:2"`
	SpaceGroup         string  `gorm:"not null;uniqueIndex:idx_material_key,priority:3"`
	EnergyAboveHull    float64 `gorm:"not null"`
	BandGap            float64 `gorm:"not null"`
	IsMetal            bool    `gorm:"not null"`
	TotalMagnetization float64 `gorm:"not null"`
}

func (materialRow) TableName() string { return "materials" }

func toRow(r models.MaterialRecord) materialRow {
	return materialRow{
		Formula:            r.Formula,
		CrystalSystem:      r.CrystalSystem,
		SpaceGroup:         r.SpaceGroup,
		EnergyAboveHull:    r.EnergyAboveHull,
		BandGap:            r.BandGap,
		IsMetal:            r.IsMetal,
		TotalMagnetization: r.TotalMagnetization,
	}
}

func (m materialRow) record() models.MaterialRecord {
	return models.MaterialRecord{
		Formula:            m.Formula,
		CrystalSystem:      m.CrystalSystem,
		SpaceGroup:         m.SpaceGroup,
		EnergyAboveHull:    m.EnergyAboveHull,
		BandGap:            m.BandGap,
		IsMetal:            m.IsMetal,
		TotalMagnetization: m.TotalMagnetization,
	}
}

// Open opens (creating if needed) the SQLite file at path and migrates the
// materials table. An empty path uses DefaultDBFile.
func Open(path string) (*Client, error) {
	if path == "" {
		path = DefaultDBFile
	}
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&materialRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Client{DB: db, db: sqlDB}, nil
}

// Close releases the database.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Ping checks the database connection.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.db == nil {
		return errClientNil
	}
	return c.db.PingContext(ctx)
}

// List returns every record in insertion order.
func (c *Client) List(ctx context.Context) ([]models.MaterialRecord, error) {
	if c == nil || c.DB == nil {
		return nil, errClientNil
	}
	var rows []materialRow
	if err := c.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	out := make([]models.MaterialRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// Count returns the number of stored records.
func (c *Client) Count(ctx context.Context) (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errClientNil
	}
	var n int64
	if err := c.DB.WithContext(ctx).Model(&materialRow{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting materials: %w", err)
	}
	return n, nil
}

// InsertMany stores records in one transaction. A key collision rolls the
// whole batch back and returns ErrDuplicate.
func (c *Client) InsertMany(ctx context.Context, records []models.MaterialRecord) error {
	if c == nil || c.DB == nil {
		return errClientNil
	}
	if len(records) == 0 {
		return nil
	}
	rows := make([]materialRow, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting materials: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts records when the table holds none and reports how
// many were inserted.
func (c *Client) SeedIfEmpty(ctx context.Context, records []models.MaterialRecord) (int, error) {
	n, err := c.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	if err := c.InsertMany(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
