// internal/app/store/materials/materialstore.go
package materialstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/matpredict/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection holds the material catalog when none is configured.
const DefaultCollection = "materials"

// ErrDuplicate is returned when a record with the same formula, crystal
// system and space group is already stored.
var ErrDuplicate = errors.New("a material with this formula, crystal system and space group already exists")

// Store reads and seeds the material catalog collection.
type Store struct {
	c *mongo.Collection
}

// New returns a Store over db.collection. An empty collection name uses
// DefaultCollection.
func New(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{c: db.Collection(collection)}
}

// EnsureIndexes creates the unique key index on
// (formula, crystal_system, space_group).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "formula", Value: 1},
			{Key: "crystal_system", Value: 1},
			{Key: "space_group", Value: 1},
		},
		Options: options.Index().SetName("uniq_material_key").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create material key index: %w", err)
	}
	return nil
}

// List returns every record in insertion order.
func (s *Store) List(ctx context.Context) ([]models.MaterialRecord, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.MaterialRecord, 0, 64)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// InsertMany stores records in order. A key collision returns ErrDuplicate;
// records before the collision remain stored.
func (s *Store) InsertMany(ctx context.Context, records []models.MaterialRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = r
	}
	if _, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// SeedIfEmpty inserts records when the collection holds none and reports
// how many were inserted.
func (s *Store) SeedIfEmpty(ctx context.Context, records []models.MaterialRecord) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	if err := s.InsertMany(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
