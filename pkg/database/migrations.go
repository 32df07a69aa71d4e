package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.M{"name": "migrations"})
	if err != nil {
		return err
	}
	if len(collections) == 0 {
		return m.db.CreateCollection(ctx, "migrations")
	}
	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		Version int `bson:"version"`
	}

	opts := options.FindOne().SetSort(bson.M{"version": -1})
	err := m.db.Collection("migrations").FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").InsertOne(ctx, bson.M{
		"version":    version,
		"applied_at": time.Now(),
	})
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "campaign indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("campaigns").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{
						Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "is_active", Value: 1}},
					},
					{
						Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}},
					},
				})
				return err
			},
		},
		{
			Version:     2,
			Description: "coupon indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("coupons").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{
						Keys:    bson.D{{Key: "restaurant_id", Value: 1}, {Key: "code", Value: 1}},
						Options: options.Index().SetUnique(true),
					},
					{
						Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "device_id", Value: 1}, {Key: "created_at", Value: -1}},
					},
					{
						Keys: bson.D{{Key: "status", Value: 1}, {Key: "valid_until", Value: 1}},
					},
				})
				return err
			},
		},
		{
			Version:     3,
			Description: "order indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("orders").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{
						Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}},
					},
					{
						Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "status", Value: 1}},
					},
				})
				return err
			},
		},
		{
			Version:     4,
			Description: "product indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "category_id", Value: 1}},
				})
				return err
			},
		},
	}
}
