package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PhoneIndexName is the unique index that keeps contact phones distinct.
const PhoneIndexName = "contacts_phone_key"

// ContactIndexes lists the indexes the contacts collection must carry.
func ContactIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetName(PhoneIndexName).SetUnique(true),
		},
	}
}

// EnsureIndexes creates the contact indexes on collection. Creating an
// index that already exists with the same options is a no-op.
func (db *Database) EnsureIndexes(ctx context.Context, collection string) error {
	names, err := db.DB.Collection(collection).Indexes().CreateMany(ctx, ContactIndexes())
	if err != nil {
		return fmt.Errorf("creating %s indexes: %w", collection, err)
	}

	db.log.Info().Strs("indexes", names).Str("collection", collection).Msg("database indexes up to date")
	return nil
}
