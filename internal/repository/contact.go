package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/storeerr"
)

// ContactRepository is the document store contract for contacts.
//
// A missing or malformed id is reported as a storeerr.NoDocuments error.
type ContactRepository interface {
	List(ctx context.Context) ([]model.Contact, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	// Create inserts a new contact and returns it with its store-assigned id.
	Create(ctx context.Context, fields model.ContactFields) (*model.Contact, error)
	// UpdateByID overwrites name and phone, leaving other fields untouched.
	UpdateByID(ctx context.Context, id string, fields model.ContactFields) error
	DeleteByID(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// ContactMongo implements ContactRepository on a Mongo collection.
type ContactMongo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

var _ ContactRepository = (*ContactMongo)(nil)

// NewContactMongo bounds every call by timeout when it is positive.
func NewContactMongo(coll *mongo.Collection, timeout time.Duration) *ContactMongo {
	return &ContactMongo{coll: coll, timeout: timeout}
}

func (r *ContactMongo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *ContactMongo) wrap(err error, op string) error {
	return storeerr.Wrap(err, r.coll.Name(), op)
}

func (r *ContactMongo) List(ctx context.Context) ([]model.Contact, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, r.wrap(err, "find")
	}

	contacts := make([]model.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, r.wrap(err, "find")
	}

	return contacts, nil
}

func (r *ContactMongo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, r.wrap(err, "findOne")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var contact model.Contact
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&contact); err != nil {
		return nil, r.wrap(err, "findOne")
	}

	return &contact, nil
}

func (r *ContactMongo) Create(ctx context.Context, fields model.ContactFields) (*model.Contact, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	contact := model.Contact{Name: fields.Name, Phone: fields.Phone}

	res, err := r.coll.InsertOne(ctx, contact)
	if err != nil {
		return nil, r.wrap(err, "insert")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		contact.ID = oid
	}

	return &contact, nil
}

func (r *ContactMongo) UpdateByID(ctx context.Context, id string, fields model.ContactFields) error {
	oid, err := parseID(id)
	if err != nil {
		return r.wrap(err, "update")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return r.wrap(err, "update")
	}

	if res.MatchedCount == 0 {
		return r.wrap(mongo.ErrNoDocuments, "update")
	}

	return nil
}

func (r *ContactMongo) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return r.wrap(err, "delete")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return r.wrap(err, "delete")
	}

	if res.DeletedCount == 0 {
		return r.wrap(mongo.ErrNoDocuments, "delete")
	}

	return nil
}

func (r *ContactMongo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.wrap(r.coll.Database().Client().Ping(ctx, nil), "ping")
}

// parseID turns a path id into an ObjectID. Ids that cannot name a
// document are reported as missing documents.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &invalidIDError{id: id}
	}
	return oid, nil
}

type invalidIDError struct{ id string }

func (e *invalidIDError) Error() string { return fmt.Sprintf("invalid contact id %q", e.id) }

func (e *invalidIDError) Unwrap() error { return mongo.ErrNoDocuments }
