package repository

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/storeerr"
)

// duplicateKeyCode is the server error code for unique index violations.
const duplicateKeyCode = 11000

// ContactMemory implements ContactRepository in process memory.
//
// It keeps insertion order and rejects duplicate phones with the same
// error the Mongo server returns, so callers cannot tell the two apart.
type ContactMemory struct {
	collection string

	mu       sync.Mutex
	index    map[primitive.ObjectID]int
	contacts []model.Contact
}

var _ ContactRepository = (*ContactMemory)(nil)

func NewContactMemory(collection string, cs ...model.Contact) *ContactMemory {
	s := &ContactMemory{collection: collection}
	s.reset(cs)
	return s
}

func (s *ContactMemory) reset(cs []model.Contact) {
	s.contacts = make([]model.Contact, 0, len(cs))
	s.index = make(map[primitive.ObjectID]int, len(cs))
	for _, c := range cs {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.index[c.ID] = len(s.contacts)
		s.contacts = append(s.contacts, c)
	}
}

func (s *ContactMemory) wrap(err error, op string) error {
	return storeerr.Wrap(err, s.collection, op)
}

func (s *ContactMemory) List(_ context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(make([]model.Contact, 0, len(s.contacts)), s.contacts...), nil
}

func (s *ContactMemory) GetByID(_ context.Context, id string) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		return nil, s.wrap(err, "findOne")
	}

	contact := s.contacts[i]
	return &contact, nil
}

func (s *ContactMemory) Create(_ context.Context, fields model.ContactFields) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPhone(fields.Phone, primitive.NilObjectID); err != nil {
		return nil, s.wrap(err, "insert")
	}

	contact := model.Contact{ID: primitive.NewObjectID(), Name: fields.Name, Phone: fields.Phone}
	s.index[contact.ID] = len(s.contacts)
	s.contacts = append(s.contacts, contact)

	return &contact, nil
}

func (s *ContactMemory) UpdateByID(_ context.Context, id string, fields model.ContactFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		return s.wrap(err, "update")
	}

	if err := s.checkPhone(fields.Phone, s.contacts[i].ID); err != nil {
		return s.wrap(err, "update")
	}

	s.contacts[i].Name = fields.Name
	s.contacts[i].Phone = fields.Phone
	return nil
}

func (s *ContactMemory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.lookup(id)
	if err != nil {
		return s.wrap(err, "delete")
	}

	delete(s.index, s.contacts[i].ID)
	s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
	for j := i; j < len(s.contacts); j++ {
		s.index[s.contacts[j].ID] = j
	}

	return nil
}

func (s *ContactMemory) Ping(_ context.Context) error {
	return nil
}

// lookup must be called with mu held.
func (s *ContactMemory) lookup(id string) (int, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	i, ok := s.index[oid]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	return i, nil
}

// checkPhone must be called with mu held. self is skipped so a contact
// can keep its own phone on update.
func (s *ContactMemory) checkPhone(phone string, self primitive.ObjectID) error {
	for _, c := range s.contacts {
		if c.Phone == phone && c.ID != self {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{
				Code: duplicateKeyCode,
				Message: fmt.Sprintf("E11000 duplicate key error collection: %s index: %s_phone_key dup key: { phone: %q }",
					s.collection, s.collection, phone),
			}}}
		}
	}
	return nil
}
