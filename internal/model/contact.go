// Package model holds the Contact document and the response envelope
// shared by every contacts endpoint.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Contact is the only document the service stores.
//
// ID is assigned by the store on insert and never changes. Phone is
// unique across contacts; the store enforces it with an index.
type Contact struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Phone string             `bson:"phone" json:"phone"`
}

// ContactFields is the mutable part of a Contact.
type ContactFields struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}
