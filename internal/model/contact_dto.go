package model

import "github.com/deppfellow/contacts-service/internal/validation"

// ContactFieldsRequired is the envelope "error" text for create and
// update requests missing name or phone.
const ContactFieldsRequired = "Both name and phone are required"

// ContactInput is the body accepted by create and update. Any other
// body field is ignored.
type ContactInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

func (in *ContactInput) Validate() error {
	return validation.Struct(in)
}

func (in *ContactInput) ValidationDetail() string {
	return ContactFieldsRequired
}

// Fields returns the store representation of in.
func (in *ContactInput) Fields() ContactFields {
	return ContactFields{Name: in.Name, Phone: in.Phone}
}

type ListContactsRequest struct{}

func (r *ListContactsRequest) Validate() error { return nil }

// ContactIDRequest carries the contact id from the path. Any id is
// accepted here; ids that name no contact are reported as not found.
type ContactIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (r *ContactIDRequest) Validate() error { return nil }

type GetContactRequest = ContactIDRequest

type DeleteContactRequest = ContactIDRequest

type CreateContactRequest struct {
	ContactInput
}

// UpdateContactRequest validates only the path id when bound. The body
// is validated after the contact is known to exist.
type UpdateContactRequest struct {
	ContactIDRequest
	ContactInput
}

func (r *UpdateContactRequest) Validate() error {
	return r.ContactIDRequest.Validate()
}
