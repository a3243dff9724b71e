package service

import (
	"context"
	"errors"

	"github.com/deppfellow/contacts-service/internal/errs"
	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/storeerr"
	"github.com/deppfellow/contacts-service/internal/validation"
)

// Envelope messages.
const (
	MessageRequestSuccessful = "Request successful"
	MessageContactCreated    = "Contact successfully created"
	MessageContactUpdated    = "Contact successfully updated"
	MessageContactDeleted    = "Contact successfully deleted"
	MessageContactNotFound   = "Contact not found"
)

// ContactService implements the five contact operations. Every method
// returns either an envelope or an *errs.HTTPError.
type ContactService struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) List(ctx context.Context) (model.Envelope, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return model.Envelope{}, storeerr.HandleError(err)
	}

	return model.Success(MessageRequestSuccessful, contacts), nil
}

func (s *ContactService) Get(ctx context.Context, id string) (model.Envelope, error) {
	contact, err := s.find(ctx, id)
	if err != nil {
		return model.Envelope{}, err
	}

	return model.Success(MessageRequestSuccessful, contact), nil
}

// Create inserts the contact and answers with the stored record, so the
// response carries the id the store assigned.
func (s *ContactService) Create(ctx context.Context, in *model.ContactInput) (model.Envelope, error) {
	if err := validation.Validate(in); err != nil {
		return model.Envelope{}, err
	}

	created, err := s.repo.Create(ctx, in.Fields())
	if err != nil {
		return model.Envelope{}, storeerr.HandleError(err)
	}

	contact, err := s.repo.GetByID(ctx, created.ID.Hex())
	if err != nil {
		return model.Envelope{}, storeerr.HandleError(err)
	}

	return model.Success(MessageContactCreated, contact), nil
}

// Update checks the contact exists before validating the body, so an
// unknown id is reported as not found even with an invalid body.
func (s *ContactService) Update(ctx context.Context, id string, in *model.ContactInput) (model.Envelope, error) {
	if _, err := s.find(ctx, id); err != nil {
		return model.Envelope{}, err
	}

	if err := validation.Validate(in); err != nil {
		return model.Envelope{}, err
	}

	fields := in.Fields()
	if err := s.repo.UpdateByID(ctx, id, fields); err != nil {
		return model.Envelope{}, s.handleLookupError(err)
	}

	return model.Success(MessageContactUpdated, fields), nil
}

func (s *ContactService) Delete(ctx context.Context, id string) (model.Envelope, error) {
	if _, err := s.find(ctx, id); err != nil {
		return model.Envelope{}, err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return model.Envelope{}, s.handleLookupError(err)
	}

	return model.Success(MessageContactDeleted, nil), nil
}

func (s *ContactService) find(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleLookupError(err)
	}
	return contact, nil
}

// handleLookupError reports missing contacts with the contact message
// and everything else as a store error.
func (s *ContactService) handleLookupError(err error) error {
	if !storeerr.IsNotFound(err) {
		return storeerr.HandleError(err)
	}

	var httpErr *errs.HTTPError
	if errors.As(storeerr.HandleError(err), &httpErr) {
		return httpErr.WithMessage(MessageContactNotFound)
	}
	return errs.NewNotFoundError(MessageContactNotFound, nil).WithCause(err)
}

// Ping reports whether the contact store is reachable.
func (s *ContactService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
