// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives bound
// requests from the handler, performs business operations, and calls
// repository methods to interact with the document store.
package service

import (
	"github.com/deppfellow/contacts-service/internal/repository"
	"github.com/deppfellow/contacts-service/internal/server"
)

type Services struct {
	Contact *ContactService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Contact: NewContactService(repos.Contact),
	}
}
