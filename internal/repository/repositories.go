// Package repository handles all interactions with the document store.
//
// It contains the queries used to fetch, persist, update or delete
// contacts, abstracting driver details away from the service layer.
// Every error it returns is classified by storeerr.
package repository

import (
	"fmt"

	"github.com/deppfellow/contacts-service/internal/config"
	"github.com/deppfellow/contacts-service/internal/server"
)

// Repositories holds every repository instance.
type Repositories struct {
	Contact ContactRepository
}

// NewRepositories picks the contact repository for the configured driver,
// fronted by the redis cache when one is configured.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var contacts ContactRepository

	switch s.Config.Database.Driver {
	case config.DriverMongo:
		if s.DB == nil {
			return nil, fmt.Errorf("mongo driver selected but no database connection")
		}
		contacts = NewContactMongo(s.DB.DB.Collection(s.Config.Database.Collection), s.Config.Database.QueryTimeout)
	case config.DriverMemory:
		contacts = NewContactMemory(s.Config.Database.Collection)
	default:
		return nil, fmt.Errorf("unknown database driver %q", s.Config.Database.Driver)
	}

	if s.Redis != nil {
		contacts = NewContactCache(contacts, s.Redis, s.Config.Redis.TTL, s.Logger)
	}

	return &Repositories{Contact: contacts}, nil
}
