package handler

import (
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Contact *ContactHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	// The health check pings the mongo client directly when there is one,
	// so a configured cache never hides the store.
	var store Pinger = services.Contact
	if s.DB != nil {
		store = s.DB
	}

	return &Handlers{
		Contact: NewContactHandler(s, services.Contact),
		Health:  NewHealthHandler(s, store),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
