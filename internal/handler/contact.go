package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/contacts-service/internal/model"
	"github.com/deppfellow/contacts-service/internal/server"
	"github.com/deppfellow/contacts-service/internal/service"
)

// WelcomeMessage is returned by the root route.
const WelcomeMessage = "Welcome to the Express API"

type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

// Welcome answers GET / with a plain message object, not an envelope.
func (h *ContactHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": WelcomeMessage})
}

func (h *ContactHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListContactsRequest) (model.Envelope, error) {
		return h.contacts.List(c.Request().Context())
	}, http.StatusOK, func() *model.ListContactsRequest { return &model.ListContactsRequest{} })
}

func (h *ContactHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.GetContactRequest) (model.Envelope, error) {
		return h.contacts.Get(c.Request().Context(), req.ID)
	}, http.StatusOK, func() *model.GetContactRequest { return &model.GetContactRequest{} })
}

func (h *ContactHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateContactRequest) (model.Envelope, error) {
		return h.contacts.Create(c.Request().Context(), &req.ContactInput)
	}, http.StatusOK, func() *model.CreateContactRequest { return &model.CreateContactRequest{} })
}

// Update binds the body without validating it; the service reports a
// missing contact before an invalid body.
func (h *ContactHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.UpdateContactRequest) (model.Envelope, error) {
		return h.contacts.Update(c.Request().Context(), req.ID, &req.ContactInput)
	}, http.StatusOK, func() *model.UpdateContactRequest { return &model.UpdateContactRequest{} })
}

func (h *ContactHandler) Delete() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.DeleteContactRequest) (model.Envelope, error) {
		return h.contacts.Delete(c.Request().Context(), req.ID)
	}, http.StatusOK, func() *model.DeleteContactRequest { return &model.DeleteContactRequest{} })
}
