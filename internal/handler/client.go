package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type ClientService interface {
	Create(ctx context.Context, p *model.ClientPayload) (model.Client, error)
	Update(ctx context.Context, id int64, p *model.ClientPayload) (model.Client, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.Client, error)
	Activate(ctx context.Context, id int64) (model.Client, error)
	GetByID(ctx context.Context, id int64) (model.Client, error)
	List(ctx context.Context, status *model.Status, cpf *string) ([]model.Client, error)
	SearchByName(ctx context.Context, name string) ([]model.Client, error)
}

type ClientHandler struct {
	Handler
	clients ClientService
}

func NewClientHandler(s *server.Server, clients ClientService) *ClientHandler {
	return &ClientHandler{Handler: NewHandler(s), clients: clients}
}

func (h *ClientHandler) Create(c echo.Context, req *model.CreateClientRequest) (model.Client, error) {
	return h.clients.Create(c.Request().Context(), &req.ClientPayload)
}

func (h *ClientHandler) Update(c echo.Context, req *model.UpdateClientRequest) (model.Client, error) {
	return h.clients.Update(c.Request().Context(), req.ID, &req.ClientPayload)
}

func (h *ClientHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.clients.Delete(c.Request().Context(), req.ID)
}

func (h *ClientHandler) Inactivate(c echo.Context, req *model.IDParam) (model.Client, error) {
	return h.clients.Inactivate(c.Request().Context(), req.ID)
}

func (h *ClientHandler) Activate(c echo.Context, req *model.IDParam) (model.Client, error) {
	return h.clients.Activate(c.Request().Context(), req.ID)
}

func (h *ClientHandler) Get(c echo.Context, req *model.IDParam) (model.Client, error) {
	return h.clients.GetByID(c.Request().Context(), req.ID)
}

func (h *ClientHandler) List(c echo.Context, req *model.ListClientsRequest) ([]model.Client, error) {
	return h.clients.List(c.Request().Context(), model.Optional(req.Status), model.Optional(req.CPF))
}

func (h *ClientHandler) Search(c echo.Context, req *model.SearchClientsRequest) ([]model.Client, error) {
	return h.clients.SearchByName(c.Request().Context(), req.Name)
}
