package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

// UserService is what UserHandler needs from the service layer.
type UserService interface {
	Create(ctx context.Context, p *model.UserPayload) (model.User, error)
	Update(ctx context.Context, id int64, p *model.UserPayload) (model.User, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.User, error)
	Activate(ctx context.Context, id int64) (model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context, status *model.Status) ([]model.User, error)
	SearchByName(ctx context.Context, name string) ([]model.User, error)
}

type UserHandler struct {
	Handler
	users UserService
}

func NewUserHandler(s *server.Server, users UserService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) Create(c echo.Context, req *model.CreateUserRequest) (model.User, error) {
	return h.users.Create(c.Request().Context(), &req.UserPayload)
}

func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (model.User, error) {
	return h.users.Update(c.Request().Context(), req.ID, &req.UserPayload)
}

func (h *UserHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.users.Delete(c.Request().Context(), req.ID)
}

func (h *UserHandler) Inactivate(c echo.Context, req *model.IDParam) (model.User, error) {
	return h.users.Inactivate(c.Request().Context(), req.ID)
}

func (h *UserHandler) Activate(c echo.Context, req *model.IDParam) (model.User, error) {
	return h.users.Activate(c.Request().Context(), req.ID)
}

func (h *UserHandler) Get(c echo.Context, req *model.IDParam) (model.User, error) {
	return h.users.GetByID(c.Request().Context(), req.ID)
}

func (h *UserHandler) List(c echo.Context, req *model.ListUsersRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context(), model.Optional(req.Status))
}

func (h *UserHandler) Search(c echo.Context, req *model.SearchUsersRequest) ([]model.User, error) {
	return h.users.SearchByName(c.Request().Context(), req.Name)
}
