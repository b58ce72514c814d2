package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type LoginService interface {
	Login(ctx context.Context, email, plain *string) (model.User, error)
}

// AuthHandler checks credentials. There is no session or token: a successful
// login answers with the user record.
type AuthHandler struct {
	Handler
	auth LoginService
}

func NewAuthHandler(s *server.Server, auth LoginService) *AuthHandler {
	return &AuthHandler{Handler: NewHandler(s), auth: auth}
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (model.User, error) {
	return h.auth.Login(c.Request().Context(), req.Email, req.Password)
}
