package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/middleware"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type AdminService interface {
	Stats(ctx context.Context) (model.DashboardStats, error)
	RehashPasswords(ctx context.Context) (model.RehashResult, error)
}

// AdminHandler serves /admin. The route group is guarded by
// AuthMiddleware.RequireAdmin, so every call here comes from an ADMIN user.
type AdminHandler struct {
	Handler
	admin AdminService
}

func NewAdminHandler(s *server.Server, admin AdminService) *AdminHandler {
	return &AdminHandler{Handler: NewHandler(s), admin: admin}
}

func (h *AdminHandler) Stats(c echo.Context, _ *model.EmptyRequest) (model.DashboardStats, error) {
	return h.admin.Stats(c.Request().Context())
}

func (h *AdminHandler) RehashPasswords(c echo.Context, _ *model.EmptyRequest) (model.RehashResult, error) {
	result, err := h.admin.RehashPasswords(c.Request().Context())
	if err != nil {
		return result, err
	}

	middleware.GetLogger(c).Info().
		Int("checked", result.Checked).
		Int("rehashed", result.Rehashed).
		Msg("stored passwords rehashed")

	return result, nil
}
