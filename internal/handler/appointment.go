package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	Create(ctx context.Context, p *model.AppointmentPayload) (model.Appointment, error)
	Update(ctx context.Context, id int64, p *model.AppointmentPayload) (model.Appointment, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Appointment, error)
	List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error)
}

type AppointmentHandler struct {
	Handler
	appointments AppointmentService
}

func NewAppointmentHandler(s *server.Server, appointments AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Handler: NewHandler(s), appointments: appointments}
}

func (h *AppointmentHandler) Create(c echo.Context, req *model.CreateAppointmentRequest) (model.Appointment, error) {
	return h.appointments.Create(c.Request().Context(), &req.AppointmentPayload)
}

func (h *AppointmentHandler) Update(c echo.Context, req *model.UpdateAppointmentRequest) (model.Appointment, error) {
	return h.appointments.Update(c.Request().Context(), req.ID, &req.AppointmentPayload)
}

func (h *AppointmentHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.appointments.Delete(c.Request().Context(), req.ID)
}

func (h *AppointmentHandler) Get(c echo.Context, req *model.IDParam) (model.Appointment, error) {
	return h.appointments.GetByID(c.Request().Context(), req.ID)
}

func (h *AppointmentHandler) List(c echo.Context, req *model.ListAppointmentsRequest) ([]model.Appointment, error) {
	return h.appointments.List(c.Request().Context(), req.AppointmentFilter)
}
