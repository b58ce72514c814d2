package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type TechnicianService interface {
	Create(ctx context.Context, req *model.CreateTechnicianRequest) (model.Technician, error)
	Update(ctx context.Context, id int64, p *model.TechnicianPayload) (model.Technician, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.Technician, error)
	Activate(ctx context.Context, id int64) (model.Technician, error)
	GetByID(ctx context.Context, id int64) (model.Technician, error)
	List(ctx context.Context, status *model.Status, document *string) ([]model.Technician, error)
	SearchByName(ctx context.Context, name string) ([]model.Technician, error)
	AddRegion(ctx context.Context, technicianID int64, ref model.RegionRef) (model.Region, error)
	RemoveRegion(ctx context.Context, technicianID, regionID int64) error
	Regions(ctx context.Context, technicianID int64) ([]model.Region, error)
	AddSpecialty(ctx context.Context, technicianID int64, ref model.SpecialtyRef) (model.Specialty, error)
	RemoveSpecialty(ctx context.Context, technicianID, specialtyID int64) error
	Specialties(ctx context.Context, technicianID int64) ([]model.Specialty, error)
}

// TechnicianHandler also serves the technician/region and
// technician/specialty links under /technicians/:id.
type TechnicianHandler struct {
	Handler
	technicians TechnicianService
}

func NewTechnicianHandler(s *server.Server, technicians TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{Handler: NewHandler(s), technicians: technicians}
}

func (h *TechnicianHandler) Create(c echo.Context, req *model.CreateTechnicianRequest) (model.Technician, error) {
	return h.technicians.Create(c.Request().Context(), req)
}

func (h *TechnicianHandler) Update(c echo.Context, req *model.UpdateTechnicianRequest) (model.Technician, error) {
	return h.technicians.Update(c.Request().Context(), req.ID, &req.TechnicianPayload)
}

func (h *TechnicianHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.technicians.Delete(c.Request().Context(), req.ID)
}

func (h *TechnicianHandler) Inactivate(c echo.Context, req *model.IDParam) (model.Technician, error) {
	return h.technicians.Inactivate(c.Request().Context(), req.ID)
}

func (h *TechnicianHandler) Activate(c echo.Context, req *model.IDParam) (model.Technician, error) {
	return h.technicians.Activate(c.Request().Context(), req.ID)
}

func (h *TechnicianHandler) Get(c echo.Context, req *model.IDParam) (model.Technician, error) {
	return h.technicians.GetByID(c.Request().Context(), req.ID)
}

func (h *TechnicianHandler) List(c echo.Context, req *model.ListTechniciansRequest) ([]model.Technician, error) {
	return h.technicians.List(c.Request().Context(), model.Optional(req.Status), model.Optional(req.Document))
}

func (h *TechnicianHandler) Search(c echo.Context, req *model.SearchTechniciansRequest) ([]model.Technician, error) {
	return h.technicians.SearchByName(c.Request().Context(), req.Name)
}

func (h *TechnicianHandler) AddRegion(c echo.Context, req *model.AddTechnicianRegionRequest) (model.Region, error) {
	return h.technicians.AddRegion(c.Request().Context(), req.TechnicianID, req.RegionRef)
}

func (h *TechnicianHandler) RemoveRegion(c echo.Context, req *model.RemoveTechnicianRegionRequest) error {
	return h.technicians.RemoveRegion(c.Request().Context(), req.TechnicianID, req.RegionID)
}

func (h *TechnicianHandler) Regions(c echo.Context, req *model.IDParam) ([]model.Region, error) {
	return h.technicians.Regions(c.Request().Context(), req.ID)
}

func (h *TechnicianHandler) AddSpecialty(c echo.Context, req *model.AddTechnicianSpecialtyRequest) (model.Specialty, error) {
	return h.technicians.AddSpecialty(c.Request().Context(), req.TechnicianID, req.SpecialtyRef)
}

func (h *TechnicianHandler) RemoveSpecialty(c echo.Context, req *model.RemoveTechnicianSpecialtyRequest) error {
	return h.technicians.RemoveSpecialty(c.Request().Context(), req.TechnicianID, req.SpecialtyID)
}

func (h *TechnicianHandler) Specialties(c echo.Context, req *model.IDParam) ([]model.Specialty, error) {
	return h.technicians.Specialties(c.Request().Context(), req.ID)
}
