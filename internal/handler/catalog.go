package handler

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/labstack/echo/v4"
)

type RegionService interface {
	Create(ctx context.Context, p *model.RegionPayload) (model.Region, error)
	Update(ctx context.Context, id int64, p *model.RegionPayload) (model.Region, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.Region, error)
	Activate(ctx context.Context, id int64) (model.Region, error)
	GetByID(ctx context.Context, id int64) (model.Region, error)
	List(ctx context.Context, status *model.Status, city *string) ([]model.Region, error)
}

type RegionHandler struct {
	Handler
	regions RegionService
}

func NewRegionHandler(s *server.Server, regions RegionService) *RegionHandler {
	return &RegionHandler{Handler: NewHandler(s), regions: regions}
}

func (h *RegionHandler) Create(c echo.Context, req *model.CreateRegionRequest) (model.Region, error) {
	return h.regions.Create(c.Request().Context(), &req.RegionPayload)
}

func (h *RegionHandler) Update(c echo.Context, req *model.UpdateRegionRequest) (model.Region, error) {
	return h.regions.Update(c.Request().Context(), req.ID, &req.RegionPayload)
}

func (h *RegionHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.regions.Delete(c.Request().Context(), req.ID)
}

func (h *RegionHandler) Inactivate(c echo.Context, req *model.IDParam) (model.Region, error) {
	return h.regions.Inactivate(c.Request().Context(), req.ID)
}

func (h *RegionHandler) Activate(c echo.Context, req *model.IDParam) (model.Region, error) {
	return h.regions.Activate(c.Request().Context(), req.ID)
}

func (h *RegionHandler) Get(c echo.Context, req *model.IDParam) (model.Region, error) {
	return h.regions.GetByID(c.Request().Context(), req.ID)
}

func (h *RegionHandler) List(c echo.Context, req *model.ListRegionsRequest) ([]model.Region, error) {
	return h.regions.List(c.Request().Context(), model.Optional(req.Status), model.Optional(req.City))
}

type SpecialtyService interface {
	Create(ctx context.Context, p *model.SpecialtyPayload) (model.Specialty, error)
	Update(ctx context.Context, id int64, p *model.SpecialtyPayload) (model.Specialty, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.Specialty, error)
	Activate(ctx context.Context, id int64) (model.Specialty, error)
	GetByID(ctx context.Context, id int64) (model.Specialty, error)
	List(ctx context.Context, status *model.Status) ([]model.Specialty, error)
}

type SpecialtyHandler struct {
	Handler
	specialties SpecialtyService
}

func NewSpecialtyHandler(s *server.Server, specialties SpecialtyService) *SpecialtyHandler {
	return &SpecialtyHandler{Handler: NewHandler(s), specialties: specialties}
}

func (h *SpecialtyHandler) Create(c echo.Context, req *model.CreateSpecialtyRequest) (model.Specialty, error) {
	return h.specialties.Create(c.Request().Context(), &req.SpecialtyPayload)
}

func (h *SpecialtyHandler) Update(c echo.Context, req *model.UpdateSpecialtyRequest) (model.Specialty, error) {
	return h.specialties.Update(c.Request().Context(), req.ID, &req.SpecialtyPayload)
}

func (h *SpecialtyHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.specialties.Delete(c.Request().Context(), req.ID)
}

func (h *SpecialtyHandler) Inactivate(c echo.Context, req *model.IDParam) (model.Specialty, error) {
	return h.specialties.Inactivate(c.Request().Context(), req.ID)
}

func (h *SpecialtyHandler) Activate(c echo.Context, req *model.IDParam) (model.Specialty, error) {
	return h.specialties.Activate(c.Request().Context(), req.ID)
}

func (h *SpecialtyHandler) Get(c echo.Context, req *model.IDParam) (model.Specialty, error) {
	return h.specialties.GetByID(c.Request().Context(), req.ID)
}

func (h *SpecialtyHandler) List(c echo.Context, req *model.ListSpecialtiesRequest) ([]model.Specialty, error) {
	return h.specialties.List(c.Request().Context(), model.Optional(req.Status))
}

type OfferingService interface {
	Create(ctx context.Context, p *model.OfferingPayload) (model.Offering, error)
	Update(ctx context.Context, id int64, p *model.OfferingPayload) (model.Offering, error)
	Delete(ctx context.Context, id int64) error
	Inactivate(ctx context.Context, id int64) (model.Offering, error)
	Activate(ctx context.Context, id int64) (model.Offering, error)
	GetByID(ctx context.Context, id int64) (model.Offering, error)
	List(ctx context.Context, status *model.Status, offeringType *string) ([]model.Offering, error)
	SearchByName(ctx context.Context, name string) ([]model.Offering, error)
	Technicians(ctx context.Context, id int64) ([]model.Technician, error)
}

// OfferingHandler serves the service catalog under /services.
type OfferingHandler struct {
	Handler
	offerings OfferingService
}

func NewOfferingHandler(s *server.Server, offerings OfferingService) *OfferingHandler {
	return &OfferingHandler{Handler: NewHandler(s), offerings: offerings}
}

func (h *OfferingHandler) Create(c echo.Context, req *model.CreateOfferingRequest) (model.Offering, error) {
	return h.offerings.Create(c.Request().Context(), &req.OfferingPayload)
}

func (h *OfferingHandler) Update(c echo.Context, req *model.UpdateOfferingRequest) (model.Offering, error) {
	return h.offerings.Update(c.Request().Context(), req.ID, &req.OfferingPayload)
}

func (h *OfferingHandler) Delete(c echo.Context, req *model.IDParam) error {
	return h.offerings.Delete(c.Request().Context(), req.ID)
}

func (h *OfferingHandler) Inactivate(c echo.Context, req *model.IDParam) (model.Offering, error) {
	return h.offerings.Inactivate(c.Request().Context(), req.ID)
}

func (h *OfferingHandler) Activate(c echo.Context, req *model.IDParam) (model.Offering, error) {
	return h.offerings.Activate(c.Request().Context(), req.ID)
}

func (h *OfferingHandler) Get(c echo.Context, req *model.IDParam) (model.Offering, error) {
	return h.offerings.GetByID(c.Request().Context(), req.ID)
}

func (h *OfferingHandler) List(c echo.Context, req *model.ListOfferingsRequest) ([]model.Offering, error) {
	return h.offerings.List(c.Request().Context(), model.Optional(req.Status), model.Optional(req.Type))
}

func (h *OfferingHandler) Search(c echo.Context, req *model.SearchOfferingsRequest) ([]model.Offering, error) {
	return h.offerings.SearchByName(c.Request().Context(), req.Name)
}

// Technicians lists the technicians whose specialties match the service type.
func (h *OfferingHandler) Technicians(c echo.Context, req *model.IDParam) ([]model.Technician, error) {
	return h.offerings.Technicians(c.Request().Context(), req.ID)
}
