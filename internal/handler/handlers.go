package handler

import (
	"github.com/deppfellow/fieldservice/internal/server"
	"github.com/deppfellow/fieldservice/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health       *HealthHandler
	Users        *UserHandler
	Auth         *AuthHandler
	Clients      *ClientHandler
	Technicians  *TechnicianHandler
	Regions      *RegionHandler
	Specialties  *SpecialtyHandler
	Offerings    *OfferingHandler
	Appointments *AppointmentHandler
	Admin        *AdminHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Users:        NewUserHandler(s, services.Users),
		Auth:         NewAuthHandler(s, services.Auth),
		Clients:      NewClientHandler(s, services.Clients),
		Technicians:  NewTechnicianHandler(s, services.Technicians),
		Regions:      NewRegionHandler(s, services.Regions),
		Specialties:  NewSpecialtyHandler(s, services.Specialties),
		Offerings:    NewOfferingHandler(s, services.Offerings),
		Appointments: NewAppointmentHandler(s, services.Appointments),
		Admin:        NewAdminHandler(s, services.Admin),
	}
}
