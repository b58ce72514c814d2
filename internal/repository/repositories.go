package repository

import (
	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/server"
)

// Repositories is a container for all repository instances plus the
// Transactor that services use to group writes.
type Repositories struct {
	Users        *UserRepository
	Clients      *ClientRepository
	Technicians  *TechnicianRepository
	Regions      *RegionRepository
	Specialties  *SpecialtyRepository
	Offerings    *OfferingRepository
	Appointments *AppointmentRepository
	Tx           *database.Transactor
}

// NewRepositories builds every repository on the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(s.DB),
		Clients:      NewClientRepository(s.DB),
		Technicians:  NewTechnicianRepository(s.DB),
		Regions:      NewRegionRepository(s.DB),
		Specialties:  NewSpecialtyRepository(s.DB),
		Offerings:    NewOfferingRepository(s.DB),
		Appointments: NewAppointmentRepository(s.DB),
		Tx:           database.NewTransactor(s.DB),
	}
}
