package service

import (
	"time"

	"github.com/deppfellow/fieldservice/internal/lib/job"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/repository"
	"github.com/deppfellow/fieldservice/internal/server"
)

type Services struct {
	Users        *UserService
	Clients      *ClientService
	Technicians  *TechnicianService
	Regions      *RegionService
	Specialties  *SpecialtyService
	Offerings    *OfferingService
	Appointments *AppointmentService
	Auth         *AuthService
	Admin        *AdminService
	Seeder       *Seeder
	Job          *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	d := Deps{
		Logger: s.Logger,
		Tx:     repos.Tx,
		Cache:  s.Cache,
		Now:    time.Now,
	}
	if s.Job != nil {
		d.Notifier = s.Job
	}

	hasher := password.NewBcryptHasher(s.Config.Auth.BcryptCost)

	return &Services{
		Users:        NewUserService(d, repos.Users, hasher),
		Clients:      NewClientService(d, repos.Clients, repos.Users, hasher),
		Technicians:  NewTechnicianService(d, repos.Technicians, repos.Users, repos.Regions, repos.Specialties, hasher),
		Regions:      NewRegionService(d, repos.Regions),
		Specialties:  NewSpecialtyService(d, repos.Specialties),
		Offerings:    NewOfferingService(d, repos.Offerings, repos.Technicians),
		Appointments: NewAppointmentService(d, repos.Appointments, repos.Technicians, repos.Users, repos.Clients, repos.Offerings),
		Auth:         NewAuthService(d, repos.Users, hasher),
		Admin: NewAdminService(d, AdminCounters{
			Users:        repos.Users,
			Clients:      repos.Clients,
			Technicians:  repos.Technicians,
			Services:     repos.Offerings,
			Regions:      repos.Regions,
			Specialties:  repos.Specialties,
			Appointments: repos.Appointments,
		}, repos.Users, hasher),
		Seeder: NewSeeder(d, repos.Specialties, repos.Regions, repos.Users, hasher, s.Config.Auth),
		Job:    s.Job,
	}, nil
}
