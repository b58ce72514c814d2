package service

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
)

// Store interfaces are satisfied by the pgx repositories. Lookups that match
// nothing return errs.ErrNoRecord; excludeID 0 excludes nothing.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, status *model.Status) ([]model.User, error)
	SearchByName(ctx context.Context, name string) ([]model.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type ClientStore interface {
	Create(ctx context.Context, c *model.Client) error
	Update(ctx context.Context, c *model.Client) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Client, error)
	List(ctx context.Context, status *model.Status, cpf *string) ([]model.Client, error)
	SearchByName(ctx context.Context, name string) ([]model.Client, error)
	ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type TechnicianStore interface {
	Create(ctx context.Context, t *model.Technician) error
	Update(ctx context.Context, t *model.Technician) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Technician, error)
	List(ctx context.Context, status *model.Status, document *string) ([]model.Technician, error)
	SearchByName(ctx context.Context, name string) ([]model.Technician, error)
	ListBySpecialtyName(ctx context.Context, name string) ([]model.Technician, error)
	ExistsByDocument(ctx context.Context, document string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)

	AddRegion(ctx context.Context, technicianID, regionID int64) (model.TechnicianRegion, error)
	HasRegion(ctx context.Context, technicianID, regionID int64) (bool, error)
	RemoveRegion(ctx context.Context, technicianID, regionID int64) error
	DeleteRegions(ctx context.Context, technicianID int64) error
	Regions(ctx context.Context, technicianID int64) ([]model.Region, error)

	AddSpecialty(ctx context.Context, technicianID, specialtyID int64) (model.TechnicianSpecialty, error)
	HasSpecialty(ctx context.Context, technicianID, specialtyID int64) (bool, error)
	RemoveSpecialty(ctx context.Context, technicianID, specialtyID int64) error
	DeleteSpecialties(ctx context.Context, technicianID int64) error
	Specialties(ctx context.Context, technicianID int64) ([]model.Specialty, error)
}

type RegionStore interface {
	Create(ctx context.Context, g *model.Region) error
	Update(ctx context.Context, g *model.Region) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Region, error)
	GetByNameAndCity(ctx context.Context, name, city string) (model.Region, error)
	List(ctx context.Context, status *model.Status, city *string) ([]model.Region, error)
	ExistsByNameAndCity(ctx context.Context, name, city string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type SpecialtyStore interface {
	Create(ctx context.Context, s *model.Specialty) error
	Update(ctx context.Context, s *model.Specialty) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Specialty, error)
	GetByName(ctx context.Context, name string) (model.Specialty, error)
	List(ctx context.Context, status *model.Status) ([]model.Specialty, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type OfferingStore interface {
	Create(ctx context.Context, o *model.Offering) error
	Update(ctx context.Context, o *model.Offering) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Offering, error)
	List(ctx context.Context, status *model.Status, offeringType *string) ([]model.Offering, error)
	SearchByName(ctx context.Context, name string) ([]model.Offering, error)
	Count(ctx context.Context) (int64, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	Update(ctx context.Context, a *model.Appointment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (model.Appointment, error)
	List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error)
	Count(ctx context.Context) (int64, error)
}
