package model

import (
	"time"

	"github.com/deppfellow/fieldservice/internal/validation"
)

// Technician owns one User and is linked to regions and specialties through
// association rows that carry their own status.
type Technician struct {
	ID          int64       `json:"id"`
	CPFOrCNPJ   string      `json:"cpfCnpj"`
	BirthDate   *string     `json:"birthDate"`
	Phone       string      `json:"phone"`
	PostalCode  string      `json:"postalCode"`
	HouseNumber string      `json:"houseNumber"`
	Complement  string      `json:"complement"`
	Description string      `json:"description"`
	Status      Status      `json:"status"`
	UserID      int64       `json:"userId"`
	User        *User       `json:"user,omitempty"`
	Regions     []Region    `json:"regions,omitempty"`
	Specialties []Specialty `json:"specialties,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TechnicianRegion links a technician to a region.
type TechnicianRegion struct {
	ID           int64  `json:"id"`
	TechnicianID int64  `json:"technicianId"`
	RegionID     int64  `json:"regionId"`
	Status       Status `json:"status"`
}

// TechnicianSpecialty links a technician to a specialty.
type TechnicianSpecialty struct {
	ID           int64  `json:"id"`
	TechnicianID int64  `json:"technicianId"`
	SpecialtyID  int64  `json:"specialtyId"`
	Status       Status `json:"status"`
}

// RegionRef points at an existing region by id, or at a region identified
// by (name, city) that is created when missing.
type RegionRef struct {
	ID   *int64  `json:"id" validate:"omitempty,gt=0"`
	Name *string `json:"name" validate:"omitempty,max=100"`
	City *string `json:"city" validate:"omitempty,max=100"`
}

// SpecialtyRef points at an existing specialty by id or by name.
type SpecialtyRef struct {
	ID   *int64  `json:"id" validate:"omitempty,gt=0"`
	Name *string `json:"name" validate:"omitempty,max=100"`
}

type TechnicianPayload struct {
	CPFOrCNPJ   *string      `json:"cpfCnpj" validate:"omitempty,max=18"`
	BirthDate   *string      `json:"birthDate" validate:"omitempty,date_ymd"`
	Phone       *string      `json:"phone" validate:"omitempty,phone_br"`
	PostalCode  *string      `json:"postalCode" validate:"omitempty,cep"`
	HouseNumber *string      `json:"houseNumber" validate:"omitempty,max=10"`
	Complement  *string      `json:"complement" validate:"omitempty,max=100"`
	Description *string      `json:"description" validate:"omitempty,max=500"`
	Status      *Status      `json:"status" validate:"omitempty,oneof=ATIVO INATIVO"`
	User        *UserPayload `json:"user"`
}

type CreateTechnicianRequest struct {
	TechnicianPayload
	Regions     []RegionRef    `json:"regions" validate:"omitempty,dive"`
	Specialties []SpecialtyRef `json:"specialties" validate:"omitempty,dive"`
}

func (r *CreateTechnicianRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateTechnicianRequest struct {
	ID int64 `param:"id" json:"-"`
	TechnicianPayload
}

func (r *UpdateTechnicianRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListTechniciansRequest struct {
	StatusFilter
	Document string `query:"document" json:"-" validate:"omitempty,cpfcnpj"`
}

func (r *ListTechniciansRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type SearchTechniciansRequest struct {
	SearchByNameQuery
}

func (r *SearchTechniciansRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type AddTechnicianRegionRequest struct {
	TechnicianID int64 `param:"id" json:"-"`
	RegionRef
}

func (r *AddTechnicianRegionRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type RemoveTechnicianRegionRequest struct {
	TechnicianID int64 `param:"id" json:"-"`
	RegionID     int64 `param:"regionId" json:"-"`
}

func (r *RemoveTechnicianRegionRequest) Validate() error {
	return nil
}

type AddTechnicianSpecialtyRequest struct {
	TechnicianID int64 `param:"id" json:"-"`
	SpecialtyRef
}

func (r *AddTechnicianSpecialtyRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type RemoveTechnicianSpecialtyRequest struct {
	TechnicianID int64 `param:"id" json:"-"`
	SpecialtyID  int64 `param:"specialtyId" json:"-"`
}

func (r *RemoveTechnicianSpecialtyRequest) Validate() error {
	return nil
}
