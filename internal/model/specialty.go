package model

import "github.com/deppfellow/fieldservice/internal/validation"

type Specialty struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

type SpecialtyPayload struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Status      *Status `json:"status" validate:"omitempty,oneof=ATIVO INATIVO"`
}

type CreateSpecialtyRequest struct {
	SpecialtyPayload
}

func (r *CreateSpecialtyRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateSpecialtyRequest struct {
	ID int64 `param:"id" json:"-"`
	SpecialtyPayload
}

func (r *UpdateSpecialtyRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListSpecialtiesRequest struct {
	StatusFilter
}

func (r *ListSpecialtiesRequest) Validate() error {
	return validation.ValidateStruct(r)
}
