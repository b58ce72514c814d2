package model

import "github.com/deppfellow/fieldservice/internal/validation"

type Region struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

type RegionPayload struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	Status      *Status `json:"status" validate:"omitempty,oneof=ATIVO INATIVO"`
}

type CreateRegionRequest struct {
	RegionPayload
}

func (r *CreateRegionRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateRegionRequest struct {
	ID int64 `param:"id" json:"-"`
	RegionPayload
}

func (r *UpdateRegionRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListRegionsRequest struct {
	StatusFilter
	City string `query:"city" json:"-" validate:"omitempty,max=100"`
}

func (r *ListRegionsRequest) Validate() error {
	return validation.ValidateStruct(r)
}
