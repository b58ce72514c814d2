package model

import (
	"github.com/deppfellow/fieldservice/internal/validation"
	"github.com/shopspring/decimal"
)

// Offering is a service the company sells ("serviço"), priced in BRL.
type Offering struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Duration string          `json:"duration"`
	Price    decimal.Decimal `json:"price"`
	Status   Status          `json:"status"`
}

type OfferingPayload struct {
	Name     *string          `json:"name" validate:"omitempty,max=100"`
	Type     *string          `json:"type" validate:"omitempty,max=100"`
	Duration *string          `json:"duration" validate:"omitempty,max=50"`
	Price    *decimal.Decimal `json:"price"`
	Status   *Status          `json:"status" validate:"omitempty,oneof=ATIVO INATIVO"`
}

type CreateOfferingRequest struct {
	OfferingPayload
}

func (r *CreateOfferingRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateOfferingRequest struct {
	ID int64 `param:"id" json:"-"`
	OfferingPayload
}

func (r *UpdateOfferingRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListOfferingsRequest struct {
	StatusFilter
	Type string `query:"type" json:"-" validate:"omitempty,max=100"`
}

func (r *ListOfferingsRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type SearchOfferingsRequest struct {
	SearchByNameQuery
}

func (r *SearchOfferingsRequest) Validate() error {
	return validation.ValidateStruct(r)
}
