package model

import (
	"time"

	"github.com/deppfellow/fieldservice/internal/validation"
)

// Client owns exactly one User; deleting the client deletes the user.
type Client struct {
	ID        int64     `json:"id"`
	CPF       string    `json:"cpf"`
	BirthDate string    `json:"birthDate"`
	Status    Status    `json:"status"`
	UserID    int64     `json:"userId"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClientPayload struct {
	CPF       *string      `json:"cpf" validate:"omitempty,max=14"`
	BirthDate *string      `json:"birthDate" validate:"omitempty,date_ymd"`
	Status    *Status      `json:"status" validate:"omitempty,oneof=ATIVO INATIVO"`
	User      *UserPayload `json:"user"`
}

type CreateClientRequest struct {
	ClientPayload
}

func (r *CreateClientRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateClientRequest struct {
	ID int64 `param:"id" json:"-"`
	ClientPayload
}

func (r *UpdateClientRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListClientsRequest struct {
	StatusFilter
	CPF string `query:"cpf" json:"-" validate:"omitempty,cpf"`
}

func (r *ListClientsRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type SearchClientsRequest struct {
	SearchByNameQuery
}

func (r *SearchClientsRequest) Validate() error {
	return validation.ValidateStruct(r)
}
