package model

import (
	"time"

	"github.com/deppfellow/fieldservice/internal/validation"
)

type User struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	AccessLevel  AccessLevel `json:"accessLevel"`
	Status       Status      `json:"status"`
	RegisteredAt time.Time   `json:"registeredAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UserPayload is the user part of every create/update request, standalone or
// nested under a client or technician.
type UserPayload struct {
	Name        *string      `json:"name" validate:"omitempty,max=100"`
	Email       *string      `json:"email" validate:"omitempty,max=100"`
	Password    *string      `json:"password" validate:"omitempty,max=72"`
	AccessLevel *AccessLevel `json:"accessLevel" validate:"omitempty,oneof=ADMIN USER"`
	Status      *Status      `json:"status" validate:"omitempty,oneof=ATIVO INATIVO TROCAR_SENHA"`
}

type CreateUserRequest struct {
	UserPayload
}

func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateUserRequest struct {
	ID int64 `param:"id" json:"-"`
	UserPayload
}

func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type ListUsersRequest struct {
	StatusFilter
}

func (r *ListUsersRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type SearchUsersRequest struct {
	SearchByNameQuery
}

func (r *SearchUsersRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type LoginRequest struct {
	Email    *string `json:"email" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r)
}
