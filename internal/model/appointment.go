package model

import (
	"time"

	"github.com/deppfellow/fieldservice/internal/validation"
	"github.com/shopspring/decimal"
)

// Appointment books a technician for a user on a date and time. Date is
// YYYY-MM-DD and Time is HH:MM.
type Appointment struct {
	ID           int64               `json:"id"`
	TechnicianID int64               `json:"technicianId"`
	UserID       int64               `json:"userId"`
	ClientID     *int64              `json:"clientId"`
	ServiceID    *int64              `json:"serviceId"`
	Date         string              `json:"date"`
	Time         string              `json:"time"`
	Description  string              `json:"description"`
	Urgency      string              `json:"urgency"`
	Status       AppointmentStatus   `json:"status"`
	Price        decimal.NullDecimal `json:"price"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type AppointmentPayload struct {
	TechnicianID *int64             `json:"technicianId"`
	UserID       *int64             `json:"userId"`
	ClientID     *int64             `json:"clientId"`
	ServiceID    *int64             `json:"serviceId"`
	Date         *string            `json:"date" validate:"omitempty,date_ymd"`
	Time         *string            `json:"time" validate:"omitempty,time_hm"`
	Description  *string            `json:"description" validate:"omitempty,max=200"`
	Urgency      *string            `json:"urgency" validate:"omitempty,max=200"`
	Status       *AppointmentStatus `json:"status" validate:"omitempty,oneof=PENDENTE CONFIRMADO CONCLUIDO CANCELADO"`
	Price        *decimal.Decimal   `json:"price"`
}

type CreateAppointmentRequest struct {
	AppointmentPayload
}

func (r *CreateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(r)
}

type UpdateAppointmentRequest struct {
	ID int64 `param:"id" json:"-"`
	AppointmentPayload
}

func (r *UpdateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(r)
}

// AppointmentFilter narrows GET /appointments. Zero values mean "any".
type AppointmentFilter struct {
	UserID       int64  `query:"user_id" json:"-" validate:"omitempty,gt=0"`
	TechnicianID int64  `query:"technician_id" json:"-" validate:"omitempty,gt=0"`
	Date         string `query:"date" json:"-" validate:"omitempty,date_ymd"`
}

type ListAppointmentsRequest struct {
	AppointmentFilter
}

func (r *ListAppointmentsRequest) Validate() error {
	return validation.ValidateStruct(r)
}
