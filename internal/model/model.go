// Package model holds the entities persisted by the repositories and the
// request payloads accepted by the HTTP layer.
//
// Payload fields are pointers: a nil field means "not sent", which is what
// lets updates overwrite only what the caller provided.
package model

// Status is the lifecycle flag shared by users, clients, technicians,
// regions, specialties, service offerings and association rows.
type Status string

const (
	StatusActive         Status = "ATIVO"
	StatusInactive       Status = "INATIVO"
	StatusChangePassword Status = "TROCAR_SENHA"
)

// AccessLevel is the role of a User.
type AccessLevel string

const (
	AccessLevelAdmin AccessLevel = "ADMIN"
	AccessLevelUser  AccessLevel = "USER"
)

// AppointmentStatus tracks an appointment from booking to completion.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDENTE"
	AppointmentConfirmed AppointmentStatus = "CONFIRMADO"
	AppointmentDone      AppointmentStatus = "CONCLUIDO"
	AppointmentCanceled  AppointmentStatus = "CANCELADO"
)

// IDParam binds the :id path segment.
type IDParam struct {
	ID int64 `param:"id" json:"-"`
}

func (p *IDParam) Validate() error {
	return nil
}

// StatusFilter binds the optional ?status= query parameter of list endpoints.
// Query filters are plain values; an empty one means "no filter".
type StatusFilter struct {
	Status Status `query:"status" json:"-" validate:"omitempty,oneof=ATIVO INATIVO TROCAR_SENHA"`
}

// SearchByNameQuery binds ?name= on search endpoints.
type SearchByNameQuery struct {
	Name string `query:"name" json:"-" validate:"required,max=100"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Optional is Ptr for filters: the zero value maps to nil.
func Optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
