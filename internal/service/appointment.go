package service

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
	"github.com/shopspring/decimal"
)

// AppointmentService books technicians for users.
type AppointmentService struct {
	Deps
	appointments AppointmentStore
	technicians  TechnicianStore
	users        UserStore
	clients      ClientStore
	offerings    OfferingStore
}

func NewAppointmentService(d Deps, appointments AppointmentStore, technicians TechnicianStore, users UserStore, clients ClientStore, offerings OfferingStore) *AppointmentService {
	return &AppointmentService{
		Deps:         d,
		appointments: appointments,
		technicians:  technicians,
		users:        users,
		clients:      clients,
		offerings:    offerings,
	}
}

func checkID(v violations, field string, id *int64) {
	if id != nil && v.ok(field) && *id <= 0 {
		v.add(field, "must be a positive number")
	}
}

func checkAppointmentFields(v violations, p *model.AppointmentPayload) {
	checkID(v, "technicianId", p.TechnicianID)
	checkID(v, "userId", p.UserID)
	checkID(v, "clientId", p.ClientID)
	checkID(v, "serviceId", p.ServiceID)
	checkDate(v, "date", p.Date, "", false)
	checkClock(v, "time", p.Time)
	maxLength(v, "description", p.Description, 200)
	maxLength(v, "urgency", p.Urgency, 200)
	checkPrice(v, "price", p.Price)

	if p.Status != nil && v.ok("status") {
		switch *p.Status {
		case model.AppointmentPending, model.AppointmentConfirmed, model.AppointmentDone, model.AppointmentCanceled:
		default:
			v.add("status", msgInvalid)
		}
	}
}

// ensureReferences checks that every id p carries points at an existing row.
// It returns the referenced service offering, if any.
func (s *AppointmentService) ensureReferences(ctx context.Context, p *model.AppointmentPayload) (*model.Offering, error) {
	if p.TechnicianID != nil {
		if _, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Technician, error) {
			return s.technicians.GetByID(ctx, *p.TechnicianID)
		}, "Technician", *p.TechnicianID); err != nil {
			return nil, err
		}
	}
	if p.UserID != nil {
		if _, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.User, error) {
			return s.users.GetByID(ctx, *p.UserID)
		}, "User", *p.UserID); err != nil {
			return nil, err
		}
	}
	if p.ClientID != nil {
		if _, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Client, error) {
			return s.clients.GetByID(ctx, *p.ClientID)
		}, "Client", *p.ClientID); err != nil {
			return nil, err
		}
	}
	if p.ServiceID != nil {
		o, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Offering, error) {
			return s.offerings.GetByID(ctx, *p.ServiceID)
		}, "Service", *p.ServiceID)
		if err != nil {
			return nil, err
		}
		return &o, nil
	}
	return nil, nil
}

// Create books an appointment. Without an explicit price the referenced
// service's price is used.
func (s *AppointmentService) Create(ctx context.Context, p *model.AppointmentPayload) (model.Appointment, error) {
	if p == nil {
		return model.Appointment{}, errNilPayload("appointment")
	}

	v := required(map[string]any{
		"technicianId": p.TechnicianID,
		"userId":       p.UserID,
		"date":         p.Date,
		"time":         p.Time,
	})
	checkAppointmentFields(v, p)
	if err := v.err(); err != nil {
		return model.Appointment{}, err
	}

	offering, err := s.ensureReferences(ctx, p)
	if err != nil {
		return model.Appointment{}, s.fail("create appointment", err)
	}

	a := model.Appointment{
		TechnicianID: *p.TechnicianID,
		UserID:       *p.UserID,
		ClientID:     p.ClientID,
		ServiceID:    p.ServiceID,
		Date:         trimmed(p.Date),
		Time:         trimmed(p.Time),
		Description:  trimmed(p.Description),
		Urgency:      trimmed(p.Urgency),
		Status:       model.AppointmentPending,
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	switch {
	case p.Price != nil:
		a.Price = decimal.NewNullDecimal(p.Price.Round(2))
	case offering != nil:
		a.Price = decimal.NewNullDecimal(offering.Price)
	}

	if err := s.appointments.Create(ctx, &a); err != nil {
		return model.Appointment{}, s.fail("create appointment", err)
	}
	return a, nil
}

func (s *AppointmentService) Update(ctx context.Context, id int64, p *model.AppointmentPayload) (model.Appointment, error) {
	if err := validation.EnsureValidID(id, "Appointment"); err != nil {
		return model.Appointment{}, err
	}
	if p == nil {
		return model.Appointment{}, errNilPayload("appointment")
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}

	v := violations{}
	checkAppointmentFields(v, p)
	if err := v.err(); err != nil {
		return model.Appointment{}, err
	}

	offering, err := s.ensureReferences(ctx, p)
	if err != nil {
		return model.Appointment{}, s.fail("update appointment", err)
	}

	if p.TechnicianID != nil {
		a.TechnicianID = *p.TechnicianID
	}
	if p.UserID != nil {
		a.UserID = *p.UserID
	}
	if p.ClientID != nil {
		a.ClientID = p.ClientID
	}
	if p.ServiceID != nil {
		a.ServiceID = p.ServiceID
	}
	if p.Date != nil {
		a.Date = trimmed(p.Date)
	}
	if p.Time != nil {
		a.Time = trimmed(p.Time)
	}
	if p.Description != nil {
		a.Description = trimmed(p.Description)
	}
	if p.Urgency != nil {
		a.Urgency = trimmed(p.Urgency)
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	switch {
	case p.Price != nil:
		a.Price = decimal.NewNullDecimal(p.Price.Round(2))
	case offering != nil && !a.Price.Valid:
		a.Price = decimal.NewNullDecimal(offering.Price)
	}

	if err := s.appointments.Update(ctx, &a); err != nil {
		return model.Appointment{}, s.fail("update appointment", notFoundOr(err, "Appointment", id))
	}
	return a, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Appointment"); err != nil {
		return err
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		return s.fail("delete appointment", notFoundOr(err, "Appointment", id))
	}
	return nil
}

func (s *AppointmentService) GetByID(ctx context.Context, id int64) (model.Appointment, error) {
	if err := validation.EnsureValidID(id, "Appointment"); err != nil {
		return model.Appointment{}, err
	}
	return s.get(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	appointments, err := s.appointments.List(ctx, filter)
	if err != nil {
		return nil, s.fail("list appointments", err)
	}
	return appointments, nil
}

func (s *AppointmentService) get(ctx context.Context, id int64) (model.Appointment, error) {
	a, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Appointment, error) {
		return s.appointments.GetByID(ctx, id)
	}, "Appointment", id)
	if err != nil {
		return model.Appointment{}, s.fail("find appointment", err)
	}
	return a, nil
}
