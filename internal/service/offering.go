package service

import (
	"context"
	"strings"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
	"github.com/shopspring/decimal"
)

// OfferingService manages the services sold to clients.
type OfferingService struct {
	Deps
	offerings   OfferingStore
	technicians TechnicianStore
}

func NewOfferingService(d Deps, offerings OfferingStore, technicians TechnicianStore) *OfferingService {
	return &OfferingService{Deps: d, offerings: offerings, technicians: technicians}
}

func checkOfferingFields(v violations, p *model.OfferingPayload) {
	notBlank(v, "name", p.Name)
	maxLength(v, "name", p.Name, 100)
	notBlank(v, "type", p.Type)
	maxLength(v, "type", p.Type, 100)
	maxLength(v, "duration", p.Duration, 50)
	checkStatus(v, "status", p.Status, model.StatusActive, model.StatusInactive)
}

// checkPrice runs on the value that gets stored, i.e. rounded to cents.
func checkPrice(v violations, field string, price *decimal.Decimal) {
	if price != nil && v.ok(field) && !price.Round(2).IsPositive() {
		v.add(field, msgPositive)
	}
}

func (s *OfferingService) Create(ctx context.Context, p *model.OfferingPayload) (model.Offering, error) {
	if p == nil {
		return model.Offering{}, errNilPayload("service")
	}

	v := required(map[string]any{"name": p.Name, "type": p.Type, "price": p.Price})
	checkOfferingFields(v, p)
	checkPrice(v, "price", p.Price)
	if err := v.err(); err != nil {
		return model.Offering{}, err
	}

	o := model.Offering{
		Name:     trimmed(p.Name),
		Type:     trimmed(p.Type),
		Duration: trimmed(p.Duration),
		Price:    p.Price.Round(2),
		Status:   model.StatusActive,
	}
	if p.Status != nil {
		o.Status = *p.Status
	}

	if err := s.offerings.Create(ctx, &o); err != nil {
		return model.Offering{}, s.fail("create service", err)
	}
	return o, nil
}

func (s *OfferingService) Update(ctx context.Context, id int64, p *model.OfferingPayload) (model.Offering, error) {
	if err := validation.EnsureValidID(id, "Service"); err != nil {
		return model.Offering{}, err
	}
	if p == nil {
		return model.Offering{}, errNilPayload("service")
	}

	o, err := s.get(ctx, id)
	if err != nil {
		return model.Offering{}, err
	}

	v := violations{}
	checkOfferingFields(v, p)
	checkPrice(v, "price", p.Price)
	if err := v.err(); err != nil {
		return model.Offering{}, err
	}

	if p.Name != nil {
		o.Name = trimmed(p.Name)
	}
	if p.Type != nil {
		o.Type = trimmed(p.Type)
	}
	if p.Duration != nil {
		o.Duration = trimmed(p.Duration)
	}
	if p.Price != nil {
		o.Price = p.Price.Round(2)
	}
	if p.Status != nil {
		o.Status = *p.Status
	}

	if err := s.offerings.Update(ctx, &o); err != nil {
		return model.Offering{}, s.fail("update service", notFoundOr(err, "Service", id))
	}
	return o, nil
}

// Delete fails with InvalidOperation while appointments reference the service.
func (s *OfferingService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Service"); err != nil {
		return err
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.offerings.Delete(ctx, id); err != nil {
		return s.fail("delete service", notFoundOr(err, "Service", id))
	}
	return nil
}

func (s *OfferingService) Inactivate(ctx context.Context, id int64) (model.Offering, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *OfferingService) Activate(ctx context.Context, id int64) (model.Offering, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *OfferingService) setStatus(ctx context.Context, id int64, status model.Status) (model.Offering, error) {
	if err := validation.EnsureValidID(id, "Service"); err != nil {
		return model.Offering{}, err
	}

	o, err := s.get(ctx, id)
	if err != nil {
		return model.Offering{}, err
	}

	if err := s.offerings.UpdateStatus(ctx, id, status); err != nil {
		return model.Offering{}, s.fail("change service status", notFoundOr(err, "Service", id))
	}
	o.Status = status
	return o, nil
}

func (s *OfferingService) GetByID(ctx context.Context, id int64) (model.Offering, error) {
	if err := validation.EnsureValidID(id, "Service"); err != nil {
		return model.Offering{}, err
	}
	return s.get(ctx, id)
}

func (s *OfferingService) List(ctx context.Context, status *model.Status, offeringType *string) ([]model.Offering, error) {
	if offeringType != nil && strings.TrimSpace(*offeringType) == "" {
		offeringType = nil
	}

	offerings, err := s.offerings.List(ctx, status, offeringType)
	if err != nil {
		return nil, s.fail("list services", err)
	}
	return offerings, nil
}

func (s *OfferingService) SearchByName(ctx context.Context, name string) ([]model.Offering, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.Offering{}, nil
	}

	offerings, err := s.offerings.SearchByName(ctx, name)
	if err != nil {
		return nil, s.fail("search services", err)
	}
	return offerings, nil
}

// Technicians lists the active technicians holding a specialty named after
// the service type.
func (s *OfferingService) Technicians(ctx context.Context, id int64) ([]model.Technician, error) {
	if err := validation.EnsureValidID(id, "Service"); err != nil {
		return nil, err
	}

	o, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	technicians, err := s.technicians.ListBySpecialtyName(ctx, o.Type)
	if err != nil {
		return nil, s.fail("list technicians for service", err)
	}
	return technicians, nil
}

func (s *OfferingService) get(ctx context.Context, id int64) (model.Offering, error) {
	o, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Offering, error) {
		return s.offerings.GetByID(ctx, id)
	}, "Service", id)
	if err != nil {
		return model.Offering{}, s.fail("find service", err)
	}
	return o, nil
}
