package service

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

type SpecialtyService struct {
	Deps
	specialties SpecialtyStore
}

func NewSpecialtyService(d Deps, specialties SpecialtyStore) *SpecialtyService {
	return &SpecialtyService{Deps: d, specialties: specialties}
}

func checkSpecialtyFields(v violations, p *model.SpecialtyPayload) {
	notBlank(v, "name", p.Name)
	maxLength(v, "name", p.Name, 100)
	maxLength(v, "description", p.Description, 200)
	checkStatus(v, "status", p.Status, model.StatusActive, model.StatusInactive)
}

func (s *SpecialtyService) Create(ctx context.Context, p *model.SpecialtyPayload) (model.Specialty, error) {
	if p == nil {
		return model.Specialty{}, errNilPayload("specialty")
	}

	v := required(map[string]any{"name": p.Name})
	checkSpecialtyFields(v, p)
	if err := v.err(); err != nil {
		return model.Specialty{}, err
	}

	sp := model.Specialty{
		Name:        trimmed(p.Name),
		Description: trimmed(p.Description),
		Status:      model.StatusActive,
	}
	if p.Status != nil {
		sp.Status = *p.Status
	}

	if err := s.ensureNameFree(ctx, sp.Name, 0); err != nil {
		return model.Specialty{}, s.fail("create specialty", err)
	}

	if err := s.specialties.Create(ctx, &sp); err != nil {
		return model.Specialty{}, s.fail("create specialty", err)
	}
	return sp, nil
}

func (s *SpecialtyService) Update(ctx context.Context, id int64, p *model.SpecialtyPayload) (model.Specialty, error) {
	if err := validation.EnsureValidID(id, "Specialty"); err != nil {
		return model.Specialty{}, err
	}
	if p == nil {
		return model.Specialty{}, errNilPayload("specialty")
	}

	sp, err := s.get(ctx, id)
	if err != nil {
		return model.Specialty{}, err
	}

	v := violations{}
	checkSpecialtyFields(v, p)
	if err := v.err(); err != nil {
		return model.Specialty{}, err
	}

	if p.Name != nil {
		sp.Name = trimmed(p.Name)
		if err := s.ensureNameFree(ctx, sp.Name, id); err != nil {
			return model.Specialty{}, s.fail("update specialty", err)
		}
	}
	if p.Description != nil {
		sp.Description = trimmed(p.Description)
	}
	if p.Status != nil {
		sp.Status = *p.Status
	}

	if err := s.specialties.Update(ctx, &sp); err != nil {
		return model.Specialty{}, s.fail("update specialty", notFoundOr(err, "Specialty", id))
	}
	return sp, nil
}

func (s *SpecialtyService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Specialty"); err != nil {
		return err
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.specialties.Delete(ctx, id); err != nil {
		return s.fail("delete specialty", notFoundOr(err, "Specialty", id))
	}
	return nil
}

func (s *SpecialtyService) Inactivate(ctx context.Context, id int64) (model.Specialty, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *SpecialtyService) Activate(ctx context.Context, id int64) (model.Specialty, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *SpecialtyService) setStatus(ctx context.Context, id int64, status model.Status) (model.Specialty, error) {
	if err := validation.EnsureValidID(id, "Specialty"); err != nil {
		return model.Specialty{}, err
	}

	sp, err := s.get(ctx, id)
	if err != nil {
		return model.Specialty{}, err
	}

	if err := s.specialties.UpdateStatus(ctx, id, status); err != nil {
		return model.Specialty{}, s.fail("change specialty status", notFoundOr(err, "Specialty", id))
	}
	sp.Status = status
	return sp, nil
}

func (s *SpecialtyService) GetByID(ctx context.Context, id int64) (model.Specialty, error) {
	if err := validation.EnsureValidID(id, "Specialty"); err != nil {
		return model.Specialty{}, err
	}
	return s.get(ctx, id)
}

func (s *SpecialtyService) List(ctx context.Context, status *model.Status) ([]model.Specialty, error) {
	specialties, err := s.specialties.List(ctx, status)
	if err != nil {
		return nil, s.fail("list specialties", err)
	}
	return specialties, nil
}

func (s *SpecialtyService) get(ctx context.Context, id int64) (model.Specialty, error) {
	sp, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Specialty, error) {
		return s.specialties.GetByID(ctx, id)
	}, "Specialty", id)
	if err != nil {
		return model.Specialty{}, s.fail("find specialty", err)
	}
	return sp, nil
}

func (s *SpecialtyService) ensureNameFree(ctx context.Context, name string, excludeID int64) error {
	return validation.EnsureNotExists(ctx, func(ctx context.Context) (bool, error) {
		return s.specialties.ExistsByName(ctx, name, excludeID)
	}, "name", name)
}
