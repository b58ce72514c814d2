package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

type RegionService struct {
	Deps
	regions RegionStore
}

func NewRegionService(d Deps, regions RegionStore) *RegionService {
	return &RegionService{Deps: d, regions: regions}
}

func checkRegionFields(v violations, p *model.RegionPayload) {
	notBlank(v, "name", p.Name)
	maxLength(v, "name", p.Name, 100)
	notBlank(v, "city", p.City)
	maxLength(v, "city", p.City, 100)
	maxLength(v, "description", p.Description, 200)
	checkStatus(v, "status", p.Status, model.StatusActive, model.StatusInactive)
}

func (s *RegionService) Create(ctx context.Context, p *model.RegionPayload) (model.Region, error) {
	if p == nil {
		return model.Region{}, errNilPayload("region")
	}

	v := required(map[string]any{"name": p.Name, "city": p.City})
	checkRegionFields(v, p)
	if err := v.err(); err != nil {
		return model.Region{}, err
	}

	g := model.Region{
		Name:        trimmed(p.Name),
		City:        trimmed(p.City),
		Description: trimmed(p.Description),
		Status:      model.StatusActive,
	}
	if p.Status != nil {
		g.Status = *p.Status
	}

	if err := s.ensureUnique(ctx, g.Name, g.City, 0); err != nil {
		return model.Region{}, s.fail("create region", err)
	}

	if err := s.regions.Create(ctx, &g); err != nil {
		return model.Region{}, s.fail("create region", err)
	}
	return g, nil
}

func (s *RegionService) Update(ctx context.Context, id int64, p *model.RegionPayload) (model.Region, error) {
	if err := validation.EnsureValidID(id, "Region"); err != nil {
		return model.Region{}, err
	}
	if p == nil {
		return model.Region{}, errNilPayload("region")
	}

	g, err := s.get(ctx, id)
	if err != nil {
		return model.Region{}, err
	}

	v := violations{}
	checkRegionFields(v, p)
	if err := v.err(); err != nil {
		return model.Region{}, err
	}

	if p.Name != nil {
		g.Name = trimmed(p.Name)
	}
	if p.City != nil {
		g.City = trimmed(p.City)
	}
	if p.Description != nil {
		g.Description = trimmed(p.Description)
	}
	if p.Status != nil {
		g.Status = *p.Status
	}

	if p.Name != nil || p.City != nil {
		if err := s.ensureUnique(ctx, g.Name, g.City, id); err != nil {
			return model.Region{}, s.fail("update region", err)
		}
	}

	if err := s.regions.Update(ctx, &g); err != nil {
		return model.Region{}, s.fail("update region", notFoundOr(err, "Region", id))
	}
	return g, nil
}

// Delete fails with InvalidOperation while technicians are still linked.
func (s *RegionService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Region"); err != nil {
		return err
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	if err := s.regions.Delete(ctx, id); err != nil {
		return s.fail("delete region", notFoundOr(err, "Region", id))
	}
	return nil
}

func (s *RegionService) Inactivate(ctx context.Context, id int64) (model.Region, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *RegionService) Activate(ctx context.Context, id int64) (model.Region, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *RegionService) setStatus(ctx context.Context, id int64, status model.Status) (model.Region, error) {
	if err := validation.EnsureValidID(id, "Region"); err != nil {
		return model.Region{}, err
	}

	g, err := s.get(ctx, id)
	if err != nil {
		return model.Region{}, err
	}

	if err := s.regions.UpdateStatus(ctx, id, status); err != nil {
		return model.Region{}, s.fail("change region status", notFoundOr(err, "Region", id))
	}
	g.Status = status
	return g, nil
}

func (s *RegionService) GetByID(ctx context.Context, id int64) (model.Region, error) {
	if err := validation.EnsureValidID(id, "Region"); err != nil {
		return model.Region{}, err
	}
	return s.get(ctx, id)
}

func (s *RegionService) List(ctx context.Context, status *model.Status, city *string) ([]model.Region, error) {
	if city != nil && strings.TrimSpace(*city) == "" {
		city = nil
	}

	regions, err := s.regions.List(ctx, status, city)
	if err != nil {
		return nil, s.fail("list regions", err)
	}
	return regions, nil
}

func (s *RegionService) get(ctx context.Context, id int64) (model.Region, error) {
	g, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Region, error) {
		return s.regions.GetByID(ctx, id)
	}, "Region", id)
	if err != nil {
		return model.Region{}, s.fail("find region", err)
	}
	return g, nil
}

func (s *RegionService) ensureUnique(ctx context.Context, name, city string, excludeID int64) error {
	return validation.EnsureNotExists(ctx, func(ctx context.Context) (bool, error) {
		return s.regions.ExistsByNameAndCity(ctx, name, city, excludeID)
	}, "name", fmt.Sprintf("%s (%s)", name, city))
}
