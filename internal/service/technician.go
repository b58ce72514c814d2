package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

// TechnicianService manages technicians, the user each one owns and their
// region and specialty links.
type TechnicianService struct {
	Deps
	technicians TechnicianStore
	users       UserStore
	regions     RegionStore
	specialties SpecialtyStore
	hasher      password.Hasher
}

func NewTechnicianService(d Deps, technicians TechnicianStore, users UserStore, regions RegionStore, specialties SpecialtyStore, hasher password.Hasher) *TechnicianService {
	return &TechnicianService{
		Deps:        d,
		technicians: technicians,
		users:       users,
		regions:     regions,
		specialties: specialties,
		hasher:      hasher,
	}
}

func (s *TechnicianService) checkFields(v violations, p *model.TechnicianPayload) {
	if p.CPFOrCNPJ != nil && v.ok("cpfCnpj") && !validation.IsValidCPFOrCNPJ(*p.CPFOrCNPJ) {
		v.add("cpfCnpj", msgInvalid)
	}
	checkDate(v, "birthDate", p.BirthDate, today(s.now()), false)
	if p.Phone != nil && v.ok("phone") && strings.TrimSpace(*p.Phone) != "" && !validation.IsValidPhone(*p.Phone) {
		v.add("phone", msgInvalid)
	}
	if p.PostalCode != nil && v.ok("postalCode") && strings.TrimSpace(*p.PostalCode) != "" && !validation.IsValidCEP(*p.PostalCode) {
		v.add("postalCode", msgInvalid)
	}
	maxLength(v, "houseNumber", p.HouseNumber, 10)
	maxLength(v, "complement", p.Complement, 100)
	maxLength(v, "description", p.Description, 500)
	checkStatus(v, "status", p.Status, model.StatusActive, model.StatusInactive)
	if p.User != nil {
		checkUserFields(v, p.User, "user.")
	}
}

// applyTechnician copies the technician fields of p onto t, normalizing
// documents to digits and phone/postal code to their display format.
func applyTechnician(t *model.Technician, p *model.TechnicianPayload) {
	if p.CPFOrCNPJ != nil {
		t.CPFOrCNPJ = validation.OnlyDigits(*p.CPFOrCNPJ)
	}
	if p.BirthDate != nil {
		d := strings.TrimSpace(*p.BirthDate)
		t.BirthDate = &d
	}
	if p.Phone != nil {
		t.Phone = validation.FormatPhone(*p.Phone)
	}
	if p.PostalCode != nil {
		t.PostalCode = validation.FormatCEP(*p.PostalCode)
	}
	if p.HouseNumber != nil {
		t.HouseNumber = strings.TrimSpace(*p.HouseNumber)
	}
	if p.Complement != nil {
		t.Complement = strings.TrimSpace(*p.Complement)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// Create inserts the user, the technician and every region and specialty
// link in one transaction. Region references without an id are looked up by
// (name, city) and created when missing; specialties are looked up by name.
func (s *TechnicianService) Create(ctx context.Context, req *model.CreateTechnicianRequest) (model.Technician, error) {
	if req == nil {
		return model.Technician{}, errNilPayload("technician")
	}
	p := &req.TechnicianPayload

	v := required(map[string]any{
		"cpfCnpj": p.CPFOrCNPJ,
		"user":    p.User,
	})
	if p.User != nil {
		v.merge(requiredUser(p.User, "user."))
	}
	s.checkFields(v, p)
	for i, ref := range req.Regions {
		checkRegionRef(v, ref, fmt.Sprintf("regions[%d].", i))
	}
	for i, ref := range req.Specialties {
		checkSpecialtyRef(v, ref, fmt.Sprintf("specialties[%d].", i))
	}
	if err := v.err(); err != nil {
		return model.Technician{}, err
	}

	document := validation.OnlyDigits(*p.CPFOrCNPJ)
	email := normalizeEmail(*p.User.Email)

	if err := s.ensureDocumentFree(ctx, document, 0); err != nil {
		return model.Technician{}, s.fail("create technician", err)
	}
	if err := ensureEmailFree(ctx, s.users, email, 0); err != nil {
		return model.Technician{}, s.fail("create technician", err)
	}

	business := violations{}
	checkDate(business, "birthDate", p.BirthDate, today(s.now()), true)
	if err := business.err(); err != nil {
		return model.Technician{}, err
	}

	hash, err := s.hasher.Hash(*p.User.Password)
	if err != nil {
		return model.Technician{}, err
	}

	t := model.Technician{Status: model.StatusActive}
	applyTechnician(&t, p)

	user := newUser(p.User, hash)
	user.AccessLevel = model.AccessLevelUser
	if p.User.Status == nil {
		user.Status = t.Status
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, &user); err != nil {
			return err
		}
		t.UserID = user.ID
		if err := s.technicians.Create(ctx, &t); err != nil {
			return err
		}

		linkedRegions := map[int64]bool{}
		for _, ref := range req.Regions {
			region, err := s.resolveRegion(ctx, ref)
			if err != nil {
				return err
			}
			if linkedRegions[region.ID] {
				continue
			}
			if _, err := s.technicians.AddRegion(ctx, t.ID, region.ID); err != nil {
				return err
			}
			linkedRegions[region.ID] = true
			t.Regions = append(t.Regions, region)
		}

		linkedSpecialties := map[int64]bool{}
		for _, ref := range req.Specialties {
			specialty, err := s.resolveSpecialty(ctx, ref)
			if err != nil {
				return err
			}
			if linkedSpecialties[specialty.ID] {
				continue
			}
			if _, err := s.technicians.AddSpecialty(ctx, t.ID, specialty.ID); err != nil {
				return err
			}
			linkedSpecialties[specialty.ID] = true
			t.Specialties = append(t.Specialties, specialty)
		}
		return nil
	})
	if err != nil {
		return model.Technician{}, s.fail("create technician", err)
	}

	t.User = &user
	s.welcome(ctx, user, "técnico")
	return t, nil
}

func checkRegionRef(v violations, ref model.RegionRef, prefix string) {
	if ref.ID != nil {
		if *ref.ID <= 0 {
			v.add(prefix+"id", "must be a positive number")
		}
		return
	}
	v.merge(required(map[string]any{prefix + "name": ref.Name, prefix + "city": ref.City}))
	maxLength(v, prefix+"name", ref.Name, 100)
	maxLength(v, prefix+"city", ref.City, 100)
}

func checkSpecialtyRef(v violations, ref model.SpecialtyRef, prefix string) {
	if ref.ID != nil {
		if *ref.ID <= 0 {
			v.add(prefix+"id", "must be a positive number")
		}
		return
	}
	v.merge(required(map[string]any{prefix + "name": ref.Name}))
	maxLength(v, prefix+"name", ref.Name, 100)
}

// resolveRegion returns the referenced region, creating it by (name, city)
// when it does not exist yet.
func (s *TechnicianService) resolveRegion(ctx context.Context, ref model.RegionRef) (model.Region, error) {
	if ref.ID != nil {
		return validation.EnsureExists(ctx, func(ctx context.Context) (model.Region, error) {
			return s.regions.GetByID(ctx, *ref.ID)
		}, "Region", *ref.ID)
	}

	name, city := trimmed(ref.Name), trimmed(ref.City)
	region, err := s.regions.GetByNameAndCity(ctx, name, city)
	if err == nil {
		return region, nil
	}
	if !errors.Is(err, errs.ErrNoRecord) {
		return model.Region{}, err
	}

	region = model.Region{Name: name, City: city, Status: model.StatusActive}
	if err := s.regions.Create(ctx, &region); err != nil {
		return model.Region{}, err
	}
	return region, nil
}

// resolveSpecialty returns the referenced specialty, creating it by name
// when it does not exist yet.
func (s *TechnicianService) resolveSpecialty(ctx context.Context, ref model.SpecialtyRef) (model.Specialty, error) {
	if ref.ID != nil {
		return validation.EnsureExists(ctx, func(ctx context.Context) (model.Specialty, error) {
			return s.specialties.GetByID(ctx, *ref.ID)
		}, "Specialty", *ref.ID)
	}

	name := trimmed(ref.Name)
	specialty, err := s.specialties.GetByName(ctx, name)
	if err == nil {
		return specialty, nil
	}
	if !errors.Is(err, errs.ErrNoRecord) {
		return model.Specialty{}, err
	}

	specialty = model.Specialty{Name: name, Status: model.StatusActive}
	if err := s.specialties.Create(ctx, &specialty); err != nil {
		return model.Specialty{}, err
	}
	return specialty, nil
}

func (s *TechnicianService) Update(ctx context.Context, id int64, p *model.TechnicianPayload) (model.Technician, error) {
	if err := validation.EnsureValidID(id, "Technician"); err != nil {
		return model.Technician{}, err
	}
	if p == nil {
		return model.Technician{}, errNilPayload("technician")
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return model.Technician{}, err
	}

	v := violations{}
	s.checkFields(v, p)
	if err := v.err(); err != nil {
		return model.Technician{}, err
	}

	if p.CPFOrCNPJ != nil {
		if err := s.ensureDocumentFree(ctx, validation.OnlyDigits(*p.CPFOrCNPJ), id); err != nil {
			return model.Technician{}, s.fail("update technician", err)
		}
	}
	if p.User != nil && p.User.Email != nil {
		if err := ensureEmailFree(ctx, s.users, normalizeEmail(*p.User.Email), existing.UserID); err != nil {
			return model.Technician{}, s.fail("update technician", err)
		}
	}

	business := violations{}
	checkDate(business, "birthDate", p.BirthDate, today(s.now()), true)
	if err := business.err(); err != nil {
		return model.Technician{}, err
	}

	updated := existing
	applyTechnician(&updated, p)

	oldUser := *existing.User
	user := oldUser
	userChanged := false
	if p.Status != nil && (p.User == nil || p.User.Status == nil) {
		user.Status = *p.Status
		userChanged = true
	}
	if p.User != nil {
		if err := applyNestedUser(&user, p.User, s.hasher.Hash); err != nil {
			return model.Technician{}, err
		}
		userChanged = true
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if userChanged {
			if err := s.users.Update(ctx, &user); err != nil {
				return notFoundOr(err, "User", user.ID)
			}
		}
		return notFoundOr(s.technicians.Update(ctx, &updated), "Technician", id)
	})
	if err != nil {
		return model.Technician{}, s.fail("update technician", err)
	}

	s.evictUsers(ctx, oldUser, user)
	updated.User = &user
	return updated, nil
}

// Delete removes the technician's links, the technician and its user in one
// transaction.
func (s *TechnicianService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Technician"); err != nil {
		return err
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.technicians.DeleteRegions(ctx, id); err != nil {
			return err
		}
		if err := s.technicians.DeleteSpecialties(ctx, id); err != nil {
			return err
		}
		if err := s.technicians.Delete(ctx, id); err != nil {
			return notFoundOr(err, "Technician", id)
		}
		return s.users.Delete(ctx, existing.UserID)
	})
	if err != nil {
		return s.fail("delete technician", err)
	}

	s.evictUsers(ctx, *existing.User)
	return nil
}

func (s *TechnicianService) Inactivate(ctx context.Context, id int64) (model.Technician, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *TechnicianService) Activate(ctx context.Context, id int64) (model.Technician, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *TechnicianService) setStatus(ctx context.Context, id int64, status model.Status) (model.Technician, error) {
	if err := validation.EnsureValidID(id, "Technician"); err != nil {
		return model.Technician{}, err
	}

	t, err := s.get(ctx, id)
	if err != nil {
		return model.Technician{}, err
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.technicians.UpdateStatus(ctx, id, status); err != nil {
			return notFoundOr(err, "Technician", id)
		}
		return s.users.UpdateStatus(ctx, t.UserID, status)
	})
	if err != nil {
		return model.Technician{}, s.fail("change technician status", err)
	}

	s.evictUsers(ctx, *t.User)
	t.Status = status
	t.User.Status = status
	s.statusChanged(ctx, *t.User, status)
	return t, nil
}

// GetByID returns the technician with its regions and specialties.
func (s *TechnicianService) GetByID(ctx context.Context, id int64) (model.Technician, error) {
	if err := validation.EnsureValidID(id, "Technician"); err != nil {
		return model.Technician{}, err
	}

	t, err := s.get(ctx, id)
	if err != nil {
		return model.Technician{}, err
	}

	if t.Regions, err = s.technicians.Regions(ctx, id); err != nil {
		return model.Technician{}, s.fail("find technician regions", err)
	}
	if t.Specialties, err = s.technicians.Specialties(ctx, id); err != nil {
		return model.Technician{}, s.fail("find technician specialties", err)
	}
	return t, nil
}

func (s *TechnicianService) List(ctx context.Context, status *model.Status, document *string) ([]model.Technician, error) {
	if document != nil {
		digits := validation.OnlyDigits(*document)
		document = &digits
	}

	technicians, err := s.technicians.List(ctx, status, document)
	if err != nil {
		return nil, s.fail("list technicians", err)
	}
	return technicians, nil
}

func (s *TechnicianService) SearchByName(ctx context.Context, name string) ([]model.Technician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.Technician{}, nil
	}

	technicians, err := s.technicians.SearchByName(ctx, name)
	if err != nil {
		return nil, s.fail("search technicians", err)
	}
	return technicians, nil
}

// AddRegion links an existing or newly created region to the technician.
func (s *TechnicianService) AddRegion(ctx context.Context, technicianID int64, ref model.RegionRef) (model.Region, error) {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return model.Region{}, err
	}

	v := violations{}
	checkRegionRef(v, ref, "")
	if err := v.err(); err != nil {
		return model.Region{}, err
	}

	if _, err := s.get(ctx, technicianID); err != nil {
		return model.Region{}, err
	}

	var region model.Region
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if region, err = s.resolveRegion(ctx, ref); err != nil {
			return err
		}

		linked, err := s.technicians.HasRegion(ctx, technicianID, region.ID)
		if err != nil {
			return err
		}
		if linked {
			return errs.NewDuplicateResource("regionId", region.ID)
		}

		_, err = s.technicians.AddRegion(ctx, technicianID, region.ID)
		return err
	})
	if err != nil {
		return model.Region{}, s.fail("add technician region", err)
	}
	return region, nil
}

func (s *TechnicianService) RemoveRegion(ctx context.Context, technicianID, regionID int64) error {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return err
	}
	if err := validation.EnsureValidID(regionID, "Region"); err != nil {
		return err
	}

	if err := s.technicians.RemoveRegion(ctx, technicianID, regionID); err != nil {
		return s.fail("remove technician region", notFoundOr(err, "TechnicianRegion", fmt.Sprintf("%d/%d", technicianID, regionID)))
	}
	return nil
}

func (s *TechnicianService) Regions(ctx context.Context, technicianID int64) ([]model.Region, error) {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, technicianID); err != nil {
		return nil, err
	}

	regions, err := s.technicians.Regions(ctx, technicianID)
	if err != nil {
		return nil, s.fail("list technician regions", err)
	}
	return regions, nil
}

// AddSpecialty links an existing or newly created specialty to the technician.
func (s *TechnicianService) AddSpecialty(ctx context.Context, technicianID int64, ref model.SpecialtyRef) (model.Specialty, error) {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return model.Specialty{}, err
	}

	v := violations{}
	checkSpecialtyRef(v, ref, "")
	if err := v.err(); err != nil {
		return model.Specialty{}, err
	}

	if _, err := s.get(ctx, technicianID); err != nil {
		return model.Specialty{}, err
	}

	var specialty model.Specialty
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if specialty, err = s.resolveSpecialty(ctx, ref); err != nil {
			return err
		}

		linked, err := s.technicians.HasSpecialty(ctx, technicianID, specialty.ID)
		if err != nil {
			return err
		}
		if linked {
			return errs.NewDuplicateResource("specialtyId", specialty.ID)
		}

		_, err = s.technicians.AddSpecialty(ctx, technicianID, specialty.ID)
		return err
	})
	if err != nil {
		return model.Specialty{}, s.fail("add technician specialty", err)
	}
	return specialty, nil
}

func (s *TechnicianService) RemoveSpecialty(ctx context.Context, technicianID, specialtyID int64) error {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return err
	}
	if err := validation.EnsureValidID(specialtyID, "Specialty"); err != nil {
		return err
	}

	if err := s.technicians.RemoveSpecialty(ctx, technicianID, specialtyID); err != nil {
		return s.fail("remove technician specialty", notFoundOr(err, "TechnicianSpecialty", fmt.Sprintf("%d/%d", technicianID, specialtyID)))
	}
	return nil
}

func (s *TechnicianService) Specialties(ctx context.Context, technicianID int64) ([]model.Specialty, error) {
	if err := validation.EnsureValidID(technicianID, "Technician"); err != nil {
		return nil, err
	}
	if _, err := s.get(ctx, technicianID); err != nil {
		return nil, err
	}

	specialties, err := s.technicians.Specialties(ctx, technicianID)
	if err != nil {
		return nil, s.fail("list technician specialties", err)
	}
	return specialties, nil
}

func (s *TechnicianService) get(ctx context.Context, id int64) (model.Technician, error) {
	t, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Technician, error) {
		return s.technicians.GetByID(ctx, id)
	}, "Technician", id)
	if err != nil {
		return model.Technician{}, s.fail("find technician", err)
	}
	return t, nil
}

func (s *TechnicianService) ensureDocumentFree(ctx context.Context, document string, excludeID int64) error {
	return validation.EnsureNotExists(ctx, func(ctx context.Context) (bool, error) {
		return s.technicians.ExistsByDocument(ctx, document, excludeID)
	}, "cpfCnpj", document)
}
