package service

import (
	"context"
	"testing"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/cache"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTechnicianService(f *fixture) *TechnicianService {
	return NewTechnicianService(f.deps, f.technicians, f.users, f.regions, f.specialties, f.hasher)
}

func technicianRequest(document, email string) *model.CreateTechnicianRequest {
	return &model.CreateTechnicianRequest{
		TechnicianPayload: model.TechnicianPayload{
			CPFOrCNPJ:  model.Ptr(document),
			Phone:      model.Ptr("11912345678"),
			PostalCode: model.Ptr("01310100"),
			User: &model.UserPayload{
				Name:     model.Ptr("Maria Souza"),
				Email:    model.Ptr(email),
				Password: model.Ptr("segredo123"),
			},
		},
	}
}

func seedSpecialty(t *testing.T, f *fixture, name string) model.Specialty {
	t.Helper()
	sp := model.Specialty{Name: name, Status: model.StatusActive}
	require.NoError(t, f.specialties.Create(context.Background(), &sp))
	return sp
}

func TestTechnicianService_Create_WithLinks(t *testing.T) {
	f := newFixture(t)
	redes := seedSpecialty(t, f, "Redes")
	existing := model.Region{Name: "Norte", City: "Norte", Status: model.StatusActive}
	require.NoError(t, f.regions.Create(context.Background(), &existing))

	req := technicianRequest("11.222.333/0001-81", "maria@x.com")
	req.Regions = []model.RegionRef{
		{ID: model.Ptr(existing.ID)},
		{Name: model.Ptr("Centro"), City: model.Ptr("Campinas")},
		{Name: model.Ptr("norte"), City: model.Ptr("norte")},
	}
	req.Specialties = []model.SpecialtyRef{{Name: model.Ptr("redes")}}

	tech, err := newTechnicianService(f).Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "11222333000181", tech.CPFOrCNPJ)
	assert.Equal(t, "(11) 91234-5678", tech.Phone)
	assert.Equal(t, "01310-100", tech.PostalCode)
	require.Len(t, tech.Regions, 2, "region references resolving to the same row are linked once")
	assert.Len(t, f.regions.rows, 2)
	require.Len(t, tech.Specialties, 1)
	assert.Equal(t, redes.ID, tech.Specialties[0].ID)
	assert.Len(t, f.technicians.regionLinks, 2)
}

func TestTechnicianService_Create_UnknownSpecialty(t *testing.T) {
	f := newFixture(t)
	req := technicianRequest("11144477735", "maria@x.com")
	req.Specialties = []model.SpecialtyRef{{ID: model.Ptr(int64(42))}}

	_, err := newTechnicianService(f).Create(context.Background(), req)

	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Specialty", notFound.Resource)
}

func TestTechnicianService_Create_CreatesMissingSpecialty(t *testing.T) {
	f := newFixture(t)
	req := technicianRequest("11144477735", "maria@x.com")
	req.Specialties = []model.SpecialtyRef{{Name: model.Ptr("  Eletrica ")}}

	tech, err := newTechnicianService(f).Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.specialties.rows, 1)
	created := f.specialties.rows[0]
	assert.Equal(t, "Eletrica", created.Name)
	assert.Equal(t, model.StatusActive, created.Status)
	require.Len(t, tech.Specialties, 1)
	assert.Equal(t, created.ID, tech.Specialties[0].ID)
}

func TestTechnicianService_Create_InvalidRefsAndFields(t *testing.T) {
	f := newFixture(t)
	req := technicianRequest("00000000000", "maria@x.com")
	req.Phone = model.Ptr("12")
	req.Regions = []model.RegionRef{{Name: model.Ptr("Centro")}}

	_, err := newTechnicianService(f).Create(context.Background(), req)

	fields := fieldsOf(t, err)
	assert.Equal(t, msgInvalid, fields["cpfCnpj"])
	assert.Equal(t, msgInvalid, fields["phone"])
	assert.Equal(t, "is required", fields["regions[0].city"])
}

func TestTechnicianService_Create_DuplicateDocument(t *testing.T) {
	f := newFixture(t)
	svc := newTechnicianService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, technicianRequest("111.444.777-35", "b@x.com"))
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "cpfCnpj", dup.Field)
}

func TestTechnicianService_Inactivate_CascadesToUser(t *testing.T) {
	f := newFixture(t)
	svc := newTechnicianService(f)
	ctx := context.Background()

	tech, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	// Warm the cache so eviction is observable.
	f.deps.cacheUser(ctx, *tech.User)

	inactive, err := svc.Inactivate(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, inactive.Status)

	u, err := f.users.GetByID(ctx, tech.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, u.Status)

	_, cached := f.deps.userFromCache(ctx, cache.UserIDKey(tech.UserID))
	assert.False(t, cached)
}

func TestTechnicianService_Delete_RemovesLinksAndUser(t *testing.T) {
	f := newFixture(t)
	seedSpecialty(t, f, "Hardware")
	svc := newTechnicianService(f)
	ctx := context.Background()

	req := technicianRequest("11144477735", "a@x.com")
	req.Specialties = []model.SpecialtyRef{{Name: model.Ptr("Hardware")}}
	req.Regions = []model.RegionRef{{Name: model.Ptr("Sul"), City: model.Ptr("Sul")}}
	tech, err := svc.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tech.ID))
	assert.Empty(t, f.technicians.rows)
	assert.Empty(t, f.technicians.regionLinks)
	assert.Empty(t, f.technicians.specLinks)
	assert.Empty(t, f.users.rows)
	assert.Len(t, f.regions.rows, 1)
}

func TestTechnicianService_AddRegion(t *testing.T) {
	f := newFixture(t)
	svc := newTechnicianService(f)
	ctx := context.Background()

	tech, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	region, err := svc.AddRegion(ctx, tech.ID, model.RegionRef{Name: model.Ptr("Leste"), City: model.Ptr("Leste")})
	require.NoError(t, err)

	_, err = svc.AddRegion(ctx, tech.ID, model.RegionRef{ID: model.Ptr(region.ID)})
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "regionId", dup.Field)

	got, err := svc.GetByID(ctx, tech.ID)
	require.NoError(t, err)
	require.Len(t, got.Regions, 1)
	assert.Equal(t, "Leste", got.Regions[0].Name)

	require.NoError(t, svc.RemoveRegion(ctx, tech.ID, region.ID))

	err = svc.RemoveRegion(ctx, tech.ID, region.ID)
	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTechnicianService_AddSpecialty(t *testing.T) {
	f := newFixture(t)
	sp := seedSpecialty(t, f, "Software")
	svc := newTechnicianService(f)
	ctx := context.Background()

	tech, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	_, err = svc.AddSpecialty(ctx, tech.ID, model.SpecialtyRef{ID: model.Ptr(sp.ID)})
	require.NoError(t, err)

	_, err = svc.AddSpecialty(ctx, tech.ID, model.SpecialtyRef{Name: model.Ptr("software")})
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)

	_, err = svc.AddSpecialty(ctx, tech.ID, model.SpecialtyRef{Name: model.Ptr("Hidraulica")})
	require.NoError(t, err)
	assert.Len(t, f.specialties.rows, 2)

	specialties, err := svc.Specialties(ctx, tech.ID)
	require.NoError(t, err)
	assert.Len(t, specialties, 2)
}

func TestTechnicianService_Update_StatusMirrorsUser(t *testing.T) {
	f := newFixture(t)
	svc := newTechnicianService(f)
	ctx := context.Background()

	tech, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, tech.ID, &model.TechnicianPayload{
		Status:      model.Ptr(model.StatusInactive),
		Description: model.Ptr("  Atende em horário comercial  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Atende em horário comercial", updated.Description)
	assert.Equal(t, "(11) 91234-5678", updated.Phone)
	u, _ := f.users.GetByID(ctx, tech.UserID)
	assert.Equal(t, model.StatusInactive, u.Status)
}

func TestTechnicianService_Update_KeepsAccessLevel(t *testing.T) {
	f := newFixture(t)
	svc := newTechnicianService(f)
	ctx := context.Background()

	tech, err := svc.Create(ctx, technicianRequest("11144477735", "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, tech.ID, &model.TechnicianPayload{
		User: &model.UserPayload{
			Name:        model.Ptr("Maria S."),
			AccessLevel: model.Ptr(model.AccessLevelAdmin),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria S.", updated.User.Name)
	assert.Equal(t, model.AccessLevelUser, updated.User.AccessLevel)
	u, err := f.users.GetByID(ctx, tech.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.AccessLevelUser, u.AccessLevel)
}
