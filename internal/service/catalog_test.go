package service

import (
	"context"
	"testing"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionService_UniqueByNameAndCity(t *testing.T) {
	f := newFixture(t)
	svc := NewRegionService(f.deps, f.regions)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.RegionPayload{Name: model.Ptr("Centro"), City: model.Ptr("Campinas")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.RegionPayload{Name: model.Ptr("Centro"), City: model.Ptr("Santos")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.RegionPayload{Name: model.Ptr("centro"), City: model.Ptr("CAMPINAS")})
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Field)
}

func TestRegionService_InactivateAndFilter(t *testing.T) {
	f := newFixture(t)
	svc := NewRegionService(f.deps, f.regions)
	ctx := context.Background()

	g, err := svc.Create(ctx, &model.RegionPayload{Name: model.Ptr("Sul"), City: model.Ptr("Recife")})
	require.NoError(t, err)

	inactive, err := svc.Inactivate(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, inactive.Status)

	active, err := svc.List(ctx, model.Ptr(model.StatusActive), nil)
	require.NoError(t, err)
	assert.Empty(t, active)

	inRecife, err := svc.List(ctx, nil, model.Ptr("recife"))
	require.NoError(t, err)
	assert.Len(t, inRecife, 1)
}

func TestSpecialtyService_DuplicateName(t *testing.T) {
	f := newFixture(t)
	svc := NewSpecialtyService(f.deps, f.specialties)
	ctx := context.Background()

	sp, err := svc.Create(ctx, &model.SpecialtyPayload{Name: model.Ptr("Redes")})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, sp.Status)

	_, err = svc.Create(ctx, &model.SpecialtyPayload{Name: model.Ptr("redes")})
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)

	_, err = svc.Update(ctx, sp.ID, &model.SpecialtyPayload{Name: model.Ptr("Redes")})
	assert.NoError(t, err)
}

func TestOfferingService_CreateAndTechnicians(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedSpecialty(t, f, "Hardware")

	req := technicianRequest("11144477735", "tec@x.com")
	req.Specialties = []model.SpecialtyRef{{Name: model.Ptr("Hardware")}}
	tech, err := newTechnicianService(f).Create(ctx, req)
	require.NoError(t, err)

	other, err := newTechnicianService(f).Create(ctx, technicianRequest("52998224725", "outro@x.com"))
	require.NoError(t, err)

	svc := NewOfferingService(f.deps, f.offerings, f.technicians)
	o, err := svc.Create(ctx, &model.OfferingPayload{
		Name:  model.Ptr("Troca de memória"),
		Type:  model.Ptr("hardware"),
		Price: model.Ptr(decimal.RequireFromString("89.905")),
	})
	require.NoError(t, err)
	assert.Equal(t, "89.91", o.Price.StringFixed(2))

	technicians, err := svc.Technicians(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, tech.ID, technicians[0].ID)
	assert.NotEqual(t, other.ID, technicians[0].ID)
}

func TestOfferingService_Create_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := NewOfferingService(f.deps, f.offerings, f.technicians).Create(context.Background(), &model.OfferingPayload{
		Name:  model.Ptr(""),
		Price: model.Ptr(decimal.NewFromInt(-5)),
	})

	fields := fieldsOf(t, err)
	assert.Equal(t, "must not be empty", fields["name"])
	assert.Equal(t, "is required", fields["type"])
	assert.Equal(t, msgPositive, fields["price"])
}

func TestOfferingService_PriceRoundingToZero(t *testing.T) {
	f := newFixture(t)
	svc := NewOfferingService(f.deps, f.offerings, f.technicians)
	ctx := context.Background()
	tiny := model.Ptr(decimal.RequireFromString("0.004"))

	_, err := svc.Create(ctx, &model.OfferingPayload{
		Name:  model.Ptr("Diagnóstico"),
		Type:  model.Ptr("hardware"),
		Price: tiny,
	})
	assert.Equal(t, msgPositive, fieldsOf(t, err)["price"])
	assert.Empty(t, f.offerings.rows)

	o, err := svc.Create(ctx, &model.OfferingPayload{
		Name:  model.Ptr("Diagnóstico"),
		Type:  model.Ptr("hardware"),
		Price: model.Ptr(decimal.RequireFromString("0.005")),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.01", o.Price.StringFixed(2))

	_, err = svc.Update(ctx, o.ID, &model.OfferingPayload{Price: tiny})
	assert.Equal(t, msgPositive, fieldsOf(t, err)["price"])
}
