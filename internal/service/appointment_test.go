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

type appointmentFixture struct {
	*fixture
	svc        *AppointmentService
	technician model.Technician
	user       model.User
	offering   model.Offering
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()

	tech, err := newTechnicianService(f).Create(ctx, technicianRequest("11144477735", "tec@x.com"))
	require.NoError(t, err)
	u := createUser(t, f, "cli@x.com", "segredo123", model.AccessLevelUser, model.StatusActive)

	o := model.Offering{Name: "Formatação", Type: "Software", Price: decimal.RequireFromString("150.00"), Status: model.StatusActive}
	require.NoError(t, f.offerings.Create(ctx, &o))

	return &appointmentFixture{
		fixture:    f,
		svc:        NewAppointmentService(f.deps, f.appointments, f.technicians, f.users, f.clients, f.offerings),
		technician: tech,
		user:       u,
		offering:   o,
	}
}

func (a *appointmentFixture) payload() *model.AppointmentPayload {
	return &model.AppointmentPayload{
		TechnicianID: model.Ptr(a.technician.ID),
		UserID:       model.Ptr(a.user.ID),
		ServiceID:    model.Ptr(a.offering.ID),
		Date:         model.Ptr("2026-04-01"),
		Time:         model.Ptr("14:30"),
	}
}

func TestAppointmentService_Create_DefaultsPriceAndStatus(t *testing.T) {
	a := newAppointmentFixture(t)

	got, err := a.svc.Create(context.Background(), a.payload())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentPending, got.Status)
	require.True(t, got.Price.Valid)
	assert.Equal(t, "150.00", got.Price.Decimal.StringFixed(2))
	assert.Equal(t, "14:30", got.Time)
}

func TestAppointmentService_Create_ExplicitPrice(t *testing.T) {
	a := newAppointmentFixture(t)
	p := a.payload()
	p.Price = model.Ptr(decimal.RequireFromString("99.999"))

	got, err := a.svc.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Price.Decimal.StringFixed(2))
}

func TestAppointmentService_Create_MissingReference(t *testing.T) {
	a := newAppointmentFixture(t)
	p := a.payload()
	p.TechnicianID = model.Ptr(int64(404))

	_, err := a.svc.Create(context.Background(), p)

	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Technician", notFound.Resource)
	assert.Empty(t, a.appointments.rows)
}

func TestAppointmentService_Create_Validation(t *testing.T) {
	a := newAppointmentFixture(t)

	_, err := a.svc.Create(context.Background(), &model.AppointmentPayload{
		UserID: model.Ptr(int64(-1)),
		Date:   model.Ptr("01/04/2026"),
		Time:   model.Ptr("25:00"),
		Price:  model.Ptr(decimal.Zero),
	})

	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["technicianId"])
	assert.Contains(t, fields, "userId")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "time")
	assert.Equal(t, msgPositive, fields["price"])
}

func TestAppointmentService_Create_PriceRoundingToZero(t *testing.T) {
	a := newAppointmentFixture(t)
	p := a.payload()
	p.Price = model.Ptr(decimal.RequireFromString("0.004"))

	_, err := a.svc.Create(context.Background(), p)

	assert.Equal(t, msgPositive, fieldsOf(t, err)["price"])
	assert.Empty(t, a.appointments.rows)
}

func TestAppointmentService_UpdateAndList(t *testing.T) {
	a := newAppointmentFixture(t)
	ctx := context.Background()

	created, err := a.svc.Create(ctx, a.payload())
	require.NoError(t, err)

	updated, err := a.svc.Update(ctx, created.ID, &model.AppointmentPayload{
		Status: model.Ptr(model.AppointmentConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentConfirmed, updated.Status)
	assert.Equal(t, "2026-04-01", updated.Date)

	byTech, err := a.svc.List(ctx, model.AppointmentFilter{TechnicianID: a.technician.ID})
	require.NoError(t, err)
	assert.Len(t, byTech, 1)

	otherDay, err := a.svc.List(ctx, model.AppointmentFilter{Date: "2026-04-02"})
	require.NoError(t, err)
	assert.Empty(t, otherDay)

	require.NoError(t, a.svc.Delete(ctx, created.ID))
	_, err = a.svc.GetByID(ctx, created.ID)
	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
