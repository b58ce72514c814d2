package service

import (
	"context"
	"testing"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientPayload(cpf, email string) *model.ClientPayload {
	return &model.ClientPayload{
		CPF:       model.Ptr(cpf),
		BirthDate: model.Ptr("1990-05-20"),
		User: &model.UserPayload{
			Name:     model.Ptr("João Silva"),
			Email:    model.Ptr(email),
			Password: model.Ptr("segredo123"),
		},
	}
}

func newClientService(f *fixture) *ClientService {
	return NewClientService(f.deps, f.clients, f.users, f.hasher)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)

	out := make(map[string]string, len(validationErr.Fields))
	for _, fe := range validationErr.Fields {
		out[fe.Field] = fe.Error
	}
	return out
}

func TestClientService_Create(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)

	c, err := svc.Create(context.Background(), clientPayload("111.444.777-35", " Joao@Example.COM "))
	require.NoError(t, err)

	assert.Equal(t, "11144477735", c.CPF)
	assert.Equal(t, model.StatusActive, c.Status)
	require.NotNil(t, c.User)
	assert.Equal(t, "joao@example.com", c.User.Email)
	assert.Equal(t, model.AccessLevelUser, c.User.AccessLevel)
	assert.Equal(t, c.User.ID, c.UserID)
	assert.NotEqual(t, "segredo123", c.User.PasswordHash)
	assert.True(t, f.hasher.Verify(c.User.PasswordHash, "segredo123"))
	assert.Equal(t, 1, f.tx.calls)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "welcome", f.notifier.sent[0].kind)
	assert.Equal(t, "joao@example.com", f.notifier.sent[0].to)
}

func TestClientService_Create_NestedAdminIsDowngraded(t *testing.T) {
	f := newFixture(t)
	p := clientPayload("11144477735", "a@x.com")
	p.User.AccessLevel = model.Ptr(model.AccessLevelAdmin)

	c, err := newClientService(f).Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, model.AccessLevelUser, c.User.AccessLevel)
}

func TestClientService_Create_ReportsEveryMissingField(t *testing.T) {
	f := newFixture(t)

	_, err := newClientService(f).Create(context.Background(), &model.ClientPayload{
		User: &model.UserPayload{Name: model.Ptr("  ")},
	})

	fields := fieldsOf(t, err)
	assert.Equal(t, "is required", fields["cpf"])
	assert.Equal(t, "is required", fields["birthDate"])
	assert.Equal(t, "must not be empty", fields["user.name"])
	assert.Equal(t, "is required", fields["user.email"])
	assert.Equal(t, "is required", fields["user.password"])
	assert.Empty(t, f.users.rows)
}

func TestClientService_Create_NilPayload(t *testing.T) {
	f := newFixture(t)

	_, err := newClientService(f).Create(context.Background(), nil)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "client data is required", validationErr.Message)
}

func TestClientService_Create_InvalidFormats(t *testing.T) {
	f := newFixture(t)
	p := clientPayload("123.456.789-00", "not-an-email")
	p.User.Password = model.Ptr("123")

	_, err := newClientService(f).Create(context.Background(), p)

	fields := fieldsOf(t, err)
	assert.Equal(t, msgInvalid, fields["cpf"])
	assert.Equal(t, msgInvalid, fields["user.email"])
	assert.Contains(t, fields["user.password"], "at least 6")
}

func TestClientService_Create_FutureBirthDate(t *testing.T) {
	f := newFixture(t)
	p := clientPayload("11144477735", "a@x.com")
	p.BirthDate = model.Ptr("2030-01-01")

	_, err := newClientService(f).Create(context.Background(), p)

	assert.Equal(t, msgFutureDate, fieldsOf(t, err)["birthDate"])
}

func TestClientService_Create_Duplicates(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, clientPayload("111.444.777-35", "b@x.com"))
	var dup *errs.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "cpf", dup.Field)

	_, err = svc.Create(ctx, clientPayload("52998224725", "A@X.com"))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
	assert.Equal(t, "a@x.com", dup.Value)
}

func TestClientService_Update_Partial(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, &model.ClientPayload{BirthDate: model.Ptr("1985-01-02")})
	require.NoError(t, err)

	assert.Equal(t, "1985-01-02", updated.BirthDate)
	assert.Equal(t, "11144477735", updated.CPF)
	assert.Equal(t, "a@x.com", updated.User.Email)
}

func TestClientService_Update_KeepsOwnCPF(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, c.ID, &model.ClientPayload{
		CPF:  model.Ptr("111.444.777-35"),
		User: &model.UserPayload{Email: model.Ptr("a@x.com")},
	})
	assert.NoError(t, err)
}

func TestClientService_Update_StatusMirrorsUser(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, &model.ClientPayload{Status: model.Ptr(model.StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, updated.User.Status)

	u, err := f.users.GetByID(ctx, c.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, u.Status)
}

func TestClientService_Update_KeepsAccessLevel(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, &model.ClientPayload{
		User: &model.UserPayload{
			Email:       model.Ptr("novo@x.com"),
			AccessLevel: model.Ptr(model.AccessLevelAdmin),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "novo@x.com", updated.User.Email)
	assert.Equal(t, model.AccessLevelUser, updated.User.AccessLevel)
	u, err := f.users.GetByID(ctx, c.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.AccessLevelUser, u.AccessLevel)
}

func TestClientService_Update_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := newClientService(f).Update(context.Background(), 99, &model.ClientPayload{})

	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Client", notFound.Resource)
}

func TestClientService_Delete_RemovesUser(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Empty(t, f.clients.rows)
	assert.Empty(t, f.users.rows)
}

func TestClientService_Delete_WithDependents(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	f.clients.deleteErr = &pgconn.PgError{
		Code:   "23503",
		Detail: `Key (id)=(1) is still referenced from table "appointments".`,
	}

	err = svc.Delete(ctx, c.ID)
	var invalidOp *errs.InvalidOperationError
	require.ErrorAs(t, err, &invalidOp)
	assert.Equal(t, "delete client", invalidOp.Operation)
}

func TestClientService_Delete_InvalidID(t *testing.T) {
	f := newFixture(t)

	err := newClientService(f).Delete(context.Background(), 0)

	var validationErr *errs.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestClientService_InactivateAndActivate(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	c, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	inactive, err := svc.Inactivate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, inactive.Status)
	assert.Equal(t, model.StatusInactive, inactive.User.Status)

	active, err := svc.Activate(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, active.Status)

	u, _ := f.users.GetByID(ctx, c.UserID)
	assert.Equal(t, model.StatusActive, u.Status)

	require.Len(t, f.notifier.sent, 3)
	assert.Equal(t, "status", f.notifier.sent[1].kind)
	assert.Equal(t, string(model.StatusInactive), f.notifier.sent[1].detail)
}

func TestClientService_ListAndSearch(t *testing.T) {
	f := newFixture(t)
	svc := newClientService(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, clientPayload("11144477735", "a@x.com"))
	require.NoError(t, err)

	found, err := svc.List(ctx, nil, model.Ptr("111.444.777-35"))
	require.NoError(t, err)
	assert.Len(t, found, 1)

	inactive, err := svc.List(ctx, model.Ptr(model.StatusInactive), nil)
	require.NoError(t, err)
	assert.Empty(t, inactive)

	byName, err := svc.SearchByName(ctx, "joão")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	blank, err := svc.SearchByName(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, blank)
	assert.Empty(t, blank)
}
