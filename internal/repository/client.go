package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const clientSelect = `
	SELECT c.id, c.cpf, to_char(c.birth_date, 'YYYY-MM-DD'), c.status, c.user_id, c.created_at, c.updated_at,
	       ` + userColumns + `
	FROM clients c
	JOIN users u ON u.id = c.user_id`

type ClientRepository struct {
	db *database.Database
}

func NewClientRepository(db *database.Database) *ClientRepository {
	return &ClientRepository{db: db}
}

func scanClient(row rowScanner) (model.Client, error) {
	var (
		c model.Client
		u model.User
	)
	err := row.Scan(
		&c.ID, &c.CPF, &c.BirthDate, &c.Status, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccessLevel, &u.Status, &u.RegisteredAt, &u.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.User = &u
	return c, nil
}

// Create inserts c; c.UserID must reference an existing user.
func (r *ClientRepository) Create(ctx context.Context, c *model.Client) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO clients (cpf, birth_date, status, user_id)
		VALUES ($1, $2::text::date, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.CPF, c.BirthDate, c.Status, c.UserID).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepository) Update(ctx context.Context, c *model.Client) error {
	err := r.db.Querier(ctx).QueryRow(ctx, `
		UPDATE clients
		SET cpf = $2, birth_date = $3::text::date, status = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, c.ID, c.CPF, c.BirthDate, c.Status).Scan(&c.UpdatedAt)
	return noRecord(err)
}

func (r *ClientRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`UPDATE clients SET status = $2, updated_at = now() WHERE id = $1`, id, status))
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM clients WHERE id = $1`, id))
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (model.Client, error) {
	c, err := scanClient(r.db.Querier(ctx).QueryRow(ctx, clientSelect+` WHERE c.id = $1`, id))
	return c, noRecord(err)
}

// List filters by status and exact CPF when given.
func (r *ClientRepository) List(ctx context.Context, status *model.Status, cpf *string) ([]model.Client, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, clientSelect+`
		WHERE ($1::text IS NULL OR c.status = $1)
		  AND ($2::text IS NULL OR c.cpf = $2)
		ORDER BY c.id
	`, statusArg(status), cpf)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanClient)
}

// SearchByName matches the owning user's name.
func (r *ClientRepository) SearchByName(ctx context.Context, name string) ([]model.Client, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, clientSelect+`
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY u.name, c.id
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanClient)
}

func (r *ClientRepository) ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM clients WHERE cpf = $1 AND id <> $2`, cpf, excludeID)
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "clients")
}
