package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.access_level, u.status, u.registered_at, u.updated_at`

type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccessLevel, &u.Status, &u.RegisteredAt, &u.UpdatedAt)
	return u, err
}

// Create inserts u and fills its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, access_level, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.AccessLevel, u.Status).Scan(&u.ID, &u.RegisteredAt, &u.UpdatedAt)
}

func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	err := r.db.Querier(ctx).QueryRow(ctx, `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, access_level = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.AccessLevel, u.Status).Scan(&u.UpdatedAt)
	return noRecord(err)
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`UPDATE users SET status = $2, updated_at = now() WHERE id = $1`, id, status))
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash))
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	return u, noRecord(err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.email = $1`, email))
	return u, noRecord(err)
}

// List returns users ordered by id, optionally only those with status.
func (r *UserRepository) List(ctx context.Context, status *model.Status) ([]model.User, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+userColumns+` FROM users u
		WHERE $1::text IS NULL OR u.status = $1
		ORDER BY u.id
	`, statusArg(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func (r *UserRepository) SearchByName(ctx context.Context, name string) ([]model.User, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+userColumns+` FROM users u
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY u.name, u.id
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

// ExistsByEmail ignores the user with excludeID, so an update can keep its
// own email. Pass 0 on create.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM users WHERE email = $1 AND id <> $2`, email, excludeID)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "users")
}
