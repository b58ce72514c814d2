package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const specialtyColumns = `s.id, s.name, s.description, s.status`

type SpecialtyRepository struct {
	db *database.Database
}

func NewSpecialtyRepository(db *database.Database) *SpecialtyRepository {
	return &SpecialtyRepository{db: db}
}

func scanSpecialty(row rowScanner) (model.Specialty, error) {
	var s model.Specialty
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Status)
	return s, err
}

func (r *SpecialtyRepository) Create(ctx context.Context, s *model.Specialty) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO specialties (name, description, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, s.Name, s.Description, s.Status).Scan(&s.ID)
}

func (r *SpecialtyRepository) Update(ctx context.Context, s *model.Specialty) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`UPDATE specialties SET name = $2, description = $3, status = $4 WHERE id = $1`,
		s.ID, s.Name, s.Description, s.Status))
}

func (r *SpecialtyRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `UPDATE specialties SET status = $2 WHERE id = $1`, id, status))
}

func (r *SpecialtyRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM specialties WHERE id = $1`, id))
}

func (r *SpecialtyRepository) GetByID(ctx context.Context, id int64) (model.Specialty, error) {
	s, err := scanSpecialty(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+specialtyColumns+` FROM specialties s WHERE s.id = $1`, id))
	return s, noRecord(err)
}

func (r *SpecialtyRepository) GetByName(ctx context.Context, name string) (model.Specialty, error) {
	s, err := scanSpecialty(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+specialtyColumns+` FROM specialties s WHERE lower(s.name) = lower($1)`, name))
	return s, noRecord(err)
}

func (r *SpecialtyRepository) List(ctx context.Context, status *model.Status) ([]model.Specialty, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+specialtyColumns+` FROM specialties s
		WHERE $1::text IS NULL OR s.status = $1
		ORDER BY s.name
	`, statusArg(status))
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSpecialty)
}

func (r *SpecialtyRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM specialties WHERE lower(name) = lower($1) AND id <> $2`, name, excludeID)
}

func (r *SpecialtyRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "specialties")
}
