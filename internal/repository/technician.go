package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const technicianSelect = `
	SELECT t.id, t.cpf_cnpj, to_char(t.birth_date, 'YYYY-MM-DD'), t.phone, t.postal_code, t.house_number,
	       t.complement, t.description, t.status, t.user_id, t.created_at, t.updated_at,
	       ` + userColumns + `
	FROM technicians t
	JOIN users u ON u.id = t.user_id`

type TechnicianRepository struct {
	db *database.Database
}

func NewTechnicianRepository(db *database.Database) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

func scanTechnician(row rowScanner) (model.Technician, error) {
	var (
		t model.Technician
		u model.User
	)
	err := row.Scan(
		&t.ID, &t.CPFOrCNPJ, &t.BirthDate, &t.Phone, &t.PostalCode, &t.HouseNumber,
		&t.Complement, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AccessLevel, &u.Status, &u.RegisteredAt, &u.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.User = &u
	return t, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, t *model.Technician) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO technicians (cpf_cnpj, birth_date, phone, postal_code, house_number, complement, description, status, user_id)
		VALUES ($1, $2::text::date, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, t.CPFOrCNPJ, t.BirthDate, t.Phone, t.PostalCode, t.HouseNumber, t.Complement, t.Description, t.Status, t.UserID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TechnicianRepository) Update(ctx context.Context, t *model.Technician) error {
	err := r.db.Querier(ctx).QueryRow(ctx, `
		UPDATE technicians
		SET cpf_cnpj = $2, birth_date = $3::text::date, phone = $4, postal_code = $5, house_number = $6,
		    complement = $7, description = $8, status = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, t.ID, t.CPFOrCNPJ, t.BirthDate, t.Phone, t.PostalCode, t.HouseNumber, t.Complement, t.Description, t.Status,
	).Scan(&t.UpdatedAt)
	return noRecord(err)
}

func (r *TechnicianRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`UPDATE technicians SET status = $2, updated_at = now() WHERE id = $1`, id, status))
}

func (r *TechnicianRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM technicians WHERE id = $1`, id))
}

func (r *TechnicianRepository) GetByID(ctx context.Context, id int64) (model.Technician, error) {
	t, err := scanTechnician(r.db.Querier(ctx).QueryRow(ctx, technicianSelect+` WHERE t.id = $1`, id))
	return t, noRecord(err)
}

// List filters by status and exact CPF/CNPJ when given.
func (r *TechnicianRepository) List(ctx context.Context, status *model.Status, document *string) ([]model.Technician, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, technicianSelect+`
		WHERE ($1::text IS NULL OR t.status = $1)
		  AND ($2::text IS NULL OR t.cpf_cnpj = $2)
		ORDER BY t.id
	`, statusArg(status), document)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTechnician)
}

func (r *TechnicianRepository) SearchByName(ctx context.Context, name string) ([]model.Technician, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, technicianSelect+`
		WHERE u.name ILIKE '%' || $1 || '%'
		ORDER BY u.name, t.id
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTechnician)
}

// ListBySpecialtyName returns active technicians holding an active link to
// the specialty called name (case-insensitive).
func (r *TechnicianRepository) ListBySpecialtyName(ctx context.Context, name string) ([]model.Technician, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, technicianSelect+`
		WHERE t.status = 'ATIVO'
		  AND EXISTS (
		      SELECT 1
		      FROM technician_specialties ts
		      JOIN specialties s ON s.id = ts.specialty_id
		      WHERE ts.technician_id = t.id
		        AND ts.status = 'ATIVO'
		        AND lower(s.name) = lower($1)
		  )
		ORDER BY t.id
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTechnician)
}

func (r *TechnicianRepository) ExistsByDocument(ctx context.Context, document string, excludeID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM technicians WHERE cpf_cnpj = $1 AND id <> $2`, document, excludeID)
}

func (r *TechnicianRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "technicians")
}

// AddRegion links the technician to the region with status ATIVO.
func (r *TechnicianRepository) AddRegion(ctx context.Context, technicianID, regionID int64) (model.TechnicianRegion, error) {
	link := model.TechnicianRegion{TechnicianID: technicianID, RegionID: regionID, Status: model.StatusActive}
	err := r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO technician_regions (technician_id, region_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, technicianID, regionID, link.Status).Scan(&link.ID)
	return link, err
}

func (r *TechnicianRepository) HasRegion(ctx context.Context, technicianID, regionID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM technician_regions WHERE technician_id = $1 AND region_id = $2`, technicianID, regionID)
}

func (r *TechnicianRepository) RemoveRegion(ctx context.Context, technicianID, regionID int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM technician_regions WHERE technician_id = $1 AND region_id = $2`, technicianID, regionID))
}

// DeleteRegions drops every region link of the technician.
func (r *TechnicianRepository) DeleteRegions(ctx context.Context, technicianID int64) error {
	_, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM technician_regions WHERE technician_id = $1`, technicianID)
	return err
}

func (r *TechnicianRepository) Regions(ctx context.Context, technicianID int64) ([]model.Region, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+regionColumns+`
		FROM regions g
		JOIN technician_regions tr ON tr.region_id = g.id
		WHERE tr.technician_id = $1
		ORDER BY g.name, g.city
	`, technicianID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRegion)
}

func (r *TechnicianRepository) AddSpecialty(ctx context.Context, technicianID, specialtyID int64) (model.TechnicianSpecialty, error) {
	link := model.TechnicianSpecialty{TechnicianID: technicianID, SpecialtyID: specialtyID, Status: model.StatusActive}
	err := r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO technician_specialties (technician_id, specialty_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, technicianID, specialtyID, link.Status).Scan(&link.ID)
	return link, err
}

func (r *TechnicianRepository) HasSpecialty(ctx context.Context, technicianID, specialtyID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM technician_specialties WHERE technician_id = $1 AND specialty_id = $2`, technicianID, specialtyID)
}

func (r *TechnicianRepository) RemoveSpecialty(ctx context.Context, technicianID, specialtyID int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM technician_specialties WHERE technician_id = $1 AND specialty_id = $2`, technicianID, specialtyID))
}

func (r *TechnicianRepository) DeleteSpecialties(ctx context.Context, technicianID int64) error {
	_, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM technician_specialties WHERE technician_id = $1`, technicianID)
	return err
}

func (r *TechnicianRepository) Specialties(ctx context.Context, technicianID int64) ([]model.Specialty, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+specialtyColumns+`
		FROM specialties s
		JOIN technician_specialties ts ON ts.specialty_id = s.id
		WHERE ts.technician_id = $1
		ORDER BY s.name
	`, technicianID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSpecialty)
}
