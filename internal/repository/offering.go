package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const offeringColumns = `o.id, o.name, o.type, o.duration, o.price::text, o.status`

type OfferingRepository struct {
	db *database.Database
}

func NewOfferingRepository(db *database.Database) *OfferingRepository {
	return &OfferingRepository{db: db}
}

func scanOffering(row rowScanner) (model.Offering, error) {
	var (
		o     model.Offering
		price string
	)
	if err := row.Scan(&o.ID, &o.Name, &o.Type, &o.Duration, &price, &o.Status); err != nil {
		return o, err
	}
	d, err := parseDecimal(price)
	if err != nil {
		return o, err
	}
	o.Price = d
	return o, nil
}

func (r *OfferingRepository) Create(ctx context.Context, o *model.Offering) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO service_offerings (name, type, duration, price, status)
		VALUES ($1, $2, $3, $4::text::numeric, $5)
		RETURNING id
	`, o.Name, o.Type, o.Duration, o.Price.StringFixed(2), o.Status).Scan(&o.ID)
}

func (r *OfferingRepository) Update(ctx context.Context, o *model.Offering) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `
		UPDATE service_offerings
		SET name = $2, type = $3, duration = $4, price = $5::text::numeric, status = $6
		WHERE id = $1
	`, o.ID, o.Name, o.Type, o.Duration, o.Price.StringFixed(2), o.Status))
}

func (r *OfferingRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `UPDATE service_offerings SET status = $2 WHERE id = $1`, id, status))
}

func (r *OfferingRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM service_offerings WHERE id = $1`, id))
}

func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (model.Offering, error) {
	o, err := scanOffering(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+offeringColumns+` FROM service_offerings o WHERE o.id = $1`, id))
	return o, noRecord(err)
}

// List filters by status and by type (case-insensitive) when given.
func (r *OfferingRepository) List(ctx context.Context, status *model.Status, offeringType *string) ([]model.Offering, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+offeringColumns+` FROM service_offerings o
		WHERE ($1::text IS NULL OR o.status = $1)
		  AND ($2::text IS NULL OR lower(o.type) = lower($2))
		ORDER BY o.name, o.id
	`, statusArg(status), offeringType)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffering)
}

func (r *OfferingRepository) SearchByName(ctx context.Context, name string) ([]model.Offering, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+offeringColumns+` FROM service_offerings o
		WHERE o.name ILIKE '%' || $1 || '%'
		ORDER BY o.name, o.id
	`, name)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffering)
}

func (r *OfferingRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "service_offerings")
}
