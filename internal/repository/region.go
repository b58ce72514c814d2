package repository

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const regionColumns = `g.id, g.name, g.city, g.description, g.status`

type RegionRepository struct {
	db *database.Database
}

func NewRegionRepository(db *database.Database) *RegionRepository {
	return &RegionRepository{db: db}
}

func scanRegion(row rowScanner) (model.Region, error) {
	var g model.Region
	err := row.Scan(&g.ID, &g.Name, &g.City, &g.Description, &g.Status)
	return g, err
}

func (r *RegionRepository) Create(ctx context.Context, g *model.Region) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO regions (name, city, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, g.Name, g.City, g.Description, g.Status).Scan(&g.ID)
}

func (r *RegionRepository) Update(ctx context.Context, g *model.Region) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `
		UPDATE regions SET name = $2, city = $3, description = $4, status = $5 WHERE id = $1
	`, g.ID, g.Name, g.City, g.Description, g.Status))
}

func (r *RegionRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `UPDATE regions SET status = $2 WHERE id = $1`, id, status))
}

func (r *RegionRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM regions WHERE id = $1`, id))
}

func (r *RegionRepository) GetByID(ctx context.Context, id int64) (model.Region, error) {
	g, err := scanRegion(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+regionColumns+` FROM regions g WHERE g.id = $1`, id))
	return g, noRecord(err)
}

func (r *RegionRepository) GetByNameAndCity(ctx context.Context, name, city string) (model.Region, error) {
	g, err := scanRegion(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+regionColumns+` FROM regions g WHERE lower(g.name) = lower($1) AND lower(g.city) = lower($2)`, name, city))
	return g, noRecord(err)
}

func (r *RegionRepository) List(ctx context.Context, status *model.Status, city *string) ([]model.Region, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `
		SELECT `+regionColumns+` FROM regions g
		WHERE ($1::text IS NULL OR g.status = $1)
		  AND ($2::text IS NULL OR lower(g.city) = lower($2))
		ORDER BY g.name, g.city
	`, statusArg(status), city)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRegion)
}

func (r *RegionRepository) ExistsByNameAndCity(ctx context.Context, name, city string, excludeID int64) (bool, error) {
	return exists(ctx, r.db.Querier(ctx),
		`SELECT 1 FROM regions WHERE lower(name) = lower($1) AND lower(city) = lower($2) AND id <> $3`, name, city, excludeID)
}

func (r *RegionRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "regions")
}
