// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Every method runs on database.Querier(ctx), so a call made inside
// Transactor.WithinTx joins the surrounding transaction. Lookups that match
// nothing return errs.ErrNoRecord.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan. It never returns a nil slice, so empty
// results encode as [] rather than null.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func noRecord(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNoRecord
	}
	return err
}

func affectedOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNoRecord
	}
	return nil
}

func countRows(ctx context.Context, q database.Querier, table string) (int64, error) {
	var n int64
	err := q.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n)
	return n, err
}

func exists(ctx context.Context, q database.Querier, sql string, args ...any) (bool, error) {
	var found bool
	err := q.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&found)
	return found, err
}

// statusArg turns an optional status filter into a nullable query argument.
func statusArg(status *model.Status) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

// Prices travel as text so NUMERIC precision is never lost on the way.
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return d, nil
}

func parseNullDecimal(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseDecimal(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func nullDecimalArg(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}
