package validation

import (
	"context"
	"errors"

	"github.com/deppfellow/fieldservice/internal/errs"
)

// EnsureNotExists fails with a DuplicateResourceError when exists reports true.
// A lookup failure is returned unchanged.
func EnsureNotExists(ctx context.Context, exists func(ctx context.Context) (bool, error), field string, value any) error {
	found, err := exists(ctx)
	if err != nil {
		return err
	}
	if found {
		return errs.NewDuplicateResource(field, value)
	}
	return nil
}

// EnsureExists runs fetch and converts errs.ErrNoRecord into a NotFoundError
// naming resource and id. Any other error is returned unchanged.
func EnsureExists[T any](ctx context.Context, fetch func(ctx context.Context) (T, error), resource string, id any) (T, error) {
	value, err := fetch(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, errs.ErrNoRecord) {
			return zero, errs.NewNotFound(resource, id)
		}
		return zero, err
	}
	return value, nil
}

// EnsureValidID rejects non-positive identifiers.
func EnsureValidID(id int64, resource string) error {
	if id <= 0 {
		return errs.NewFieldValidation("id", resource+" id must be a positive number")
	}
	return nil
}
