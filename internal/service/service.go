// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, applies the entity rules,
// and calls repository methods to interact with the data.
//
// Every entity follows the same rule order. On create: payload present,
// required fields (all reported at once), formats of the fields that passed,
// uniqueness, then cross-field rules. On update required-ness is relaxed to
// "present means validated" and uniqueness ignores the record itself.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/cache"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/sqlerr"
	"github.com/rs/zerolog"
)

// Transactor groups repository calls into one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier enqueues account emails. Failures never fail the request.
type Notifier interface {
	EnqueueWelcome(ctx context.Context, to, name, role string) error
	EnqueueStatusChange(ctx context.Context, to, name, status string) error
}

// Deps are the collaborators shared by every service. Notifier and Cache may
// be nil.
type Deps struct {
	Logger   *zerolog.Logger
	Tx       Transactor
	Notifier Notifier
	Cache    cache.Cache
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// fail converts a repository error into a domain error. Failures that are
// not the caller's fault are logged here with their cause.
func (d Deps) fail(operation string, err error) error {
	if err == nil || errs.IsDomain(err) || errors.Is(err, errs.ErrNoRecord) {
		return err
	}

	translated := sqlerr.Translate(operation, err)

	var dbErr *errs.DatabaseError
	if errors.As(translated, &dbErr) {
		d.Logger.Error().Err(err).Str("operation", operation).Msg("database operation failed")
	}
	return translated
}

// notFoundOr maps errs.ErrNoRecord to a NotFoundError for resource/id.
func notFoundOr(err error, resource string, id any) error {
	if errors.Is(err, errs.ErrNoRecord) {
		return errs.NewNotFound(resource, id)
	}
	return err
}

func (d Deps) welcome(ctx context.Context, u model.User, role string) {
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.EnqueueWelcome(ctx, u.Email, u.Name, role); err != nil {
		d.Logger.Warn().Err(err).Int64("user_id", u.ID).Msg("failed to enqueue welcome email")
	}
}

func (d Deps) statusChanged(ctx context.Context, u model.User, status model.Status) {
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.EnqueueStatusChange(ctx, u.Email, u.Name, string(status)); err != nil {
		d.Logger.Warn().Err(err).Int64("user_id", u.ID).Msg("failed to enqueue account status email")
	}
}

// cachedUser keeps the password hash, which model.User hides from JSON.
type cachedUser struct {
	model.User
	PasswordHash string `json:"passwordHash"`
}

func (d Deps) userFromCache(ctx context.Context, key string) (model.User, bool) {
	if d.Cache == nil {
		return model.User{}, false
	}

	var c cachedUser
	found, err := d.Cache.Get(ctx, key, &c)
	if err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("user cache read failed")
		return model.User{}, false
	}
	if !found {
		return model.User{}, false
	}

	u := c.User
	u.PasswordHash = c.PasswordHash
	return u, true
}

func (d Deps) cacheUser(ctx context.Context, u model.User) {
	if d.Cache == nil {
		return
	}
	c := cachedUser{User: u, PasswordHash: u.PasswordHash}
	for _, key := range []string{cache.UserIDKey(u.ID), cache.UserEmailKey(u.Email)} {
		if err := d.Cache.Set(ctx, key, c); err != nil {
			d.Logger.Warn().Err(err).Str("key", key).Msg("user cache write failed")
		}
	}
}

// evictUsers drops every cache entry of users, old and new versions alike.
func (d Deps) evictUsers(ctx context.Context, users ...model.User) {
	if d.Cache == nil || len(users) == 0 {
		return
	}
	keys := make([]string, 0, 2*len(users))
	for _, u := range users {
		keys = append(keys, cache.UserIDKey(u.ID), cache.UserEmailKey(u.Email))
	}
	if err := d.Cache.Delete(ctx, keys...); err != nil {
		d.Logger.Warn().Err(err).Msg("user cache eviction failed")
	}
}
