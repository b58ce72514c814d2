package service

import (
	"context"
	"strings"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/cache"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

type UserService struct {
	Deps
	users  UserStore
	hasher password.Hasher
}

func NewUserService(d Deps, users UserStore, hasher password.Hasher) *UserService {
	return &UserService{Deps: d, users: users, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, p *model.UserPayload) (model.User, error) {
	if p == nil {
		return model.User{}, errNilPayload("user")
	}

	v := requiredUser(p, "")
	checkUserFields(v, p, "")
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	email := normalizeEmail(*p.Email)
	if err := ensureEmailFree(ctx, s.users, email, 0); err != nil {
		return model.User{}, s.fail("create user", err)
	}

	hash, err := s.hasher.Hash(*p.Password)
	if err != nil {
		return model.User{}, err
	}

	u := newUser(p, hash)
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, s.fail("create user", err)
	}

	s.welcome(ctx, u, "usuário")
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, p *model.UserPayload) (model.User, error) {
	if err := validation.EnsureValidID(id, "User"); err != nil {
		return model.User{}, err
	}
	if p == nil {
		return model.User{}, errNilPayload("user")
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	v := violations{}
	checkUserFields(v, p, "")
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	if p.Email != nil {
		if err := ensureEmailFree(ctx, s.users, normalizeEmail(*p.Email), id); err != nil {
			return model.User{}, s.fail("update user", err)
		}
	}

	updated := existing
	if err := applyUser(&updated, p, s.hasher.Hash); err != nil {
		return model.User{}, err
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		return model.User{}, s.fail("update user", notFoundOr(err, "User", id))
	}

	s.evictUsers(ctx, existing, updated)
	return updated, nil
}

// Delete fails with InvalidOperation while a client, technician or
// appointment still references the user.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "User"); err != nil {
		return err
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return s.fail("delete user", notFoundOr(err, "User", id))
	}

	s.evictUsers(ctx, existing)
	return nil
}

func (s *UserService) Inactivate(ctx context.Context, id int64) (model.User, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *UserService) Activate(ctx context.Context, id int64) (model.User, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *UserService) setStatus(ctx context.Context, id int64, status model.Status) (model.User, error) {
	if err := validation.EnsureValidID(id, "User"); err != nil {
		return model.User{}, err
	}

	u, err := s.get(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return model.User{}, s.fail("change user status", notFoundOr(err, "User", id))
	}

	s.evictUsers(ctx, u)
	u.Status = status
	s.statusChanged(ctx, u, status)
	return u, nil
}

// GetByID serves from the user cache when possible.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.User, error) {
	if err := validation.EnsureValidID(id, "User"); err != nil {
		return model.User{}, err
	}
	if u, ok := s.userFromCache(ctx, cache.UserIDKey(id)); ok {
		return u, nil
	}

	u, err := s.get(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	s.cacheUser(ctx, u)
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return findUserByEmail(ctx, s.Deps, s.users, email)
}

func (s *UserService) List(ctx context.Context, status *model.Status) ([]model.User, error) {
	users, err := s.users.List(ctx, status)
	if err != nil {
		return nil, s.fail("list users", err)
	}
	return users, nil
}

// SearchByName matches a case-insensitive substring. A blank name matches nothing.
func (s *UserService) SearchByName(ctx context.Context, name string) ([]model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.User{}, nil
	}

	users, err := s.users.SearchByName(ctx, name)
	if err != nil {
		return nil, s.fail("search users", err)
	}
	return users, nil
}

func (s *UserService) get(ctx context.Context, id int64) (model.User, error) {
	u, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.User, error) {
		return s.users.GetByID(ctx, id)
	}, "User", id)
	if err != nil {
		return model.User{}, s.fail("find user", err)
	}
	return u, nil
}

// findUserByEmail looks the user up in the cache first, then in users.
func findUserByEmail(ctx context.Context, d Deps, users UserStore, email string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.User{}, errs.NewFieldValidation("email", validation.MsgEmpty)
	}

	if u, ok := d.userFromCache(ctx, cache.UserEmailKey(email)); ok {
		return u, nil
	}

	u, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.User, error) {
		return users.GetByEmail(ctx, email)
	}, "User", email)
	if err != nil {
		return model.User{}, d.fail("find user by email", err)
	}

	d.cacheUser(ctx, u)
	return u, nil
}
