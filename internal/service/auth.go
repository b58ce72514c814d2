package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
)

const msgBadCredentials = "invalid email or password"

// AuthService checks credentials. It does not issue tokens or sessions.
type AuthService struct {
	Deps
	users  UserStore
	hasher password.Hasher
}

func NewAuthService(d Deps, users UserStore, hasher password.Hasher) *AuthService {
	return &AuthService{Deps: d, users: users, hasher: hasher}
}

// Login returns the user matching email and password. Unknown emails and
// wrong passwords get the same 401; inactive users get 403, and users who
// must change their password get 403 with a change_password action.
func (s *AuthService) Login(ctx context.Context, email, plain *string) (model.User, error) {
	v := required(map[string]any{"email": email, "password": plain})
	if err := v.err(); err != nil {
		return model.User{}, err
	}

	u, err := findUserByEmail(ctx, s.Deps, s.users, *email)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return model.User{}, errs.NewUnauthorizedError(msgBadCredentials, true)
		}
		return model.User{}, err
	}

	if !s.hasher.Verify(u.PasswordHash, *plain) {
		s.Logger.Warn().Int64("user_id", u.ID).Msg("login rejected: wrong password")
		return model.User{}, errs.NewUnauthorizedError(msgBadCredentials, true)
	}

	switch u.Status {
	case model.StatusInactive:
		return model.User{}, errs.NewForbiddenError("user is inactive", true)
	case model.StatusChangePassword:
		httpErr := errs.NewForbiddenError("password change required", true)
		httpErr.Action = &errs.Action{
			Type:    errs.ActionTypeChangePassword,
			Message: "Choose a new password to continue",
			Value:   fmt.Sprintf("/api/v1/users/%d", u.ID),
		}
		return model.User{}, httpErr
	}

	return u, nil
}

// AuthenticateAdmin is Login restricted to ADMIN users.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, email, plain string) (model.User, error) {
	u, err := s.Login(ctx, &email, &plain)
	if err != nil {
		return model.User{}, err
	}
	if u.AccessLevel != model.AccessLevelAdmin {
		return model.User{}, errs.NewForbiddenError("admin access required", true)
	}
	return u, nil
}
