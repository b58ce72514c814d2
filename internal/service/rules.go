package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

const (
	msgInvalid       = "is invalid"
	msgFutureDate    = "must not be in the future"
	msgPositive      = "must be greater than zero"
	minPasswordChars = 6
)

// violations maps a field name to the first problem found with it.
type violations map[string]string

func required(fields map[string]any) violations {
	return violations(validation.RequiredFields(fields))
}

func (v violations) add(field, msg string) {
	if _, seen := v[field]; !seen {
		v[field] = msg
	}
}

// ok reports whether field has no violation yet, so later checks only run
// on fields that passed the earlier ones.
func (v violations) ok(field string) bool {
	_, bad := v[field]
	return !bad
}

func (v violations) merge(other violations) {
	for field, msg := range other {
		v.add(field, msg)
	}
}

func (v violations) err() error {
	return validation.RequiredFieldsError(v)
}

func errNilPayload(resource string) error {
	return errs.NewValidation(fmt.Sprintf("%s data is required", resource))
}

func maxLength(v violations, field string, value *string, limit int) {
	if value != nil && v.ok(field) && utf8.RuneCountInString(strings.TrimSpace(*value)) > limit {
		v.add(field, fmt.Sprintf("must have at most %d characters", limit))
	}
}

func notBlank(v violations, field string, value *string) {
	if value != nil && v.ok(field) && strings.TrimSpace(*value) == "" {
		v.add(field, validation.MsgEmpty)
	}
}

func checkStatus(v violations, field string, status *model.Status, allowed ...model.Status) {
	if status == nil || !v.ok(field) {
		return
	}
	for _, s := range allowed {
		if *status == s {
			return
		}
	}
	v.add(field, msgInvalid)
}

// checkDate validates a YYYY-MM-DD value and, when notFuture is set, that it
// is not after today.
func checkDate(v violations, field string, value *string, today string, notFuture bool) {
	if value == nil || !v.ok(field) {
		return
	}
	d := strings.TrimSpace(*value)
	if _, err := time.Parse(validation.DateLayout, d); err != nil {
		v.add(field, "must be a date in the format YYYY-MM-DD")
		return
	}
	// Zero-padded ISO dates compare correctly as strings.
	if notFuture && d > today {
		v.add(field, msgFutureDate)
	}
}

func checkClock(v violations, field string, value *string) {
	if value == nil || !v.ok(field) {
		return
	}
	if _, err := time.Parse(validation.TimeLayout, strings.TrimSpace(*value)); err != nil {
		v.add(field, "must be a time in the format HH:MM")
	}
}

func today(now time.Time) string {
	return now.Format(validation.DateLayout)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// checkUserFields validates every present field of a user payload. prefix
// is "" for standalone users and "user." when nested.
func checkUserFields(v violations, p *model.UserPayload, prefix string) {
	notBlank(v, prefix+"name", p.Name)
	maxLength(v, prefix+"name", p.Name, 100)

	if p.Email != nil && v.ok(prefix+"email") {
		email := normalizeEmail(*p.Email)
		switch {
		case !validation.IsValidEmail(email):
			v.add(prefix+"email", msgInvalid)
		case utf8.RuneCountInString(email) > 100:
			v.add(prefix+"email", "must have at most 100 characters")
		}
	}

	if p.Password != nil && v.ok(prefix+"password") && utf8.RuneCountInString(*p.Password) < minPasswordChars {
		v.add(prefix+"password", fmt.Sprintf("must have at least %d characters", minPasswordChars))
	}

	if p.AccessLevel != nil && v.ok(prefix+"accessLevel") &&
		*p.AccessLevel != model.AccessLevelAdmin && *p.AccessLevel != model.AccessLevelUser {
		v.add(prefix+"accessLevel", msgInvalid)
	}

	checkStatus(v, prefix+"status", p.Status, model.StatusActive, model.StatusInactive, model.StatusChangePassword)
}

func requiredUser(p *model.UserPayload, prefix string) violations {
	return required(map[string]any{
		prefix + "name":     p.Name,
		prefix + "email":    p.Email,
		prefix + "password": p.Password,
	})
}

func ensureEmailFree(ctx context.Context, users UserStore, email string, excludeID int64) error {
	return validation.EnsureNotExists(ctx, func(ctx context.Context) (bool, error) {
		return users.ExistsByEmail(ctx, email, excludeID)
	}, "email", email)
}

// newUser builds a user from a payload that already passed the create rules.
func newUser(p *model.UserPayload, hash string) model.User {
	u := model.User{
		Name:         strings.TrimSpace(*p.Name),
		Email:        normalizeEmail(*p.Email),
		PasswordHash: hash,
		AccessLevel:  model.AccessLevelUser,
		Status:       model.StatusActive,
	}
	if p.AccessLevel != nil {
		u.AccessLevel = *p.AccessLevel
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return u
}

// applyNestedUser is applyUser for a user embedded in a client or technician
// payload. The access level is kept; it only changes through /users.
func applyNestedUser(u *model.User, p *model.UserPayload, hash func(string) (string, error)) error {
	level := u.AccessLevel
	if err := applyUser(u, p, hash); err != nil {
		return err
	}
	u.AccessLevel = level
	return nil
}

// applyUser overwrites the fields of u that p carries.
func applyUser(u *model.User, p *model.UserPayload, hash func(string) (string, error)) error {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		u.Email = normalizeEmail(*p.Email)
	}
	if p.Password != nil {
		h, err := hash(*p.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = h
	}
	if p.AccessLevel != nil {
		u.AccessLevel = *p.AccessLevel
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	return nil
}
