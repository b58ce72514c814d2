package service

import (
	"context"
	"strings"

	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/deppfellow/fieldservice/internal/validation"
)

// ClientService manages clients and the user account each one owns.
type ClientService struct {
	Deps
	clients ClientStore
	users   UserStore
	hasher  password.Hasher
}

func NewClientService(d Deps, clients ClientStore, users UserStore, hasher password.Hasher) *ClientService {
	return &ClientService{Deps: d, clients: clients, users: users, hasher: hasher}
}

func (s *ClientService) checkFields(v violations, p *model.ClientPayload) {
	if p.CPF != nil && v.ok("cpf") && !validation.IsValidCPF(*p.CPF) {
		v.add("cpf", msgInvalid)
	}
	checkDate(v, "birthDate", p.BirthDate, today(s.now()), false)
	checkStatus(v, "status", p.Status, model.StatusActive, model.StatusInactive)
	if p.User != nil {
		checkUserFields(v, p.User, "user.")
	}
}

func (s *ClientService) Create(ctx context.Context, p *model.ClientPayload) (model.Client, error) {
	if p == nil {
		return model.Client{}, errNilPayload("client")
	}

	v := required(map[string]any{
		"cpf":       p.CPF,
		"birthDate": p.BirthDate,
		"user":      p.User,
	})
	if p.User != nil {
		v.merge(requiredUser(p.User, "user."))
	}
	s.checkFields(v, p)
	if err := v.err(); err != nil {
		return model.Client{}, err
	}

	cpf := validation.OnlyDigits(*p.CPF)
	email := normalizeEmail(*p.User.Email)

	if err := s.ensureCPFFree(ctx, cpf, 0); err != nil {
		return model.Client{}, s.fail("create client", err)
	}
	if err := ensureEmailFree(ctx, s.users, email, 0); err != nil {
		return model.Client{}, s.fail("create client", err)
	}

	business := violations{}
	checkDate(business, "birthDate", p.BirthDate, today(s.now()), true)
	if err := business.err(); err != nil {
		return model.Client{}, err
	}

	hash, err := s.hasher.Hash(*p.User.Password)
	if err != nil {
		return model.Client{}, err
	}

	client := model.Client{
		CPF:       cpf,
		BirthDate: strings.TrimSpace(*p.BirthDate),
		Status:    model.StatusActive,
	}
	if p.Status != nil {
		client.Status = *p.Status
	}

	user := newUser(p.User, hash)
	user.AccessLevel = model.AccessLevelUser
	if p.User.Status == nil {
		user.Status = client.Status
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.users.Create(ctx, &user); err != nil {
			return err
		}
		client.UserID = user.ID
		return s.clients.Create(ctx, &client)
	})
	if err != nil {
		return model.Client{}, s.fail("create client", err)
	}

	client.User = &user
	s.welcome(ctx, user, "cliente")
	return client, nil
}

// Update overwrites only the fields present in p. A status change without
// an explicit user status is mirrored onto the owned user.
func (s *ClientService) Update(ctx context.Context, id int64, p *model.ClientPayload) (model.Client, error) {
	if err := validation.EnsureValidID(id, "Client"); err != nil {
		return model.Client{}, err
	}
	if p == nil {
		return model.Client{}, errNilPayload("client")
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return model.Client{}, err
	}

	v := violations{}
	s.checkFields(v, p)
	if err := v.err(); err != nil {
		return model.Client{}, err
	}

	if p.CPF != nil {
		if err := s.ensureCPFFree(ctx, validation.OnlyDigits(*p.CPF), id); err != nil {
			return model.Client{}, s.fail("update client", err)
		}
	}
	if p.User != nil && p.User.Email != nil {
		if err := ensureEmailFree(ctx, s.users, normalizeEmail(*p.User.Email), existing.UserID); err != nil {
			return model.Client{}, s.fail("update client", err)
		}
	}

	business := violations{}
	checkDate(business, "birthDate", p.BirthDate, today(s.now()), true)
	if err := business.err(); err != nil {
		return model.Client{}, err
	}

	updated := existing
	oldUser := *existing.User
	user := oldUser
	userChanged := false

	if p.CPF != nil {
		updated.CPF = validation.OnlyDigits(*p.CPF)
	}
	if p.BirthDate != nil {
		updated.BirthDate = strings.TrimSpace(*p.BirthDate)
	}
	if p.Status != nil {
		updated.Status = *p.Status
		if p.User == nil || p.User.Status == nil {
			user.Status = *p.Status
			userChanged = true
		}
	}
	if p.User != nil {
		if err := applyNestedUser(&user, p.User, s.hasher.Hash); err != nil {
			return model.Client{}, err
		}
		userChanged = true
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if userChanged {
			if err := s.users.Update(ctx, &user); err != nil {
				return notFoundOr(err, "User", user.ID)
			}
		}
		return notFoundOr(s.clients.Update(ctx, &updated), "Client", id)
	})
	if err != nil {
		return model.Client{}, s.fail("update client", err)
	}

	s.evictUsers(ctx, oldUser, user)
	updated.User = &user
	return updated, nil
}

// Delete removes the client and its user in one transaction.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := validation.EnsureValidID(id, "Client"); err != nil {
		return err
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.clients.Delete(ctx, id); err != nil {
			return notFoundOr(err, "Client", id)
		}
		return s.users.Delete(ctx, existing.UserID)
	})
	if err != nil {
		return s.fail("delete client", err)
	}

	s.evictUsers(ctx, *existing.User)
	return nil
}

func (s *ClientService) Inactivate(ctx context.Context, id int64) (model.Client, error) {
	return s.setStatus(ctx, id, model.StatusInactive)
}

func (s *ClientService) Activate(ctx context.Context, id int64) (model.Client, error) {
	return s.setStatus(ctx, id, model.StatusActive)
}

// setStatus changes the client's status and cascades it to the owned user.
func (s *ClientService) setStatus(ctx context.Context, id int64, status model.Status) (model.Client, error) {
	if err := validation.EnsureValidID(id, "Client"); err != nil {
		return model.Client{}, err
	}

	c, err := s.get(ctx, id)
	if err != nil {
		return model.Client{}, err
	}

	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.clients.UpdateStatus(ctx, id, status); err != nil {
			return notFoundOr(err, "Client", id)
		}
		return s.users.UpdateStatus(ctx, c.UserID, status)
	})
	if err != nil {
		return model.Client{}, s.fail("change client status", err)
	}

	s.evictUsers(ctx, *c.User)
	c.Status = status
	c.User.Status = status
	s.statusChanged(ctx, *c.User, status)
	return c, nil
}

func (s *ClientService) GetByID(ctx context.Context, id int64) (model.Client, error) {
	if err := validation.EnsureValidID(id, "Client"); err != nil {
		return model.Client{}, err
	}
	return s.get(ctx, id)
}

// List filters by status and by CPF (formatted or digits only) when given.
func (s *ClientService) List(ctx context.Context, status *model.Status, cpf *string) ([]model.Client, error) {
	if cpf != nil {
		digits := validation.OnlyDigits(*cpf)
		cpf = &digits
	}

	clients, err := s.clients.List(ctx, status, cpf)
	if err != nil {
		return nil, s.fail("list clients", err)
	}
	return clients, nil
}

func (s *ClientService) SearchByName(ctx context.Context, name string) ([]model.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.Client{}, nil
	}

	clients, err := s.clients.SearchByName(ctx, name)
	if err != nil {
		return nil, s.fail("search clients", err)
	}
	return clients, nil
}

func (s *ClientService) get(ctx context.Context, id int64) (model.Client, error) {
	c, err := validation.EnsureExists(ctx, func(ctx context.Context) (model.Client, error) {
		return s.clients.GetByID(ctx, id)
	}, "Client", id)
	if err != nil {
		return model.Client{}, s.fail("find client", err)
	}
	return c, nil
}

func (s *ClientService) ensureCPFFree(ctx context.Context, cpf string, excludeID int64) error {
	return validation.EnsureNotExists(ctx, func(ctx context.Context) (bool, error) {
		return s.clients.ExistsByCPF(ctx, cpf, excludeID)
	}, "cpf", cpf)
}
