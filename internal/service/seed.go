package service

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/config"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
)

var (
	defaultSpecialties = []string{"DSA", "Hardware", "Redes", "Software", "Banco de Dados"}
	defaultRegions     = []string{"Norte", "Sul", "Leste", "Oeste"}
)

// Seeder inserts the default catalog and, when configured, the first admin.
// Running it again is a no-op.
type Seeder struct {
	Deps
	specialties SpecialtyStore
	regions     RegionStore
	users       UserStore
	hasher      password.Hasher
	admin       config.AuthConfig
}

func NewSeeder(d Deps, specialties SpecialtyStore, regions RegionStore, users UserStore, hasher password.Hasher, admin config.AuthConfig) *Seeder {
	return &Seeder{Deps: d, specialties: specialties, regions: regions, users: users, hasher: hasher, admin: admin}
}

func (s *Seeder) Seed(ctx context.Context) error {
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.seedSpecialties(ctx); err != nil {
			return err
		}
		if err := s.seedRegions(ctx); err != nil {
			return err
		}
		return s.seedAdmin(ctx)
	})
	if err != nil {
		return s.fail("seed default data", err)
	}

	s.Logger.Info().Msg("default data initialized")
	return nil
}

func (s *Seeder) seedSpecialties(ctx context.Context) error {
	for _, name := range defaultSpecialties {
		found, err := s.specialties.ExistsByName(ctx, name, 0)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		sp := model.Specialty{Name: name, Description: "Especialidade em " + name, Status: model.StatusActive}
		if err := s.specialties.Create(ctx, &sp); err != nil {
			return err
		}
	}
	return nil
}

// Default regions use their own name as city.
func (s *Seeder) seedRegions(ctx context.Context) error {
	for _, name := range defaultRegions {
		found, err := s.regions.ExistsByNameAndCity(ctx, name, name, 0)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		g := model.Region{Name: name, City: name, Description: "Região " + name + " da cidade", Status: model.StatusActive}
		if err := s.regions.Create(ctx, &g); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.admin.AdminEmail == "" || s.admin.AdminPassword == "" {
		return nil
	}

	email := normalizeEmail(s.admin.AdminEmail)
	found, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil || found {
		return err
	}

	hash, err := s.hasher.Hash(s.admin.AdminPassword)
	if err != nil {
		return err
	}

	u := model.User{
		Name:         s.admin.AdminName,
		Email:        email,
		PasswordHash: hash,
		AccessLevel:  model.AccessLevelAdmin,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return err
	}

	s.Logger.Info().Str("email", email).Msg("admin user created")
	return nil
}
