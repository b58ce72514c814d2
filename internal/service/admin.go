package service

import (
	"context"

	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// AdminCounters names the tables counted on the dashboard.
type AdminCounters struct {
	Users        Counter
	Clients      Counter
	Technicians  Counter
	Services     Counter
	Regions      Counter
	Specialties  Counter
	Appointments Counter
}

type AdminService struct {
	Deps
	counters AdminCounters
	users    UserStore
	hasher   password.Hasher
}

func NewAdminService(d Deps, counters AdminCounters, users UserStore, hasher password.Hasher) *AdminService {
	return &AdminService{Deps: d, counters: counters, users: users, hasher: hasher}
}

func (s *AdminService) Stats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats

	for _, c := range []struct {
		counter Counter
		dest    *int64
	}{
		{s.counters.Users, &stats.Users},
		{s.counters.Clients, &stats.Clients},
		{s.counters.Technicians, &stats.Technicians},
		{s.counters.Services, &stats.Services},
		{s.counters.Regions, &stats.Regions},
		{s.counters.Specialties, &stats.Specialties},
		{s.counters.Appointments, &stats.Appointments},
	} {
		n, err := c.counter.Count(ctx)
		if err != nil {
			return model.DashboardStats{}, s.fail("load dashboard stats", err)
		}
		*c.dest = n
	}

	return stats, nil
}

// RehashPasswords replaces every stored password that is not a bcrypt hash
// (legacy plaintext) with its hash, in one transaction.
func (s *AdminService) RehashPasswords(ctx context.Context) (model.RehashResult, error) {
	var (
		result  model.RehashResult
		touched []model.User
	)

	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		users, err := s.users.List(ctx, nil)
		if err != nil {
			return err
		}

		for _, u := range users {
			result.Checked++
			if password.IsHash(u.PasswordHash) {
				continue
			}

			hash, err := s.hasher.Hash(u.PasswordHash)
			if err != nil {
				return err
			}
			if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
				return err
			}
			touched = append(touched, u)
			result.Rehashed++
		}
		return nil
	})
	if err != nil {
		return model.RehashResult{}, s.fail("rehash passwords", err)
	}

	s.evictUsers(ctx, touched...)
	s.Logger.Info().Int("checked", result.Checked).Int("rehashed", result.Rehashed).Msg("password rehash finished")
	return result, nil
}
