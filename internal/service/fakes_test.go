package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/fieldservice/internal/errs"
	"github.com/deppfellow/fieldservice/internal/lib/cache"
	"github.com/deppfellow/fieldservice/internal/lib/password"
	"github.com/deppfellow/fieldservice/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// passThroughTx runs fn directly. Fakes do not roll back.
type passThroughTx struct{ calls int }

func (t *passThroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type sentEmail struct {
	kind, to, name, detail string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (n *recordingNotifier) EnqueueWelcome(_ context.Context, to, name, role string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEmail{"welcome", to, name, role})
	return nil
}

func (n *recordingNotifier) EnqueueStatusChange(_ context.Context, to, name, status string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEmail{"status", to, name, status})
	return nil
}

type fixture struct {
	deps         Deps
	tx           *passThroughTx
	notifier     *recordingNotifier
	cache        *cache.MemoryCache
	hasher       password.Hasher
	users        *fakeUsers
	clients      *fakeClients
	technicians  *fakeTechnicians
	regions      *fakeRegions
	specialties  *fakeSpecialties
	offerings    *fakeOfferings
	appointments *fakeAppointments
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zerolog.Nop()
	f := &fixture{
		tx:       &passThroughTx{},
		notifier: &recordingNotifier{},
		cache:    cache.NewMemoryCache(time.Minute, &logger),
		hasher:   password.NewBcryptHasher(bcrypt.MinCost),
		users:    &fakeUsers{},
	}
	f.clients = &fakeClients{users: f.users}
	f.regions = &fakeRegions{}
	f.specialties = &fakeSpecialties{}
	f.technicians = &fakeTechnicians{users: f.users, regions: f.regions, specialties: f.specialties}
	f.offerings = &fakeOfferings{}
	f.appointments = &fakeAppointments{}
	f.deps = Deps{
		Logger:   &logger,
		Tx:       f.tx,
		Notifier: f.notifier,
		Cache:    f.cache,
		Now:      func() time.Time { return fixedNow },
	}
	return f
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// fakeUsers

type fakeUsers struct {
	rows      []model.User
	nextID    int64
	deleteErr error
	lookups   int
}

func (r *fakeUsers) Create(_ context.Context, u *model.User) error {
	r.nextID++
	u.ID = r.nextID
	u.RegisteredAt = fixedNow
	u.UpdatedAt = fixedNow
	r.rows = append(r.rows, *u)
	return nil
}

func (r *fakeUsers) find(id int64) int {
	for i, u := range r.rows {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeUsers) Update(_ context.Context, u *model.User) error {
	i := r.find(u.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i] = *u
	return nil
}

func (r *fakeUsers) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].PasswordHash = hash
	return nil
}

func (r *fakeUsers) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id int64) (model.User, error) {
	r.lookups++
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return model.User{}, errs.ErrNoRecord
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.lookups++
	for _, u := range r.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errs.ErrNoRecord
}

func (r *fakeUsers) List(_ context.Context, status *model.Status) ([]model.User, error) {
	out := []model.User{}
	for _, u := range r.rows {
		if status == nil || u.Status == *status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsers) SearchByName(_ context.Context, name string) ([]model.User, error) {
	out := []model.User{}
	for _, u := range r.rows {
		if containsFold(u.Name, name) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUsers) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.rows {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUsers) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeClients joins the owned user like the SQL repository does.

type fakeClients struct {
	users     *fakeUsers
	rows      []model.Client
	nextID    int64
	deleteErr error
}

func (r *fakeClients) withUser(c model.Client) model.Client {
	if i := r.users.find(c.UserID); i >= 0 {
		u := r.users.rows[i]
		c.User = &u
	}
	return c
}

func (r *fakeClients) find(id int64) int {
	for i, c := range r.rows {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeClients) Create(_ context.Context, c *model.Client) error {
	r.nextID++
	c.ID = r.nextID
	stored := *c
	stored.User = nil
	r.rows = append(r.rows, stored)
	return nil
}

func (r *fakeClients) Update(_ context.Context, c *model.Client) error {
	i := r.find(c.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	stored := *c
	stored.User = nil
	r.rows[i] = stored
	return nil
}

func (r *fakeClients) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeClients) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeClients) GetByID(_ context.Context, id int64) (model.Client, error) {
	if i := r.find(id); i >= 0 {
		return r.withUser(r.rows[i]), nil
	}
	return model.Client{}, errs.ErrNoRecord
}

func (r *fakeClients) List(_ context.Context, status *model.Status, cpf *string) ([]model.Client, error) {
	out := []model.Client{}
	for _, c := range r.rows {
		if (status == nil || c.Status == *status) && (cpf == nil || c.CPF == *cpf) {
			out = append(out, r.withUser(c))
		}
	}
	return out, nil
}

func (r *fakeClients) SearchByName(_ context.Context, name string) ([]model.Client, error) {
	out := []model.Client{}
	for _, c := range r.rows {
		c = r.withUser(c)
		if c.User != nil && containsFold(c.User.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClients) ExistsByCPF(_ context.Context, cpf string, excludeID int64) (bool, error) {
	for _, c := range r.rows {
		if c.CPF == cpf && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClients) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeTechnicians

type fakeTechnicians struct {
	users       *fakeUsers
	regions     *fakeRegions
	specialties *fakeSpecialties
	rows        []model.Technician
	nextID      int64
	regionLinks []model.TechnicianRegion
	specLinks   []model.TechnicianSpecialty
}

func (r *fakeTechnicians) withUser(t model.Technician) model.Technician {
	if i := r.users.find(t.UserID); i >= 0 {
		u := r.users.rows[i]
		t.User = &u
	}
	return t
}

func (r *fakeTechnicians) find(id int64) int {
	for i, t := range r.rows {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeTechnicians) Create(_ context.Context, t *model.Technician) error {
	r.nextID++
	t.ID = r.nextID
	stored := *t
	stored.User, stored.Regions, stored.Specialties = nil, nil, nil
	r.rows = append(r.rows, stored)
	return nil
}

func (r *fakeTechnicians) Update(_ context.Context, t *model.Technician) error {
	i := r.find(t.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	stored := *t
	stored.User, stored.Regions, stored.Specialties = nil, nil, nil
	r.rows[i] = stored
	return nil
}

func (r *fakeTechnicians) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeTechnicians) Delete(_ context.Context, id int64) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeTechnicians) GetByID(_ context.Context, id int64) (model.Technician, error) {
	if i := r.find(id); i >= 0 {
		return r.withUser(r.rows[i]), nil
	}
	return model.Technician{}, errs.ErrNoRecord
}

func (r *fakeTechnicians) List(_ context.Context, status *model.Status, document *string) ([]model.Technician, error) {
	out := []model.Technician{}
	for _, t := range r.rows {
		if (status == nil || t.Status == *status) && (document == nil || t.CPFOrCNPJ == *document) {
			out = append(out, r.withUser(t))
		}
	}
	return out, nil
}

func (r *fakeTechnicians) SearchByName(_ context.Context, name string) ([]model.Technician, error) {
	out := []model.Technician{}
	for _, t := range r.rows {
		t = r.withUser(t)
		if t.User != nil && containsFold(t.User.Name, name) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTechnicians) ListBySpecialtyName(_ context.Context, name string) ([]model.Technician, error) {
	out := []model.Technician{}
	for _, t := range r.rows {
		if t.Status != model.StatusActive {
			continue
		}
		for _, l := range r.specLinks {
			if l.TechnicianID != t.ID || l.Status != model.StatusActive {
				continue
			}
			sp, err := r.specialties.GetByID(context.Background(), l.SpecialtyID)
			if err == nil && strings.EqualFold(sp.Name, name) {
				out = append(out, r.withUser(t))
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTechnicians) ExistsByDocument(_ context.Context, document string, excludeID int64) (bool, error) {
	for _, t := range r.rows {
		if t.CPFOrCNPJ == document && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTechnicians) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeTechnicians) AddRegion(_ context.Context, technicianID, regionID int64) (model.TechnicianRegion, error) {
	l := model.TechnicianRegion{ID: int64(len(r.regionLinks) + 1), TechnicianID: technicianID, RegionID: regionID, Status: model.StatusActive}
	r.regionLinks = append(r.regionLinks, l)
	return l, nil
}

func (r *fakeTechnicians) HasRegion(_ context.Context, technicianID, regionID int64) (bool, error) {
	for _, l := range r.regionLinks {
		if l.TechnicianID == technicianID && l.RegionID == regionID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTechnicians) RemoveRegion(_ context.Context, technicianID, regionID int64) error {
	for i, l := range r.regionLinks {
		if l.TechnicianID == technicianID && l.RegionID == regionID {
			r.regionLinks = append(r.regionLinks[:i], r.regionLinks[i+1:]...)
			return nil
		}
	}
	return errs.ErrNoRecord
}

func (r *fakeTechnicians) DeleteRegions(_ context.Context, technicianID int64) error {
	kept := r.regionLinks[:0]
	for _, l := range r.regionLinks {
		if l.TechnicianID != technicianID {
			kept = append(kept, l)
		}
	}
	r.regionLinks = kept
	return nil
}

func (r *fakeTechnicians) Regions(ctx context.Context, technicianID int64) ([]model.Region, error) {
	out := []model.Region{}
	for _, l := range r.regionLinks {
		if l.TechnicianID != technicianID {
			continue
		}
		g, err := r.regions.GetByID(ctx, l.RegionID)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeTechnicians) AddSpecialty(_ context.Context, technicianID, specialtyID int64) (model.TechnicianSpecialty, error) {
	l := model.TechnicianSpecialty{ID: int64(len(r.specLinks) + 1), TechnicianID: technicianID, SpecialtyID: specialtyID, Status: model.StatusActive}
	r.specLinks = append(r.specLinks, l)
	return l, nil
}

func (r *fakeTechnicians) HasSpecialty(_ context.Context, technicianID, specialtyID int64) (bool, error) {
	for _, l := range r.specLinks {
		if l.TechnicianID == technicianID && l.SpecialtyID == specialtyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTechnicians) RemoveSpecialty(_ context.Context, technicianID, specialtyID int64) error {
	for i, l := range r.specLinks {
		if l.TechnicianID == technicianID && l.SpecialtyID == specialtyID {
			r.specLinks = append(r.specLinks[:i], r.specLinks[i+1:]...)
			return nil
		}
	}
	return errs.ErrNoRecord
}

func (r *fakeTechnicians) DeleteSpecialties(_ context.Context, technicianID int64) error {
	kept := r.specLinks[:0]
	for _, l := range r.specLinks {
		if l.TechnicianID != technicianID {
			kept = append(kept, l)
		}
	}
	r.specLinks = kept
	return nil
}

func (r *fakeTechnicians) Specialties(ctx context.Context, technicianID int64) ([]model.Specialty, error) {
	out := []model.Specialty{}
	for _, l := range r.specLinks {
		if l.TechnicianID != technicianID {
			continue
		}
		sp, err := r.specialties.GetByID(ctx, l.SpecialtyID)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, nil
}

// fakeRegions

type fakeRegions struct {
	rows      []model.Region
	nextID    int64
	deleteErr error
}

func (r *fakeRegions) find(id int64) int {
	for i, g := range r.rows {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeRegions) Create(_ context.Context, g *model.Region) error {
	r.nextID++
	g.ID = r.nextID
	r.rows = append(r.rows, *g)
	return nil
}

func (r *fakeRegions) Update(_ context.Context, g *model.Region) error {
	i := r.find(g.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i] = *g
	return nil
}

func (r *fakeRegions) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeRegions) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeRegions) GetByID(_ context.Context, id int64) (model.Region, error) {
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return model.Region{}, errs.ErrNoRecord
}

func (r *fakeRegions) GetByNameAndCity(_ context.Context, name, city string) (model.Region, error) {
	for _, g := range r.rows {
		if strings.EqualFold(g.Name, name) && strings.EqualFold(g.City, city) {
			return g, nil
		}
	}
	return model.Region{}, errs.ErrNoRecord
}

func (r *fakeRegions) List(_ context.Context, status *model.Status, city *string) ([]model.Region, error) {
	out := []model.Region{}
	for _, g := range r.rows {
		if (status == nil || g.Status == *status) && (city == nil || strings.EqualFold(g.City, *city)) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRegions) ExistsByNameAndCity(_ context.Context, name, city string, excludeID int64) (bool, error) {
	for _, g := range r.rows {
		if strings.EqualFold(g.Name, name) && strings.EqualFold(g.City, city) && g.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegions) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeSpecialties

type fakeSpecialties struct {
	rows   []model.Specialty
	nextID int64
}

func (r *fakeSpecialties) find(id int64) int {
	for i, s := range r.rows {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeSpecialties) Create(_ context.Context, s *model.Specialty) error {
	r.nextID++
	s.ID = r.nextID
	r.rows = append(r.rows, *s)
	return nil
}

func (r *fakeSpecialties) Update(_ context.Context, s *model.Specialty) error {
	i := r.find(s.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i] = *s
	return nil
}

func (r *fakeSpecialties) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeSpecialties) Delete(_ context.Context, id int64) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeSpecialties) GetByID(_ context.Context, id int64) (model.Specialty, error) {
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return model.Specialty{}, errs.ErrNoRecord
}

func (r *fakeSpecialties) GetByName(_ context.Context, name string) (model.Specialty, error) {
	for _, s := range r.rows {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return model.Specialty{}, errs.ErrNoRecord
}

func (r *fakeSpecialties) List(_ context.Context, status *model.Status) ([]model.Specialty, error) {
	out := []model.Specialty{}
	for _, s := range r.rows {
		if status == nil || s.Status == *status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSpecialties) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, s := range r.rows {
		if strings.EqualFold(s.Name, name) && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSpecialties) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeOfferings

type fakeOfferings struct {
	rows   []model.Offering
	nextID int64
}

func (r *fakeOfferings) find(id int64) int {
	for i, o := range r.rows {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeOfferings) Create(_ context.Context, o *model.Offering) error {
	r.nextID++
	o.ID = r.nextID
	r.rows = append(r.rows, *o)
	return nil
}

func (r *fakeOfferings) Update(_ context.Context, o *model.Offering) error {
	i := r.find(o.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i] = *o
	return nil
}

func (r *fakeOfferings) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i].Status = status
	return nil
}

func (r *fakeOfferings) Delete(_ context.Context, id int64) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeOfferings) GetByID(_ context.Context, id int64) (model.Offering, error) {
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return model.Offering{}, errs.ErrNoRecord
}

func (r *fakeOfferings) List(_ context.Context, status *model.Status, offeringType *string) ([]model.Offering, error) {
	out := []model.Offering{}
	for _, o := range r.rows {
		if (status == nil || o.Status == *status) && (offeringType == nil || o.Type == *offeringType) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfferings) SearchByName(_ context.Context, name string) ([]model.Offering, error) {
	out := []model.Offering{}
	for _, o := range r.rows {
		if containsFold(o.Name, name) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfferings) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeAppointments

type fakeAppointments struct {
	rows   []model.Appointment
	nextID int64
}

func (r *fakeAppointments) find(id int64) int {
	for i, a := range r.rows {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (r *fakeAppointments) Create(_ context.Context, a *model.Appointment) error {
	r.nextID++
	a.ID = r.nextID
	r.rows = append(r.rows, *a)
	return nil
}

func (r *fakeAppointments) Update(_ context.Context, a *model.Appointment) error {
	i := r.find(a.ID)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows[i] = *a
	return nil
}

func (r *fakeAppointments) Delete(_ context.Context, id int64) error {
	i := r.find(id)
	if i < 0 {
		return errs.ErrNoRecord
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *fakeAppointments) GetByID(_ context.Context, id int64) (model.Appointment, error) {
	if i := r.find(id); i >= 0 {
		return r.rows[i], nil
	}
	return model.Appointment{}, errs.ErrNoRecord
}

func (r *fakeAppointments) List(_ context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	out := []model.Appointment{}
	for _, a := range r.rows {
		if filter.UserID != 0 && a.UserID != filter.UserID {
			continue
		}
		if filter.TechnicianID != 0 && a.TechnicianID != filter.TechnicianID {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointments) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}
