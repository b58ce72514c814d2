package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/fieldservice/internal/database"
	"github.com/deppfellow/fieldservice/internal/model"
)

const appointmentSelect = `
	SELECT a.id, a.technician_id, a.user_id, a.client_id, a.service_id,
	       to_char(a.appointment_date, 'YYYY-MM-DD'), to_char(a.appointment_time, 'HH24:MI'),
	       a.description, a.urgency, a.status, a.price::text, a.created_at, a.updated_at
	FROM appointments a`

type AppointmentRepository struct {
	db *database.Database
}

func NewAppointmentRepository(db *database.Database) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func scanAppointment(row rowScanner) (model.Appointment, error) {
	var (
		a     model.Appointment
		price *string
	)
	err := row.Scan(
		&a.ID, &a.TechnicianID, &a.UserID, &a.ClientID, &a.ServiceID,
		&a.Date, &a.Time,
		&a.Description, &a.Urgency, &a.Status, &price, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	if a.Price, err = parseNullDecimal(price); err != nil {
		return a, err
	}
	return a, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.Querier(ctx).QueryRow(ctx, `
		INSERT INTO appointments (technician_id, user_id, client_id, service_id, appointment_date, appointment_time,
		                          description, urgency, status, price)
		VALUES ($1, $2, $3, $4, $5::text::date, $6::text::time, $7, $8, $9, $10::text::numeric)
		RETURNING id, created_at, updated_at
	`, a.TechnicianID, a.UserID, a.ClientID, a.ServiceID, a.Date, a.Time,
		a.Description, a.Urgency, a.Status, nullDecimalArg(a.Price),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	err := r.db.Querier(ctx).QueryRow(ctx, `
		UPDATE appointments
		SET technician_id = $2, user_id = $3, client_id = $4, service_id = $5,
		    appointment_date = $6::text::date, appointment_time = $7::text::time,
		    description = $8, urgency = $9, status = $10, price = $11::text::numeric, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, a.ID, a.TechnicianID, a.UserID, a.ClientID, a.ServiceID, a.Date, a.Time,
		a.Description, a.Urgency, a.Status, nullDecimalArg(a.Price),
	).Scan(&a.UpdatedAt)
	return noRecord(err)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	return affectedOne(r.db.Querier(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (model.Appointment, error) {
	a, err := scanAppointment(r.db.Querier(ctx).QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	return a, noRecord(err)
}

// List applies every non-zero field of filter, ordered by date and time.
func (r *AppointmentRepository) List(ctx context.Context, filter model.AppointmentFilter) ([]model.Appointment, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID > 0 {
		add("a.user_id = $%d", filter.UserID)
	}
	if filter.TechnicianID > 0 {
		add("a.technician_id = $%d", filter.TechnicianID)
	}
	if filter.Date != "" {
		add("a.appointment_date = $%d::text::date", filter.Date)
	}

	query := appointmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.appointment_date, a.appointment_time, a.id"

	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAppointment)
}

func (r *AppointmentRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db.Querier(ctx), "appointments")
}
