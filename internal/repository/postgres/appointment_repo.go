package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepo struct{ db *pgxpool.Pool }

func NewAppointmentRepo(db *pgxpool.Pool) repository.AppointmentRepository {
	return &AppointmentRepo{db: db}
}

const appointmentCols = `id::text, patient_id::text, vaccine_id::text, booked_by::text,
	scheduled_date, dose_number, status, created_at, updated_at`

func scanAppointment(row pgx.Row, a *models.Appointment) error {
	return row.Scan(&a.ID, &a.PatientID, &a.VaccineID, &a.BookedBy,
		&a.ScheduledDate, &a.DoseNumber, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

// Create is guarded by appointments_active_dose_key, a partial unique index
// over (patient_id, vaccine_id, dose_number) for non-cancelled rows.
func (r *AppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, vaccine_id, booked_by, scheduled_date, dose_number, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id::text, created_at, updated_at`,
		a.PatientID, a.VaccineID, a.BookedBy, a.ScheduledDate, a.DoseNumber, string(a.Status),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return translate(err, "create appointment")
}

func (r *AppointmentRepo) Get(ctx context.Context, id string) (*models.Appointment, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	var a models.Appointment
	if err := scanAppointment(r.db.QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointments WHERE id=$1`, id), &a); err != nil {
		return nil, translate(err, "appointment")
	}
	return &a, nil
}

func (r *AppointmentRepo) List(ctx context.Context, f repository.ListFilter) ([]models.Appointment, error) {
	where, args := ownerWhere("booked_by", f.OwnerID, "status", f.Status)
	rows, err := r.db.Query(ctx, `SELECT `+appointmentCols+` FROM appointments `+where+` ORDER BY scheduled_date, created_at`, args...)
	if err != nil {
		return nil, translate(err, "list appointments")
	}
	defer rows.Close()

	out := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Transition is a single conditional UPDATE, so two concurrent outcomes for
// the same appointment cannot both apply.
func (r *AppointmentRepo) Transition(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus) (*models.Appointment, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	src := make([]string, len(from))
	for i, s := range from {
		src[i] = string(s)
	}

	var a models.Appointment
	err := scanAppointment(r.db.QueryRow(ctx, `
		UPDATE appointments SET status=$1, updated_at=now()
		WHERE id=$2 AND status = ANY($3)
		RETURNING `+appointmentCols, string(to), id, src), &a)
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, translate(err, "transition appointment")
	}

	cur, gerr := r.Get(ctx, id)
	if gerr != nil {
		return nil, gerr
	}
	return nil, fmt.Errorf("%s -> %s: %w", cur.Status, to, errs.ErrInvalidTransition)
}

func (r *AppointmentRepo) CountByStatus(ctx context.Context) (map[models.AppointmentStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM appointments GROUP BY status`)
	if err != nil {
		return nil, translate(err, "count appointments")
	}
	defer rows.Close()

	out := map[models.AppointmentStatus]int{}
	for rows.Next() {
		var s models.AppointmentStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}
