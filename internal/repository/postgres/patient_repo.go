package postgres

import (
	"context"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PatientRepo struct{ db *pgxpool.Pool }

func NewPatientRepo(db *pgxpool.Pool) repository.PatientRepository { return &PatientRepo{db: db} }

const patientCols = `id::text, account_id::text, email, name, age, created_at`

func (r *PatientRepo) Create(ctx context.Context, p *models.Patient) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO patients (account_id, email, name, age)
		VALUES ($1,$2,$3,$4)
		RETURNING id::text, created_at`,
		p.AccountID, p.Email, p.Name, p.Age).Scan(&p.ID, &p.CreatedAt)
	return translate(err, "create patient")
}

func (r *PatientRepo) Get(ctx context.Context, id string) (*models.Patient, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	var p models.Patient
	err := r.db.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id=$1`, id).
		Scan(&p.ID, &p.AccountID, &p.Email, &p.Name, &p.Age, &p.CreatedAt)
	if err != nil {
		return nil, translate(err, "patient")
	}
	return &p, nil
}

func (r *PatientRepo) List(ctx context.Context, f repository.ListFilter) ([]models.Patient, error) {
	where, args := ownerWhere("account_id", f.OwnerID, "", "")
	rows, err := r.db.Query(ctx, `SELECT `+patientCols+` FROM patients `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, translate(err, "list patients")
	}
	defer rows.Close()

	out := []models.Patient{}
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Email, &p.Name, &p.Age, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
