package postgres

import (
	"context"

	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/errs"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/models"
	"github.com/CdtaAq/Vaccine-Ticketing-System/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VaccineRepo struct{ db *pgxpool.Pool }

func NewVaccineRepo(db *pgxpool.Pool) repository.VaccineRepository { return &VaccineRepo{db: db} }

const vaccineCols = `id::text, name, manufacturer, doses_required, storage_requirements, created_at`

func (r *VaccineRepo) Create(ctx context.Context, v *models.Vaccine) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO vaccines (name, manufacturer, doses_required, storage_requirements)
		VALUES ($1,$2,$3,$4)
		RETURNING id::text, created_at`,
		v.Name, v.Manufacturer, v.DosesRequired, v.StorageRequirements).Scan(&v.ID, &v.CreatedAt)
	return translate(err, "create vaccine")
}

func (r *VaccineRepo) Get(ctx context.Context, id string) (*models.Vaccine, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	var v models.Vaccine
	err := r.db.QueryRow(ctx, `SELECT `+vaccineCols+` FROM vaccines WHERE id=$1`, id).
		Scan(&v.ID, &v.Name, &v.Manufacturer, &v.DosesRequired, &v.StorageRequirements, &v.CreatedAt)
	if err != nil {
		return nil, translate(err, "vaccine")
	}
	return &v, nil
}

// List orders by the bigserial seq column so ties in created_at keep
// insertion order.
func (r *VaccineRepo) List(ctx context.Context) ([]models.Vaccine, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vaccineCols+` FROM vaccines ORDER BY seq`)
	if err != nil {
		return nil, translate(err, "list vaccines")
	}
	defer rows.Close()

	out := []models.Vaccine{}
	for rows.Next() {
		var v models.Vaccine
		if err := rows.Scan(&v.ID, &v.Name, &v.Manufacturer, &v.DosesRequired, &v.StorageRequirements, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
