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

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) repository.TicketRepository { return &TicketRepo{db: db} }

const ticketCols = `id::text, created_by::text, COALESCE(assigned_to::text, ''), title, description, status, created_at, updated_at`

func scanTicket(row pgx.Row, t *models.Ticket) error {
	return row.Scan(&t.ID, &t.CreatedBy, &t.AssignedTo, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO tickets (created_by, assigned_to, title, description, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id::text, created_at, updated_at`,
		t.CreatedBy, nullIfEmpty(t.AssignedTo), t.Title, t.Description, string(t.Status),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return translate(err, "create ticket")
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	if !validID(id) {
		return nil, errs.ErrNotFound
	}
	var t models.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketCols+` FROM tickets WHERE id=$1`, id), &t); err != nil {
		return nil, translate(err, "ticket")
	}
	return &t, nil
}

func (r *TicketRepo) List(ctx context.Context, f repository.ListFilter) ([]models.Ticket, error) {
	where, args := ownerWhere("created_by", f.OwnerID, "status", f.Status)
	rows, err := r.db.Query(ctx, `SELECT `+ticketCols+` FROM tickets `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, translate(err, "list tickets")
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update writes status and assignee only while the stored status is still
// expected; creator and timestamps of creation are immutable.
func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket, expected models.TicketStatus) error {
	if !validID(t.ID) {
		return errs.ErrNotFound
	}
	err := r.db.QueryRow(ctx, `
		UPDATE tickets SET status=$1, assigned_to=$2, updated_at=now()
		WHERE id=$3 AND status=$4
		RETURNING `+ticketCols,
		string(t.Status), nullIfEmpty(t.AssignedTo), t.ID, string(expected)).
		Scan(&t.ID, &t.CreatedBy, &t.AssignedTo, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return translate(err, "update ticket")
	}
	if _, gerr := r.Get(ctx, t.ID); gerr != nil {
		return gerr
	}
	return fmt.Errorf("ticket changed concurrently: %w", errs.ErrInvalidTransition)
}

func (r *TicketRepo) CountUnresolved(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status NOT IN ('resolved','closed')`).Scan(&n)
	if err != nil {
		return 0, translate(err, "count tickets")
	}
	return n, nil
}
