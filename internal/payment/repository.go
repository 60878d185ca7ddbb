package payment

import (
	"context"
	"database/sql"
)

type Repository interface {
	SaveAttempt(ctx context.Context, a *Attempt) error
	ListByOrder(ctx context.Context, orderID uint) ([]Attempt, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveAttempt(ctx context.Context, a *Attempt) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payment_attempts (order_id, reference, token, redirect_url, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.OrderID, a.Reference, a.Token, a.RedirectURL, a.Amount, a.CreatedAt).Scan(&a.ID)
}

// ListByOrder returns the attempts for an order, oldest first.
func (r *repository) ListByOrder(ctx context.Context, orderID uint) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, reference, token, redirect_url, amount, created_at
		FROM payment_attempts
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a           Attempt
			redirectURL sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.OrderID, &a.Reference, &a.Token, &redirectURL, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.RedirectURL = redirectURL.String
		out = append(out, a)
	}
	return out, rows.Err()
}
