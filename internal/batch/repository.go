package batch

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Repository interface {
	GetActive(ctx context.Context) (*Batch, error)
	SetDeadline(ctx context.Context, id uint, deadline time.Time) error
	Update(ctx context.Context, b Batch) error
	Insert(ctx context.Context, b Batch) (uint, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetActive returns the most recently created active batch.
func (r *repository) GetActive(ctx context.Context) (*Batch, error) {
	var (
		b                           Batch
		shipment, status, countdown sql.NullString
		deadline                    sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, nama, tanggal_pengiriman, status, countdown, deadline, is_active
		FROM batches
		WHERE is_active = TRUE
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&b.ID, &b.Name, &shipment, &status, &countdown, &deadline, &b.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveBatch
	}
	if err != nil {
		return nil, err
	}

	b.ShipmentDate = shipment.String
	b.Status = status.String
	b.Countdown = countdown.String
	if deadline.Valid {
		d := deadline.Time
		b.Deadline = &d
	}
	return &b, nil
}

func (r *repository) SetDeadline(ctx context.Context, id uint, deadline time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE batches SET deadline = $1 WHERE id = $2`, deadline, id)
	return err
}

func (r *repository) Update(ctx context.Context, b Batch) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE batches
		SET nama = $1, tanggal_pengiriman = $2, status = $3, countdown = $4, deadline = $5
		WHERE id = $6
	`, b.Name, b.ShipmentDate, b.Status, b.Countdown, b.Deadline, b.ID)
	return err
}

func (r *repository) Insert(ctx context.Context, b Batch) (uint, error) {
	var id uint
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO batches (nama, tanggal_pengiriman, status, countdown, deadline, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`, b.Name, b.ShipmentDate, b.Status, b.Countdown, b.Deadline).Scan(&id)
	return id, err
}
