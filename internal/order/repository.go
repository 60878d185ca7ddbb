package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByPhone(ctx context.Context, phone string) ([]Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	SetProof(ctx context.Context, id uint, reference string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, nama, hp, alamat, kecamatan, metode_bayar, total, status,
	tanggal_pengiriman, items_json, bukti_path, created_at, payment_deadline`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o                                 Order
		district, method, shipment, items sql.NullString
		proof                             sql.NullString
		deadline                          sql.NullTime
		status                            string
	)

	err := row.Scan(
		&o.ID, &o.Name, &o.Phone, &o.Address, &district, &method, &o.Total, &status,
		&shipment, &items, &proof, &o.CreatedAt, &deadline,
	)
	if err != nil {
		return nil, err
	}

	o.District = district.String
	o.PaymentMethod = method.String
	o.Status = Status(status)
	o.ShipmentDate = shipment.String
	o.ProofPath = proof.String
	o.CreatedAt = o.CreatedAt.UTC()
	if deadline.Valid {
		d := deadline.Time.UTC()
		o.PaymentDeadline = &d
	}

	o.Items, err = DecodeItems(items.String)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}
	return &o, nil
}

func (r *repository) Insert(ctx context.Context, o *Order) error {
	itemsJSON, err := EncodeItems(o.Items)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			nama, hp, alamat, kecamatan, metode_bayar, total, status,
			tanggal_pengiriman, items_json, created_at, payment_deadline
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		o.Name, o.Phone, o.Address, o.District, o.PaymentMethod, o.Total, string(o.Status),
		o.ShipmentDate, itemsJSON, o.CreatedAt, nullTime(o.PaymentDeadline),
	).Scan(&o.ID)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// ListByPhone matches the phone number exactly, newest first.
func (r *repository) ListByPhone(ctx context.Context, phone string) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE hp = $1 ORDER BY created_at DESC`, phone)
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *repository) SetProof(ctx context.Context, id uint, reference string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET bukti_path = $1 WHERE id = $2`, reference, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
