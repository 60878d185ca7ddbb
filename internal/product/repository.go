package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	ListSeasonal(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Upsert(ctx context.Context, p Product) error
	Update(ctx context.Context, p Product, replaceImage bool) error
	Deactivate(ctx context.Context, id string) error
	ListRecommendations(ctx context.Context, productID string) ([]Recommendation, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, nama, kategori, harga_per_kg, label_musim, ukuran, tekstur, image_path, is_active`

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	var (
		where = []string{"is_active = TRUE"}
		args  []any
	)

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("kategori = $%d", len(args)))
	}

	// strpos keeps the search a case-sensitive substring match.
	if filter.Search != "" {
		args = append(args, filter.Search)
		where = append(where, fmt.Sprintf("strpos(nama, $%d) > 0", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(where, " AND ") + ` ORDER BY nama`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *repository) ListSeasonal(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = TRUE AND COALESCE(label_musim, '') <> ''
		ORDER BY nama
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Upsert inserts a product, overwriting any existing row with the same id.
func (r *repository) Upsert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, nama, kategori, harga_per_kg, ukuran, tekstur, label_musim, image_path, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			nama = EXCLUDED.nama,
			kategori = EXCLUDED.kategori,
			harga_per_kg = EXCLUDED.harga_per_kg,
			ukuran = EXCLUDED.ukuran,
			tekstur = EXCLUDED.tekstur,
			label_musim = EXCLUDED.label_musim,
			image_path = EXCLUDED.image_path,
			is_active = EXCLUDED.is_active
	`, p.ID, p.Name, p.Category, p.PricePerKg, p.Size, p.Texture, p.SeasonLabel, p.ImagePath, p.IsActive)
	return err
}

func (r *repository) Update(ctx context.Context, p Product, replaceImage bool) error {
	var (
		res sql.Result
		err error
	)

	if replaceImage {
		res, err = r.db.ExecContext(ctx, `
			UPDATE products
			SET nama = $1, kategori = $2, harga_per_kg = $3, ukuran = $4, tekstur = $5, label_musim = $6, image_path = $7
			WHERE id = $8
		`, p.Name, p.Category, p.PricePerKg, p.Size, p.Texture, p.SeasonLabel, p.ImagePath, p.ID)
	} else {
		res, err = r.db.ExecContext(ctx, `
			UPDATE products
			SET nama = $1, kategori = $2, harga_per_kg = $3, ukuran = $4, tekstur = $5, label_musim = $6
			WHERE id = $7
		`, p.Name, p.Category, p.PricePerKg, p.Size, p.Texture, p.SeasonLabel, p.ID)
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET is_active = FALSE WHERE id = $1`, id)
	return err
}

func (r *repository) ListRecommendations(ctx context.Context, productID string) ([]Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, nama, estimasi
		FROM recommendations
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []Recommendation{}
	for rows.Next() {
		var rec Recommendation
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Name, &rec.Estimate); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*Product, error) {
	var (
		p                            Product
		season, size, texture, image sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.PricePerKg,
		&season,
		&size,
		&texture,
		&image,
		&p.IsActive,
	); err != nil {
		return nil, err
	}

	p.SeasonLabel = season.String
	p.Size = size.String
	p.Texture = texture.String
	p.ImagePath = image.String
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
