// Package seed fills an empty database with the launch catalog and the
// first shipment batch.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"sukaikan/internal/logger"

	"go.uber.org/zap"
)

// Run seeds products with their recommendations when the products table is
// empty, and the initial batch when the batches table is empty. Running it
// again is a no-op.
func Run(ctx context.Context, db *sql.DB) error {
	log := logger.FromCtx(ctx).With(zap.String("layer", "seed"))

	seeded, err := seedProducts(ctx, db)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("seeded products", zap.Int("products", len(Products)), zap.Int("recommendations", len(Recommendations)))
	}

	seeded, err = seedBatch(ctx, db)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("seeded initial batch", zap.String("nama", InitialBatch.Name))
	}
	return nil
}

func isEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n == 0, nil
}

func seedProducts(ctx context.Context, db *sql.DB) (bool, error) {
	empty, err := isEmpty(ctx, db, "products")
	if err != nil || !empty {
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, p := range Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, nama, kategori, harga_per_kg, label_musim, ukuran, tekstur, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		`, p.ID, p.Name, p.Category, p.PricePerKg, p.SeasonLabel, p.Size, p.Texture)
		if err != nil {
			return false, fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	for _, r := range Recommendations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recommendations (product_id, nama, estimasi)
			VALUES ($1, $2, $3)
		`, r.ProductID, r.Name, r.Estimate)
		if err != nil {
			return false, fmt.Errorf("failed to seed recommendation %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func seedBatch(ctx context.Context, db *sql.DB) (bool, error) {
	empty, err := isEmpty(ctx, db, "batches")
	if err != nil || !empty {
		return false, err
	}

	b := InitialBatch
	_, err = db.ExecContext(ctx, `
		INSERT INTO batches (nama, tanggal_pengiriman, status, countdown, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
	`, b.Name, b.ShipmentDate, b.Status, b.Countdown)
	if err != nil {
		return false, fmt.Errorf("failed to seed batch: %w", err)
	}
	return true, nil
}
