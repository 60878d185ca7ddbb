package cart

import (
	"context"
	"errors"
	"fmt"

	"sukaikan/internal/logger"
	"sukaikan/internal/product"

	"go.uber.org/zap"
)

// ProductLookup resolves a product by id.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

type Service interface {
	// Materialize prices every entry of c against the current catalog.
	// Entries whose product is gone or inactive are skipped.
	Materialize(ctx context.Context, c Cart) ([]LineItem, int, error)
}

type service struct {
	products ProductLookup
}

func NewService(products ProductLookup) Service {
	return &service{products: products}
}

func (s *service) Materialize(ctx context.Context, c Cart) ([]LineItem, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Materialize"),
	)

	items := make([]LineItem, 0, len(c))
	total := 0

	for _, id := range c.ProductIDs() {
		p, err := s.products.Get(ctx, id)
		if errors.Is(err, product.ErrProductNotFound) {
			log.Debug("skipping unknown product", zap.String("product_id", id))
			continue
		}
		if err != nil {
			log.Error("failed to load product", zap.String("product_id", id), zap.Error(err))
			return nil, 0, fmt.Errorf("%w: %w", ErrFailedMaterialize, err)
		}
		if !p.IsActive {
			log.Debug("skipping inactive product", zap.String("product_id", id))
			continue
		}

		qty := c[id]
		subtotal := p.PricePerKg * qty
		total += subtotal

		items = append(items, LineItem{
			ProductID:  id,
			Name:       p.Name,
			PricePerKg: p.PricePerKg,
			Qty:        qty,
			Subtotal:   subtotal,
			ImagePath:  p.ImagePath,
		})
	}

	return items, total, nil
}
