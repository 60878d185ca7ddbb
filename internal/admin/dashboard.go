package admin

import (
	"context"
	"fmt"

	"sukaikan/internal/batch"
	"sukaikan/internal/logger"
	"sukaikan/internal/order"
	"sukaikan/internal/product"

	"go.uber.org/zap"
)

// RecentOrderLimit is how many orders the dashboard lists.
const RecentOrderLimit = 50

type OrderLister interface {
	ListRecent(ctx context.Context, limit int) ([]order.Order, error)
}

type ProductLister interface {
	List(ctx context.Context, category, search string) ([]product.Product, error)
}

type BatchReader interface {
	GetActive(ctx context.Context) batch.Batch
}

type DashboardOrder struct {
	order.Order
	MapsURL        string `json:"maps_url,omitempty"`
	AddressDisplay string `json:"alamat_display"`
}

type CountdownForm struct {
	Days    int `json:"d"`
	Hours   int `json:"h"`
	Minutes int `json:"m"`
}

type Dashboard struct {
	Orders        []DashboardOrder  `json:"orders"`
	Products      []product.Product `json:"products"`
	Batch         batch.Batch       `json:"batch"`
	TotalSales    int               `json:"total_penjualan"`
	TotalKg       int               `json:"total_kg"`
	Countdown     CountdownForm     `json:"countdown"`
	OrderStatuses []order.Status    `json:"order_statuses"`
}

type DashboardService struct {
	orders   OrderLister
	products ProductLister
	batches  BatchReader
}

func NewDashboardService(orders OrderLister, products ProductLister, batches BatchReader) *DashboardService {
	return &DashboardService{orders: orders, products: products, batches: batches}
}

// Build aggregates the recent orders, the active catalog and the active
// batch. Sales and kg totals cover only the listed orders.
func (d *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
	)

	orders, err := d.orders.ListRecent(ctx, RecentOrderLimit)
	if err != nil {
		log.Error("failed to load orders", zap.Error(err))
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	products, err := d.products.List(ctx, "", "")
	if err != nil {
		log.Error("failed to load products", zap.Error(err))
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	b := d.batches.GetActive(ctx)
	days, hours, minutes := batch.CountdownParts(b.Countdown)

	out := &Dashboard{
		Orders:        make([]DashboardOrder, 0, len(orders)),
		Products:      products,
		Batch:         b,
		Countdown:     CountdownForm{Days: days, Hours: hours, Minutes: minutes},
		OrderStatuses: order.AdminStatuses,
	}

	for _, o := range orders {
		out.TotalSales += o.Total
		out.TotalKg += o.TotalKg()

		mapsURL, display := order.SplitAddress(o.Address)
		out.Orders = append(out.Orders, DashboardOrder{
			Order:          o,
			MapsURL:        mapsURL,
			AddressDisplay: display,
		})
	}

	return out, nil
}
