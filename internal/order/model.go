package order

import (
	"time"

	"sukaikan/internal/cart"
)

// Status is an order status. Admins may also store free text, which is kept
// as-is.
type Status string

const (
	StatusAwaitingPayment Status = "Menunggu Pembayaran"
	StatusProcessing      Status = "Diproses"
	StatusShipped         Status = "Dikirim"
	StatusCompleted       Status = "Selesai"
	StatusCancelled       Status = "Dibatalkan"

	// StatusExpiredDisplay is shown for unpaid orders past their deadline.
	// It is never stored.
	StatusExpiredDisplay Status = "Dibatalkan (Expired)"
)

var knownStatuses = map[Status]bool{
	StatusAwaitingPayment: true,
	StatusProcessing:      true,
	StatusShipped:         true,
	StatusCompleted:       true,
	StatusCancelled:       true,
	StatusExpiredDisplay:  true,
}

func (s Status) Known() bool {
	return knownStatuses[s]
}

// AdminStatuses lists the statuses offered on the dashboard.
var AdminStatuses = []Status{
	StatusAwaitingPayment,
	StatusProcessing,
	StatusShipped,
	StatusCompleted,
	StatusCancelled,
}

const (
	PaymentWindow = 5 * time.Minute

	// defaultDistrict is written for every new order; the checkout form no
	// longer asks for it.
	defaultDistrict = "-"
)

// LineItem is the priced snapshot of one product stored with an order.
type LineItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"nama"`
	PricePerKg int    `json:"harga_per_kg"`
	Qty        int    `json:"qty"`
	Subtotal   int    `json:"subtotal"`
}

func snapshotItems(lines []cart.LineItem) []LineItem {
	items := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, LineItem{
			ProductID:  l.ProductID,
			Name:       l.Name,
			PricePerKg: l.PricePerKg,
			Qty:        l.Qty,
			Subtotal:   l.Subtotal,
		})
	}
	return items
}

type Order struct {
	ID              uint       `json:"id"`
	Name            string     `json:"nama"`
	Phone           string     `json:"hp"`
	Address         string     `json:"alamat"`
	District        string     `json:"kecamatan"`
	PaymentMethod   string     `json:"metode_bayar"`
	Total           int        `json:"total"`
	Status          Status     `json:"status"`
	ShipmentDate    string     `json:"tanggal_pengiriman"`
	Items           []LineItem `json:"items"`
	ProofPath       string     `json:"bukti_path,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	PaymentDeadline *time.Time `json:"payment_deadline,omitempty"`
}

// OrderView is an order as shown to a customer tracking by phone.
type OrderView struct {
	Order
	Expired       bool   `json:"is_expired"`
	DisplayStatus Status `json:"display_status"`
}

type CreateInput struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod string
}

// PaymentReference identifies one gateway transaction for an order.
type PaymentReference struct {
	Reference   string `json:"reference"`
	Token       string `json:"snap_token"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// TotalKg sums the quantities of all items.
func (o Order) TotalKg() int {
	kg := 0
	for _, it := range o.Items {
		kg += it.Qty
	}
	return kg
}
