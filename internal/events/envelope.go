package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventPaymentRequested   = "PaymentRequested"
	EventProofUploaded      = "ProofUploaded"
)

const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusChanged = "order.status_changed"
	TopicPaymentRequested   = "order.payment.requested"
	TopicProofUploaded      = "order.proof.uploaded"
)

const producerName = "sukaikan-web"

var topics = map[string]string{
	EventOrderCreated:       TopicOrderCreated,
	EventOrderStatusChanged: TopicOrderStatusChanged,
	EventPaymentRequested:   TopicPaymentRequested,
	EventProofUploaded:      TopicProofUploaded,
}

// TopicFor maps an event type to its topic. Unknown types go to
// "order.events".
func TopicFor(eventType string) string {
	if t, ok := topics[eventType]; ok {
		return t
	}
	return "order.events"
}

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	RequestID     string          `json:"request_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps payload for an order. The order id becomes the
// correlation id and, downstream, the partition key.
func NewEnvelope(eventType string, orderID uint, payload any, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}

	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    now.UTC(),
		Producer:      producerName,
		CorrelationID: fmt.Sprintf("%d", orderID),
		Payload:       raw,
	}, nil
}

type ItemQty struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderCreatedPayload struct {
	OrderID         uint      `json:"order_id"`
	Phone           string    `json:"hp"`
	Total           int       `json:"total"`
	PaymentMethod   string    `json:"metode_bayar"`
	ShipmentDate    string    `json:"tanggal_pengiriman"`
	PaymentDeadline time.Time `json:"payment_deadline"`
	Items           []ItemQty `json:"items"`
}

type OrderStatusChangedPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

type PaymentRequestedPayload struct {
	OrderID   uint   `json:"order_id"`
	Reference string `json:"reference"`
	Amount    int    `json:"amount"`
	Retry     bool   `json:"retry"`
}

type ProofUploadedPayload struct {
	OrderID   uint   `json:"order_id"`
	Reference string `json:"bukti_path"`
}
