package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sukaikan/internal/batch"
	"sukaikan/internal/cart"
	"sukaikan/internal/events"
	"sukaikan/internal/logger"
	"sukaikan/internal/payment"
	"sukaikan/internal/storage"
	"sukaikan/internal/utils"

	"go.uber.org/zap"
)

// BatchReader supplies the shipment date for new orders.
type BatchReader interface {
	GetActive(ctx context.Context) batch.Batch
}

type Service interface {
	Create(ctx context.Context, in CreateInput, c cart.Cart) (*Order, error)
	// InitiatePayment opens a gateway transaction for o. It returns nil when
	// the gateway fails; the order stays payable through RetryPayment.
	InitiatePayment(ctx context.Context, o *Order) *PaymentReference
	Get(ctx context.Context, id uint) (*Order, error)
	IsExpired(o *Order) bool
	RetryPayment(ctx context.Context, id uint) (*Order, *PaymentReference, error)
	ListByPhone(ctx context.Context, phone string) ([]OrderView, error)
	SetStatus(ctx context.Context, id uint, status Status) error
	AttachProof(ctx context.Context, id uint, upload storage.Upload) (string, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
}

type service struct {
	repo      Repository
	carts     cart.Service
	batches   BatchReader
	gateway   payment.Gateway
	attempts  payment.Repository
	publisher events.Publisher
	files     storage.Store
	now       func() time.Time
}

type Deps struct {
	Repo      Repository
	Carts     cart.Service
	Batches   BatchReader
	Gateway   payment.Gateway
	Attempts  payment.Repository
	Publisher events.Publisher
	Files     storage.Store
}

func NewService(d Deps) Service {
	pub := d.Publisher
	if pub == nil {
		pub = events.Nop{}
	}
	return &service{
		repo:      d.Repo,
		carts:     d.Carts,
		batches:   d.Batches,
		gateway:   d.Gateway,
		attempts:  d.Attempts,
		publisher: pub,
		files:     d.Files,
		now:       time.Now,
	}
}

// Expired reports whether an unpaid order has passed its payment deadline
// at now. Orders without a deadline never expire.
func Expired(o *Order, now time.Time) bool {
	return o.PaymentDeadline != nil &&
		now.After(*o.PaymentDeadline) &&
		o.Status == StatusAwaitingPayment
}

func (s *service) IsExpired(o *Order) bool {
	return Expired(o, s.now())
}

func (s *service) Create(ctx context.Context, in CreateInput, c cart.Cart) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	lines, total, err := s.carts.Materialize(ctx, c)
	if err != nil {
		log.Error("failed to materialize cart", zap.Error(err))
		return nil, err
	}
	if len(lines) == 0 {
		log.Warn("checkout with no resolvable items", zap.Int("cart_entries", len(c)))
		return nil, cart.ErrCartEmpty
	}

	items := snapshotItems(lines)
	createdAt := s.now().UTC()
	deadline := createdAt.Add(PaymentWindow)

	o := &Order{
		Name:            in.Name,
		Phone:           in.Phone,
		Address:         in.Address,
		District:        defaultDistrict,
		PaymentMethod:   in.PaymentMethod,
		Total:           total,
		Status:          StatusAwaitingPayment,
		ShipmentDate:    s.batches.GetActive(ctx).ShipmentDate,
		Items:           items,
		CreatedAt:       createdAt,
		PaymentDeadline: &deadline,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Int("total", o.Total),
		zap.Time("payment_deadline", deadline),
	)

	qty := make([]events.ItemQty, 0, len(items))
	for _, it := range items {
		qty = append(qty, events.ItemQty{ProductID: it.ProductID, Qty: it.Qty})
	}
	s.publish(ctx, events.EventOrderCreated, o.ID, events.OrderCreatedPayload{
		OrderID:         o.ID,
		Phone:           o.Phone,
		Total:           o.Total,
		PaymentMethod:   o.PaymentMethod,
		ShipmentDate:    o.ShipmentDate,
		PaymentDeadline: deadline,
		Items:           qty,
	})

	return o, nil
}

func (s *service) InitiatePayment(ctx context.Context, o *Order) *PaymentReference {
	return s.requestPayment(ctx, o, false)
}

func (s *service) requestPayment(ctx context.Context, o *Order, retry bool) *PaymentReference {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "InitiatePayment"),
		zap.Uint("order_id", o.ID),
		zap.Bool("retry", retry),
	)

	now := s.now()
	ref := utils.PaymentReference(o.ID, now)

	resp, err := s.gateway.CreateTransaction(ctx, payment.TransactionRequest{
		OrderReference: ref,
		GrossAmount:    o.Total,
		CustomerName:   o.Name,
		CustomerPhone:  o.Phone,
	})
	if err != nil {
		log.Error("payment gateway failed", zap.String("reference", ref), zap.Error(err))
		return nil
	}

	if s.attempts != nil {
		err := s.attempts.SaveAttempt(ctx, &payment.Attempt{
			OrderID:     o.ID,
			Reference:   ref,
			Token:       resp.Token,
			RedirectURL: resp.RedirectURL,
			Amount:      o.Total,
			CreatedAt:   now.UTC(),
		})
		if err != nil {
			log.Error("failed to record payment attempt", zap.String("reference", ref), zap.Error(err))
		}
	}

	s.publish(ctx, events.EventPaymentRequested, o.ID, events.PaymentRequestedPayload{
		OrderID:   o.ID,
		Reference: ref,
		Amount:    o.Total,
		Retry:     retry,
	})

	log.Info("payment reference issued", zap.String("reference", ref))
	return &PaymentReference{
		Reference:   ref,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}
}

func (s *service) Get(ctx context.Context, id uint) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			logger.FromCtx(ctx).Error("failed to load order",
				zap.String("layer", "service"),
				zap.Uint("order_id", id),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return o, nil
}

// RetryPayment issues a fresh payment reference while the payment window is
// open. Once the deadline has passed the order is returned without one.
func (s *service) RetryPayment(ctx context.Context, id uint) (*Order, *PaymentReference, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if o.PaymentDeadline != nil && s.now().After(*o.PaymentDeadline) {
		logger.FromCtx(ctx).Info("payment window closed, not issuing reference",
			zap.String("layer", "service"),
			zap.String("method", "RetryPayment"),
			zap.Uint("order_id", id),
		)
		return o, nil, nil
	}

	return o, s.requestPayment(ctx, o, true), nil
}

func (s *service) ListByPhone(ctx context.Context, phone string) ([]OrderView, error) {
	orders, err := s.repo.ListByPhone(ctx, phone)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders by phone",
			zap.String("layer", "service"),
			zap.String("method", "ListByPhone"),
			zap.Error(err),
		)
		return nil, err
	}

	now := s.now()
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		v := OrderView{Order: orders[i], DisplayStatus: orders[i].Status}
		if Expired(&orders[i], now) {
			v.Expired = true
			v.DisplayStatus = StatusExpiredDisplay
		}
		views = append(views, v)
	}
	return views, nil
}

// SetStatus overwrites the stored status. An empty status changes nothing.
func (s *service) SetStatus(ctx context.Context, id uint, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetStatus"),
		zap.Uint("order_id", id),
	)

	if status == "" {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return err
	}

	if !status.Known() {
		log.Info("custom order status stored", zap.String("status", string(status)))
	}

	s.publish(ctx, events.EventOrderStatusChanged, id, events.OrderStatusChangedPayload{
		OrderID: id,
		Status:  string(status),
	})
	return nil
}

// AttachProof stores a payment proof for order id and records its
// reference. The order's status and deadline are not checked.
func (s *service) AttachProof(ctx context.Context, id uint, upload storage.Upload) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AttachProof"),
		zap.Uint("order_id", id),
	)

	name := storage.GenerateName(fmt.Sprintf("order_%d", id), upload.Filename, s.now())
	ref, err := s.files.Save(upload.Body, name)
	if err != nil {
		log.Error("failed to store proof", zap.Error(err))
		return "", err
	}

	if err := s.repo.SetProof(ctx, id, ref); err != nil {
		log.Error("failed to record proof", zap.String("reference", ref), zap.Error(err))
		return "", err
	}

	log.Info("payment proof attached", zap.String("reference", ref))
	s.publish(ctx, events.EventProofUploaded, id, events.ProofUploadedPayload{OrderID: id, Reference: ref})
	return ref, nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	orders, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list recent orders",
			zap.String("layer", "service"),
			zap.String("method", "ListRecent"),
			zap.Error(err),
		)
		return nil, err
	}
	return orders, nil
}

func (s *service) publish(ctx context.Context, eventType string, orderID uint, payload any) {
	env, err := events.NewEnvelope(eventType, orderID, payload, s.now())
	if err == nil {
		err = s.publisher.Publish(ctx, env)
	}
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("event_type", eventType),
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}
}
