package session

import (
	"context"
	"errors"
	"time"

	"sukaikan/internal/cart"

	"github.com/google/uuid"
)

const (
	CookieName = "sukaikan_session"
	DefaultTTL = 7 * 24 * time.Hour
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the per-visitor state: the cart and the last order placed.
type Session struct {
	ID          string    `json:"-"`
	Cart        cart.Cart `json:"cart"`
	LastOrderID uint      `json:"last_order_id,omitempty"`
	LastPhone   string    `json:"last_hp,omitempty"`
	SnapToken   string    `json:"snap_token,omitempty"`
}

func New() *Session {
	return &Session{ID: uuid.NewString(), Cart: cart.Cart{}}
}

// RememberOrder points the confirmation page at orderID. An empty token
// clears any token from an earlier order.
func (s *Session) RememberOrder(orderID uint, phone, snapToken string) {
	s.LastOrderID = orderID
	s.LastPhone = phone
	s.SnapToken = snapToken
}

type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, or a fresh unsaved one when
// the middleware did not run.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return New()
}
