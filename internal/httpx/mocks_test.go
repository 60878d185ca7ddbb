package httpx

import (
	"context"

	"sukaikan/internal/admin"
	"sukaikan/internal/batch"
	"sukaikan/internal/cart"
	"sukaikan/internal/order"
	"sukaikan/internal/product"
	"sukaikan/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, category, search string) ([]product.Product, error) {
	args := m.Called(ctx, category, search)
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Seasonal(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Recommendations(ctx context.Context, productID string) ([]product.Recommendation, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]product.Recommendation), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, input product.Input, image *storage.Upload) (*product.Product, error) {
	args := m.Called(ctx, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, input product.Input, image *storage.Upload) (*product.Product, error) {
	args := m.Called(ctx, id, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) Materialize(ctx context.Context, c cart.Cart) ([]cart.LineItem, int, error) {
	args := m.Called(ctx, c)
	return args.Get(0).([]cart.LineItem), args.Int(1), args.Error(2)
}

type MockBatchService struct{ mock.Mock }

func (m *MockBatchService) GetActive(ctx context.Context) batch.Batch {
	return m.Called(ctx).Get(0).(batch.Batch)
}

func (m *MockBatchService) Update(ctx context.Context, input batch.UpdateInput) (*batch.Batch, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.Batch), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Create(ctx context.Context, in order.CreateInput, c cart.Cart) (*order.Order, error) {
	args := m.Called(ctx, in, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) InitiatePayment(ctx context.Context, o *order.Order) *order.PaymentReference {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*order.PaymentReference)
}

func (m *MockOrderService) Get(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) IsExpired(o *order.Order) bool {
	return m.Called(o).Bool(0)
}

func (m *MockOrderService) RetryPayment(ctx context.Context, id uint) (*order.Order, *order.PaymentReference, error) {
	args := m.Called(ctx, id)
	var o *order.Order
	if v := args.Get(0); v != nil {
		o = v.(*order.Order)
	}
	var ref *order.PaymentReference
	if v := args.Get(1); v != nil {
		ref = v.(*order.PaymentReference)
	}
	return o, ref, args.Error(2)
}

func (m *MockOrderService) ListByPhone(ctx context.Context, phone string) ([]order.OrderView, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).([]order.OrderView), args.Error(1)
}

func (m *MockOrderService) SetStatus(ctx context.Context, id uint, status order.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderService) AttachProof(ctx context.Context, id uint, upload storage.Upload) (string, error) {
	args := m.Called(ctx, id, upload)
	return args.String(0), args.Error(1)
}

func (m *MockOrderService) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]order.Order), args.Error(1)
}

type MockAdminAuth struct{ mock.Mock }

func (m *MockAdminAuth) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminAuth) Verify(token string) (*admin.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Claims), args.Error(1)
}

type MockDashboard struct{ mock.Mock }

func (m *MockDashboard) Build(ctx context.Context) (*admin.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Dashboard), args.Error(1)
}

type stubAnswerer struct{ question string }

func (s *stubAnswerer) Answer(_ context.Context, question string) string {
	s.question = question
	return "Ikan kembung cocok digoreng.<br>Selamat mencoba!"
}
