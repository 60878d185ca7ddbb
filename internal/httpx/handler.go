package httpx

import (
	"context"
	"net/http"
	"strings"

	"sukaikan/internal/admin"
	"sukaikan/internal/batch"
	"sukaikan/internal/cart"
	"sukaikan/internal/logger"
	"sukaikan/internal/middleware"
	"sukaikan/internal/order"
	"sukaikan/internal/product"
	"sukaikan/internal/session"
	"sukaikan/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminAuth issues and checks admin tokens.
type AdminAuth interface {
	Login(username, password string) (string, error)
	Verify(token string) (*admin.Claims, error)
}

type DashboardBuilder interface {
	Build(ctx context.Context) (*admin.Dashboard, error)
}

type Answerer interface {
	Answer(ctx context.Context, question string) string
}

type Handler struct {
	Products  product.Service
	Carts     cart.Service
	Batches   batch.Service
	Orders    order.Service
	Auth      AdminAuth
	Dashboard DashboardBuilder
	Assistant Answerer
	Files     storage.Store
	Sessions  session.Store

	// MidtransClientKey is handed to the payment page for the Snap popup.
	MidtransClientKey string
	SecureCookies     bool
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/katalog", h.catalog)
	r.Get("/produk/{id}", h.productDetail)

	r.Get("/keranjang", h.viewCart)
	r.Post("/keranjang/tambah", h.addToCart)
	r.Post("/keranjang/hapus", h.removeFromCart)

	r.Get("/checkout", h.checkoutForm)
	r.Post("/checkout", h.checkout)
	r.Get("/pesanan/berhasil", h.orderPlaced)
	r.Post("/pesanan/berhasil", h.uploadProof)
	r.Get("/lacak", h.trackForm)
	r.Post("/lacak", h.track)
	r.Get("/bayar/{id}", h.retryPayment)

	r.Get("/uploads/*", h.serveUpload)
	r.Post("/api/ai-chat", h.aiChat)

	r.Post("/login", h.login)
	r.Get("/logout", h.logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(h.Auth))
		r.Get("/", h.adminDashboard)
		r.Post("/produk/tambah", h.adminCreateProduct)
		r.Get("/produk/edit/{id}", h.adminEditProductForm)
		r.Post("/produk/edit/{id}", h.adminEditProduct)
		r.Post("/produk/hapus/{id}", h.adminDeactivateProduct)
		r.Post("/batch/update", h.adminUpdateBatch)
		r.Post("/update_status/{id}", h.adminUpdateStatus)
	})
}

func (h *Handler) saveSession(ctx context.Context, s *session.Session) {
	if err := h.Sessions.Save(ctx, s); err != nil {
		logger.FromCtx(ctx).Error("failed to save session", zap.Error(err))
	}
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// localPath reports whether target stays on this site.
func localPath(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.Contains(target, "\\")
}

// formUpload returns the named file part, or nil when the request carries
// none. The returned func closes the part.
func formUpload(r *http.Request, field string) (*storage.Upload, func()) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, func() {}
	}
	if hdr.Filename == "" {
		_ = f.Close()
		return nil, func() {}
	}
	return &storage.Upload{Filename: hdr.Filename, Body: f}, func() { _ = f.Close() }
}

func isXHR(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
