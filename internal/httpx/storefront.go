package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sukaikan/internal/cart"
	"sukaikan/internal/logger"
	"sukaikan/internal/product"
	"sukaikan/internal/session"
	"sukaikan/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const msgProductNotFound = "Produk tidak ditemukan."

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	seasonal, err := h.Products.Seasonal(ctx)
	if err != nil {
		utils.WriteJSONError(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"batch":        h.Batches.GetActive(ctx),
		"produk_musim": seasonal,
		"cart_count":   session.FromContext(ctx).Cart.Count(),
	})
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("kategori")
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	products, err := h.Products.List(r.Context(), category, q)
	if err != nil {
		utils.WriteJSONError(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"produk":   products,
		"kategori": category,
		"q":        q,
	})
}

func (h *Handler) productDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	p, err := h.Products.Get(ctx, id)
	if errors.Is(err, product.ErrProductNotFound) {
		redirect(w, r, "/katalog")
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	recs, err := h.Products.Recommendations(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to load recommendations", zap.String("product_id", id), zap.Error(err))
		recs = []product.Recommendation{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"product":     p,
		"rekomendasi": recs,
	})
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := session.FromContext(ctx)

	items, total, err := h.Carts.Materialize(ctx, s.Cart)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"items":         items,
		"total":         total,
		"total_display": utils.FormatRupiah(total),
		"cart_count":    s.Cart.Count(),
	})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.FormValue("product_id")
	qty := cart.ParseQuantity(r.FormValue("qty"))

	p, err := h.Products.Get(ctx, id)
	if errors.Is(err, product.ErrProductNotFound) {
		if isXHR(r) {
			utils.WriteJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": msgProductNotFound,
			})
			return
		}
		redirect(w, r, "/katalog")
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	s := session.FromContext(ctx)
	s.Cart.Add(id, qty)
	h.saveSession(ctx, s)

	if isXHR(r) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"message":    fmt.Sprintf("%dkg %s ditambah ke keranjang.", qty, p.Name),
			"cart_count": s.Cart.Count(),
		})
		return
	}

	next := r.FormValue("next")
	if next == "" || !localPath(next) {
		next = "/keranjang"
	}
	redirect(w, r, next)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.FormValue("product_id")

	s := session.FromContext(ctx)
	if _, ok := s.Cart[id]; ok {
		s.Cart.Remove(id)
		h.saveSession(ctx, s)
	}

	redirect(w, r, "/keranjang")
}
