package httpx

import (
	"errors"
	"net/http"

	"sukaikan/internal/admin"
	"sukaikan/internal/auth"
	"sukaikan/internal/batch"
	"sukaikan/internal/logger"
	"sukaikan/internal/order"
	"sukaikan/internal/product"
	"sukaikan/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.Auth.Login(r.FormValue("username"), r.FormValue("password"))
	switch {
	case errors.Is(err, admin.ErrInvalidCredentials):
		utils.WriteJSONError(w, admin.MsgInvalidCredentials, http.StatusUnauthorized)
		return
	case err != nil:
		logger.FromCtx(ctx).Error("admin login unavailable", zap.Error(err))
		utils.WriteJSONError(w, "admin login is not available", http.StatusServiceUnavailable)
		return
	}

	auth.SetTokenCookie(w, token, admin.TokenTTL, h.SecureCookies)
	redirect(w, r, "/admin")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearTokenCookie(w)
	redirect(w, r, "/login")
}

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Build(r.Context())
	if err != nil {
		utils.WriteJSONError(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}

// productInput reads the product form. The season label is only offered on
// the edit form.
func productInput(r *http.Request, withSeason bool) product.Input {
	in := product.Input{
		Name:       r.FormValue("nama"),
		Category:   r.FormValue("kategori"),
		PricePerKg: utils.DigitsOrZero(r.FormValue("harga_per_kg")),
		Size:       r.FormValue("ukuran"),
		Texture:    r.FormValue("tekstur"),
	}
	if withSeason {
		in.SeasonLabel = r.FormValue("label_musim")
	}
	return in
}

func (h *Handler) adminCreateProduct(w http.ResponseWriter, r *http.Request) {
	upload, closeUpload := formUpload(r, "image")
	defer closeUpload()

	_, err := h.Products.Create(r.Context(), productInput(r, false), upload)
	if errors.Is(err, product.ErrEmptyName) {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to create product", http.StatusInternalServerError)
		return
	}

	redirect(w, r, "/admin")
}

func (h *Handler) adminEditProductForm(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, product.ErrProductNotFound) {
		redirect(w, r, "/admin")
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to load product", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *Handler) adminEditProduct(w http.ResponseWriter, r *http.Request) {
	upload, closeUpload := formUpload(r, "image")
	defer closeUpload()

	_, err := h.Products.Update(r.Context(), chi.URLParam(r, "id"), productInput(r, true), upload)
	if err != nil && !errors.Is(err, product.ErrProductNotFound) {
		utils.WriteJSONError(w, "failed to update product", http.StatusInternalServerError)
		return
	}

	redirect(w, r, "/admin")
}

func (h *Handler) adminDeactivateProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteJSONError(w, "failed to remove product", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/admin")
}

func (h *Handler) adminUpdateBatch(w http.ResponseWriter, r *http.Request) {
	_, err := h.Batches.Update(r.Context(), batch.UpdateInput{
		Name:         r.FormValue("nama"),
		ShipmentDate: r.FormValue("tanggal_pengiriman"),
		Status:       r.FormValue("status"),
		Days:         r.FormValue("d"),
		Hours:        r.FormValue("h"),
		Minutes:      r.FormValue("m"),
	})
	if err != nil {
		utils.WriteJSONError(w, "failed to update batch", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/admin")
}

func (h *Handler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		redirect(w, r, "/admin")
		return
	}

	err = h.Orders.SetStatus(r.Context(), id, order.Status(r.FormValue("status")))
	if err != nil && !errors.Is(err, order.ErrOrderNotFound) {
		utils.WriteJSONError(w, "failed to update order status", http.StatusInternalServerError)
		return
	}
	redirect(w, r, "/admin")
}
