package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sukaikan/internal/cart"
	"sukaikan/internal/logger"
	"sukaikan/internal/order"
	"sukaikan/internal/payment"
	"sukaikan/internal/session"
	"sukaikan/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) checkoutForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := session.FromContext(ctx)
	if len(s.Cart) == 0 {
		redirect(w, r, "/katalog")
		return
	}

	items, total, err := h.Carts.Materialize(ctx, s.Cart)
	if err != nil {
		utils.WriteJSONError(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"batch":           h.Batches.GetActive(ctx),
		"items":           items,
		"total":           total,
		"payment_methods": []string{payment.MethodSnap, payment.MethodTransfer, payment.MethodQRIS, payment.MethodCOD},
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := session.FromContext(ctx)
	if len(s.Cart) == 0 {
		redirect(w, r, "/katalog")
		return
	}

	in := order.CreateInput{
		Name:  strings.TrimSpace(r.FormValue("nama")),
		Phone: strings.TrimSpace(r.FormValue("hp")),
		Address: order.ComposeAddress(
			strings.TrimSpace(r.FormValue("maps_link")),
			strings.TrimSpace(r.FormValue("patokan")),
		),
		PaymentMethod: strings.TrimSpace(r.FormValue("metode_bayar")),
	}

	o, err := h.Orders.Create(ctx, in, s.Cart)
	if errors.Is(err, cart.ErrCartEmpty) {
		// Nothing in the cart resolves to a product any more.
		s.Cart.Clear()
		h.saveSession(ctx, s)
		redirect(w, r, "/katalog")
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	token := ""
	if ref := h.Orders.InitiatePayment(ctx, o); ref != nil {
		token = ref.Token
	}

	s.RememberOrder(o.ID, o.Phone, token)
	s.Cart.Clear()
	h.saveSession(ctx, s)

	redirect(w, r, "/pesanan/berhasil")
}

func (h *Handler) orderPlaced(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := session.FromContext(ctx)
	if s.LastOrderID == 0 {
		redirect(w, r, "/katalog")
		return
	}

	o, err := h.Orders.Get(ctx, s.LastOrderID)
	if errors.Is(err, order.ErrOrderNotFound) {
		redirect(w, r, "/katalog")
		return
	}
	if err != nil {
		utils.WriteJSONError(w, "failed to load order", http.StatusInternalServerError)
		return
	}

	steps := payment.InjectVariables(payment.GetInstructions(o.PaymentMethod), payment.InstructionVars{
		"amount":    utils.FormatRupiah(o.Total),
		"order_ref": fmt.Sprintf("ORDER-%d", o.ID),
	})

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"order":        o,
		"snap_token":   s.SnapToken,
		"client_key":   h.MidtransClientKey,
		"is_expired":   h.Orders.IsExpired(o),
		"instructions": steps,
	})
}

func (h *Handler) uploadProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := session.FromContext(ctx)
	if s.LastOrderID == 0 {
		redirect(w, r, "/katalog")
		return
	}

	upload, closeUpload := formUpload(r, "bukti")
	defer closeUpload()

	if upload != nil {
		if _, err := h.Orders.AttachProof(ctx, s.LastOrderID, *upload); err != nil {
			utils.WriteJSONError(w, "failed to store payment proof", http.StatusInternalServerError)
			return
		}
	}

	redirect(w, r, "/pesanan/berhasil")
}

func (h *Handler) trackForm(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"hp":     "",
		"orders": []order.OrderView{},
	})
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.FormValue("hp"))

	views := []order.OrderView{}
	if phone != "" {
		found, err := h.Orders.ListByPhone(r.Context(), phone)
		if err != nil {
			utils.WriteJSONError(w, "failed to load orders", http.StatusInternalServerError)
			return
		}
		views = found
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"hp":     phone,
		"orders": views,
	})
}

// retryPayment points the session at the order and, while its payment
// window is open, at a fresh gateway token.
func (h *Handler) retryPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		redirect(w, r, "/lacak")
		return
	}

	o, ref, err := h.Orders.RetryPayment(ctx, id)
	if err != nil {
		if !errors.Is(err, order.ErrOrderNotFound) {
			logger.FromCtx(ctx).Error("failed to retry payment", zap.Uint("order_id", id), zap.Error(err))
		}
		redirect(w, r, "/lacak")
		return
	}

	s := session.FromContext(ctx)
	s.LastOrderID = o.ID
	s.LastPhone = o.Phone
	if ref != nil {
		s.SnapToken = ref.Token
	}
	h.saveSession(ctx, s)

	redirect(w, r, "/pesanan/berhasil")
}
