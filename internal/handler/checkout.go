package handler

import (
	"net/http"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/checkout"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/utils"
	"hmade-storefront/internal/validation"

	"go.uber.org/zap"
)

const (
	msgCheckoutLoadFailed   = "Không thể tải thông tin thanh toán"
	msgCheckoutSubmitFailed = "Đặt hàng thất bại, vui lòng thử lại"
	msgAddressCreateFailed  = "Không thể thêm địa chỉ"
	msgGatewayFailed        = "Không thể xác nhận thanh toán"
)

type startCheckoutRequest struct {
	ItemIDs []string `json:"item_ids"`
}

type selectAddressRequest struct {
	AddressID string `json:"address_id" validate:"required"`
}

type selectRateRequest struct {
	RateID string `json:"rate_id" validate:"required"`
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod vnpay"`
}

type noteRequest struct {
	Note string `json:"note" validate:"max=500"`
}

type submitResponse struct {
	Order      *checkout.Response  `json:"order"`
	Navigation checkout.Navigation `json:"navigation"`
}

// StartCheckout mounts a fresh checkout flow, replacing any previous one.
// Without explicit item ids it uses the cart view's selection, and without a
// selection the whole cart.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var in startCheckoutRequest
	if r.ContentLength != 0 {
		if err := validation.DecodeJSONBody(r, &in); err != nil {
			writeError(w, r, err, msgCheckoutLoadFailed)
			return
		}
	}

	sess := sessionFrom(r)
	ids := in.ItemIDs
	if len(ids) == 0 {
		if v, ok := h.d.Carts.Get(sess.UserID); ok {
			if selected, err := v.CheckoutItemIDs(); err == nil {
				ids = selected
			}
		}
	}

	f := checkout.NewFlow(h.d.Checkout, h.d.Addresses, ids, h.d.ShippingWeight)
	h.d.Flows.Replace(sess.UserID, f)

	snap, err := f.Load(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	f, err := h.flow(r)
	if err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, f.Snapshot())
}

func (h *Handler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
	h.d.Flows.Remove(sessionFrom(r).UserID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SelectCheckoutAddress(w http.ResponseWriter, r *http.Request) {
	var in selectAddressRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	h.updateFlow(w, r, msgCheckoutLoadFailed, func(f *checkout.Flow) (checkout.Snapshot, error) {
		return f.SelectAddress(r.Context(), sessionFrom(r), in.AddressID)
	})
}

func (h *Handler) SelectCheckoutRate(w http.ResponseWriter, r *http.Request) {
	var in selectRateRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	h.updateFlow(w, r, msgCheckoutLoadFailed, func(f *checkout.Flow) (checkout.Snapshot, error) {
		return f.SelectRate(in.RateID)
	})
}

func (h *Handler) SetCheckoutPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var in paymentMethodRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	h.updateFlow(w, r, msgCheckoutLoadFailed, func(f *checkout.Flow) (checkout.Snapshot, error) {
		return f.SetPaymentMethod(in.PaymentMethod)
	})
}

func (h *Handler) SetCheckoutNote(w http.ResponseWriter, r *http.Request) {
	var in noteRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCheckoutLoadFailed)
		return
	}
	h.updateFlow(w, r, msgCheckoutLoadFailed, func(f *checkout.Flow) (checkout.Snapshot, error) {
		return f.SetNote(in.Note)
	})
}

func (h *Handler) AddCheckoutAddress(w http.ResponseWriter, r *http.Request) {
	var in address.Form
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgAddressCreateFailed)
		return
	}
	h.updateFlow(w, r, msgAddressCreateFailed, func(f *checkout.Flow) (checkout.Snapshot, error) {
		return f.AddAddress(r.Context(), sessionFrom(r), in)
	})
}

// SubmitCheckout places the order. On success the flow is unmounted and the
// cart view, if open, is refreshed since the backend removed the bought lines.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	f, err := h.flow(r)
	if err != nil {
		writeError(w, r, err, msgCheckoutSubmitFailed)
		return
	}

	sess := sessionFrom(r)
	resp, nav, err := f.Submit(r.Context(), sess)
	if err != nil {
		writeError(w, r, err, msgCheckoutSubmitFailed)
		return
	}

	h.d.Flows.Remove(sess.UserID)
	if v, ok := h.d.Carts.Get(sess.UserID); ok {
		if err := v.Refresh(r.Context(), sess); err != nil {
			logger.FromCtx(r.Context()).Warn("cart refresh after checkout failed",
				zap.String("layer", "handler"),
				zap.Error(err),
			)
		}
	}

	utils.WriteJSON(w, http.StatusCreated, submitResponse{Order: resp, Navigation: nav})
}

// GatewayReturn relays the payment gateway's redirect query to the backend
// for verification.
func (h *Handler) GatewayReturn(w http.ResponseWriter, r *http.Request) {
	res, err := checkout.VerifyGatewayReturn(r.Context(), h.d.Checkout, sessionFrom(r), r.URL.RawQuery)
	if err != nil {
		writeError(w, r, err, msgGatewayFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) updateFlow(w http.ResponseWriter, r *http.Request, fallback string, fn func(f *checkout.Flow) (checkout.Snapshot, error)) {
	f, err := h.flow(r)
	if err != nil {
		writeError(w, r, err, fallback)
		return
	}
	snap, err := fn(f)
	if err != nil {
		writeError(w, r, err, fallback)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}
