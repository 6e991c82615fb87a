package handler

import (
	"net/http"

	"hmade-storefront/internal/cart"
	"hmade-storefront/internal/utils"
	"hmade-storefront/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	msgCartLoadFailed   = "Không thể tải giỏ hàng"
	msgCartUpdateFailed = "Không thể cập nhật giỏ hàng"
	msgCartDeleteFailed = "Không thể xóa sản phẩm"
	msgCartAddFailed    = "Không thể thêm vào giỏ hàng"
)

type quantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=999"`
}

type selectAllRequest struct {
	Selected bool `json:"selected"`
}

// GetCart mounts the user's cart view if needed and refreshes it.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	v := h.cartView(r)
	if err := v.Refresh(r.Context(), sessionFrom(r)); err != nil {
		writeError(w, r, err, msgCartLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v.Snapshot())
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var in cart.AddInput
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCartAddFailed)
		return
	}

	v := h.cartView(r)
	if err := v.Add(r.Context(), sessionFrom(r), in); err != nil {
		writeError(w, r, err, msgCartAddFailed)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, v.Snapshot())
}

func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	var in quantityRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCartUpdateFailed)
		return
	}
	h.mutateCart(w, r, msgCartUpdateFailed, func(v *cart.View) error {
		return v.SetQuantity(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), in.Quantity)
	})
}

func (h *Handler) IncreaseCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, msgCartUpdateFailed, func(v *cart.View) error {
		return v.Increase(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	})
}

func (h *Handler) DecreaseCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, msgCartUpdateFailed, func(v *cart.View) error {
		return v.Decrease(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	})
}

func (h *Handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, msgCartDeleteFailed, func(v *cart.View) error {
		return v.Delete(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutateCart(w, r, msgCartDeleteFailed, func(v *cart.View) error {
		return v.Clear(r.Context(), sessionFrom(r))
	})
}

func (h *Handler) ToggleCartItem(w http.ResponseWriter, r *http.Request) {
	st, err := h.cartView(r).Toggle(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgCartUpdateFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) SelectAllCartItems(w http.ResponseWriter, r *http.Request) {
	var in selectAllRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgCartUpdateFailed)
		return
	}

	st, err := h.cartView(r).SelectAll(in.Selected)
	if err != nil {
		writeError(w, r, err, msgCartUpdateFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

// CloseCartView unmounts the cart view. In-flight mutations settle without
// touching it.
func (h *Handler) CloseCartView(w http.ResponseWriter, r *http.Request) {
	h.d.Carts.Remove(sessionFrom(r).UserID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) mutateCart(w http.ResponseWriter, r *http.Request, fallback string, fn func(v *cart.View) error) {
	v := h.cartView(r)
	if err := fn(v); err != nil {
		writeError(w, r, err, fallback)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v.Snapshot())
}
