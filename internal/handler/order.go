package handler

import (
	"net/http"

	"hmade-storefront/internal/order"
	"hmade-storefront/internal/utils"
	"hmade-storefront/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	msgOrdersLoadFailed   = "Không thể tải danh sách đơn hàng"
	msgOrderLoadFailed    = "Không thể tải đơn hàng"
	msgOrderCancelFailed  = "Không thể hủy đơn hàng"
	msgOrderStatusFailed  = "Không thể cập nhật trạng thái đơn hàng"
	msgShipmentFailed     = "Không thể tạo vận đơn"
	msgTrackingFailed     = "Không thể tra cứu vận đơn"
	msgShipmentCancelFail = "Không thể hủy vận đơn"

	defaultPageSize = 100
)

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.d.Orders.ListMine(r.Context(), sessionFrom(r),
		utils.QueryInt(r, "skip", 0), utils.QueryInt(r, "limit", defaultPageSize))
	if err != nil {
		writeError(w, r, err, msgOrdersLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.d.Orders.GetMine(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgOrderLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) CancelMyOrder(w http.ResponseWriter, r *http.Request) {
	msg, err := h.d.Orders.Cancel(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgOrderCancelFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, msg)
}

// -- Admin --

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	params := order.ListParams{
		Skip:   utils.QueryInt(r, "skip", 0),
		Limit:  utils.QueryInt(r, "limit", defaultPageSize),
		Status: order.Status(r.URL.Query().Get("status")),
	}

	page, err := h.d.Orders.AdminList(r.Context(), sessionFrom(r), params)
	if err != nil {
		writeError(w, r, err, msgOrdersLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) AdminGetOrder(w http.ResponseWriter, r *http.Request) {
	v, err := h.d.Orders.AdminGet(r.Context(), sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgOrderLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgOrderStatusFailed)
		return
	}

	upd, err := h.d.Orders.AdminUpdateStatus(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		writeError(w, r, err, msgOrderStatusFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, upd)
}

// AdminOrderStatuses lists every status an admin may pick, with badges.
func (h *Handler) AdminOrderStatuses(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, order.AdminStatusOptions())
}

func (h *Handler) AdminCreateShipment(w http.ResponseWriter, r *http.Request) {
	var in order.ShipmentRequest
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgShipmentFailed)
		return
	}

	s, err := h.d.Orders.CreateShipment(r.Context(), sessionFrom(r), in)
	if err != nil {
		writeError(w, r, err, msgShipmentFailed)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) AdminTrackShipment(w http.ResponseWriter, r *http.Request) {
	s, err := h.d.Orders.TrackShipment(r.Context(), sessionFrom(r), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, err, msgTrackingFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) AdminCancelShipment(w http.ResponseWriter, r *http.Request) {
	s, err := h.d.Orders.CancelShipment(r.Context(), sessionFrom(r), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, r, err, msgShipmentCancelFail)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}
