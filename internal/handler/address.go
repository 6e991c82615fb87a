package handler

import (
	"net/http"
	"strconv"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/utils"
	"hmade-storefront/internal/validation"

	"github.com/go-chi/chi/v5"
)

const (
	msgAddressLoadFailed   = "Không thể tải danh sách địa chỉ"
	msgAddressUpdateFailed = "Không thể cập nhật địa chỉ"
	msgAddressDeleteFailed = "Không thể xóa địa chỉ"
	msgLocationFailed      = "Không thể tải danh sách địa điểm"
)

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.d.Addresses.List(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err, msgAddressLoadFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// CreateAddress takes the picker form: the BFF resolves location names and
// composes the full address line.
func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var in address.Form
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgAddressCreateFailed)
		return
	}

	created, err := h.d.Addresses.CreateFromForm(r.Context(), sessionFrom(r), in)
	if err != nil {
		writeError(w, r, err, msgAddressCreateFailed)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var in address.UpdateInput
	if err := validation.DecodeJSONBody(r, &in); err != nil {
		writeError(w, r, err, msgAddressUpdateFailed)
		return
	}

	updated, err := h.d.Addresses.Update(r.Context(), sessionFrom(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err, msgAddressUpdateFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.d.Addresses.Delete(r.Context(), sessionFrom(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, msgAddressDeleteFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Locations --

func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	list, err := h.d.Addresses.Cities(r.Context())
	if err != nil {
		writeError(w, r, err, msgLocationFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Districts(w http.ResponseWriter, r *http.Request) {
	cityID, ok := locationID(w, r)
	if !ok {
		return
	}
	list, err := h.d.Addresses.Districts(r.Context(), cityID)
	if err != nil {
		writeError(w, r, err, msgLocationFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Wards(w http.ResponseWriter, r *http.Request) {
	districtID, ok := locationID(w, r)
	if !ok {
		return
	}
	list, err := h.d.Addresses.Wards(r.Context(), districtID)
	if err != nil {
		writeError(w, r, err, msgLocationFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func locationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.WriteJSONError(w, "invalid location id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
