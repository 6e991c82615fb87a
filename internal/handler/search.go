package handler

import (
	"net"
	"net/http"
	"strconv"

	"hmade-storefront/internal/utils"
)

const msgSearchFailed = "Không thể tìm kiếm sản phẩm"

// SearchProducts serves the search box. Keystrokes are debounced per caller;
// immediate=true (enter pressed) skips the wait. Later pages are fetched
// directly.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	if query == "" {
		query = q.Get("keyword")
	}

	if skip := utils.QueryInt(r, "skip", 0); skip > 0 {
		res, err := h.d.Search.Page(r.Context(), query, skip)
		if err != nil {
			writeError(w, r, err, msgSearchFailed)
			return
		}
		utils.WriteJSON(w, http.StatusOK, res)
		return
	}

	immediate, _ := strconv.ParseBool(q.Get("immediate"))
	res, err := h.d.Search.Search(r.Context(), searchKey(r), query, immediate)
	if err != nil {
		writeError(w, r, err, msgSearchFailed)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

// searchKey identifies one search box: the signed-in user, else the device,
// else the client address.
func searchKey(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}
