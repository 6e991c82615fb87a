package handler

import (
	"context"
	"errors"
	"net/http"

	"hmade-storefront/internal/address"
	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/backend"
	"hmade-storefront/internal/cart"
	"hmade-storefront/internal/chat"
	"hmade-storefront/internal/checkout"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/order"
	"hmade-storefront/internal/product"
	"hmade-storefront/internal/search"
	"hmade-storefront/internal/utils"
	"hmade-storefront/internal/validation"
	"hmade-storefront/internal/viewstate"

	"go.uber.org/zap"
)

var ErrViewNotMounted = errors.New("view is not open, load it first")

// Deps is everything the HTTP layer needs. Stores own the mounted per-user
// views; NewChat builds an unstarted client for one browser socket.
type Deps struct {
	Cart      cart.Backend
	Catalog   cart.Catalog
	Checkout  checkout.Backend
	Addresses address.Service
	Orders    order.Service
	Search    *search.Searcher

	Carts *viewstate.Store[*cart.View]
	Flows *viewstate.Store[*checkout.Flow]

	NewChat func() *chat.Client

	ShippingWeight int
	AllowedOrigin  string
	Metrics        http.Handler

	JWTSecret         []byte
	AccessTokenCookie string
}

type Handler struct {
	d Deps
}

func New(d Deps) *Handler {
	return &Handler{d: d}
}

func sessionFrom(r *http.Request) auth.Session {
	sess, _ := utils.GetSessionFromContext(r.Context())
	return sess
}

func (h *Handler) cartView(r *http.Request) *cart.View {
	sess := sessionFrom(r)
	v, _ := h.d.Carts.GetOrCreate(sess.UserID, func() *cart.View {
		return cart.NewView(h.d.Cart, h.d.Catalog)
	})
	return v
}

func (h *Handler) flow(r *http.Request) (*checkout.Flow, error) {
	f, ok := h.d.Flows.Get(sessionFrom(r).UserID)
	if !ok {
		return nil, ErrViewNotMounted
	}
	return f, nil
}

// writeError maps domain and backend failures to HTTP answers. Upstream
// errors keep their status and show the backend detail when there is one.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := logger.FromCtx(r.Context()).With(zap.String("layer", "handler"), zap.String("path", r.URL.Path))

	var verr *validation.Error
	switch {
	case errors.Is(err, search.ErrSuperseded):
		w.WriteHeader(http.StatusNoContent)
		return

	case errors.Is(err, auth.ErrSessionExpired):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
		return

	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return

	case errors.Is(err, validation.ErrInvalidBody):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return

	case errors.Is(err, cart.ErrRowBusy),
		errors.Is(err, checkout.ErrSubmitInProgress),
		errors.Is(err, cart.ErrViewClosed),
		errors.Is(err, checkout.ErrFlowClosed),
		errors.Is(err, chat.ErrBusy):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
		return

	case errors.Is(err, ErrViewNotMounted),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, product.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
		return

	case isPrecondition(err):
		utils.WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if status := backend.StatusOf(err); status != 0 {
		utils.WriteJSONError(w, backend.MessageFor(err, fallback), status)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("request timed out", zap.Error(err))
		utils.WriteJSONError(w, fallback, http.StatusGatewayTimeout)
		return
	}

	log.Error("request failed", zap.Error(err))
	utils.WriteJSONError(w, fallback, http.StatusBadGateway)
}

func isPrecondition(err error) bool {
	if checkout.IsPrecondition(err) {
		return true
	}
	for _, target := range []error{
		cart.ErrNothingSelected,
		address.ErrAddressIDRequired, address.ErrNothingToUpdate,
		address.ErrCityNotFound, address.ErrDistrictNotFound, address.ErrWardNotFound,
		address.ErrCityRequired, address.ErrDistrictRequired,
		order.ErrOrderIDRequired, order.ErrInvalidStatus, order.ErrNotCancellable,
		chat.ErrEmptyMessage, backend.ErrEmptyID, product.ErrProductIDRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
