package handler

import (
	"net/http"

	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(h.d.AllowedOrigin))
	r.Use(middleware.AuthMiddleware(h.d.JWTSecret, h.d.AccessTokenCookie))
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", health)
	if h.d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.d.Metrics)
	}

	// Public
	r.Get("/products/search", h.SearchProducts)
	r.Route("/locations", func(r chi.Router) {
		r.Get("/cities", h.Cities)
		r.Get("/cities/{id}/districts", h.Districts)
		r.Get("/districts/{id}/wards", h.Wards)
	})
	r.Get("/chat/ws", h.ChatSocket)

	// Signed-in customers
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Delete("/view", h.CloseCartView)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{id}", h.SetCartQuantity)
			r.Post("/items/{id}/increase", h.IncreaseCartItem)
			r.Post("/items/{id}/decrease", h.DecreaseCartItem)
			r.Delete("/items/{id}", h.DeleteCartItem)
			r.Post("/selection/all", h.SelectAllCartItems)
			r.Post("/selection/{id}/toggle", h.ToggleCartItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.StartCheckout)
			r.Get("/", h.GetCheckout)
			r.Delete("/", h.CloseCheckout)
			r.Put("/address", h.SelectCheckoutAddress)
			r.Put("/rate", h.SelectCheckoutRate)
			r.Put("/payment-method", h.SetCheckoutPaymentMethod)
			r.Put("/note", h.SetCheckoutNote)
			r.Post("/addresses", h.AddCheckoutAddress)
			r.Post("/submit", h.SubmitCheckout)
			r.Get("/gateway-return", h.GatewayReturn)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", h.ListAddresses)
			r.Post("/", h.CreateAddress)
			r.Put("/{id}", h.UpdateAddress)
			r.Delete("/{id}", h.DeleteAddress)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListMyOrders)
			r.Get("/{id}", h.GetMyOrder)
			r.Post("/{id}/cancel", h.CancelMyOrder)
		})
	})

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Get("/orders", h.AdminListOrders)
		r.Get("/orders/{id}", h.AdminGetOrder)
		r.Patch("/orders/{id}/status", h.AdminUpdateOrderStatus)
		r.Get("/order-statuses", h.AdminOrderStatuses)

		r.Post("/shipments", h.AdminCreateShipment)
		r.Get("/shipments/{orderID}/tracking", h.AdminTrackShipment)
		r.Patch("/shipments/{orderID}/cancel", h.AdminCancelShipment)
	})

	return r
}
