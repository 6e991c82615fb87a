package order

import (
	"encoding/json"

	"hmade-storefront/internal/money"
)

type Item struct {
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductPrice money.VND `json:"product_price"`
	Quantity     int       `json:"quantity"`
}

type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	Total      money.VND `json:"total"`
	Status     Status    `json:"status"`
	CreateAt   string    `json:"create_at"`
	UpdateAt   string    `json:"update_at,omitempty"`
	ItemsCount int       `json:"items_count,omitempty"`
	Items      []Item    `json:"items,omitempty"`
}

// Page is the admin order listing.
type Page struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Skip   int     `json:"skip"`
	Limit  int     `json:"limit"`
}

type ListParams struct {
	Skip   int
	Limit  int
	Status Status
}

type Message struct {
	Message string `json:"message"`
}

type StatusUpdate struct {
	Message   string `json:"message"`
	OrderID   string `json:"order_id"`
	NewStatus Status `json:"new_status"`
}

type ShipmentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	RateID  string `json:"rate_id" validate:"required"`
}

// Shipment is both the create and the tracking answer. Tracking carries the
// carrier's payload untouched.
type Shipment struct {
	Message        string          `json:"message,omitempty"`
	OrderID        string          `json:"order_id"`
	Status         Status          `json:"status,omitempty"`
	ShippingCode   string          `json:"shipping_code,omitempty"`
	TrackingNumber string          `json:"tracking_number,omitempty"`
	Carrier        string          `json:"carrier,omitempty"`
	Tracking       json.RawMessage `json:"tracking,omitempty"`
	GoshipData     json.RawMessage `json:"goship_data,omitempty"`
}

// View decorates an order with its projected status for rendering.
type View struct {
	Order
	Progress  Progress `json:"progress"`
	Badge     Badge    `json:"badge"`
	CanCancel bool     `json:"can_cancel"`
}

func NewView(o Order) View {
	return View{
		Order:     o,
		Progress:  ProgressOf(o.Status),
		Badge:     BadgeFor(o.Status),
		CanCancel: CanCancel(o.Status),
	}
}
