package checkout

import (
	"hmade-storefront/internal/address"
	"hmade-storefront/internal/money"
)

type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "cod"
	PaymentVNPay PaymentMethod = "vnpay"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentCOD, PaymentVNPay:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

type PreviewItem struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	DetailID    string    `json:"detail_id"`
	ProductName string    `json:"product_name"`
	Price       money.VND `json:"price"`
	Quantity    int       `json:"quantity"`
	ItemTotal   money.VND `json:"item_total"`
}

type PreviewAddress struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// Preview is the backend's order preview for the selected cart lines.
type Preview struct {
	Items       []PreviewItem   `json:"items"`
	Subtotal    money.VND       `json:"subtotal"`
	ShippingFee money.VND       `json:"shipping_fee"`
	Total       money.VND       `json:"total"`
	Address     *PreviewAddress `json:"address"`
	ItemsCount  int             `json:"items_count"`
}

type ShippingRate struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Carrier       string    `json:"carrier"`
	CarrierLogo   string    `json:"carrier_logo,omitempty"`
	EstimatedDays string    `json:"estimated_days"`
	Fee           money.VND `json:"fee"`
}

type RatesRequest struct {
	AddressID string `json:"address_id"`
	Weight    int    `json:"weight"`
}

type RatesResponse struct {
	Rates []ShippingRate `json:"rates"`
}

// Request is the create-checkout body.
type Request struct {
	PaymentMethod  PaymentMethod `json:"payment_method"`
	AddressID      string        `json:"address_id,omitempty"`
	ShippingMethod string        `json:"shipping_method,omitempty"`
	Note           string        `json:"note"`
	RateID         string        `json:"rate_id,omitempty"`
	ShippingFee    money.VND     `json:"shipping_fee"`
	ItemIDs        []string      `json:"item_ids,omitempty"`
}

type Response struct {
	Message       string    `json:"message"`
	OrderID       string    `json:"order_id"`
	PaymentMethod string    `json:"payment_method"`
	PaymentURL    string    `json:"payment_url,omitempty"`
	Total         money.VND `json:"total"`
}

// GatewayResult is the backend's verdict on a payment gateway return.
type GatewayResult struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	OrderID       string    `json:"order_id,omitempty"`
	Amount        money.VND `json:"amount,omitempty"`
	TransactionNo string    `json:"transaction_no,omitempty"`
	BankCode      string    `json:"bank_code,omitempty"`
	ResponseCode  string    `json:"response_code,omitempty"`
}

type Totals struct {
	Subtotal    money.VND `json:"subtotal"`
	ShippingFee money.VND `json:"shipping_fee"`
	Total       money.VND `json:"total"`
}

// Navigation tells the browser where to go after a placed order. External
// targets need a full page load, not a fetch.
type Navigation struct {
	URL      string `json:"url"`
	External bool   `json:"external"`
}

// Snapshot is the rendered checkout page.
type Snapshot struct {
	Phase         Phase             `json:"phase"`
	RatePhase     RatePhase         `json:"rate_phase"`
	ItemIDs       []string          `json:"item_ids,omitempty"`
	Items         []PreviewItem     `json:"items"`
	Addresses     []address.Address `json:"addresses"`
	AddressID     string            `json:"address_id,omitempty"`
	Rates         []ShippingRate    `json:"rates"`
	RateID        string            `json:"rate_id,omitempty"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Note          string            `json:"note"`
	Totals        Totals            `json:"totals"`
	Submitting    bool              `json:"submitting"`
	Error         string            `json:"error,omitempty"`
}
