package cart

import "hmade-storefront/internal/money"

// Line is a cart row exactly as the backend stores it. Price, color and size
// are usually empty and get joined from the product afterwards.
type Line struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	DetailID  string    `json:"detail_id"`
	Quantity  int       `json:"quantity"`
	Price     money.VND `json:"price,omitempty"`
	Color     string    `json:"color,omitempty"`
	Size      string    `json:"size,omitempty"`
	CreateAt  string    `json:"create_at,omitempty"`
	UpdateAt  string    `json:"update_at,omitempty"`
}

type Header struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Total    money.VND `json:"total"`
	CreateAt string    `json:"create_at,omitempty"`
	UpdateAt string    `json:"update_at,omitempty"`
}

// ServerCart is the body of GET cart/.
type ServerCart struct {
	Cart       Header `json:"cart"`
	Items      []Line `json:"items"`
	TotalItems int    `json:"total_items"`
}

// Mutation is what the add/update/delete endpoints answer with. Older backend
// builds return the whole cart instead of the touched row.
type Mutation struct {
	Message  string  `json:"message"`
	CartItem *Line   `json:"cart_item,omitempty"`
	Cart     *Header `json:"cart,omitempty"`
	Items    []Line  `json:"items,omitempty"`
}

func (m *Mutation) hasSnapshot() bool {
	return m != nil && m.Cart != nil && m.Items != nil
}

type AddInput struct {
	ProductID string `json:"product_id" validate:"required"`
	DetailID  string `json:"detail_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

type UpdateInput struct {
	Quantity int `json:"quantity"`
}

// Item is a cart line joined with its product for display.
type Item struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	DetailID    string    `json:"detail_id"`
	ProductName string    `json:"product_name"`
	Image       string    `json:"image"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	Quantity    int       `json:"quantity"`
	Price       money.VND `json:"price"`
	Busy        bool      `json:"busy"`
}

type Totals struct {
	TotalItems    int       `json:"total_items"`
	TotalPrice    money.VND `json:"total_price"`
	SelectedCount int       `json:"selected_count"`
}

// State is the rendered cart view.
type State struct {
	Items       []Item   `json:"items"`
	Selected    []string `json:"selected"`
	AllSelected bool     `json:"all_selected"`
	Totals      Totals   `json:"totals"`
	Loading     bool     `json:"loading"`
}
