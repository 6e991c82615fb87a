package product

import "hmade-storefront/internal/money"

type Image struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type Detail struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Stock     int    `json:"stock"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       money.VND `json:"price"`
	CategoryID  string    `json:"category_id"`
	Images      []Image   `json:"images"`

	// The product endpoint has shipped both keys over time.
	ProductDetails []Detail `json:"product_details"`
	Details        []Detail `json:"details"`
}

// Variants returns the product's detail rows whichever key carried them.
func (p *Product) Variants() []Detail {
	if len(p.ProductDetails) > 0 {
		return p.ProductDetails
	}
	return p.Details
}

func (p *Product) FindDetail(detailID string) (Detail, bool) {
	if detailID == "" {
		return Detail{}, false
	}
	for _, d := range p.Variants() {
		if d.ID == detailID {
			return d, true
		}
	}
	return Detail{}, false
}

// Thumbnail returns the first image's thumbnail, falling back to its full URL.
func (p *Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	if p.Images[0].ThumbnailURL != "" {
		return p.Images[0].ThumbnailURL
	}
	return p.Images[0].URL
}
