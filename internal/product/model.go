package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts and orders copy what they need from it
// and never read it again.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Category    string          `json:"category,omitempty"`
	Enabled     bool            `json:"is_enabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// View renders the price with two decimals.
// swagger:model ProductView
type View struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price" example:"199.90"`
	Currency    string   `json:"currency" example:"GHS"`
	Images      []string `json:"images"`
	Category    string   `json:"category,omitempty"`
}

func NewView(p Product) View {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return View{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Currency:    p.Currency,
		Images:      images,
		Category:    p.Category,
	}
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// products found
	Items []View `json:"items"`
}
