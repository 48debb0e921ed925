package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item offered by a single farmer.
type Product struct {
	ID                uuid.UUID       `json:"id"`
	FarmerID          uuid.UUID       `json:"farmerId"`
	CategoryID        *string         `json:"categoryId"`
	Name              string          `json:"name"`
	NameKinyarwanda   string          `json:"nameKinyarwanda"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"` // e.g. "kg", "tray"
	PricePerUnit      decimal.Decimal `json:"pricePerUnit"`
	AvailableQuantity int             `json:"availableQuantity"`
	MinOrderQuantity  int             `json:"minOrderQuantity"`
	IsAvailable       bool            `json:"isAvailable"`
	ImageURL          string          `json:"imageUrl"`
	Version           int             `json:"-"` // Optimistic lock counter, bumped on every stock change.
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	Farmer *Farmer `json:"farmer,omitempty"` // Joined seller with its owner, populated by search.
}

// IsOrderable reports whether the product can currently be ordered.
// An exhausted stock makes the product unavailable regardless of the flag.
func (p *Product) IsOrderable() bool {
	return p.IsAvailable && p.AvailableQuantity > 0
}

// InCategory reports whether the product belongs to the given category.
func (p *Product) InCategory(categoryID string) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}

// ProductFilter narrows a product search. Empty fields and nil bounds are ignored.
// Price bounds are inclusive.
type ProductFilter struct {
	CategoryID string
	ProvinceID string // Matched against the owning farmer.
	DistrictID string // Matched against the owning farmer.
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// MatchesProduct checks the product-level criteria. It does not look at availability.
func (f ProductFilter) MatchesProduct(p *Product) bool {
	if f.CategoryID != "" && !p.InCategory(f.CategoryID) {
		return false
	}
	if f.MinPrice != nil && p.PricePerUnit.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.PricePerUnit.GreaterThan(*f.MaxPrice) {
		return false
	}

	return true
}

// MatchesFarmer checks the location criteria against the owning farmer.
func (f ProductFilter) MatchesFarmer(farmer *Farmer) bool {
	return matchesRef(f.ProvinceID, farmer.ProvinceID) && matchesRef(f.DistrictID, farmer.DistrictID)
}
