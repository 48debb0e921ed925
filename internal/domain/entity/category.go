package entity

// ProductCategory is reference data grouping products, e.g. poultry or eggs.
type ProductCategory struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda"`
	Description     string `json:"description"`
}
