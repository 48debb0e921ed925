package entity

// Province is the top level of the location hierarchy.
type Province struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda"`
}

// District belongs to exactly one province.
type District struct {
	ID              string `json:"id"`
	ProvinceID      string `json:"provinceId"`
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda"`
}

// Sector belongs to exactly one district.
type Sector struct {
	ID              string `json:"id"`
	DistrictID      string `json:"districtId"`
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda"`
}
