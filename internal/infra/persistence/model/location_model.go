package model

// ProvinceModel mirrors the 'provinces' table.
type ProvinceModel struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	Name            string `gorm:"type:varchar(100);not null"`
	NameKinyarwanda string `gorm:"type:varchar(100)"`
}

// TableName explicitly sets the table name for GORM.
func (ProvinceModel) TableName() string {
	return "provinces"
}

// DistrictModel mirrors the 'districts' table.
type DistrictModel struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	ProvinceID      string `gorm:"type:varchar(64);not null;index"`
	Name            string `gorm:"type:varchar(100);not null"`
	NameKinyarwanda string `gorm:"type:varchar(100)"`

	Province *ProvinceModel `gorm:"foreignKey:ProvinceID"`
}

// TableName explicitly sets the table name for GORM.
func (DistrictModel) TableName() string {
	return "districts"
}

// SectorModel mirrors the 'sectors' table.
type SectorModel struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	DistrictID      string `gorm:"type:varchar(64);not null;index"`
	Name            string `gorm:"type:varchar(100);not null"`
	NameKinyarwanda string `gorm:"type:varchar(100)"`

	District *DistrictModel `gorm:"foreignKey:DistrictID"`
}

// TableName explicitly sets the table name for GORM.
func (SectorModel) TableName() string {
	return "sectors"
}
