package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// RatingPrecision is the number of decimal places a farmer rating is stored with.
const RatingPrecision = 2

// Farmer is the selling profile owned by exactly one user.
type Farmer struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"` // Owning user; at most one farmer profile per user.
	FarmName     string          `json:"farmName"`
	Description  string          `json:"description"`
	ProvinceID   *string         `json:"provinceId"`
	DistrictID   *string         `json:"districtId"`
	SectorID     *string         `json:"sectorId"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Phone        string          `json:"phone"`
	Rating       decimal.Decimal `json:"rating"`       // Running mean in [0, 5], rounded to RatingPrecision.
	TotalRatings int             `json:"totalRatings"` // Number of reviews folded into Rating.
	RatingSum    decimal.Decimal `json:"-"`            // Exact sum of folded ratings; keeps the mean free of rounding drift.
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	User *User `json:"user,omitempty"` // Joined owner, populated by read paths.
}

// Coordinates returns the farm location as an orb point (lng, lat) when both coordinates are known.
func (f *Farmer) Coordinates() (orb.Point, bool) {
	if f.Latitude == nil || f.Longitude == nil {
		return orb.Point{}, false
	}

	return orb.Point{*f.Longitude, *f.Latitude}, true
}

// DisplayName is the owner's full name, falling back to the farm name.
func (f *Farmer) DisplayName() string {
	if f.User != nil {
		if name := f.User.FullName(); name != "" {
			return name
		}
	}

	return f.FarmName
}

// ApplyRating folds one review rating into the running mean:
// newMean = (oldMean*oldCount + rating) / (oldCount + 1).
// oldMean*oldCount is carried exactly in RatingSum. Profiles imported without a sum
// derive it from the stored mean.
func (f *Farmer) ApplyRating(rating int) {
	sum := f.RatingSum
	if sum.IsZero() && f.TotalRatings > 0 {
		sum = f.Rating.Mul(decimal.NewFromInt(int64(f.TotalRatings)))
	}

	sum = sum.Add(decimal.NewFromInt(int64(rating)))
	count := f.TotalRatings + 1

	f.RatingSum = sum
	f.TotalRatings = count
	f.Rating = sum.DivRound(decimal.NewFromInt(int64(count)), RatingPrecision)
}

// FarmerFilter narrows a farmer search. Empty fields are ignored; set fields must match exactly.
type FarmerFilter struct {
	ProvinceID string
	DistrictID string
	SectorID   string
	// CategoryID keeps farmers offering at least one available product in the category.
	CategoryID string
}

// MatchesLocation reports whether the farmer's location references satisfy the filter.
func (ff FarmerFilter) MatchesLocation(f *Farmer) bool {
	return matchesRef(ff.ProvinceID, f.ProvinceID) &&
		matchesRef(ff.DistrictID, f.DistrictID) &&
		matchesRef(ff.SectorID, f.SectorID)
}

func matchesRef(want string, got *string) bool {
	if want == "" {
		return true
	}

	return got != nil && *got == want
}

// FarmerMatch is a farmer search hit with its distance from the requester, in kilometres, when known.
type FarmerMatch struct {
	*Farmer

	Distance *float64 `json:"distance,omitempty"`
}
