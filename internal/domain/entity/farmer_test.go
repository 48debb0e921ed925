package entity

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFarmer_ApplyRating_FromSeededMean(t *testing.T) {
	farmer := &Farmer{Rating: decimal.RequireFromString("4.8"), TotalRatings: 24}

	farmer.ApplyRating(5)

	assert.Equal(t, 25, farmer.TotalRatings)
	assert.Equal(t, "4.81", farmer.Rating.StringFixed(2))
	assert.True(t, farmer.RatingSum.Equal(decimal.RequireFromString("120.2")))
}

func TestFarmer_ApplyRating_MatchesRecomputedMean(t *testing.T) {
	ratings := []int{5, 4, 4, 3, 5, 1, 2, 5, 4, 4, 3, 3, 5, 2, 1, 4}

	recomputed := func(rs []int) string {
		sum := decimal.Zero
		for _, r := range rs {
			sum = sum.Add(decimal.NewFromInt(int64(r)))
		}

		return sum.DivRound(decimal.NewFromInt(int64(len(rs))), RatingPrecision).StringFixed(2)
	}

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		shuffled := append([]int(nil), ratings...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		farmer := &Farmer{}
		for i, r := range shuffled {
			farmer.ApplyRating(r)
			assert.Equal(t, recomputed(shuffled[:i+1]), farmer.Rating.StringFixed(2))
		}
		assert.Equal(t, len(ratings), farmer.TotalRatings)
	}
}

func TestFarmer_ApplyRating_StaysInRange(t *testing.T) {
	farmer := &Farmer{}
	for range 50 {
		farmer.ApplyRating(MaxRating)
	}
	assert.Equal(t, "5.00", farmer.Rating.StringFixed(2))

	farmer = &Farmer{}
	farmer.ApplyRating(MinRating)
	assert.Equal(t, "1.00", farmer.Rating.StringFixed(2))
}

func TestFarmer_Coordinates(t *testing.T) {
	lat, lng := -1.9441, 30.0619

	point, ok := (&Farmer{Latitude: &lat, Longitude: &lng}).Coordinates()
	assert.True(t, ok)
	assert.Equal(t, lng, point.Lon())
	assert.Equal(t, lat, point.Lat())

	_, ok = (&Farmer{Latitude: &lat}).Coordinates()
	assert.False(t, ok)
}

func TestFarmerFilter_MatchesLocation(t *testing.T) {
	kigali, gasabo := "kigali", "gasabo"
	farmer := &Farmer{ProvinceID: &kigali, DistrictID: &gasabo}

	assert.True(t, FarmerFilter{}.MatchesLocation(farmer))
	assert.True(t, FarmerFilter{ProvinceID: "kigali", DistrictID: "gasabo"}.MatchesLocation(farmer))
	assert.False(t, FarmerFilter{ProvinceID: "northern"}.MatchesLocation(farmer))
	assert.False(t, FarmerFilter{SectorID: "remera"}.MatchesLocation(farmer))
}

func TestFarmer_DisplayName(t *testing.T) {
	assert.Equal(t, "Jean Baptiste", (&Farmer{FarmName: "Farm", User: &User{FirstName: "Jean", LastName: "Baptiste"}}).DisplayName())
	assert.Equal(t, "Farm", (&Farmer{FarmName: "Farm"}).DisplayName())
}
