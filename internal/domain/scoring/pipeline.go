// Package scoring ranks a filtered set of products by price and annotates every
// entry with comparison signals. Everything here is a pure function of its input.
package scoring

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"agriconnect/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// Recommendation is the bucket a ranked product falls into.
type Recommendation string

const (
	BestValue Recommendation = "best_value"
	GoodDeal  Recommendation = "good_deal"
	Premium   Recommendation = "premium"
)

const (
	qualityWeight       = 0.4
	distanceWeight      = 0.3
	belowAverageBonus   = 0.3
	aboveAverageBonus   = 0.1
	distanceHorizonKm   = 10.0
	goodDealVariancePct = -5
	variancePlaces      = 1
	similarityPlaces    = 4
	distancePlaces      = 1
)

// ScoredProduct is one ranked entry of a comparison.
type ScoredProduct struct {
	Product         *entity.Product `json:"product"`
	Farmer          *entity.Farmer  `json:"farmer"`
	Distance        *float64        `json:"distance"`        // km, nil when either side has no coordinates
	PriceVariance   float64         `json:"priceVariance"`   // percent above (+) or below (-) the average price
	SimilarityScore float64         `json:"similarityScore"` // in [0, 1]
	Recommendation  Recommendation  `json:"recommendation"`
}

// Analysis summarises a comparison.
type Analysis struct {
	AveragePrice     int64  `json:"averagePrice"`
	BestValue        string `json:"bestValue"`
	TotalOptions     int    `json:"totalOptions"`
	AIRecommendation string `json:"aiRecommendation"`
}

// Result is the ranked comparison. Analysis is nil when there was nothing to compare.
type Result struct {
	Products []ScoredProduct `json:"products"`
	Analysis *Analysis       `json:"analysis"`
}

// candidate is a product with its seller and its distance from the requester.
type candidate struct {
	product  *entity.Product
	farmer   *entity.Farmer
	distance *float64
}

// Rank orders products ascending by price (ties by farmer id, then product id) and scores them.
// Each product must carry its Farmer. origin is the requester's position; when it is nil,
// or a farmer has no coordinates, the distance term is left out of that product's score.
func Rank(products []*entity.Product, origin *orb.Point) Result {
	candidates := make([]candidate, 0, len(products))
	for _, p := range products {
		c := candidate{product: p, farmer: p.Farmer}
		if origin != nil && c.farmer != nil {
			if at, ok := c.farmer.Coordinates(); ok {
				d := DistanceKm(*origin, at)
				c.distance = &d
			}
		}
		candidates = append(candidates, c)
	}

	return rank(candidates)
}

func rank(candidates []candidate) Result {
	if len(candidates) == 0 {
		return Result{Products: []ScoredProduct{}}
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, compareCandidates)

	total := decimal.Zero
	for _, c := range sorted {
		total = total.Add(c.product.PricePerUnit)
	}
	avg := total.Div(decimal.NewFromInt(int64(len(sorted))))

	scored := make([]ScoredProduct, 0, len(sorted))
	for k, c := range sorted {
		variance := priceVariance(c.product.PricePerUnit, avg)
		scored = append(scored, ScoredProduct{
			Product:         detachFarmer(c.product),
			Farmer:          c.farmer,
			Distance:        roundedDistance(c.distance),
			PriceVariance:   variance.InexactFloat64(),
			SimilarityScore: similarity(c, avg).InexactFloat64(),
			Recommendation:  bucket(k, variance),
		})
	}

	best := sorted[0]

	return Result{
		Products: scored,
		Analysis: &Analysis{
			AveragePrice:     avg.Round(0).IntPart(),
			BestValue:        displayName(best),
			TotalOptions:     len(sorted),
			AIRecommendation: fmt.Sprintf("%s is recommended based on price optimization and quality ratings.", firstName(best)),
		},
	}
}

func compareCandidates(a, b candidate) int {
	if c := a.product.PricePerUnit.Cmp(b.product.PricePerUnit); c != 0 {
		return c
	}
	if c := strings.Compare(farmerKey(a), farmerKey(b)); c != 0 {
		return c
	}

	return strings.Compare(a.product.ID.String(), b.product.ID.String())
}

func farmerKey(c candidate) string {
	if c.farmer != nil {
		return c.farmer.ID.String()
	}

	return c.product.FarmerID.String()
}

// priceVariance is ((price - avg) / avg) * 100 rounded to one decimal. A zero average means every
// price is zero and there is no variance.
func priceVariance(price, avg decimal.Decimal) decimal.Decimal {
	if avg.IsZero() {
		return decimal.Zero
	}

	return price.Sub(avg).Div(avg).Mul(decimal.NewFromInt(100)).Round(variancePlaces)
}

// similarity = clamp(rating*0.4 + distanceScore*0.3 + (0.3 if price <= avg else 0.1), 0, 1).
func similarity(c candidate, avg decimal.Decimal) decimal.Decimal {
	quality := decimal.Zero
	if c.farmer != nil {
		quality = c.farmer.Rating
	}

	bonus := aboveAverageBonus
	if c.product.PricePerUnit.LessThanOrEqual(avg) {
		bonus = belowAverageBonus
	}

	score := quality.Mul(decimal.NewFromFloat(qualityWeight)).
		Add(decimal.NewFromFloat(distanceScore(c.distance)).Mul(decimal.NewFromFloat(distanceWeight))).
		Add(decimal.NewFromFloat(bonus))

	if score.LessThan(decimal.Zero) {
		score = decimal.Zero
	}
	if score.GreaterThan(decimal.NewFromInt(1)) {
		score = decimal.NewFromInt(1)
	}

	return score.Round(similarityPlaces)
}

// distanceScore maps 0..10 km onto 1..0; anything farther scores 0 and an unknown distance scores 1.
func distanceScore(distance *float64) float64 {
	if distance == nil {
		return 1
	}

	return (distanceHorizonKm - math.Min(math.Max(*distance, 0), distanceHorizonKm)) / distanceHorizonKm
}

func bucket(index int, variance decimal.Decimal) Recommendation {
	switch {
	case index == 0:
		return BestValue
	case variance.LessThan(decimal.NewFromInt(goodDealVariancePct)):
		return GoodDeal
	default:
		return Premium
	}
}

func roundedDistance(distance *float64) *float64 {
	if distance == nil {
		return nil
	}
	d := decimal.NewFromFloat(*distance).Round(distancePlaces).InexactFloat64()

	return &d
}

func detachFarmer(p *entity.Product) *entity.Product {
	detached := *p
	detached.Farmer = nil

	return &detached
}

func displayName(c candidate) string {
	if c.farmer == nil {
		return ""
	}

	return c.farmer.DisplayName()
}

func firstName(c candidate) string {
	if c.farmer != nil && c.farmer.User != nil && c.farmer.User.FirstName != "" {
		return c.farmer.User.FirstName
	}

	return displayName(c)
}
