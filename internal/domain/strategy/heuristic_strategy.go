package strategy

import (
	"math"
	"sort"
	"strings"

	"Lunch-App/internal/domain/model"
)

const (
	maxDistancePoints  = 30.0
	distanceDivisor    = 100.0 // 100mごとに1点減点
	walkableDistance   = 500.0
	ratingMultiplier   = 5.0
	maxRating          = 5.0
	highRatingBoundary = 4.0
	priceFitPoints     = 20.0
	pricePenaltyPerGap = 5.0
	cuisinePoints      = 15.0
	openNowPoints      = 10.0

	// DefaultRecommendationLimit は推薦として返す最大件数
	DefaultRecommendationLimit = 5
)

// HeuristicStrategy は距離・評価・価格・ジャンル・営業状況の加点でスコアを決める。
// 外部サービスに依存せず、同じ入力には常に同じ結果を返す
type HeuristicStrategy struct {
	limit int
}

// NewHeuristicStrategy は新しいHeuristicStrategyインスタンスを作成
func NewHeuristicStrategy() *HeuristicStrategy {
	return &HeuristicStrategy{limit: DefaultRecommendationLimit}
}

// Score は1店舗を0〜100点で評価し、理由とランクを付ける
func (s *HeuristicStrategy) Score(rc model.RecommendationContext, restaurant *model.Restaurant) model.Recommendation {
	var score float64
	reasons := make([]string, 0, 5)

	// 距離（不明なら加点なし）
	if restaurant.Distance != nil {
		distance := math.Max(0, *restaurant.Distance)
		score += math.Max(0, maxDistancePoints-distance/distanceDivisor)
		if distance < walkableDistance {
			reasons = append(reasons, model.ReasonWalkable)
		}
	}

	// 評価
	rating := math.Min(maxRating, math.Max(0, restaurant.Rating))
	score += rating * ratingMultiplier
	if rating >= highRatingBoundary {
		reasons = append(reasons, model.ReasonHighlyRated)
	}

	// 価格帯（未設定なら [1,4]）
	priceRange := rc.Preferences.PriceRange.OrDefault()
	if priceRange.Contains(restaurant.PriceLevel) {
		score += priceFitPoints
		reasons = append(reasons, model.ReasonPriceFits)
	} else {
		gap := math.Abs(float64(restaurant.PriceLevel) - priceRange.Midpoint())
		score += math.Max(0, priceFitPoints-gap*pricePenaltyPerGap)
	}

	// ジャンル
	if cuisineMatches(restaurant.Category, rc.Preferences.CuisineTypes) {
		score += cuisinePoints
		reasons = append(reasons, model.ReasonCuisineMatch)
	}

	// 営業中
	if restaurant.IsOpen {
		score += openNowPoints
		reasons = append(reasons, model.ReasonCurrentlyOpen)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, model.ReasonGeneral)
	}

	final := int(math.Round(math.Min(100, math.Max(0, score))))
	return model.Recommendation{
		Restaurant: restaurant,
		Score:      final,
		Reasons:    reasons,
		MatchType:  model.MatchTypeForScore(final),
	}
}

// Recommend は全候補を評価し、スコアの降順（同点は入力順）で上位5件を返す
func (s *HeuristicStrategy) Recommend(rc model.RecommendationContext, restaurants []*model.Restaurant) []model.Recommendation {
	recommendations := make([]model.Recommendation, 0, len(restaurants))
	for _, r := range restaurants {
		if r == nil {
			continue
		}
		recommendations = append(recommendations, s.Score(rc, r))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > s.limit {
		recommendations = recommendations[:s.limit]
	}
	return recommendations
}

// cuisineMatches は好みのジャンル名がカテゴリ名に含まれるかを判定する（同義語展開なし）
func cuisineMatches(category string, cuisines []string) bool {
	if len(cuisines) == 0 {
		return false
	}
	lowerCategory := strings.ToLower(category)
	for _, c := range cuisines {
		if strings.Contains(lowerCategory, strings.ToLower(c)) {
			return true
		}
	}
	return false
}
