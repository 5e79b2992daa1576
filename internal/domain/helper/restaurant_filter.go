package helper

import (
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/taxonomy"
)

// FilterRestaurantsByPreferences はユーザーの好みに合わない店舗を除外する。
// 距離・価格帯・ジャンルの3条件をすべて満たす店舗だけを元の順序で返す。
// 未設定の条件は判定に使わない
func FilterRestaurantsByPreferences(restaurants []*model.Restaurant, prefs model.UserPreferences) []*model.Restaurant {
	filtered := make([]*model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r == nil {
			continue
		}
		if !withinDistance(r, prefs.MaxDistance) {
			continue
		}
		if !withinPriceRange(r, prefs.PriceRange) {
			continue
		}
		if !taxonomy.CuisineMatches(r.Category, prefs.CuisineTypes) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// withinDistance は距離が不明な店舗を除外しない
func withinDistance(r *model.Restaurant, maxDistance float64) bool {
	if maxDistance <= 0 || r.Distance == nil {
		return true
	}
	return *r.Distance <= maxDistance
}

func withinPriceRange(r *model.Restaurant, pr model.PriceRange) bool {
	if !pr.IsSet() {
		return true
	}
	return pr.Contains(r.PriceLevel)
}
