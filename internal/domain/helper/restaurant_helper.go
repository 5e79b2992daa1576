package helper

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"Lunch-App/internal/domain/model"
)

// ToPoint は LatLng を orb.Point（経度, 緯度）に変換する
func ToPoint(p model.LatLng) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// DistanceMeters は2地点間の距離を計算する (m)
func DistanceMeters(p1, p2 model.LatLng) float64 {
	return geo.DistanceHaversine(ToPoint(p1), ToPoint(p2))
}

// EnsureDistances は距離が未設定の店舗に基準地点からの距離を設定したスライスを返す。
// 元の店舗は変更せず、距離の補完が必要なものだけコピーする
func EnsureDistances(origin model.LatLng, restaurants []*model.Restaurant) []*model.Restaurant {
	result := make([]*model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if r == nil {
			continue
		}
		if r.HasDistance() {
			result = append(result, r)
			continue
		}
		result = append(result, r.WithDistance(DistanceMeters(origin, r.ToLatLng())))
	}
	return result
}

// SortByDistance は距離の近い順に並べ替える（距離不明は末尾）
func SortByDistance(restaurants []*model.Restaurant) {
	sort.SliceStable(restaurants, func(i, j int) bool {
		di, dj := restaurants[i].Distance, restaurants[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}

// FindByID はIDで店舗を探す。同じIDが複数あれば最初のもの
func FindByID(restaurants []*model.Restaurant, id string) *model.Restaurant {
	for _, r := range restaurants {
		if r != nil && r.ID == id {
			return r
		}
	}
	return nil
}
