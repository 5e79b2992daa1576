package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/taxonomy"
)

// DemoRestaurantsRepository 店舗データソースが未設定のときに使う固定データ
// 検索地点を中心に少しずつずらした位置に店舗を配置する
type DemoRestaurantsRepository struct {
	now func() time.Time
}

func NewDemoRestaurantsRepository() repository.RestaurantsRepository {
	return &DemoRestaurantsRepository{now: time.Now}
}

type demoRestaurant struct {
	id           string
	name         string
	address      string
	phone        string
	category     string
	code         string
	rating       float64
	priceLevel   int
	openingHours string
	offsetLat    float64
	offsetLng    float64
}

// 上海・人民広場周辺を想定したデータ
var demoRestaurants = []demoRestaurant{
	{"demo-1", "老王家常菜", "上海市黄浦区南京东路100号", "021-12345678", "简餐便当", "050100", 4.5, 2, "10:00-21:00", 0.0010, 0.0010},
	{"demo-2", "湘味小馆", "上海市黄浦区福州路200号", "021-23456789", "湘菜馆", "050108", 4.2, 2, "11:00-14:00,17:00-22:00", 0.0025, -0.0015},
	{"demo-3", "绿意轻食", "上海市黄浦区西藏中路300号", "", "轻食/沙拉", "050300", 4.0, 3, "08:00-20:00", -0.0030, 0.0020},
	{"demo-4", "蜀地火锅", "上海市黄浦区九江路400号", "021-45678901", "火锅/串串", "050117", 4.7, 3, "11:00-02:00", -0.0045, -0.0040},
}

func (d demoRestaurant) toRestaurant(origin model.LatLng, now time.Time) *model.Restaurant {
	r := &model.Restaurant{
		ID:         d.id,
		Name:       d.name,
		Address:    d.address,
		Latitude:   origin.Lat + d.offsetLat,
		Longitude:  origin.Lng + d.offsetLng,
		Category:   d.category,
		Rating:     d.rating,
		PriceLevel: d.priceLevel,
		Photos:     []string{},
	}
	if d.phone != "" {
		phone := d.phone
		r.Phone = &phone
	}
	hours := d.openingHours
	r.OpeningHours = &hours
	r.IsOpen = helper.IsOpenAt(hours, now)
	return r
}

// SearchNearby は検索地点の周辺にデモ店舗を配置し、半径・種別・キーワードで絞り込む
func (r *DemoRestaurantsRepository) SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error) {
	radius := float64(params.Radius)
	if radius <= 0 {
		radius = defaultSearchRadius
	}

	now := r.now()
	var candidates []*model.Restaurant
	for _, d := range demoRestaurants {
		if !matchesTypes(d.code, params.Types) {
			continue
		}
		if kw := strings.TrimSpace(params.Keywords); kw != "" &&
			!strings.Contains(d.name, kw) && !strings.Contains(d.category, kw) {
			continue
		}
		candidates = append(candidates, d.toRestaurant(params.Location, now))
	}

	var result []*model.Restaurant
	for _, restaurant := range helper.EnsureDistances(params.Location, candidates) {
		if *restaurant.Distance <= radius {
			result = append(result, restaurant)
		}
	}
	helper.SortByDistance(result)
	return result, nil
}

// matchesTypes は店舗のコードが指定種別またはその配下に含まれるか判定する
func matchesTypes(code string, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == code || taxonomy.IsDefaultCode(t) {
			return true
		}
		for _, sub := range taxonomy.Subcategories(t) {
			if sub.Code == code {
				return true
			}
		}
	}
	return false
}

// GetByID はデモ店舗をデフォルト位置（北京）基準で返す
func (r *DemoRestaurantsRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	origin := model.DefaultLocation()
	for _, d := range demoRestaurants {
		if d.id == id {
			return d.toRestaurant(model.LatLng{Lat: origin.Latitude, Lng: origin.Longitude}, r.now()), nil
		}
	}
	return nil, fmt.Errorf("店舗 %s: %w", id, repository.ErrNotFound)
}
