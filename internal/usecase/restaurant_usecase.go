package usecase

import (
	"context"
	"fmt"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/taxonomy"
	"Lunch-App/internal/logging"
)

type RestaurantUseCase interface {
	// SearchNearby は条件どおりに周辺店舗を検索し、距離を補完して返す
	SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error)

	// SearchForPreferences は好みから検索条件を組み立てて検索し、候補フィルタを適用する
	SearchForPreferences(ctx context.Context, origin model.LatLng, radius int, prefs model.UserPreferences) ([]*model.Restaurant, error)

	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
}

type restaurantUseCaseImpl struct {
	restaurantsRepo repository.RestaurantsRepository
}

func NewRestaurantUseCase(restaurantsRepo repository.RestaurantsRepository) RestaurantUseCase {
	return &restaurantUseCaseImpl{
		restaurantsRepo: restaurantsRepo,
	}
}

func (u *restaurantUseCaseImpl) SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error) {
	restaurants, err := u.restaurantsRepo.SearchNearby(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("周辺店舗の検索に失敗: %w", err)
	}
	return helper.EnsureDistances(params.Location, restaurants), nil
}

// SearchForPreferences は次の優先順で検索条件を決める
// 1. POI種別が指定されていればそのコード
// 2. 料理ジャンルから推定したコード（デフォルトコードは除く）
// 3. 種別指定なしの周辺検索
func (u *restaurantUseCaseImpl) SearchForPreferences(ctx context.Context, origin model.LatLng, radius int, prefs model.UserPreferences) ([]*model.Restaurant, error) {
	params := model.SearchParams{
		Location: origin,
		Radius:   radius,
		Types:    searchTypesFor(prefs),
	}

	logging.Debug().Strs("types", params.Types).Int("radius", radius).Msg("🔍 好みに基づく店舗検索")

	restaurants, err := u.SearchNearby(ctx, params)
	if err != nil {
		return nil, err
	}

	filtered := helper.FilterRestaurantsByPreferences(restaurants, prefs)
	logging.Info().Int("found", len(restaurants)).Int("candidates", len(filtered)).Msg("📍 候補店舗を絞り込み")
	return filtered, nil
}

// searchTypesFor は好みから検索に使うPOIコードを決める
func searchTypesFor(prefs model.UserPreferences) []string {
	if len(prefs.POITypes) > 0 {
		return append([]string{}, prefs.POITypes...)
	}

	var codes []string
	seen := make(map[string]bool)
	for _, cuisine := range prefs.CuisineTypes {
		code := taxonomy.CodeForKeyword(cuisine)
		if taxonomy.IsDefaultCode(code) || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

func (u *restaurantUseCaseImpl) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	restaurant, err := u.restaurantsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("店舗の取得に失敗: %w", err)
	}
	return restaurant, nil
}
