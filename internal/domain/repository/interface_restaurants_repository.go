package repository

import (
	"context"

	"Lunch-App/internal/domain/model"
)

// RestaurantsRepository は周辺の飲食店を取得するリポジトリインターフェース
type RestaurantsRepository interface {
	// SearchNearby は条件に合う周辺の店舗を取得する
	SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error)
	// GetByID は店舗の詳細を取得する。存在しなければ ErrNotFound を返す
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
}
