package repository

import (
	"context"

	"Lunch-App/internal/domain/model"
)

// RecommendationCacheRepository は生成済みの推薦結果を一時保存するリポジトリインターフェース
type RecommendationCacheRepository interface {
	// Save は推薦結果を保存し、取得用のIDを返す
	Save(ctx context.Context, cached *model.CachedRecommendations) (string, error)
	// Get はIDから推薦結果を取得する。存在しないか期限切れなら ErrNotFound を返す
	Get(ctx context.Context, id string) (*model.CachedRecommendations, error)
}
