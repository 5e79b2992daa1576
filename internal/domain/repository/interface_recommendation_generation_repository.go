package repository

import (
	"Lunch-App/internal/domain/model"
	"context"
)

// RecommendationGenerationRepository はAIによる推薦生成の責務を持つリポジトリインターフェース
type RecommendationGenerationRepository interface {
	// IsConfigured は呼び出し時点で認証情報が設定されているかを返す
	IsConfigured() bool
	// GenerateRecommendations は候補店舗からスコア付きの推薦を生成する
	GenerateRecommendations(ctx context.Context, rc model.RecommendationContext, restaurants []*model.Restaurant) ([]model.Recommendation, error)
}
