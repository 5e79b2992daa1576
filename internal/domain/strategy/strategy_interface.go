package strategy

import (
	"Lunch-App/internal/domain/model"
)

// StrategyInterface は、候補店舗をスコアリングして推薦を作る戦略のインターフェース
type StrategyInterface interface {
	// Score は1店舗を評価する
	Score(rc model.RecommendationContext, restaurant *model.Restaurant) model.Recommendation

	// Recommend は全候補を評価し、スコアの高い順に上位を返す
	Recommend(rc model.RecommendationContext, restaurants []*model.Restaurant) []model.Recommendation
}
