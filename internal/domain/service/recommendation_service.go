package service

import (
	"context"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/strategy"
	"Lunch-App/internal/logging"
	"Lunch-App/internal/metrics"
)

// RecommendationService は推薦生成のオーケストレーションを行うサービス
// AIによる推薦を優先し、使えない場合はヒューリスティックで必ず結果を返す
type RecommendationService interface {
	Recommend(ctx context.Context, rc model.RecommendationContext, restaurants []*model.Restaurant) *model.RecommendationResult
}

type recommendationService struct {
	generator repository.RecommendationGenerationRepository
	heuristic strategy.StrategyInterface
}

// NewRecommendationService は新しいRecommendationServiceインスタンスを作成
// generatorがnilの場合は常にヒューリスティックで推薦する
func NewRecommendationService(generator repository.RecommendationGenerationRepository) RecommendationService {
	return &recommendationService{
		generator: generator,
		heuristic: strategy.NewHeuristicStrategy(),
	}
}

// Recommend は推薦を生成する。エラーは返さない
// 1. 認証情報が無ければヒューリスティック
// 2. AIを1回だけ呼び、成功すれば（空でも）その結果を返す
// 3. AIが失敗したら警告ログを出してヒューリスティック
func (s *recommendationService) Recommend(ctx context.Context, rc model.RecommendationContext, restaurants []*model.Restaurant) *model.RecommendationResult {
	if len(restaurants) == 0 {
		metrics.RecordFallback(metrics.FallbackNoCandidates)
		return s.heuristicResult(rc, restaurants)
	}

	if s.generator == nil || !s.generator.IsConfigured() {
		logging.Debug().Msg("🤖 AI推薦は未設定のため、ヒューリスティック推薦を使用")
		metrics.RecordFallback(metrics.FallbackNotConfigured)
		return s.heuristicResult(rc, restaurants)
	}

	recommendations, err := s.generator.GenerateRecommendations(ctx, rc, restaurants)
	if err != nil {
		logging.Warn().Err(err).Int("candidates", len(restaurants)).Msg("⚠️ AI推薦に失敗、ヒューリスティック推薦にフォールバック")
		metrics.RecordFallback(metrics.FallbackRemoteError)
		return s.heuristicResult(rc, restaurants)
	}

	if recommendations == nil {
		recommendations = []model.Recommendation{}
	}
	logging.Info().Int("count", len(recommendations)).Msg("✅ AI推薦を生成しました")
	metrics.RecordRecommendation(model.SourceAI)
	return &model.RecommendationResult{
		Recommendations: recommendations,
		Source:          model.SourceAI,
	}
}

func (s *recommendationService) heuristicResult(rc model.RecommendationContext, restaurants []*model.Restaurant) *model.RecommendationResult {
	metrics.RecordRecommendation(model.SourceHeuristic)
	return &model.RecommendationResult{
		Recommendations: s.heuristic.Recommend(rc, restaurants),
		Source:          model.SourceHeuristic,
	}
}
