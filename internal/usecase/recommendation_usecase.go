package usecase

import (
	"context"
	"fmt"
	"time"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/service"
	"Lunch-App/internal/domain/taxonomy"
	"Lunch-App/internal/logging"
)

// DefaultRecommendationTTLHours 推薦結果キャッシュの既定の有効期間
const DefaultRecommendationTTLHours = 2

type RecommendationUseCase interface {
	// GenerateRecommendations はリクエストに基づいて推薦を生成し、キャッシュに保存してレスポンスを返す
	GenerateRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error)

	// GetRecommendations は保存済みの推薦結果をIDで取得する
	GetRecommendations(ctx context.Context, recommendationID string) (*model.RecommendationResponse, error)
}

// RecommendationOptions はRecommendationUseCaseの動作設定
type RecommendationOptions struct {
	TTLHours      int
	DefaultRadius int
	Now           func() time.Time
}

type recommendationUseCaseImpl struct {
	recommendationService service.RecommendationService
	restaurantUseCase     RestaurantUseCase
	preferencesUseCase    PreferencesUseCase
	cacheRepo             repository.RecommendationCacheRepository
	opts                  RecommendationOptions
}

// NewRecommendationUseCase は新しいRecommendationUseCaseインスタンスを作成
// cacheRepoがnilの場合は推薦結果を保存しない
func NewRecommendationUseCase(
	recommendationService service.RecommendationService,
	restaurantUseCase RestaurantUseCase,
	preferencesUseCase PreferencesUseCase,
	cacheRepo repository.RecommendationCacheRepository,
	opts RecommendationOptions,
) RecommendationUseCase {
	if opts.TTLHours <= 0 {
		opts.TTLHours = DefaultRecommendationTTLHours
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &recommendationUseCaseImpl{
		recommendationService: recommendationService,
		restaurantUseCase:     restaurantUseCase,
		preferencesUseCase:    preferencesUseCase,
		cacheRepo:             cacheRepo,
		opts:                  opts,
	}
}

func (u *recommendationUseCaseImpl) GenerateRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResponse, error) {
	if req.Location == nil {
		return nil, fmt.Errorf("現在地が指定されていません")
	}
	now := u.opts.Now()
	origin := req.Location.ToLatLng()

	// Step 1: 好みと時間帯を決定
	prefs := u.resolvePreferences(ctx, req)
	timeOfDay := req.TimeOfDay
	if timeOfDay == "" {
		timeOfDay = model.TimeOfDayAt(now)
	}

	logging.Info().
		Float64("lat", origin.Lat).Float64("lng", origin.Lng).
		Str("time_of_day", timeOfDay).
		Msg("🚀 推薦生成開始")

	// Step 2: 候補店舗を用意
	candidates, err := u.collectCandidates(ctx, req, origin, prefs)
	if err != nil {
		return nil, err
	}

	// Step 3: 推薦を生成（AIが使えなければヒューリスティック）
	rc := model.RecommendationContext{
		Location:        *req.Location,
		Preferences:     prefs,
		Weather:         req.Weather,
		TimeOfDay:       timeOfDay,
		PreviousChoices: req.PreviousChoices,
	}
	result := u.recommendationService.Recommend(ctx, rc, candidates)

	response := &model.RecommendationResponse{
		Source:          result.Source,
		TimeOfDay:       timeOfDay,
		CandidateCount:  len(candidates),
		Recommendations: toItems(result.Recommendations),
	}

	// Step 4: キャッシュに保存（失敗しても推薦結果は返す）
	if u.cacheRepo != nil {
		cached := model.NewCachedRecommendations(result, timeOfDay, len(candidates), now, u.opts.TTLHours)
		id, err := u.cacheRepo.Save(ctx, cached)
		if err != nil {
			logging.Warn().Err(err).Msg("⚠️ 推薦結果の保存に失敗、IDなしで返却")
		} else {
			response.RecommendationID = id
		}
	}

	logging.Info().
		Str("source", result.Source).
		Int("count", len(response.Recommendations)).
		Int("candidates", len(candidates)).
		Msg("🎉 推薦生成完了")
	return response, nil
}

// resolvePreferences はリクエストの好み、保存済みの好み、デフォルトの順に採用する
func (u *recommendationUseCaseImpl) resolvePreferences(ctx context.Context, req *model.RecommendationRequest) model.UserPreferences {
	if req.Preferences != nil {
		return *req.Preferences
	}
	if req.UserID != "" && u.preferencesUseCase != nil {
		prefs, err := u.preferencesUseCase.GetPreferences(ctx, req.UserID)
		if err == nil {
			return *prefs
		}
		logging.Warn().Err(err).Str("user_id", req.UserID).Msg("⚠️ 好み設定の取得に失敗、デフォルトを使用")
	}
	return model.DefaultPreferences()
}

// collectCandidates はリクエストに店舗が含まれていればそれを、なければ周辺検索の結果を候補にする
func (u *recommendationUseCaseImpl) collectCandidates(ctx context.Context, req *model.RecommendationRequest, origin model.LatLng, prefs model.UserPreferences) ([]*model.Restaurant, error) {
	if len(req.Restaurants) > 0 {
		withDistance := helper.EnsureDistances(origin, req.Restaurants)
		return helper.FilterRestaurantsByPreferences(withDistance, prefs), nil
	}

	radius := req.Radius
	if radius <= 0 {
		radius = u.opts.DefaultRadius
	}
	candidates, err := u.restaurantUseCase.SearchForPreferences(ctx, origin, radius, prefs)
	if err != nil {
		return nil, fmt.Errorf("候補店舗の取得に失敗: %w", err)
	}
	return candidates, nil
}

func (u *recommendationUseCaseImpl) GetRecommendations(ctx context.Context, recommendationID string) (*model.RecommendationResponse, error) {
	if u.cacheRepo == nil {
		return nil, fmt.Errorf("推薦結果 %s: %w", recommendationID, repository.ErrNotFound)
	}

	cached, err := u.cacheRepo.Get(ctx, recommendationID)
	if err != nil {
		return nil, fmt.Errorf("推薦結果の取得に失敗: %w", err)
	}

	return &model.RecommendationResponse{
		RecommendationID: recommendationID,
		Source:           cached.Source,
		TimeOfDay:        cached.TimeOfDay,
		CandidateCount:   cached.CandidateCount,
		Recommendations:  toItems(cached.Recommendations),
	}, nil
}

// toItems は推薦結果に説明文と一致する料理ジャンルを付与する
func toItems(recs []model.Recommendation) []model.RecommendationItem {
	items := make([]model.RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		matching := []string{}
		if rec.Restaurant != nil {
			matching = append(matching, taxonomy.MatchingCuisines(rec.Restaurant.Category)...)
		}
		items = append(items, model.RecommendationItem{
			Recommendation:   rec,
			Explanation:      model.Explain(rec),
			MatchingCuisines: matching,
		})
	}
	return items
}
