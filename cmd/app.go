package main

import (
	"context"
	"time"

	"github.com/spf13/viper"

	"Lunch-App/internal/config"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/service"
	"Lunch-App/internal/handler"
	"Lunch-App/internal/infrastructure/ai"
	"Lunch-App/internal/infrastructure/database"
	firestoreClient "Lunch-App/internal/infrastructure/firestore"
	"Lunch-App/internal/infrastructure/geoip"
	"Lunch-App/internal/infrastructure/maps"
	"Lunch-App/internal/logging"
	repoImpl "Lunch-App/internal/repository"
	"Lunch-App/internal/usecase"
)

// app は設定に応じて組み立てた依存関係一式
type app struct {
	restaurantUseCase     usecase.RestaurantUseCase
	preferencesUseCase    usecase.PreferencesUseCase
	recommendationUseCase usecase.RecommendationUseCase
	locationUseCase       usecase.LocationUseCase
	checkers              map[string]handler.HealthChecker
	closers               []func() error
}

// buildApp は外部サービスの設定有無に応じて実装を選ぶ
// 店舗: 高徳地図 → PostGIS → デモデータ
// 好み設定: Supabase → メモリ
// 推薦キャッシュ: Firestore → メモリ
func buildApp(ctx context.Context, v *viper.Viper, cfg *config.Config) *app {
	a := &app{checkers: map[string]handler.HealthChecker{}}

	restaurantsRepo, geocoder := a.buildRestaurantsRepository(ctx, cfg)
	preferencesRepo := a.buildPreferencesRepository(cfg)
	cacheRepo := a.buildCacheRepository(ctx, cfg, time.Now)

	llmClient := ai.NewLLMClient(config.LLMSettingsProvider(v))
	recommendationService := service.NewRecommendationService(ai.NewAIRecommendationRepository(llmClient))
	if !llmClient.IsConfigured() {
		logging.Info().Msg("🤖 SILICON_API_KEY未設定: ヒューリスティック推薦で動作します")
	}

	a.restaurantUseCase = usecase.NewRestaurantUseCase(restaurantsRepo)
	a.preferencesUseCase = usecase.NewPreferencesUseCase(preferencesRepo)
	a.recommendationUseCase = usecase.NewRecommendationUseCase(
		recommendationService,
		a.restaurantUseCase,
		a.preferencesUseCase,
		cacheRepo,
		usecase.RecommendationOptions{
			TTLHours:      cfg.Recommendation.TTLHours,
			DefaultRadius: cfg.Recommendation.DefaultRadius,
			Now:           time.Now,
		},
	)
	a.locationUseCase = usecase.NewLocationUseCase(geoip.NewIPLocationRepository(geoip.DefaultEndpoints()), geocoder)

	return a
}

func (a *app) buildRestaurantsRepository(ctx context.Context, cfg *config.Config) (repository.RestaurantsRepository, repository.GeocodingRepository) {
	if cfg.Amap.IsConfigured() {
		logging.Info().Msg("🗺️ 高徳地図APIで店舗を検索します")
		provider := maps.NewAmapPlaceProvider(cfg.Amap.APIKey, cfg.Amap.SigSecret)
		return provider, provider
	}

	if cfg.Supabase.HasPostgres() {
		client, err := database.NewPostgreSQLClient(ctx, database.PostgresConfig{
			SupabaseURL: cfg.Supabase.URL,
			Password:    cfg.Supabase.DBPassword,
			MaxRetries:  3,
		})
		if err == nil {
			logging.Info().Msg("🐘 PostGISの店舗データで検索します")
			a.checkers["postgres"] = client
			a.closers = append(a.closers, client.Close)
			return repoImpl.NewPostgresRestaurantsRepository(client), nil
		}
		logging.Warn().Err(err).Msg("⚠️ PostgreSQLに接続できません、デモデータを使用")
	}

	logging.Info().Msg("🍱 店舗データソース未設定: デモデータを使用します")
	return repoImpl.NewDemoRestaurantsRepository(), nil
}

func (a *app) buildPreferencesRepository(cfg *config.Config) repository.PreferencesRepository {
	if cfg.Supabase.HasREST() {
		client, err := database.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		if err == nil {
			return repoImpl.NewSupabasePreferencesRepository(client)
		}
		logging.Warn().Err(err).Msg("⚠️ Supabaseクライアントの初期化に失敗、メモリに保存します")
	}
	return repoImpl.NewMemoryPreferencesRepository()
}

func (a *app) buildCacheRepository(ctx context.Context, cfg *config.Config, now func() time.Time) repository.RecommendationCacheRepository {
	if cfg.Firestore.IsConfigured() {
		client, err := firestoreClient.NewFirestoreClient(ctx, firestoreClient.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
		})
		if err == nil {
			a.closers = append(a.closers, client.Close)
			return repoImpl.NewFirestoreRecommendationRepository(client.GetClient(), now)
		}
		logging.Warn().Err(err).Msg("⚠️ Firestoreの初期化に失敗、メモリキャッシュを使用")
	}
	return repoImpl.NewMemoryRecommendationRepository(now)
}

func (a *app) handlers() handler.Handlers {
	return handler.Handlers{
		Health:         handler.NewHealthHandler("Lunch-App", a.checkers),
		Recommendation: handler.NewRecommendationHandler(a.recommendationUseCase),
		Restaurant:     handler.NewRestaurantHandler(a.restaurantUseCase),
		Preferences:    handler.NewPreferencesHandler(a.preferencesUseCase),
		Category:       handler.NewCategoryHandler(),
		Location:       handler.NewLocationHandler(a.locationUseCase),
	}
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logging.Warn().Err(err).Msg("⚠️ クローズ処理に失敗")
		}
	}
}
