package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers はルーターに登録するハンドラー一式
type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Restaurant     *RestaurantHandler
	Preferences    *PreferencesHandler
	Category       *CategoryHandler
	Location       *LocationHandler
}

// NewRouter はGinルーターを構築する
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	r.GET("/api/health", h.Health.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recommendations := r.Group("/recommendations")
	{
		recommendations.POST("", h.Recommendation.PostRecommendations)
		recommendations.GET("/:id", h.Recommendation.GetRecommendations)
	}

	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("/nearby", h.Restaurant.GetNearby)
		restaurants.GET("/:id", h.Restaurant.GetRestaurant)
	}

	preferences := r.Group("/preferences")
	{
		preferences.GET("/:user_id", h.Preferences.GetPreferences)
		preferences.PUT("/:user_id", h.Preferences.PutPreferences)
	}

	r.GET("/categories", h.Category.ListCategories)
	r.GET("/categories/:code", h.Category.GetCategory)
	r.GET("/cuisines/match", h.Category.MatchCuisines)
	r.GET("/cuisines/code", h.Category.ResolveKeyword)

	r.GET("/location/ip", h.Location.GetLocationByIP)

	return r
}
