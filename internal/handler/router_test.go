package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/service"
	repoImpl "Lunch-App/internal/repository"
	"Lunch-App/internal/usecase"
)

type stubLocationRepo struct{}

func (stubLocationRepo) LocateByIP(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	if ip == "" {
		return nil, errors.New("no ip")
	}
	return &model.ResolvedLocation{Latitude: 31.23, Longitude: 121.47, Address: "上海市", Source: "ip-api"}, nil
}

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(ctx context.Context) error { return s.err }

func setupRouter(checkers map[string]HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)

	restaurantUseCase := usecase.NewRestaurantUseCase(repoImpl.NewDemoRestaurantsRepository())
	preferencesUseCase := usecase.NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository())
	recommendationUseCase := usecase.NewRecommendationUseCase(
		service.NewRecommendationService(nil),
		restaurantUseCase,
		preferencesUseCase,
		repoImpl.NewMemoryRecommendationRepository(nil),
		usecase.RecommendationOptions{DefaultRadius: 1000},
	)

	return NewRouter(Handlers{
		Health:         NewHealthHandler("Lunch-App", checkers),
		Recommendation: NewRecommendationHandler(recommendationUseCase),
		Restaurant:     NewRestaurantHandler(restaurantUseCase),
		Preferences:    NewPreferencesHandler(preferencesUseCase),
		Category:       NewCategoryHandler(),
		Location:       NewLocationHandler(usecase.NewLocationUseCase(stubLocationRepo{}, nil)),
	})
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealth(t *testing.T) {
	w := doRequest(t, setupRouter(nil), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, setupRouter(map[string]HealthChecker{"postgres": stubChecker{err: errors.New("down")}}), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "degraded", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	w := doRequest(t, setupRouter(nil), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostRecommendations(t *testing.T) {
	router := setupRouter(nil)

	w := doRequest(t, router, http.MethodPost, "/recommendations", map[string]any{
		"location": map[string]float64{"latitude": 31.2304, "longitude": 121.4737},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.RecommendationResponse
	decode(t, w, &resp)
	assert.Equal(t, model.SourceHeuristic, resp.Source)
	assert.Equal(t, 4, resp.CandidateCount)
	assert.Len(t, resp.Recommendations, 4)
	require.NotEmpty(t, resp.RecommendationID)

	t.Run("保存済みの結果を取得", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/recommendations/"+resp.RecommendationID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var cached model.RecommendationResponse
		decode(t, w, &cached)
		assert.Equal(t, resp.RecommendationID, cached.RecommendationID)
		assert.Len(t, cached.Recommendations, 4)
	})

	t.Run("存在しないID", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/recommendations/rec_missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPostRecommendations_Validation(t *testing.T) {
	router := setupRouter(nil)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"不正なJSON", `{"location":`, ""},
		{"現在地なし", map[string]any{}, "location"},
		{"緯度が範囲外", map[string]any{"location": map[string]float64{"latitude": 100, "longitude": 0}}, "location.latitude"},
		{"未知の時間帯", map[string]any{
			"location":  map[string]float64{"latitude": 31.2, "longitude": 121.4},
			"timeOfDay": "midnight",
		}, "timeOfDay"},
		{"価格帯の順序が逆", map[string]any{
			"location":    map[string]float64{"latitude": 31.2, "longitude": 121.4},
			"preferences": map[string]any{"priceRange": []int{4, 1}},
		}, "preferences.priceRange"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/recommendations", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			if tt.field != "" {
				assert.Contains(t, w.Body.String(), tt.field)
			}
		})
	}
}

func TestRestaurants(t *testing.T) {
	router := setupRouter(nil)

	w := doRequest(t, router, http.MethodGet, "/restaurants/nearby?lat=31.2304&lng=121.4737&types=050108", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Restaurants []model.Restaurant `json:"restaurants"`
		Count       int                `json:"count"`
	}
	decode(t, w, &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "demo-2", body.Restaurants[0].ID)

	w = doRequest(t, router, http.MethodGet, "/restaurants/nearby?lng=121.4737", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/restaurants/nearby?lat=31.2&lng=121.4&radius=-5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/restaurants/demo-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/restaurants/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferences(t *testing.T) {
	router := setupRouter(nil)

	w := doRequest(t, router, http.MethodGet, "/preferences/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var prefs model.UserPreferences
	decode(t, w, &prefs)
	assert.Equal(t, model.DefaultPriceRange, prefs.PriceRange)

	w = doRequest(t, router, http.MethodPut, "/preferences/u1", map[string]any{"priceRange": []int{3, 1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, "/preferences/u1", map[string]any{"maxDistance": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPut, "/preferences/u1", map[string]any{"cuisineTypes": []string{"川菜"}, "priceRange": []int{1, 2}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/preferences/u1", nil)
	decode(t, w, &prefs)
	assert.Equal(t, []string{"川菜"}, prefs.CuisineTypes)
	assert.Equal(t, model.PriceRange{1, 2}, prefs.PriceRange)
	assert.Equal(t, 1000.0, prefs.MaxDistance)
}

func TestCategories(t *testing.T) {
	router := setupRouter(nil)

	w := doRequest(t, router, http.MethodGet, "/categories/050100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var category struct {
		Code          string               `json:"code"`
		Name          string               `json:"name"`
		Subcategories []*model.POICategory `json:"subcategories"`
	}
	decode(t, w, &category)
	assert.Equal(t, "中餐厅", category.Name)
	assert.NotEmpty(t, category.Subcategories)

	w = doRequest(t, router, http.MethodGet, "/categories/999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/categories?flat=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var flat struct {
		Categories []struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"categories"`
		Count int `json:"count"`
	}
	decode(t, w, &flat)
	require.NotEmpty(t, flat.Categories)
	assert.Equal(t, len(flat.Categories), flat.Count)
	assert.Equal(t, "050000", flat.Categories[0].Code)
	assert.Equal(t, "050100", flat.Categories[1].Code)
	assert.Equal(t, "中餐厅", flat.Categories[1].Name)

	w = doRequest(t, router, http.MethodGet, "/cuisines/match?category="+url.QueryEscape("湘菜馆"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var match struct {
		Cuisines []string `json:"cuisines"`
	}
	decode(t, w, &match)
	assert.Equal(t, []string{"湘菜"}, match.Cuisines)

	w = doRequest(t, router, http.MethodGet, "/cuisines/match", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/cuisines/code?keyword="+url.QueryEscape("火锅"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var code map[string]string
	decode(t, w, &code)
	assert.Equal(t, "050117", code["code"])
}

func TestLocationByIP(t *testing.T) {
	router := setupRouter(nil)

	w := doRequest(t, router, http.MethodGet, "/location/ip?ip=8.8.8.8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loc model.ResolvedLocation
	decode(t, w, &loc)
	assert.Equal(t, "ip-api", loc.Source)

	// 接続元がプライベートアドレスなら推定できずデフォルト位置になる
	w = doRequest(t, router, http.MethodGet, "/location/ip", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &loc)
	assert.Equal(t, model.DefaultLocation(), loc)

	w = doRequest(t, router, http.MethodGet, "/location/ip?ip=not-an-ip", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
