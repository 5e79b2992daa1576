package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/domain/service"
	repoImpl "Lunch-App/internal/repository"
)

func fixedClock(hour int) func() time.Time {
	return func() time.Time { return time.Date(2024, 5, 1, hour, 0, 0, 0, time.Local) }
}

func nearbyRestaurants() []*model.Restaurant {
	return []*model.Restaurant{
		{ID: "hotpot", Name: "蜀地火锅", Category: "火锅店", Rating: 4.7, PriceLevel: 3, IsOpen: true, Distance: meters(600)},
		{ID: "hunan", Name: "湘味小馆", Category: "湘菜馆", Rating: 4.2, PriceLevel: 2, IsOpen: true, Distance: meters(300)},
		{ID: "salad", Name: "绿意轻食", Category: "轻食/沙拉", Rating: 4.0, PriceLevel: 3, IsOpen: false, Distance: meters(400)},
	}
}

type recommendationFixture struct {
	uc    RecommendationUseCase
	repo  *fakeRestaurantsRepo
	prefs PreferencesUseCase
}

func newRecommendationFixture(cache repository.RecommendationCacheRepository, hour int) *recommendationFixture {
	repo := &fakeRestaurantsRepo{restaurants: nearbyRestaurants()}
	prefs := NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository())
	uc := NewRecommendationUseCase(
		service.NewRecommendationService(nil),
		NewRestaurantUseCase(repo),
		prefs,
		cache,
		RecommendationOptions{TTLHours: 1, DefaultRadius: 1000, Now: fixedClock(hour)},
	)
	return &recommendationFixture{uc: uc, repo: repo, prefs: prefs}
}

func TestGenerateRecommendations_SearchesAndCaches(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture(repoImpl.NewMemoryRecommendationRepository(fixedClock(12)), 12)

	resp, err := f.uc.GenerateRecommendations(ctx, &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.calls)
	assert.Equal(t, 1000, f.repo.lastParams.Radius)
	assert.Equal(t, model.SourceHeuristic, resp.Source)
	assert.Equal(t, model.TimeOfDayLunch, resp.TimeOfDay)
	assert.Equal(t, 3, resp.CandidateCount)
	assert.NotEmpty(t, resp.RecommendationID)
	require.Len(t, resp.Recommendations, 3)

	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t, resp.Recommendations[i-1].Score, resp.Recommendations[i].Score)
	}
	for _, item := range resp.Recommendations {
		assert.NotEmpty(t, item.Explanation)
		assert.NotNil(t, item.MatchingCuisines)
	}

	cached, err := f.uc.GetRecommendations(ctx, resp.RecommendationID)
	require.NoError(t, err)
	assert.Equal(t, resp.Recommendations, cached.Recommendations)
	assert.Equal(t, resp.RecommendationID, cached.RecommendationID)
}

func TestGenerateRecommendations_UsesProvidedRestaurants(t *testing.T) {
	f := newRecommendationFixture(nil, 19)

	resp, err := f.uc.GenerateRecommendations(context.Background(), &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
		Preferences: &model.UserPreferences{
			CuisineTypes: []string{"湘菜"},
		},
		Restaurants: []*model.Restaurant{
			{ID: "a", Name: "湘味小馆", Category: "湘菜馆", Rating: 4.2, PriceLevel: 2, Latitude: 31.2314, Longitude: 121.4737},
			{ID: "b", Name: "蜀地火锅", Category: "火锅店", Rating: 4.7, PriceLevel: 3, Latitude: 31.2314, Longitude: 121.4737},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.repo.calls)
	assert.Equal(t, model.TimeOfDayDinner, resp.TimeOfDay)
	assert.Empty(t, resp.RecommendationID)
	assert.Equal(t, 1, resp.CandidateCount)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "a", resp.Recommendations[0].Restaurant.ID)
	assert.Equal(t, []string{"湘菜"}, resp.Recommendations[0].MatchingCuisines)
	require.NotNil(t, resp.Recommendations[0].Restaurant.Distance)
}

func TestGenerateRecommendations_UsesStoredPreferences(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture(nil, 12)

	poiTypes := []string{"050117"}
	_, err := f.prefs.UpdatePreferences(ctx, "u1", &model.PreferencesPatch{POITypes: &poiTypes})
	require.NoError(t, err)

	_, err = f.uc.GenerateRecommendations(ctx, &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
		UserID:   "u1",
		Radius:   800,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"050117"}, f.repo.lastParams.Types)
	assert.Equal(t, 800, f.repo.lastParams.Radius)
}

func TestGenerateRecommendations_CacheFailureStillReturns(t *testing.T) {
	f := newRecommendationFixture(failingCacheRepo{}, 12)

	resp, err := f.uc.GenerateRecommendations(context.Background(), &model.RecommendationRequest{
		Location:  &model.Location{Latitude: 31.2304, Longitude: 121.4737},
		TimeOfDay: model.TimeOfDaySnack,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.RecommendationID)
	assert.Equal(t, model.TimeOfDaySnack, resp.TimeOfDay)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestGenerateRecommendations_SearchError(t *testing.T) {
	f := newRecommendationFixture(nil, 12)
	f.repo.err = errBoom

	_, err := f.uc.GenerateRecommendations(context.Background(), &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
	})
	assert.ErrorIs(t, err, errBoom)
}

func TestGenerateRecommendations_NoCandidates(t *testing.T) {
	f := newRecommendationFixture(nil, 12)
	f.repo.restaurants = nil

	resp, err := f.uc.GenerateRecommendations(context.Background(), &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CandidateCount)
	assert.Empty(t, resp.Recommendations)
	assert.NotNil(t, resp.Recommendations)
}

func TestGetRecommendations_NotFound(t *testing.T) {
	f := newRecommendationFixture(repoImpl.NewMemoryRecommendationRepository(fixedClock(12)), 12)
	_, err := f.uc.GetRecommendations(context.Background(), "rec_missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	noCache := newRecommendationFixture(nil, 12)
	_, err = noCache.uc.GetRecommendations(context.Background(), "rec_missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetRecommendations_ExpiresOnSharedClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }

	uc := NewRecommendationUseCase(
		service.NewRecommendationService(nil),
		NewRestaurantUseCase(&fakeRestaurantsRepo{restaurants: nearbyRestaurants()}),
		NewPreferencesUseCase(repoImpl.NewMemoryPreferencesRepository()),
		repoImpl.NewMemoryRecommendationRepository(clock),
		RecommendationOptions{TTLHours: 1, DefaultRadius: 1000, Now: clock},
	)

	resp, err := uc.GenerateRecommendations(ctx, &model.RecommendationRequest{
		Location: &model.Location{Latitude: 31.2304, Longitude: 121.4737},
	})
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = uc.GetRecommendations(ctx, resp.RecommendationID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = uc.GetRecommendations(ctx, resp.RecommendationID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
