package usecase

import (
	"context"
	"errors"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
)

var errBoom = errors.New("boom")

func meters(v float64) *float64 { return &v }

// fakeRestaurantsRepo は検索条件を記録するテスト用リポジトリ
type fakeRestaurantsRepo struct {
	restaurants []*model.Restaurant
	err         error
	lastParams  model.SearchParams
	calls       int
}

func (f *fakeRestaurantsRepo) SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error) {
	f.calls++
	f.lastParams = params
	return f.restaurants, f.err
}

func (f *fakeRestaurantsRepo) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

// failingPreferencesRepo は常にエラーを返す
type failingPreferencesRepo struct{}

func (failingPreferencesRepo) Get(ctx context.Context, userID string) (*model.UserPreferences, error) {
	return nil, errBoom
}

func (failingPreferencesRepo) Save(ctx context.Context, userID string, prefs model.UserPreferences) error {
	return errBoom
}

// failingCacheRepo は保存に失敗するキャッシュ
type failingCacheRepo struct{}

func (failingCacheRepo) Save(ctx context.Context, cached *model.CachedRecommendations) (string, error) {
	return "", errBoom
}

func (failingCacheRepo) Get(ctx context.Context, id string) (*model.CachedRecommendations, error) {
	return nil, repository.ErrNotFound
}

type fakeLocationRepo struct {
	loc *model.ResolvedLocation
	err error
}

func (f *fakeLocationRepo) LocateByIP(ctx context.Context, ip string) (*model.ResolvedLocation, error) {
	return f.loc, f.err
}

type fakeGeocoder struct {
	address string
	err     error
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, loc model.LatLng) (string, error) {
	return f.address, f.err
}
