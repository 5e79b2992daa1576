package usecase

import (
	"context"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/logging"
)

type LocationUseCase interface {
	// Locate はIPアドレスから現在地を推定する。推定できなければデフォルト位置を返す
	Locate(ctx context.Context, ip string) *model.ResolvedLocation
}

type locationUseCaseImpl struct {
	locationRepo repository.LocationRepository
	geocoder     repository.GeocodingRepository
}

// NewLocationUseCase は新しいLocationUseCaseインスタンスを作成
// geocoderがnilの場合は住所の補完を行わない
func NewLocationUseCase(locationRepo repository.LocationRepository, geocoder repository.GeocodingRepository) LocationUseCase {
	return &locationUseCaseImpl{
		locationRepo: locationRepo,
		geocoder:     geocoder,
	}
}

func (u *locationUseCaseImpl) Locate(ctx context.Context, ip string) *model.ResolvedLocation {
	loc, err := u.locationRepo.LocateByIP(ctx, ip)
	if err != nil {
		logging.Warn().Err(err).Str("ip", ip).Msg("⚠️ IP位置推定に失敗、デフォルト位置を使用")
		def := model.DefaultLocation()
		return &def
	}

	if loc.Address == "" && u.geocoder != nil {
		address, err := u.geocoder.ReverseGeocode(ctx, model.LatLng{Lat: loc.Latitude, Lng: loc.Longitude})
		if err != nil {
			logging.Debug().Err(err).Msg("逆ジオコーディングに失敗")
		} else {
			loc.Address = address
		}
	}
	return loc
}
