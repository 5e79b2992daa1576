package repository

import (
	"context"

	"Lunch-App/internal/domain/model"
)

// GeocodingRepository は座標から住所を求めるリポジトリインターフェース
type GeocodingRepository interface {
	ReverseGeocode(ctx context.Context, loc model.LatLng) (string, error)
}
