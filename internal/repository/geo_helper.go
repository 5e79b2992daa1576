package repository

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"Lunch-App/internal/domain/model"
)

// PointWKT は LatLng を PostGIS に渡すWKT形式 "POINT(経度 緯度)" に変換
func PointWKT(loc model.LatLng) string {
	return wkt.MarshalString(orb.Point{loc.Lng, loc.Lat})
}

// GeoJSONToLatLng は ST_AsGeoJSON の結果（Point）を LatLng に変換
func GeoJSONToLatLng(data []byte) (model.LatLng, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("GeoJSONパースエラー: %w", err)
	}

	point, ok := g.Geometry().(orb.Point)
	if !ok {
		return model.LatLng{}, fmt.Errorf("Point以外のジオメトリです: %s", g.Type)
	}

	return model.LatLng{Lat: point.Lat(), Lng: point.Lon()}, nil
}
