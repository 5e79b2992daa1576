package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"Lunch-App/internal/domain/helper"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/repository"
	"Lunch-App/internal/infrastructure/database"
	"Lunch-App/internal/metrics"
)

const (
	defaultSearchRadius = 1000
	searchLimit         = 50
)

// PostgresRestaurantsRepository はPostGISに保存された店舗データを検索するリポジトリ
type PostgresRestaurantsRepository struct {
	client *database.PostgreSQLClient
	now    func() time.Time
}

func NewPostgresRestaurantsRepository(client *database.PostgreSQLClient) repository.RestaurantsRepository {
	return &PostgresRestaurantsRepository{
		client: client,
		now:    time.Now,
	}
}

// restaurantRow クエリ結果を受け取るための構造体
type restaurantRow struct {
	ID             string
	Name           string
	Address        sql.NullString
	Phone          sql.NullString
	Location       string
	Category       string
	Rating         sql.NullFloat64
	PriceLevel     sql.NullInt64
	OpeningHours   sql.NullString
	Photos         []byte
	DistanceMeters sql.NullFloat64
}

// toRestaurant restaurantRowをmodel.Restaurantに変換
func (row *restaurantRow) toRestaurant(now time.Time) (*model.Restaurant, error) {
	loc, err := GeoJSONToLatLng([]byte(row.Location))
	if err != nil {
		return nil, err
	}

	r := &model.Restaurant{
		ID:         row.ID,
		Name:       row.Name,
		Address:    row.Address.String,
		Latitude:   loc.Lat,
		Longitude:  loc.Lng,
		Category:   row.Category,
		Rating:     row.Rating.Float64,
		PriceLevel: int(row.PriceLevel.Int64),
		Photos:     []string{},
	}
	if !row.PriceLevel.Valid {
		r.PriceLevel = model.MinPriceLevel
	}
	if row.Phone.Valid && row.Phone.String != "" {
		r.Phone = &row.Phone.String
	}
	if row.OpeningHours.Valid && row.OpeningHours.String != "" {
		r.OpeningHours = &row.OpeningHours.String
	}
	r.IsOpen = helper.IsOpenAt(r.GetOpeningHours(), now)

	if len(row.Photos) > 0 {
		if err := json.Unmarshal(row.Photos, &r.Photos); err != nil {
			return nil, fmt.Errorf("photos JSONBパースエラー: %w", err)
		}
	}
	if row.DistanceMeters.Valid {
		d := row.DistanceMeters.Float64
		r.Distance = &d
	}
	return r, nil
}

// SearchNearby は半径内の店舗を近い順に取得する
// Typesはcategory_codeでの絞り込み、Keywordsは店名・カテゴリの部分一致
func (r *PostgresRestaurantsRepository) SearchNearby(ctx context.Context, params model.SearchParams) ([]*model.Restaurant, error) {
	radius := params.Radius
	if radius <= 0 {
		radius = defaultSearchRadius
	}

	query := `
		SELECT
			r.id, r.name, r.address, r.phone,
			ST_AsGeoJSON(r.location) AS location,
			r.category, r.rating, r.price_level, r.opening_hours, r.photos,
			ST_Distance(ST_GeogFromText($1), r.location::geography) AS distance_meters
		FROM restaurants r
		WHERE ST_DWithin(ST_GeogFromText($1), r.location::geography, $2)
		AND (cardinality($3::text[]) = 0 OR r.category_code = ANY($3::text[]))
		AND ($4 = '' OR r.name ILIKE '%' || $4 || '%' OR r.category ILIKE '%' || $4 || '%')
		ORDER BY distance_meters
		LIMIT $5
	`

	types := params.Types
	if types == nil {
		types = []string{}
	}

	rows, err := r.client.DB.QueryContext(ctx, query, PointWKT(params.Location), radius, pq.Array(types), params.Keywords, searchLimit)
	if err != nil {
		metrics.RecordPlaceSearch("postgres", err)
		return nil, fmt.Errorf("周辺店舗検索失敗: %w", err)
	}
	defer rows.Close()

	now := r.now()
	var result []*model.Restaurant
	for rows.Next() {
		var row restaurantRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Address, &row.Phone, &row.Location,
			&row.Category, &row.Rating, &row.PriceLevel, &row.OpeningHours, &row.Photos, &row.DistanceMeters); err != nil {
			return nil, fmt.Errorf("店舗データスキャンエラー: %w", err)
		}

		restaurant, err := row.toRestaurant(now)
		if err != nil {
			return nil, err
		}
		result = append(result, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("行イテレーション中のエラー: %w", err)
	}

	metrics.RecordPlaceSearch("postgres", nil)
	return result, nil
}

// GetByID は店舗IDで1件取得する
func (r *PostgresRestaurantsRepository) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	query := `
		SELECT
			r.id, r.name, r.address, r.phone,
			ST_AsGeoJSON(r.location) AS location,
			r.category, r.rating, r.price_level, r.opening_hours, r.photos,
			NULL::float8 AS distance_meters
		FROM restaurants r
		WHERE r.id = $1
	`

	var row restaurantRow
	err := r.client.DB.QueryRowContext(ctx, query, id).Scan(&row.ID, &row.Name, &row.Address, &row.Phone, &row.Location,
		&row.Category, &row.Rating, &row.PriceLevel, &row.OpeningHours, &row.Photos, &row.DistanceMeters)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("店舗 %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("店舗データの取得失敗: %w", err)
	}

	return row.toRestaurant(r.now())
}
