package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lunch-App/internal/domain/model"
)

func TestRestaurantRow_ToRestaurant(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)

	row := restaurantRow{
		ID:             "p1",
		Name:           "湘味小馆",
		Address:        sql.NullString{String: "福州路200号", Valid: true},
		Phone:          sql.NullString{String: "021-23456789", Valid: true},
		Location:       `{"type":"Point","coordinates":[121.4737,31.2304]}`,
		Category:       "湘菜馆",
		Rating:         sql.NullFloat64{Float64: 4.2, Valid: true},
		PriceLevel:     sql.NullInt64{Int64: 2, Valid: true},
		OpeningHours:   sql.NullString{String: "11:00-14:00", Valid: true},
		Photos:         []byte(`["https://example.com/a.jpg"]`),
		DistanceMeters: sql.NullFloat64{Float64: 321.5, Valid: true},
	}

	r, err := row.toRestaurant(now)
	require.NoError(t, err)
	assert.Equal(t, 31.2304, r.Latitude)
	assert.Equal(t, 121.4737, r.Longitude)
	assert.Equal(t, "021-23456789", r.GetPhone())
	assert.Equal(t, 2, r.PriceLevel)
	assert.True(t, r.IsOpen)
	assert.Equal(t, []string{"https://example.com/a.jpg"}, r.Photos)
	require.NotNil(t, r.Distance)
	assert.Equal(t, 321.5, *r.Distance)
}

func TestRestaurantRow_ToRestaurant_NullColumns(t *testing.T) {
	row := restaurantRow{
		ID:       "p2",
		Name:     "无名小店",
		Location: `{"type":"Point","coordinates":[116.4074,39.9042]}`,
		Category: "中餐厅",
	}

	r, err := row.toRestaurant(time.Now())
	require.NoError(t, err)
	assert.Nil(t, r.Phone)
	assert.Nil(t, r.OpeningHours)
	assert.Nil(t, r.Distance)
	assert.Equal(t, model.MinPriceLevel, r.PriceLevel)
	assert.True(t, r.IsOpen)
	assert.Empty(t, r.Photos)
}

func TestRestaurantRow_ToRestaurant_InvalidLocation(t *testing.T) {
	row := restaurantRow{ID: "p3", Location: "invalid"}
	_, err := row.toRestaurant(time.Now())
	assert.Error(t, err)
}
