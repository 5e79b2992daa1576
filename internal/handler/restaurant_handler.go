package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/usecase"
)

// RestaurantHandler 店舗検索に関するHTTPハンドラー
type RestaurantHandler struct {
	restaurantUseCase usecase.RestaurantUseCase
}

func NewRestaurantHandler(restaurantUseCase usecase.RestaurantUseCase) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantUseCase: restaurantUseCase,
	}
}

// GetNearby GET /restaurants/nearby?lat=&lng=&radius=&keywords=&types=050100,050200
func (h *RestaurantHandler) GetNearby(c *gin.Context) {
	params, err := parseSearchParams(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	restaurants, err := h.restaurantUseCase.SearchNearby(c.Request.Context(), params)
	if err != nil {
		respondError(c, "周辺店舗の検索に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

func parseSearchParams(c *gin.Context) (model.SearchParams, error) {
	var params model.SearchParams

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return params, &ValidationError{Field: "lat", Message: "緯度を数値で指定してください"}
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return params, &ValidationError{Field: "lng", Message: "経度を数値で指定してください"}
	}
	if err := validateCoordinates("location", lat, lng); err != nil {
		return params, err
	}
	params.Location = model.LatLng{Lat: lat, Lng: lng}

	if v := c.Query("radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil || radius <= 0 || radius > 50000 {
			return params, &ValidationError{Field: "radius", Message: "半径は1〜50000メートルで指定してください"}
		}
		params.Radius = radius
	}

	params.Keywords = strings.TrimSpace(c.Query("keywords"))
	if v := c.Query("types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				params.Types = append(params.Types, t)
			}
		}
	}
	return params, nil
}

// GetRestaurant GET /restaurants/:id
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantUseCase.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "店舗が見つかりません", err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}
