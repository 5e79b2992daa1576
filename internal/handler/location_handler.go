package handler

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/usecase"
)

// LocationHandler 現在地推定のハンドラー
type LocationHandler struct {
	locationUseCase usecase.LocationUseCase
}

func NewLocationHandler(locationUseCase usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{
		locationUseCase: locationUseCase,
	}
}

// GetLocationByIP GET /location/ip?ip=
// ipが未指定の場合は接続元IPを使う（プライベートアドレスなら推定サービス側の判定に任せる）
func (h *LocationHandler) GetLocationByIP(c *gin.Context) {
	ip := c.Query("ip")
	if ip != "" && net.ParseIP(ip) == nil {
		respondValidationError(c, &ValidationError{Field: "ip", Message: "IPアドレスの形式が正しくありません"})
		return
	}
	if ip == "" {
		ip = publicClientIP(c)
	}

	c.JSON(http.StatusOK, h.locationUseCase.Locate(c.Request.Context(), ip))
}

func publicClientIP(c *gin.Context) string {
	addr := net.ParseIP(c.ClientIP())
	if addr == nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() {
		return ""
	}
	return addr.String()
}
