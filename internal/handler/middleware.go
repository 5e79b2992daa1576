package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"Lunch-App/internal/logging"
)

// RequestLogger はリクエストごとにアクセスログを出力するミドルウェア
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := logging.Info()
		if c.Writer.Status() >= 500 {
			event = logging.Error()
		} else if c.Writer.Status() >= 400 {
			event = logging.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("📨 リクエスト処理")
	}
}
