// Package logutil は zerolog ベースのロガー生成とリクエストログを提供します。
package logutil

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader はレスポンスに載せるリクエストIDヘッダーです。
const RequestIDHeader = "X-Request-Id"

// New はアプリケーション全体で使うロガーを作成します。
// debugモードでは人が読みやすいコンソール出力にします。
func New(mode string) zerolog.Logger {
	if mode == gin.DebugMode {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// RequestLogger はリクエスト毎に構造化ログを出力するミドルウェアを返します。
// 各リクエストにはUUIDを割り当て、レスポンスヘッダーでも返します。
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header(RequestIDHeader, requestID)

		c.Next()

		logger.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
