package pages

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// ThemeCookieName はテーマ設定を保存するクッキー名です。
	// フロントエンドのJSから読めるよう HttpOnly にはしません。
	ThemeCookieName = "theme"

	themeTTL     = 30 * 24 * time.Hour
	defaultTheme = "auto"
)

var allowedThemes = map[string]bool{
	"light": true,
	"dark":  true,
	"auto":  true,
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SetTheme は POST /set-theme のハンドラーです。
func SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !allowedThemes[req.Theme] {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "Тема має бути однією з: light, dark, auto",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ThemeCookieName, req.Theme, int(themeTTL.Seconds()), "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"theme": req.Theme,
	})
}

// GetTheme は GET /get-theme のハンドラーです。
// クッキーが無い場合はデフォルトのテーマを返します。
func GetTheme(c *gin.Context) {
	theme, err := c.Cookie(ThemeCookieName)
	if err != nil || !allowedThemes[theme] {
		theme = defaultTheme
	}
	c.JSON(http.StatusOK, gin.H{
		"theme": theme,
	})
}
