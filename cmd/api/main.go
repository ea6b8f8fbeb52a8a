// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/newsroom/internal/auth"
	"github.com/yourusername/newsroom/internal/config"
	"github.com/yourusername/newsroom/internal/logutil"
	"github.com/yourusername/newsroom/internal/pages"
	"github.com/yourusername/newsroom/internal/store"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		fallback := logutil.New(gin.ReleaseMode)
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logutil.New(cfg.GinMode)

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logutil.RequestLogger(logger))

	// セッションストアの設定。
	// セッション本体はサーバー側(メモリ)に置き、クッキーには不透明なIDだけを載せる。
	sessionStore := memstore.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true

	router.Use(cors.New(corsConfig))

	// 一覧ページ用テンプレート
	router.LoadHTMLGlob("web/templates/*.html")

	// アカウントストアはここで一度だけ生成し、各層に注入する
	accounts := store.New()
	setupRoutes(router, cfg, accounts)

	// サーバーの起動
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("mode", cfg.GinMode).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "newsroom-api",
		"version": "0.1.0",
	})
}

// handleProtected はセッション保護されたエンドポイントのハンドラーです。
func handleProtected(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Це захищений маршрут",
		"user":    user,
	})
}

// handleProfile はトークン保護されたエンドポイントのハンドラーです。
// ここで得られるのはトークンのクレームであり、セッションのアカウントとは別物です。
func handleProfile(c *gin.Context) {
	claims, _ := auth.TokenClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Профіль користувача",
		"profile": gin.H{
			"id":   claims.UserID,
			"name": claims.Name,
		},
	})
}

// setupRoutes は認証・一覧・テーマ周りの配線を行います。
func setupRoutes(router *gin.Engine, cfg *config.Config, accounts *store.Store) {
	router.GET("/health", handleHealth)

	authManager := auth.NewManager(cfg, accounts)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	// 認証フロー。登録とログインはログイン済みクライアントには開放しない
	router.POST("/register", authManager.RejectLoggedIn(), authManager.Register)
	router.POST("/login", authManager.RejectLoggedIn(), authManager.Login)
	router.POST("/logout", authManager.Logout)
	router.GET("/auth-status", authManager.AuthStatus)

	// セッション保護とトークン保護は独立した仕組みとして配線する
	router.GET("/protected", authManager.RequireLogin(), handleProtected)
	router.GET("/profile", verifier.RequireToken(), handleProfile)
	router.POST("/token", authManager.RequireLogin(), verifier.IssueToken)

	// テーマ設定
	router.POST("/set-theme", pages.SetTheme)
	router.GET("/get-theme", pages.GetTheme)

	// 固定データの一覧ページ（認証不要）
	catalog := pages.NewCatalog()
	router.GET("/users", catalog.ListUsers)
	router.GET("/users/:id", catalog.ShowUser)
	router.GET("/articles", catalog.ListArticles)
	router.GET("/articles/:id", catalog.ShowArticle)
}
