// Package auth は認証・認可機能を提供します。
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/newsroom/internal/config"
	"github.com/yourusername/newsroom/internal/store"
)

const (
	SessionCookieName  = "nr_session"
	sessionKeyAccount  = "account_id"
	sessionKeyIssuedAt = "issued_at"
)

var sessionLifetime = 24 * time.Hour

// SessionMaxAgeSeconds はクッキーの MaxAge に利用する秒数を返します。
func SessionMaxAgeSeconds() int {
	return int(sessionLifetime.Seconds())
}

// ContextUserKey は、ハンドラー間でログイン済みアカウント(SafeView)を共有するためのキーです。
const ContextUserKey = "auth.user"

// errInvalidCredentials はメール不明・パスワード不一致のどちらでも返す共通エラーです。
// どちらが誤っていたかをクライアントに区別させないため、メッセージは一種類だけにします。
var errInvalidCredentials = errors.New("invalid credentials")

// Manager は認証処理と依存をまとめた構造体です。
type Manager struct {
	cfg   *config.Config
	store *store.Store
}

// NewManager は認証マネージャーを作成します。
// アカウントストアは呼び出し側（main）が生成して注入します。
func NewManager(cfg *config.Config, accounts *store.Store) *Manager {
	return &Manager{
		cfg:   cfg,
		store: accounts,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register は POST /register のハンドラーです。
func (m *Manager) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "Поля username, email та password є обов'язковими",
		})
		return
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(req.Password), m.cfg.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Внутрішня помилка сервера",
		})
		return
	}

	account, err := m.store.Insert(req.Username, req.Email, digest)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    "DUPLICATE_EMAIL",
				"message": "Користувач з таким email вже існує",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Внутрішня помилка сервера",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Користувача зареєстровано",
		"user":    account.SafeView(),
	})
}

// Login は POST /login のハンドラーです。
func (m *Manager) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "Поля email та password є обов'язковими",
		})
		return
	}

	account, err := m.authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "INVALID_CREDENTIALS",
			"message": "Невірний email або пароль",
		})
		return
	}

	// セッションにはアカウントIDのみを保存する。
	// リクエスト毎にストアから最新のアカウントを引き直す。
	// ログイン前のセッションIDは引き継がず、保存時に新しいIDを採番させる。
	session := sessions.Default(c)
	session.Clear()
	resetSessionID(session)
	session.Set(sessionKeyAccount, account.ID)
	session.Set(sessionKeyIssuedAt, time.Now().Unix())
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "SESSION_SAVE_FAILED",
			"message": "Не вдалося зберегти сесію",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Вхід виконано успішно",
		"user":    account.SafeView(),
	})
}

// Logout は POST /logout のハンドラーです。
// セッション破棄の失敗は認証エラーとは別物として 500 を返します。
func (m *Manager) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "SESSION_SAVE_FAILED",
			"message": "Не вдалося завершити сесію",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Вихід виконано успішно",
	})
}

// AuthStatus は GET /auth-status のハンドラーです。
// 認証状態に関わらず常に 200 を返します。
func (m *Manager) AuthStatus(c *gin.Context) {
	user, ok := m.resolveAccount(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
	})
}

// resetSessionID はセッションIDを空にし、次の Save で新しいIDを採番させます。
func resetSessionID(s sessions.Session) {
	if w, ok := s.(interface{ Session() *gsessions.Session }); ok {
		w.Session().ID = ""
	}
}

// authenticate はメールアドレスとパスワードを検証します。
// メール不明とパスワード不一致は呼び出し側で区別できません。
func (m *Manager) authenticate(email, password string) (store.Account, error) {
	account, ok := m.store.FindByEmail(email)
	if !ok {
		return store.Account{}, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordDigest, []byte(password)); err != nil {
		return store.Account{}, errInvalidCredentials
	}
	return account, nil
}
