package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenCookieName はBearerトークンを運ぶクッキー名です。
	TokenCookieName = "authToken"

	tokenTTL = time.Hour
)

// ContextClaimsKey は、トークン検証済みクレームをコンテキストで共有するためのキーです。
// セッション側の ContextUserKey とは別物で、両者を混用してはいけません。
const ContextClaimsKey = "auth.claims"

// ErrTokenInvalid は署名不正または期限切れのトークンに対して返されます。
var ErrTokenInvalid = errors.New("token is invalid or expired")

// Claims はBearerトークンに載せるクレームです。
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// Verifier はセッションとは独立したステートレスなトークン検証器です。
type Verifier struct {
	secret []byte
}

// NewVerifier は Verifier を作成します。
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Issue は署名済みトークン文字列を発行します。
func (v *Verifier) Issue(userID int, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: userID,
		Name:   name,
	})

	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify はトークン文字列を検証し、クレームを返します。
// サーバー側の状態は参照しません。
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// RequireToken はクッキーのBearerトークンを検証するミドルウェアを返します。
// セッションは一切参照しません。
func (v *Verifier) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "TOKEN_MISSING",
				"message": "Доступ заборонено. Токен відсутній.",
			})
			return
		}

		claims, err := v.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "TOKEN_INVALID",
				"message": "Недійсний або прострочений токен.",
			})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// TokenClaims はコンテキストから検証済みクレームを取り出します。
func TokenClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// IssueToken はログイン済みアカウントに対してトークンクッキーを発行するハンドラーです。
// 発行にはセッションを使うが、検証側(RequireToken)はセッションを参照しない。
func (v *Verifier) IssueToken(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Доступ заборонено. Необхідна авторизація.",
		})
		return
	}

	tokenString, err := v.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Не вдалося створити токен",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, tokenString, int(tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Токен створено",
	})
}
