package auth

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/newsroom/internal/store"
)

// resolveAccount はセッションからログイン済みアカウントを復元します。
// セッションにはアカウントIDだけが入っているため、毎回ストアから引き直します。
// 有効期限切れ、または参照先アカウントが存在しない場合はセッションを破棄して失敗を返します。
func (m *Manager) resolveAccount(c *gin.Context) (store.SafeView, bool) {
	session := sessions.Default(c)

	id, ok := session.Get(sessionKeyAccount).(int)
	if !ok || id <= 0 {
		return store.SafeView{}, false
	}

	issuedAt := readUnix(session.Get(sessionKeyIssuedAt))
	if issuedAt.IsZero() || time.Since(issuedAt) > sessionLifetime {
		session.Clear()
		_ = session.Save()
		return store.SafeView{}, false
	}

	account, found := m.store.FindByID(id)
	if !found {
		// 参照先が消えたセッションは無効として扱う
		session.Clear()
		_ = session.Save()
		return store.SafeView{}, false
	}

	return account.SafeView(), true
}

// RequireLogin はセッションを検証するミドルウェアを返します。
// 検証に成功した場合、SafeView を ContextUserKey でコンテキストに載せます。
func (m *Manager) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.resolveAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Доступ заборонено. Необхідна авторизація.",
			})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RejectLoggedIn はログイン済みクライアントを拒否するミドルウェアを返します。
// ログインと登録はセッションを持たないクライアントだけが呼べます。
func (m *Manager) RejectLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.resolveAccount(c); ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "ALREADY_AUTHENTICATED",
				"message": "Ви вже авторизовані",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser はコンテキストからログイン済みアカウントを取り出します。
func CurrentUser(c *gin.Context) (store.SafeView, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return store.SafeView{}, false
	}
	user, ok := v.(store.SafeView)
	return user, ok
}

func readUnix(v interface{}) time.Time {
	switch t := v.(type) {
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	default:
		return time.Time{}
	}
}
