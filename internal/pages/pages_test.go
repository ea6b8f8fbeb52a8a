package pages

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.html")

	catalog := NewCatalog()
	router.GET("/users", catalog.ListUsers)
	router.GET("/users/:id", catalog.ShowUser)
	router.GET("/articles", catalog.ListArticles)
	router.GET("/articles/:id", catalog.ShowArticle)
	router.POST("/set-theme", SetTheme)
	router.GET("/get-theme", GetTheme)
	return router
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListUsers(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/users")
	if rec.Code != http.StatusOK {
		t.Fatalf("users returned %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"John Doe", "Jane Doe", "Doe John"} {
		if !strings.Contains(body, name) {
			t.Fatalf("users page is missing %q:\n%s", name, body)
		}
	}
}

func TestShowUser(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/users/2")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "jane.doe@example.com") {
		t.Fatalf("user page: %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestShowUserNotFound(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/users/42", "/users/abc"} {
		rec := get(t, router, path)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s returned %d, want 404", path, rec.Code)
		}
	}
}

func TestShowArticle(t *testing.T) {
	router := newTestRouter(t)

	rec := get(t, router, "/articles/2")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Content of article 2") {
		t.Fatalf("article page: %d\n%s", rec.Code, rec.Body.String())
	}

	rec = get(t, router, "/articles/99")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown article returned %d, want 404", rec.Code)
	}
}

func TestSetTheme(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Post("/set-theme").
		JSON(`{"theme":"dark"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.theme", "dark")).
		End()
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	router := newTestRouter(t)

	apitest.New().
		Handler(router).
		Post("/set-theme").
		JSON(`{"theme":"solarized"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Assert(jsonpath.Equal("$.code", "INVALID_INPUT")).
		End()
}

func TestGetTheme(t *testing.T) {
	router := newTestRouter(t)

	// クッキーなしはデフォルト値
	apitest.New().
		Handler(router).
		Get("/get-theme").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.theme", "auto")).
		End()

	apitest.New().
		Handler(router).
		Get("/get-theme").
		Cookies(apitest.NewCookie(ThemeCookieName).Value("light")).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.theme", "light")).
		End()
}

func TestSetThemeCookieAttributes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/set-theme", strings.NewReader(`{"theme":"light"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == ThemeCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("set-theme did not set the theme cookie")
	}
	if cookie.HttpOnly {
		t.Fatal("theme cookie must stay readable from the frontend")
	}
	if cookie.MaxAge != int(themeTTL.Seconds()) {
		t.Fatalf("theme cookie MaxAge = %d, want %d", cookie.MaxAge, int(themeTTL.Seconds()))
	}
}
