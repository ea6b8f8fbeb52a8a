// Package pages は固定データのユーザー・記事一覧ページを提供します。
// 認証は不要で、テンプレートをレンダリングするだけの薄い層です。
package pages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// User は一覧ページに表示するユーザーです。
type User struct {
	ID    int
	Name  string
	Email string
}

// Article は一覧ページに表示する記事です。
type Article struct {
	ID      int
	Title   string
	Content string
}

// Catalog は一覧ページ用の固定データを保持します。
type Catalog struct {
	users    []User
	articles []Article
}

// NewCatalog はデモ用の固定データを持つ Catalog を作成します。
func NewCatalog() *Catalog {
	return &Catalog{
		users: []User{
			{ID: 1, Name: "John Doe", Email: "john.doe@example.com"},
			{ID: 2, Name: "Jane Doe", Email: "jane.doe@example.com"},
			{ID: 3, Name: "Doe John", Email: "doe.john@example.com"},
		},
		articles: []Article{
			{ID: 1, Title: "Article 1", Content: "Content of article 1"},
			{ID: 2, Title: "Article 2", Content: "Content of article 2"},
			{ID: 3, Title: "Article 3", Content: "Content of article 3"},
		},
	}
}

// ListUsers は GET /users のハンドラーです。
func (cat *Catalog) ListUsers(c *gin.Context) {
	c.HTML(http.StatusOK, "users.html", gin.H{
		"users": cat.users,
	})
}

// ShowUser は GET /users/:id のハンドラーです。
// 該当IDがない場合は404ページを返します。
func (cat *Catalog) ShowUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}
	for _, u := range cat.users {
		if u.ID == id {
			c.HTML(http.StatusOK, "user.html", gin.H{"user": u})
			return
		}
	}
	renderNotFound(c)
}

// ListArticles は GET /articles のハンドラーです。
func (cat *Catalog) ListArticles(c *gin.Context) {
	c.HTML(http.StatusOK, "articles.html", gin.H{
		"articles": cat.articles,
	})
}

// ShowArticle は GET /articles/:id のハンドラーです。
func (cat *Catalog) ShowArticle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderNotFound(c)
		return
	}
	for _, a := range cat.articles {
		if a.ID == id {
			c.HTML(http.StatusOK, "article.html", gin.H{"article": a})
			return
		}
	}
	renderNotFound(c)
}

func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
}
