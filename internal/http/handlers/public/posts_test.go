package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luckyace-next/internal/config"
	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/provider"
	"github.com/luckyace-next/internal/repository"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPublicPostHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_post_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)

	cfg := &config.Config{}
	cfg.Content.RelatedPostsLimit = 3

	h := New(&provider.Container{
		Config:      cfg,
		PostService: service.NewPostService(postRepo, userRepo, nil),
	})
	return h, db
}

func seedPublicPosts(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	posts := []models.Post{
		{
			Title:       "Blackjack Basic Strategy",
			Slug:        "blackjack-basic-strategy",
			Content:     "stand on seventeen",
			Category:    "strategy",
			Status:      constants.PostStatusPublished,
			PublishedAt: &now,
		},
		{
			Title:       "Roulette Table Layout",
			Slug:        "roulette-table-layout",
			Content:     "inside and outside bets",
			Category:    "strategy",
			Status:      constants.PostStatusPublished,
			PublishedAt: &now,
		},
		{
			Title:    "Unfinished Draft",
			Slug:     "unfinished-draft",
			Content:  "not ready",
			Category: "strategy",
			Status:   constants.PostStatusDraft,
		},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			t.Fatalf("seed post failed: %v", err)
		}
	}
}

func TestPublicGetPostsHidesDrafts(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/posts?page=1&page_size=10", nil)

	h.GetPosts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int                      `json:"status_code"`
		Data       []map[string]interface{} `json:"data"`
		Pagination struct {
			Total     int64 `json:"total"`
			TotalPage int64 `json:"total_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Total != 2 || resp.Pagination.TotalPage != 1 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	for _, row := range resp.Data {
		if row["slug"] == "unfinished-draft" {
			t.Fatal("draft must not appear in public list")
		}
	}
}

func TestPublicGetPostBySlug(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/posts/blackjack-basic-strategy", nil)
	c.Params = gin.Params{{Key: "slug", Value: "blackjack-basic-strategy"}}

	h.GetPostBySlug(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Post    map[string]interface{}   `json:"post"`
			Related []map[string]interface{} `json:"related"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Data.Post["slug"] != "blackjack-basic-strategy" {
		t.Fatalf("unexpected post payload: %+v", resp.Data.Post)
	}
	if len(resp.Data.Related) != 1 || resp.Data.Related[0]["slug"] != "roulette-table-layout" {
		t.Fatalf("unexpected related posts: %+v", resp.Data.Related)
	}
}

func TestPublicGetPostBySlugNotFound(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	for _, slug := range []string{"missing-post", "unfinished-draft"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/public/posts/"+slug, nil)
		c.Params = gin.Params{{Key: "slug", Value: slug}}

		h.GetPostBySlug(c)

		if w.Code != http.StatusNotFound {
			t.Fatalf("slug %s: status want 404 got %d", slug, w.Code)
		}
	}
}

func TestPublicLikePost(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/public/posts/blackjack-basic-strategy/like", nil)
	c.Params = gin.Params{{Key: "slug", Value: "blackjack-basic-strategy"}}

	h.LikePost(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			LikeCount int64 `json:"like_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Data.LikeCount != 1 {
		t.Fatalf("like_count want 1 got %d", resp.Data.LikeCount)
	}
}

func TestPublicSharePostByID(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	var post models.Post
	if err := db.Where("slug = ?", "roulette-table-layout").First(&post).Error; err != nil {
		t.Fatalf("load post failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/public/posts/%d/share", post.ID), nil)
	c.Params = gin.Params{{Key: "slug", Value: fmt.Sprintf("%d", post.ID)}}

	h.SharePost(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			ShareCount int64 `json:"share_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Data.ShareCount != 1 {
		t.Fatalf("share_count want 1 got %d", resp.Data.ShareCount)
	}
}

func TestPublicGetPostsAdminSeesDrafts(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	seedPublicPosts(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/posts?status=draft", nil)
	c.Set("user_id", uint(1))
	c.Set("user_role", constants.RoleAdmin)

	h.GetPosts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		Data       []models.Post `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.Pagination.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Slug != "unfinished-draft" {
		t.Fatalf("admin status filter want the draft, got total=%d", resp.Pagination.Total)
	}
}
