package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type postServiceEnv struct {
	svc      *PostService
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	admin    Actor
	author   Actor
	author2  Actor
}

func newPostServiceEnv(t *testing.T, name string) *postServiceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	env := &postServiceEnv{
		svc:      NewPostService(postRepo, userRepo, nil),
		userRepo: userRepo,
		postRepo: postRepo,
	}

	users := []struct {
		username string
		role     string
		actor    *Actor
	}{
		{"boss", constants.RoleAdmin, &env.admin},
		{"writer-one", constants.RoleAuthor, &env.author},
		{"writer-two", constants.RoleAuthor, &env.author2},
	}
	for _, item := range users {
		user := &models.User{
			Username:     item.username,
			Email:        item.username + "@test.local",
			PasswordHash: "x",
			DisplayName:  item.username,
			Role:         item.role,
			Status:       constants.UserStatusActive,
		}
		if err := userRepo.Create(user); err != nil {
			t.Fatalf("create user %s failed: %v", item.username, err)
		}
		*item.actor = Actor{ID: user.ID, Role: item.role}
	}
	return env
}

func TestCreatePostGeneratesSlugFromTitle(t *testing.T) {
	env := newPostServiceEnv(t, "postslug")

	post, err := env.svc.Create(CreatePostInput{
		Title:    "Blackjack 101",
		Category: constants.PostCategoryStrategies,
	}, env.author)
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.Slug != "blackjack-101" {
		t.Fatalf("slug want blackjack-101 got %s", post.Slug)
	}
	if post.Status != constants.PostStatusDraft {
		t.Fatalf("default status want draft got %s", post.Status)
	}
	if post.AuthorName != "writer-one" {
		t.Fatalf("author name want writer-one got %s", post.AuthorName)
	}

	// 同标题自动追加序号
	second, err := env.svc.Create(CreatePostInput{
		Title:    "Blackjack 101",
		Category: constants.PostCategoryStrategies,
	}, env.author)
	if err != nil {
		t.Fatalf("create second post failed: %v", err)
	}
	if second.Slug != "blackjack-101-2" {
		t.Fatalf("slug want blackjack-101-2 got %s", second.Slug)
	}
}

func TestCreatePostExplicitSlugConflict(t *testing.T) {
	env := newPostServiceEnv(t, "postconflict")

	if _, err := env.svc.Create(CreatePostInput{
		Slug:     "roulette-odds",
		Title:    "Roulette Odds",
		Category: constants.PostCategoryGameGuides,
	}, env.author); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	_, err := env.svc.Create(CreatePostInput{
		Slug:     "roulette-odds",
		Title:    "Another Roulette Post",
		Category: constants.PostCategoryGameGuides,
	}, env.author)
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists got %v", err)
	}
}

func TestCreatePostValidation(t *testing.T) {
	env := newPostServiceEnv(t, "postvalidate")

	_, err := env.svc.Create(CreatePostInput{
		Title:    "",
		Category: "not-a-category",
	}, env.admin)
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("want validation error got %v", err)
	}
	if _, exists := verr.Fields["title"]; !exists {
		t.Fatalf("expected title field error, got %v", verr.Fields)
	}
	if _, exists := verr.Fields["category"]; !exists {
		t.Fatalf("expected category field error, got %v", verr.Fields)
	}

	// 非后台角色不能创建
	_, err = env.svc.Create(CreatePostInput{
		Title:    "Helpful Guide",
		Category: constants.PostCategoryGameGuides,
	}, Actor{ID: 999, Role: constants.RolePlayer})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("player create want ErrForbidden got %v", err)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	if got := estimateReadingTime(""); got != 0 {
		t.Fatalf("empty content want 0 got %d", got)
	}
	if got := estimateReadingTime("short content"); got != 1 {
		t.Fatalf("short content want 1 got %d", got)
	}
	long := strings.Repeat("word ", 401)
	if got := estimateReadingTime(long); got != 3 {
		t.Fatalf("401 words want 3 got %d", got)
	}
}

func TestPublicListOnlyPublished(t *testing.T) {
	env := newPostServiceEnv(t, "postpublic")

	if _, err := env.svc.Create(CreatePostInput{
		Title:    "Draft Only",
		Category: constants.PostCategoryPromotions,
	}, env.author); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	if _, err := env.svc.Create(CreatePostInput{
		Title:    "Live Promo",
		Category: constants.PostCategoryPromotions,
		Status:   constants.PostStatusPublished,
	}, env.author); err != nil {
		t.Fatalf("create published failed: %v", err)
	}

	posts, total, err := env.svc.ListPublic(PostListInput{Page: 1, PageSize: 10, Status: constants.PostStatusDraft})
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(posts) != 1 {
		t.Fatalf("public list want 1 published got total=%d len=%d", total, len(posts))
	}
	if posts[0].Slug != "live-promo" {
		t.Fatalf("public list want live-promo got %s", posts[0].Slug)
	}

	// 草稿详情对公开接口不可见
	if _, err := env.svc.GetPublicBySlug("draft-only"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft detail want ErrNotFound got %v", err)
	}
}

func TestPublishedAtSetOnce(t *testing.T) {
	env := newPostServiceEnv(t, "postpubonce")

	post, err := env.svc.Create(CreatePostInput{
		Title:    "Publish Me",
		Category: constants.PostCategoryIndustryNews,
		Status:   constants.PostStatusPublished,
	}, env.admin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatalf("published post should have published_at")
	}
	firstPublished := *post.PublishedAt

	if _, err := env.svc.SetStatus(post.ID, constants.PostStatusArchived, env.admin); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	republished, err := env.svc.SetStatus(post.ID, constants.PostStatusPublished, env.admin)
	if err != nil {
		t.Fatalf("republish failed: %v", err)
	}
	if republished.PublishedAt == nil || !republished.PublishedAt.Equal(firstPublished) {
		t.Fatalf("published_at should keep first value, want %v got %v", firstPublished, republished.PublishedAt)
	}
}

func TestAuthorOwnershipScope(t *testing.T) {
	env := newPostServiceEnv(t, "postowner")

	mine, err := env.svc.Create(CreatePostInput{
		Title:    "My Post",
		Category: constants.PostCategoryWinnerStories,
	}, env.author)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 其他作者无权修改
	_, err = env.svc.Update(mine.ID, CreatePostInput{
		Title:    "Hijacked",
		Category: constants.PostCategoryWinnerStories,
	}, env.author2)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("other author update want ErrForbidden got %v", err)
	}
	if err := env.svc.Delete(mine.ID, env.author2); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other author delete want ErrForbidden got %v", err)
	}

	// 管理员可以修改任何文章
	if _, err := env.svc.Update(mine.ID, CreatePostInput{
		Title:    "Edited By Admin",
		Category: constants.PostCategoryWinnerStories,
	}, env.admin); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	// 后台列表按作者过滤
	if _, err := env.svc.Create(CreatePostInput{
		Title:    "Another Author Post",
		Category: constants.PostCategoryWinnerStories,
	}, env.author2); err != nil {
		t.Fatalf("create by author2 failed: %v", err)
	}
	posts, total, err := env.svc.ListAdmin(PostListInput{Page: 1, PageSize: 10}, env.author)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || len(posts) != 1 || posts[0].AuthorID != env.author.ID {
		t.Fatalf("author admin list should only contain own posts, total=%d", total)
	}
	_, adminTotal, err := env.svc.ListAdmin(PostListInput{Page: 1, PageSize: 10}, env.admin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if adminTotal != 2 {
		t.Fatalf("admin list want 2 got %d", adminTotal)
	}
}

func TestBulkSetStatusPartialFailure(t *testing.T) {
	env := newPostServiceEnv(t, "postbulk")

	first, err := env.svc.Create(CreatePostInput{
		Title:    "Bulk One",
		Category: constants.PostCategoryStrategies,
	}, env.author)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, err := env.svc.Create(CreatePostInput{
		Title:    "Bulk Other",
		Category: constants.PostCategoryStrategies,
	}, env.author2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := env.svc.BulkSetStatus([]uint{first.ID, other.ID, 9999}, constants.PostStatusPublished, env.author)
	if err != nil {
		t.Fatalf("bulk set status failed: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("updated want 1 got %d", result.Updated)
	}
	if len(result.Failed) != 2 {
		t.Fatalf("failed want 2 entries got %v", result.Failed)
	}
	if _, exists := result.Failed[other.ID]; !exists {
		t.Fatalf("other author post should be in failed map")
	}
	if _, exists := result.Failed[9999]; !exists {
		t.Fatalf("missing post should be in failed map")
	}
}

func TestLikeAndShareCounters(t *testing.T) {
	env := newPostServiceEnv(t, "postcounter")

	post, err := env.svc.Create(CreatePostInput{
		Title:    "Counter Post",
		Category: constants.PostCategoryGameGuides,
		Status:   constants.PostStatusPublished,
	}, env.admin)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	liked, err := env.svc.Like(post.ID)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if liked.LikeCount != 1 {
		t.Fatalf("like count want 1 got %d", liked.LikeCount)
	}

	shared, err := env.svc.Share(post.ID)
	if err != nil {
		t.Fatalf("share failed: %v", err)
	}
	if shared.ShareCount != 1 {
		t.Fatalf("share count want 1 got %d", shared.ShareCount)
	}

	if err := env.svc.IncrementView(post.ID); err != nil {
		t.Fatalf("increment view failed: %v", err)
	}
	viewed, err := env.svc.GetByID(post.ID, env.admin)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if viewed.ViewCount != 1 {
		t.Fatalf("view count want 1 got %d", viewed.ViewCount)
	}

	if _, err := env.svc.Like(404404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("like missing post want ErrNotFound got %v", err)
	}
}

func TestCreatePostMetaDefaults(t *testing.T) {
	env := newPostServiceEnv(t, "postmeta")

	longTitle := strings.Repeat("High Roller ", 10) // 120 字符
	post, err := env.svc.Create(CreatePostInput{
		Title:    longTitle,
		Excerpt:  "A short excerpt about table limits.",
		Category: constants.PostCategoryStrategies,
		Tags:     []string{" Poker ", "", "VIP", "poker"},
		Keywords: "  poker, vip tables  ",
	}, env.author)
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if got := len([]rune(post.MetaTitle)); got != 60 {
		t.Fatalf("meta title should truncate to 60 runes, got %d", got)
	}
	if post.MetaDescription != "A short excerpt about table limits." {
		t.Fatalf("meta description want excerpt got %q", post.MetaDescription)
	}
	if post.Keywords != "poker, vip tables" {
		t.Fatalf("keywords should be trimmed, got %q", post.Keywords)
	}
	want := []string{"poker", "vip", "poker"}
	if len(post.Tags) != len(want) {
		t.Fatalf("tags want %v got %v", want, post.Tags)
	}
	for i, tag := range want {
		if post.Tags[i] != tag {
			t.Fatalf("tag %d want %s got %s", i, tag, post.Tags[i])
		}
	}

	// 显式提供 SEO 字段时原样保留
	explicit, err := env.svc.Create(CreatePostInput{
		Title:           "Short Title",
		Category:        constants.PostCategoryStrategies,
		MetaTitle:       "Custom SEO Title",
		MetaDescription: "Custom SEO description.",
	}, env.author)
	if err != nil {
		t.Fatalf("create explicit post failed: %v", err)
	}
	if explicit.MetaTitle != "Custom SEO Title" || explicit.MetaDescription != "Custom SEO description." {
		t.Fatalf("explicit meta fields should survive, got %q / %q", explicit.MetaTitle, explicit.MetaDescription)
	}
}

func TestCreatePostStickyFlag(t *testing.T) {
	env := newPostServiceEnv(t, "poststicky")

	sticky := true
	post, err := env.svc.Create(CreatePostInput{
		Title:    "House Announcement",
		Category: constants.PostCategoryIndustryNews,
		Status:   constants.PostStatusPublished,
		IsSticky: &sticky,
	}, env.admin)
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if !post.IsSticky {
		t.Fatalf("post should be sticky")
	}

	unsticky := false
	updated, err := env.svc.Update(post.ID, CreatePostInput{
		Title:    post.Title,
		Category: post.Category,
		IsSticky: &unsticky,
	}, env.admin)
	if err != nil {
		t.Fatalf("update post failed: %v", err)
	}
	if updated.IsSticky {
		t.Fatalf("post should no longer be sticky")
	}
}

func TestBuildListFilterNormalizesTags(t *testing.T) {
	filter := BuildListFilter(PostListInput{
		Page:     1,
		PageSize: 10,
		Tags:     []string{"  Poker ", "", "Slots"},
		Search:   "  jackpot ",
	}, false)

	if !filter.OnlyPublished {
		t.Fatalf("non-staff filter must be published-only")
	}
	if len(filter.Tags) != 2 || filter.Tags[0] != "poker" || filter.Tags[1] != "slots" {
		t.Fatalf("tags want [poker slots] got %v", filter.Tags)
	}
	if filter.Search != "jackpot" {
		t.Fatalf("search should be trimmed, got %q", filter.Search)
	}

	staff := BuildListFilter(PostListInput{Page: 1, PageSize: 10, Status: constants.PostStatusDraft}, true)
	if staff.OnlyPublished || staff.Status != constants.PostStatusDraft {
		t.Fatalf("staff filter should honor status, got %+v", staff)
	}
}

func TestTrendingFilterSortsByViews(t *testing.T) {
	env := newPostServiceEnv(t, "posttrending")

	older := time.Now().AddDate(0, 0, -7)
	newer := time.Now().Add(-time.Hour)
	posts := []*models.Post{
		{
			Title:       "Older But Hot",
			Slug:        "older-but-hot",
			Category:    constants.PostCategoryStrategies,
			Status:      constants.PostStatusPublished,
			PublishedAt: &older,
			IsTrending:  true,
			ViewCount:   5,
			AuthorID:    env.author.ID,
		},
		{
			Title:       "Newer But Cold",
			Slug:        "newer-but-cold",
			Category:    constants.PostCategoryStrategies,
			Status:      constants.PostStatusPublished,
			PublishedAt: &newer,
			IsTrending:  true,
			AuthorID:    env.author.ID,
		},
	}
	for _, post := range posts {
		if err := env.postRepo.Create(post); err != nil {
			t.Fatalf("create post %s failed: %v", post.Slug, err)
		}
	}

	trending := true
	got, _, err := env.svc.ListPublic(PostListInput{Page: 1, PageSize: 10, Trending: &trending})
	if err != nil {
		t.Fatalf("list trending failed: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "older-but-hot" {
		t.Fatalf("trending filter should rank by views, got %v", got[0].Slug)
	}

	// 显式排序优先于热门默认排序
	got, _, err = env.svc.ListPublic(PostListInput{Page: 1, PageSize: 10, Trending: &trending, Sort: "created_at"})
	if err != nil {
		t.Fatalf("list trending with sort failed: %v", err)
	}
	if got[0].Slug != "newer-but-cold" {
		t.Fatalf("explicit sort should win, got %v", got[0].Slug)
	}
}

// vanishingPostRepo 模拟计数成功后文章已被删除的竞态
type vanishingPostRepo struct {
	repository.PostRepository
}

func (r vanishingPostRepo) IncrementLikeCount(id uint) (bool, error)  { return true, nil }
func (r vanishingPostRepo) IncrementShareCount(id uint) (bool, error) { return true, nil }
func (r vanishingPostRepo) GetByID(id uint) (*models.Post, error)     { return nil, nil }

func TestLikeDeletedDuringReload(t *testing.T) {
	env := newPostServiceEnv(t, "postvanish")
	svc := NewPostService(vanishingPostRepo{env.postRepo}, env.userRepo, nil)

	if _, err := svc.Like(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("like on vanished post want ErrNotFound got %v", err)
	}
	if _, err := svc.Share(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("share on vanished post want ErrNotFound got %v", err)
	}
}
