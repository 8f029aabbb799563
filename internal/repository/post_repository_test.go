package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newPostRepo(t *testing.T, name string) PostRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		t.Fatalf("auto migrate post failed: %v", err)
	}
	return NewPostRepository(db)
}

func publishedPost(slug, title, category string, tags []string, daysAgo int, views uint64) *models.Post {
	publishedAt := time.Now().AddDate(0, 0, -daysAgo)
	return &models.Post{
		Slug:        slug,
		Title:       title,
		Category:    category,
		Tags:        models.StringArray(tags),
		Status:      constants.PostStatusPublished,
		PublishedAt: &publishedAt,
		ViewCount:   views,
		AuthorID:    1,
	}
}

func TestPostListFilterByTag(t *testing.T) {
	repo := newPostRepo(t, "repotag")

	posts := []*models.Post{
		publishedPost("poker-tells", "Poker Tells", constants.PostCategoryStrategies, []string{"poker", "psychology"}, 1, 5),
		publishedPost("slots-volatility", "Slots Volatility", constants.PostCategoryGameGuides, []string{"slots"}, 2, 9),
		publishedPost("poker-bankroll", "Poker Bankroll", constants.PostCategoryStrategies, []string{"poker", "bankroll"}, 3, 2),
	}
	for _, post := range posts {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create post %s failed: %v", post.Slug, err)
		}
	}

	got, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Tags: []string{"poker"}, OnlyPublished: true})
	if err != nil {
		t.Fatalf("list by tag failed: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("tag filter want 2 got total=%d len=%d", total, len(got))
	}
	for _, post := range got {
		if !post.Tags.Contains("poker") {
			t.Fatalf("post %s should carry poker tag", post.Slug)
		}
	}

	_, total, err = repo.List(PostListFilter{Page: 1, PageSize: 10, Tags: []string{"baccarat"}, OnlyPublished: true})
	if err != nil {
		t.Fatalf("list by missing tag failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("missing tag want 0 got %d", total)
	}
}

func TestPostListSearch(t *testing.T) {
	repo := newPostRepo(t, "reposearch")

	first := publishedPost("win-big", "How To Win Big", constants.PostCategoryStrategies, nil, 1, 0)
	first.Excerpt = "bankroll management basics"
	second := publishedPost("free-spins-guide", "Free Spins Guide", constants.PostCategoryPromotions, nil, 2, 0)
	second.Content = "everything about bonus wagering"
	for _, post := range []*models.Post{first, second} {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	_, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "bankroll", OnlyPublished: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("excerpt search want 1 got %d", total)
	}

	_, total, err = repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "wagering", OnlyPublished: true})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("content search want 1 got %d", total)
	}
}

func TestPostListSortAndPagination(t *testing.T) {
	repo := newPostRepo(t, "reposort")

	seed := []struct {
		slug    string
		daysAgo int
		views   uint64
	}{
		{"first", 5, 10},
		{"second", 3, 50},
		{"third", 1, 20},
	}
	for _, item := range seed {
		if err := repo.Create(publishedPost(item.slug, item.slug, constants.PostCategoryStrategies, nil, item.daysAgo, item.views)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	latest, _, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true, Sort: constants.PostSortLatest})
	if err != nil {
		t.Fatalf("latest sort failed: %v", err)
	}
	if latest[0].Slug != "third" {
		t.Fatalf("latest first want third got %s", latest[0].Slug)
	}

	popular, _, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true, Sort: constants.PostSortPopular})
	if err != nil {
		t.Fatalf("popular sort failed: %v", err)
	}
	if popular[0].Slug != "second" {
		t.Fatalf("popular first want second got %s", popular[0].Slug)
	}

	paged, total, err := repo.List(PostListFilter{Page: 2, PageSize: 2, OnlyPublished: true, Sort: constants.PostSortLatest})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(paged) != 1 {
		t.Fatalf("page 2 size 2 want 1 item got %d", len(paged))
	}
}

func TestPostCountBySlugExcludesID(t *testing.T) {
	repo := newPostRepo(t, "reposlugcount")

	post := publishedPost("dup-check", "Dup Check", constants.PostCategoryStrategies, nil, 1, 0)
	if err := repo.Create(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, err := repo.CountBySlug("dup-check", 0)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("dup-check", post.ID)
	if err != nil {
		t.Fatalf("count with exclude failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count excluding self want 0 got %d", count)
	}
}

func TestIncrementCountersOnMissingPost(t *testing.T) {
	repo := newPostRepo(t, "repocounters")

	ok, err := repo.IncrementLikeCount(12345)
	if err != nil {
		t.Fatalf("increment like failed: %v", err)
	}
	if ok {
		t.Fatalf("increment like on missing post should report false")
	}

	post := publishedPost("counter", "Counter", constants.PostCategoryStrategies, nil, 1, 0)
	if err := repo.Create(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	ok, err = repo.IncrementShareCount(post.ID)
	if err != nil {
		t.Fatalf("increment share failed: %v", err)
	}
	if !ok {
		t.Fatalf("increment share should report true")
	}
	stored, err := repo.GetByID(post.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ShareCount != 1 {
		t.Fatalf("share count want 1 got %d", stored.ShareCount)
	}
}

func TestListRelatedSameCategory(t *testing.T) {
	repo := newPostRepo(t, "reporelated")

	anchor := publishedPost("anchor", "Anchor", constants.PostCategoryGameGuides, nil, 1, 0)
	if err := repo.Create(anchor); err != nil {
		t.Fatalf("create anchor failed: %v", err)
	}
	for _, item := range []struct {
		slug     string
		category string
		status   string
	}{
		{"related-one", constants.PostCategoryGameGuides, constants.PostStatusPublished},
		{"related-two", constants.PostCategoryGameGuides, constants.PostStatusPublished},
		{"other-category", constants.PostCategoryPromotions, constants.PostStatusPublished},
		{"related-draft", constants.PostCategoryGameGuides, constants.PostStatusDraft},
	} {
		post := publishedPost(item.slug, item.slug, item.category, nil, 2, 0)
		post.Status = item.status
		if item.status != constants.PostStatusPublished {
			post.PublishedAt = nil
		}
		if err := repo.Create(post); err != nil {
			t.Fatalf("create %s failed: %v", item.slug, err)
		}
	}

	related, err := repo.ListRelated(anchor.ID, constants.PostCategoryGameGuides, 4)
	if err != nil {
		t.Fatalf("list related failed: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("related want 2 got %d", len(related))
	}
	for _, post := range related {
		if post.ID == anchor.ID {
			t.Fatalf("related should exclude anchor post")
		}
		if post.Category != constants.PostCategoryGameGuides {
			t.Fatalf("related should share category, got %s", post.Category)
		}
	}
}

func TestPostListMultiTagUnion(t *testing.T) {
	repo := newPostRepo(t, "repomultitag")

	for _, post := range []*models.Post{
		publishedPost("poker-basics", "Poker Basics", constants.PostCategoryStrategies, []string{"poker"}, 1, 0),
		publishedPost("slots-rtp", "Slots RTP", constants.PostCategoryGameGuides, []string{"slots", "rtp"}, 2, 0),
		publishedPost("craps-table", "Craps Table", constants.PostCategoryGameGuides, []string{"craps"}, 3, 0),
	} {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create post %s failed: %v", post.Slug, err)
		}
	}

	// 多个标签以并集匹配，命中任一即返回
	_, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Tags: []string{"poker", "rtp"}, OnlyPublished: true})
	if err != nil {
		t.Fatalf("list by tags failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("multi tag want 2 got %d", total)
	}
}

func TestPostListHidesFuturePublishedAt(t *testing.T) {
	repo := newPostRepo(t, "repofuture")

	live := publishedPost("live-now", "Live Now", constants.PostCategoryIndustryNews, nil, 1, 0)
	scheduled := publishedPost("goes-live-tomorrow", "Goes Live Tomorrow", constants.PostCategoryIndustryNews, nil, 0, 0)
	future := time.Now().Add(24 * time.Hour)
	scheduled.PublishedAt = &future
	for _, post := range []*models.Post{live, scheduled} {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create post %s failed: %v", post.Slug, err)
		}
	}

	got, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || got[0].Slug != "live-now" {
		t.Fatalf("future post should be hidden, got total=%d", total)
	}

	if post, err := repo.GetBySlug("goes-live-tomorrow", true); err != nil || post != nil {
		t.Fatalf("future post should not resolve publicly, post=%v err=%v", post, err)
	}

	// 后台视角不受发布时间限制
	_, total, err = repo.List(PostListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("admin list want 2 got %d", total)
	}
}

func TestPostListStickyFirst(t *testing.T) {
	repo := newPostRepo(t, "reposticky")

	fresh := publishedPost("fresh-news", "Fresh News", constants.PostCategoryIndustryNews, nil, 1, 100)
	pinned := publishedPost("pinned-announcement", "Pinned Announcement", constants.PostCategoryIndustryNews, nil, 10, 1)
	pinned.IsSticky = true
	for _, post := range []*models.Post{fresh, pinned} {
		if err := repo.Create(post); err != nil {
			t.Fatalf("create post %s failed: %v", post.Slug, err)
		}
	}

	got, _, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "pinned-announcement" {
		t.Fatalf("sticky post should sort first, got %+v", postSlugs(got))
	}

	// 显式排序时不强插置顶
	got, _, err = repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true, Sort: constants.PostSortPopular})
	if err != nil {
		t.Fatalf("list with sort failed: %v", err)
	}
	if got[0].Slug != "fresh-news" {
		t.Fatalf("popular sort should rank by views, got %+v", postSlugs(got))
	}
}

func postSlugs(posts []models.Post) []string {
	slugs := make([]string, 0, len(posts))
	for _, post := range posts {
		slugs = append(slugs, post.Slug)
	}
	return slugs
}

func TestPostListRejectsNonPositivePageSize(t *testing.T) {
	repo := newPostRepo(t, "repopagesize")

	for _, pageSize := range []int{0, -5} {
		if _, _, err := repo.List(PostListFilter{Page: 1, PageSize: pageSize}); !errors.Is(err, ErrInvalidPageSize) {
			t.Fatalf("page size %d want ErrInvalidPageSize got %v", pageSize, err)
		}
	}
}
