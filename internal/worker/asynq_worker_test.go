package worker

import (
	"context"
	"testing"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/provider"
	"github.com/luckyace-next/internal/queue"
	"github.com/luckyace-next/internal/repository"
	"github.com/luckyace-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newViewConsumer(t *testing.T, name string) (*Consumer, repository.PostRepository) {
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

	postRepo := repository.NewPostRepository(db)
	userRepo := repository.NewUserRepository(db)
	container := &provider.Container{
		PostService: service.NewPostService(postRepo, userRepo, nil),
	}
	return NewConsumer(container), postRepo
}

func TestHandlePostViewIncrementsCounter(t *testing.T) {
	consumer, postRepo := newViewConsumer(t, "worker_post_view")

	post := &models.Post{
		Title:    "Roulette Streaks",
		Slug:     "roulette-streaks",
		Content:  "body",
		Category: "strategy",
		Status:   constants.PostStatusPublished,
	}
	if err := postRepo.Create(post); err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	task, err := queue.NewPostViewTask(queue.PostViewPayload{PostID: post.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePostView(context.Background(), task); err != nil {
		t.Fatalf("handle post view failed: %v", err)
	}

	reloaded, err := postRepo.GetByID(post.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if reloaded.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", reloaded.ViewCount)
	}
}

func TestHandlePostViewInvalidPayload(t *testing.T) {
	consumer, _ := newViewConsumer(t, "worker_post_view_bad")

	bad := asynq.NewTask(queue.TaskPostView, []byte("not-json"))
	if err := consumer.handlePostView(context.Background(), bad); err == nil {
		t.Fatal("expected unmarshal error")
	}

	zero, err := queue.NewPostViewTask(queue.PostViewPayload{PostID: 0})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePostView(context.Background(), zero); err != nil {
		t.Fatalf("zero post id should be skipped, got %v", err)
	}
}
