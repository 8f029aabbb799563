package worker

import (
	"context"
	"encoding/json"

	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/provider"
	"github.com/luckyace-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPostView, c.handlePostView)
}

func (c *Consumer) handlePostView(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_post_view_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PostViewPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_post_view_unmarshal_failed", "error", err)
		return err
	}
	if payload.PostID == 0 {
		logger.Debugw("worker_post_view_skip_invalid_payload", "post_id", payload.PostID)
		return nil
	}
	if err := c.PostService.IncrementView(payload.PostID); err != nil {
		logger.Warnw("worker_post_view_increment_failed", "post_id", payload.PostID, "error", err)
		return err
	}
	logger.Debugw("worker_post_view_done", "post_id", payload.PostID)
	return nil
}
