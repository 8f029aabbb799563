package queue

import (
	"encoding/json"

	"github.com/luckyace-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPostView 文章浏览计数任务
	TaskPostView = constants.TaskPostView
)

// PostViewPayload 文章浏览计数任务载荷
type PostViewPayload struct {
	PostID uint `json:"post_id"`
}

// NewPostViewTask 创建文章浏览计数任务
func NewPostViewTask(payload PostViewPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPostView, body), nil
}
