package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的数值主键。
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "ID 参数无效", nil)
		return 0, false
	}
	return uint(id), true
}

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// parseTagsQuery 解析标签参数，tags 为逗号分隔列表，tag 单值兼容。
func parseTagsQuery(c *gin.Context) []string {
	raw := strings.TrimSpace(c.Query("tags"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("tag"))
	}
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// parsePageQuery 解析分页参数，page_size 缺省时接受 limit 别名。
func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	raw := strings.TrimSpace(c.Query("page_size"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("limit"))
	}
	pageSize, _ := strconv.Atoi(raw)
	return normalizePagination(page, pageSize)
}

// PostRequest 文章创建/更新请求
type PostRequest struct {
	Slug            string     `json:"slug"`
	Title           string     `json:"title" binding:"required"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	Category        string     `json:"category" binding:"required"`
	Tags            []string   `json:"tags"`
	Thumbnail       string     `json:"thumbnail"`
	Status          string     `json:"status"`
	IsFeatured      *bool      `json:"is_featured"`
	IsTrending      *bool      `json:"is_trending"`
	IsSticky        *bool      `json:"is_sticky"`
	ScheduledFor    *time.Time `json:"scheduled_for"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	Keywords        string     `json:"keywords"`
}

func (r PostRequest) toInput() service.CreatePostInput {
	return service.CreatePostInput{
		Slug:            r.Slug,
		Title:           r.Title,
		Excerpt:         r.Excerpt,
		Content:         r.Content,
		Category:        r.Category,
		Tags:            r.Tags,
		Thumbnail:       r.Thumbnail,
		Status:          r.Status,
		IsFeatured:      r.IsFeatured,
		IsTrending:      r.IsTrending,
		IsSticky:        r.IsSticky,
		ScheduledFor:    r.ScheduledFor,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
	}
}

// GetPosts 后台文章列表，作者角色仅能看到自己的文章
func (h *Handler) GetPosts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, pageSize := parsePageQuery(c)

	input := service.PostListInput{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Tags:     parseTagsQuery(c),
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Featured: parseBoolQuery(c, "featured"),
		Trending: parseBoolQuery(c, "trending"),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}
	rawAuthor := strings.TrimSpace(c.Query("author_id"))
	if rawAuthor == "" {
		rawAuthor = strings.TrimSpace(c.Query("author"))
	}
	if authorID, err := strconv.ParseUint(rawAuthor, 10, 64); err == nil {
		input.AuthorID = uint(authorID)
	}

	posts, total, err := h.PostService.ListAdmin(input, actor)
	if err != nil {
		respondError(c, response.CodeInternal, "获取文章列表失败", err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPost 后台文章详情
func (h *Handler) GetPost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetByID(id, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	post, err := h.PostService.Create(req.toInput(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	post, err := h.PostService.Update(id, req.toInput(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// PostStatusRequest 文章状态变更请求
type PostStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePostStatus 变更文章状态
func (h *Handler) UpdatePostStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	post, err := h.PostService.SetStatus(id, req.Status, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostService.Delete(id, actor); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// BulkPostStatusRequest 批量状态变更请求
type BulkPostStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status string `json:"status" binding:"required"`
}

// BulkUpdatePostStatus 批量变更文章状态，逐条执行并返回失败明细
func (h *Handler) BulkUpdatePostStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req BulkPostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	result, err := h.PostService.BulkSetStatus(req.IDs, req.Status, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// BulkPostDeleteRequest 批量删除请求
type BulkPostDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BulkDeletePosts 批量删除文章
func (h *Handler) BulkDeletePosts(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req BulkPostDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	result, err := h.PostService.BulkDelete(req.IDs, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
