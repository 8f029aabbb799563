package public

import (
	"strconv"
	"strings"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// parseBoolQuery 解析可选布尔查询参数，缺省返回 nil。
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

// GetPosts 获取已发布文章列表。
// 携带后台凭证的管理员可通过 status 参数查看任意状态的文章。
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)

	input := service.PostListInput{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Tags:     parseTagsQuery(c),
		Search:   strings.TrimSpace(c.Query("search")),
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

	var (
		posts []models.Post
		total int64
		err   error
	)
	if c.GetString("user_role") == constants.RoleAdmin {
		input.Status = strings.TrimSpace(c.Query("status"))
		actor := service.Actor{ID: c.GetUint("user_id"), Role: constants.RoleAdmin}
		posts, total, err = h.PostService.ListAdmin(input, actor)
	} else {
		posts, total, err = h.PostService.ListPublic(input)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "获取文章列表失败", err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetPostBySlug 获取文章详情
// 访问计数异步累加，相关文章一并返回。
func (h *Handler) GetPostBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	post, err := h.PostService.GetPublicBySlug(slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.PostService.RegisterView(post.ID)

	related, err := h.PostService.ListRelated(slug, h.Config.Content.RelatedPostsLimit)
	if err != nil {
		requestLog(c).Warnw("list_related_posts_failed", "slug", slug, "error", err)
		related = nil
	}

	response.Success(c, gin.H{
		"post":    post,
		"related": related,
	})
}

// resolvePostID 将路径参数解析为文章 ID，纯数字按 ID 处理，否则按 slug 查询。
func (h *Handler) resolvePostID(c *gin.Context) (uint, error) {
	ref := strings.TrimSpace(c.Param("slug"))
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil && id > 0 {
		return uint(id), nil
	}
	post, err := h.PostService.GetPublicBySlug(ref)
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// LikePost 点赞文章
func (h *Handler) LikePost(c *gin.Context) {
	postID, err := h.resolvePostID(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := h.PostService.Like(postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"like_count": updated.LikeCount})
}

// SharePost 记录文章分享
func (h *Handler) SharePost(c *gin.Context) {
	postID, err := h.resolvePostID(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := h.PostService.Share(postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"share_count": updated.ShareCount})
}
