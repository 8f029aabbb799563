package service

import (
	"strings"
	"time"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/queue"
	"github.com/luckyace-next/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	repo        repository.PostRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository, userRepo repository.UserRepository, queueClient *queue.Client) *PostService {
	return &PostService{
		repo:        repo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// Actor 当前操作者
type Actor struct {
	ID   uint
	Role string
}

// IsStaff 判断操作者是否属于后台角色
func (a Actor) IsStaff() bool {
	return constants.IsStaffRole(a.Role)
}

// canManagePost 判断操作者能否管理指定文章（作者仅能管理自己的）
func (a Actor) canManagePost(post *models.Post) bool {
	switch a.Role {
	case constants.RoleAdmin, constants.RoleModerator:
		return true
	case constants.RoleAuthor:
		return post.AuthorID == a.ID
	default:
		return false
	}
}

// PostListInput 文章列表查询输入
type PostListInput struct {
	Page     int
	PageSize int
	Category string
	Tags     []string
	AuthorID uint
	Search   string
	Status   string
	Featured *bool
	Trending *bool
	Sort     string
}

// normalizeTags 过滤空白标签并统一小写
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		normalized = append(normalized, tag)
	}
	return normalized
}

// BuildListFilter 将查询输入转换为仓库过滤条件。
// 非后台调用强制只返回已发布文章，忽略 Status 参数。
// 无副作用，相同输入总是产出相同过滤条件。
func BuildListFilter(input PostListInput, isStaff bool) repository.PostListFilter {
	filter := repository.PostListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Category: input.Category,
		Tags:     normalizeTags(input.Tags),
		AuthorID: input.AuthorID,
		Search:   strings.TrimSpace(input.Search),
		Featured: input.Featured,
		Trending: input.Trending,
		Sort:     input.Sort,
	}
	// 热门过滤未指定排序时按浏览量倒序
	if filter.Sort == "" && input.Trending != nil && *input.Trending {
		filter.Sort = constants.PostSortTrending
	}
	if isStaff {
		filter.Status = input.Status
	} else {
		filter.OnlyPublished = true
		filter.OmitContent = true
	}
	return filter
}

// ListPublic 获取公开文章列表
func (s *PostService) ListPublic(input PostListInput) ([]models.Post, int64, error) {
	return s.repo.List(BuildListFilter(input, false))
}

// ListAdmin 获取后台文章列表
func (s *PostService) ListAdmin(input PostListInput, actor Actor) ([]models.Post, int64, error) {
	filter := BuildListFilter(input, true)
	// 作者只能看到自己的文章
	if actor.Role == constants.RoleAuthor {
		filter.AuthorID = actor.ID
	}
	return s.repo.List(filter)
}

// GetPublicBySlug 获取公开文章详情
func (s *PostService) GetPublicBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetByID 获取文章（后台）
func (s *PostService) GetByID(id uint, actor Actor) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !actor.canManagePost(post) {
		return nil, ErrForbidden
	}
	return post, nil
}

// ListRelated 同分类相关文章
func (s *PostService) ListRelated(slug string, limit int) ([]models.Post, error) {
	post, err := s.GetPublicBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRelated(post.ID, post.Category, limit)
}

// CreatePostInput 创建/更新文章输入
type CreatePostInput struct {
	Slug            string
	Title           string
	Excerpt         string
	Content         string
	Category        string
	Tags            []string
	Keywords        string
	Thumbnail       string
	Status          string
	IsFeatured      *bool
	IsTrending      *bool
	IsSticky        *bool
	ScheduledFor    *time.Time
	MetaTitle       string
	MetaDescription string
}

// validatePostInput 校验文章字段，返回字段级错误
func validatePostInput(input CreatePostInput) map[string]string {
	fields := map[string]string{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields["title"] = "标题不能为空"
	} else if len([]rune(title)) > 200 {
		fields["title"] = "标题不能超过 200 个字符"
	}
	if len([]rune(input.Excerpt)) > 500 {
		fields["excerpt"] = "摘要不能超过 500 个字符"
	}
	if input.Category == "" || !constants.IsValidPostCategory(input.Category) {
		fields["category"] = "分类取值非法"
	}
	if input.Status != "" &&
		input.Status != constants.PostStatusDraft &&
		input.Status != constants.PostStatusPublished &&
		input.Status != constants.PostStatusArchived {
		fields["status"] = "状态取值非法"
	}
	if len([]rune(input.MetaTitle)) > 60 {
		fields["meta_title"] = "SEO 标题不能超过 60 个字符"
	}
	if len([]rune(input.MetaDescription)) > 160 {
		fields["meta_description"] = "SEO 描述不能超过 160 个字符"
	}
	return fields
}

// truncateRunes 按字符数截断
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// defaultMeta 未显式设置 SEO 字段时从标题/摘要截取
func defaultMeta(metaTitle, metaDescription, title, excerpt string) (string, string) {
	if strings.TrimSpace(metaTitle) == "" {
		metaTitle = truncateRunes(strings.TrimSpace(title), 60)
	}
	if strings.TrimSpace(metaDescription) == "" {
		metaDescription = truncateRunes(strings.TrimSpace(excerpt), 160)
	}
	return metaTitle, metaDescription
}

// estimateReadingTime 按每分钟词数估算阅读时长，非空内容至少 1 分钟
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	minutes := (words + constants.ReadingWordsPerMinute - 1) / constants.ReadingWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Create 创建文章
func (s *PostService) Create(input CreatePostInput, actor Actor) (*models.Post, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if fields := validatePostInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		// 省略 slug 时从标题生成，冲突自动追加序号
		generated, err := uniqueSlug(Slugify(input.Title), func(candidate string) (bool, error) {
			count, err := s.repo.CountBySlug(candidate, 0)
			return count > 0, err
		})
		if err != nil {
			return nil, err
		}
		slug = generated
	} else {
		count, err := s.repo.CountBySlug(slug, 0)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
	}

	status := input.Status
	if status == "" {
		status = constants.PostStatusDraft
	}

	metaTitle, metaDescription := defaultMeta(input.MetaTitle, input.MetaDescription, input.Title, input.Excerpt)
	post := models.Post{
		Slug:            slug,
		Title:           strings.TrimSpace(input.Title),
		Excerpt:         input.Excerpt,
		Content:         input.Content,
		Category:        input.Category,
		Tags:            models.StringArray(normalizeTags(input.Tags)),
		Keywords:        strings.TrimSpace(input.Keywords),
		Thumbnail:       input.Thumbnail,
		Status:          status,
		ScheduledFor:    input.ScheduledFor,
		ReadingTime:     estimateReadingTime(input.Content),
		MetaTitle:       metaTitle,
		MetaDescription: metaDescription,
		AuthorID:        actor.ID,
	}
	if input.IsFeatured != nil {
		post.IsFeatured = *input.IsFeatured
	}
	if input.IsTrending != nil {
		post.IsTrending = *input.IsTrending
	}
	if input.IsSticky != nil {
		post.IsSticky = *input.IsSticky
	}
	if status == constants.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}
	if author, err := s.userRepo.GetByID(actor.ID); err == nil && author != nil {
		post.AuthorName = authorDisplayName(author)
	}

	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 更新文章
func (s *PostService) Update(id uint, input CreatePostInput, actor Actor) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !actor.canManagePost(post) {
		return nil, ErrForbidden
	}
	if fields := validatePostInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = post.Slug
	}
	count, err := s.repo.CountBySlug(slug, post.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	metaTitle, metaDescription := defaultMeta(input.MetaTitle, input.MetaDescription, input.Title, input.Excerpt)
	post.Slug = slug
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = input.Excerpt
	post.Content = input.Content
	post.Category = input.Category
	post.Tags = models.StringArray(normalizeTags(input.Tags))
	post.Keywords = strings.TrimSpace(input.Keywords)
	post.Thumbnail = input.Thumbnail
	post.ScheduledFor = input.ScheduledFor
	post.ReadingTime = estimateReadingTime(input.Content)
	post.MetaTitle = metaTitle
	post.MetaDescription = metaDescription
	if input.IsFeatured != nil {
		post.IsFeatured = *input.IsFeatured
	}
	if input.IsTrending != nil {
		post.IsTrending = *input.IsTrending
	}
	if input.IsSticky != nil {
		post.IsSticky = *input.IsSticky
	}
	if input.Status != "" {
		applyStatus(post, input.Status)
	}

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// applyStatus 变更文章状态，首次发布时间只写一次
func applyStatus(post *models.Post, status string) {
	post.Status = status
	if status == constants.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
}

// SetStatus 变更文章状态
func (s *PostService) SetStatus(id uint, status string, actor Actor) (*models.Post, error) {
	if status != constants.PostStatusDraft &&
		status != constants.PostStatusPublished &&
		status != constants.PostStatusArchived {
		return nil, NewValidationError(map[string]string{"status": "状态取值非法"})
	}
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !actor.canManagePost(post) {
		return nil, ErrForbidden
	}
	applyStatus(post, status)
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章
func (s *PostService) Delete(id uint, actor Actor) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if !actor.canManagePost(post) {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// BulkResult 批量操作结果
type BulkResult struct {
	Updated int             `json:"updated"`
	Failed  map[uint]string `json:"failed,omitempty"`
}

// BulkSetStatus 批量变更状态，逐条执行，单条失败不影响其余
func (s *PostService) BulkSetStatus(ids []uint, status string, actor Actor) (*BulkResult, error) {
	if status != constants.PostStatusDraft &&
		status != constants.PostStatusPublished &&
		status != constants.PostStatusArchived {
		return nil, NewValidationError(map[string]string{"status": "状态取值非法"})
	}
	result := &BulkResult{Failed: map[uint]string{}}
	for _, id := range ids {
		if _, err := s.SetStatus(id, status, actor); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Updated++
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// BulkDelete 批量删除，逐条执行，单条失败不影响其余
func (s *PostService) BulkDelete(ids []uint, actor Actor) (*BulkResult, error) {
	result := &BulkResult{Failed: map[uint]string{}}
	for _, id := range ids {
		if err := s.Delete(id, actor); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Updated++
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// RegisterView 记录一次浏览。
// 结果不影响请求，优先走异步队列，队列不可用时退化为后台直写。
func (s *PostService) RegisterView(postID uint) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueuePostView(postID)
		if err == nil {
			return
		}
		logger.Warnw("post_view_enqueue_failed", "post_id", postID, "error", err)
	}
	go func() {
		if err := s.repo.IncrementViewCount(postID); err != nil {
			logger.Warnw("post_view_increment_failed", "post_id", postID, "error", err)
		}
	}()
}

// IncrementView 直接累加浏览数（队列消费方调用）
func (s *PostService) IncrementView(postID uint) error {
	return s.repo.IncrementViewCount(postID)
}

// Like 点赞并返回最新计数
func (s *PostService) Like(postID uint) (*models.Post, error) {
	ok, err := s.repo.IncrementLikeCount(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.reloadPost(postID)
}

// Share 记分享并返回最新计数
func (s *PostService) Share(postID uint) (*models.Post, error) {
	ok, err := s.repo.IncrementShareCount(postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.reloadPost(postID)
}

// reloadPost 计数更新后回读，期间被删除按未找到处理
func (s *PostService) reloadPost(postID uint) (*models.Post, error) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func authorDisplayName(user *models.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Username
}
