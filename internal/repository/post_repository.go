package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"

	"gorm.io/gorm"
)

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, int64, error)
	GetBySlug(slug string, onlyPublished bool) (*models.Post, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	IncrementViewCount(id uint) error
	IncrementLikeCount(id uint) (bool, error)
	IncrementShareCount(id uint) (bool, error)
	ListRelated(postID uint, category string, limit int) ([]models.Post, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, int64, error) {
	if filter.PageSize <= 0 {
		return nil, 0, ErrInvalidPageSize
	}

	var posts []models.Post
	query := r.db.Model(&models.Post{})

	if filter.OnlyPublished {
		// 对外只暴露已发布且发布时间不在未来的文章
		query = query.Where("status = ?", constants.PostStatusPublished).
			Where("published_at <= ?", time.Now())
	} else if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AuthorID > 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Trending != nil {
		query = query.Where("is_trending = ?", *filter.Trending)
	}
	if filter.PublishedAfter != nil {
		query = query.Where("published_at >= ?", *filter.PublishedAfter)
	}
	if filter.ExcludeID > 0 {
		query = query.Where("id != ?", filter.ExcludeID)
	}
	if len(filter.Tags) > 0 {
		// 标签集合相交：命中任意一个标签即可
		conditions := make([]string, 0, len(filter.Tags))
		args := make([]interface{}, 0, len(filter.Tags))
		for _, tag := range filter.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			condition, arg := jsonArrayContainsCondition(r.db, "tags", tag)
			conditions = append(conditions, condition)
			args = append(args, arg)
		}
		if len(conditions) > 0 {
			query = query.Where(strings.Join(conditions, " OR "), args...)
		}
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchLikeCondition(r.db, []string{"title", "excerpt", "content", jsonTextColumn(r.db, "tags")})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	query = applyPostSort(query, filter.Sort)
	if filter.OmitContent {
		// 列表视图不携带正文
		query = query.Omit("content")
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// applyPostSort 应用排序方式，未知取值回退到最新发布。
func applyPostSort(query *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case constants.PostSortPopular:
		return query.Order("view_count DESC, published_at DESC")
	case constants.PostSortTrending:
		return query.Order("view_count DESC, like_count DESC, published_at DESC")
	case "created_at":
		return query.Order("created_at DESC")
	default:
		// latest 与 relevance 均按发布时间倒序，LIKE 检索没有相关度得分；置顶文章排在最前
		return query.Order("is_sticky DESC, published_at DESC, created_at DESC")
	}
}

// GetBySlug 根据 slug 获取文章
func (r *GormPostRepository) GetBySlug(slug string, onlyPublished bool) (*models.Post, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyPublished {
		query = query.Where("status = ?", constants.PostStatusPublished).
			Where("published_at <= ?", time.Now())
	}

	var post models.Post
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID 根据 ID 获取文章
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete 删除文章（物理删除）
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Post{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormPostRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementViewCount 原子累加浏览数
func (r *GormPostRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementLikeCount 原子累加点赞数，返回是否命中记录
func (r *GormPostRepository) IncrementLikeCount(id uint) (bool, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementShareCount 原子累加分享数，返回是否命中记录
func (r *GormPostRepository) IncrementShareCount(id uint) (bool, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("share_count", gorm.Expr("share_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListRelated 同分类相关文章
func (r *GormPostRepository) ListRelated(postID uint, category string, limit int) ([]models.Post, error) {
	var posts []models.Post
	if limit <= 0 {
		limit = 4
	}
	err := r.db.Model(&models.Post{}).
		Where("status = ?", constants.PostStatusPublished).
		Where("published_at <= ?", time.Now()).
		Where("category = ?", category).
		Where("id != ?", postID).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
