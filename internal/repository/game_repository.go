package repository

import (
	"errors"
	"strings"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"

	"gorm.io/gorm"
)

// GameRepository 游戏数据访问接口
type GameRepository interface {
	List(filter GameListFilter) ([]models.Game, int64, error)
	GetBySlug(slug string, onlyActive bool) (*models.Game, error)
	GetByID(id uint) (*models.Game, error)
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	IncrementPlayCount(id uint) (bool, error)
	CountByStatus() (map[string]int64, error)
}

// GormGameRepository GORM 实现
type GormGameRepository struct {
	db *gorm.DB
}

// NewGameRepository 创建游戏仓库
func NewGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// List 游戏列表
func (r *GormGameRepository) List(filter GameListFilter) ([]models.Game, int64, error) {
	var games []models.Game
	query := r.db.Model(&models.Game{})

	if filter.OnlyActive {
		query = query.Where("status = ?", constants.GameStatusActive)
	} else if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchLikeCondition(r.db, []string{"name", "provider", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	switch filter.Sort {
	case "popular":
		query = query.Order("play_count DESC, id DESC")
	case "name":
		query = query.Order("name ASC")
	default:
		query = query.Order("is_featured DESC, created_at DESC")
	}

	if err := query.Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// GetBySlug 根据 slug 获取游戏
func (r *GormGameRepository) GetBySlug(slug string, onlyActive bool) (*models.Game, error) {
	query := r.db.Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("status = ?", constants.GameStatusActive)
	}

	var game models.Game
	if err := query.First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

// GetByID 根据 ID 获取游戏
func (r *GormGameRepository) GetByID(id uint) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &game, nil
}

// Create 创建游戏
func (r *GormGameRepository) Create(game *models.Game) error {
	return r.db.Create(game).Error
}

// Update 更新游戏
func (r *GormGameRepository) Update(game *models.Game) error {
	return r.db.Save(game).Error
}

// Delete 删除游戏
func (r *GormGameRepository) Delete(id uint) error {
	return r.db.Delete(&models.Game{}, id).Error
}

// CountBySlug 统计 slug 数量
func (r *GormGameRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Game{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementPlayCount 原子累加试玩次数，返回是否命中记录
func (r *GormGameRepository) IncrementPlayCount(id uint) (bool, error) {
	result := r.db.Model(&models.Game{}).
		Where("id = ?", id).
		UpdateColumn("play_count", gorm.Expr("play_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus 按状态统计游戏数量
func (r *GormGameRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Game{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] = item.Count
	}
	return counts, nil
}
