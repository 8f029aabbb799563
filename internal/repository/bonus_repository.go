package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/luckyace-next/internal/models"

	"gorm.io/gorm"
)

// BonusRepository 红利活动数据访问接口
type BonusRepository interface {
	List(filter BonusListFilter) ([]models.Bonus, int64, error)
	GetByID(id uint) (*models.Bonus, error)
	GetByCode(code string) (*models.Bonus, error)
	Create(bonus *models.Bonus) error
	Update(bonus *models.Bonus) error
	Delete(id uint) error
	CountByCode(code string, excludeID uint) (int64, error)
	IncrementClaimCount(id uint) (bool, error)
}

// GormBonusRepository GORM 实现
type GormBonusRepository struct {
	db *gorm.DB
}

// NewBonusRepository 创建红利活动仓库
func NewBonusRepository(db *gorm.DB) *GormBonusRepository {
	return &GormBonusRepository{db: db}
}

// List 红利活动列表
func (r *GormBonusRepository) List(filter BonusListFilter) ([]models.Bonus, int64, error) {
	var bonuses []models.Bonus
	query := r.db.Model(&models.Bonus{})

	if filter.BonusType != "" {
		query = query.Where("bonus_type = ?", filter.BonusType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.OnlyLive {
		now := time.Now()
		query = query.Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", now).
			Where("ends_at IS NULL OR ends_at >= ?", now)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchLikeCondition(r.db, []string{"title", "code", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order ASC, created_at DESC").Find(&bonuses).Error; err != nil {
		return nil, 0, err
	}
	return bonuses, total, nil
}

// GetByID 根据 ID 获取红利活动
func (r *GormBonusRepository) GetByID(id uint) (*models.Bonus, error) {
	var bonus models.Bonus
	if err := r.db.First(&bonus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bonus, nil
}

// GetByCode 根据领取代码获取红利活动
func (r *GormBonusRepository) GetByCode(code string) (*models.Bonus, error) {
	var bonus models.Bonus
	if err := r.db.Where("code = ?", code).First(&bonus).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bonus, nil
}

// Create 创建红利活动
func (r *GormBonusRepository) Create(bonus *models.Bonus) error {
	return r.db.Create(bonus).Error
}

// Update 更新红利活动
func (r *GormBonusRepository) Update(bonus *models.Bonus) error {
	return r.db.Save(bonus).Error
}

// Delete 删除红利活动
func (r *GormBonusRepository) Delete(id uint) error {
	return r.db.Delete(&models.Bonus{}, id).Error
}

// CountByCode 统计领取代码数量
func (r *GormBonusRepository) CountByCode(code string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Bonus{}).Where("code = ?", code)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementClaimCount 原子累加领取次数，返回是否命中记录
func (r *GormBonusRepository) IncrementClaimCount(id uint) (bool, error) {
	result := r.db.Model(&models.Bonus{}).
		Where("id = ?", id).
		UpdateColumn("claim_count", gorm.Expr("claim_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
