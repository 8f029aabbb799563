package service

import (
	"strings"
	"time"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/repository"
)

// BonusService 红利活动业务服务
type BonusService struct {
	repo repository.BonusRepository
}

// NewBonusService 创建红利活动服务
func NewBonusService(repo repository.BonusRepository) *BonusService {
	return &BonusService{repo: repo}
}

// BonusListInput 红利活动列表查询输入
type BonusListInput struct {
	Page      int
	PageSize  int
	BonusType string
	Search    string
	IsActive  *bool
}

// ListPublic 获取当前有效的红利活动
func (s *BonusService) ListPublic(input BonusListInput) ([]models.Bonus, int64, error) {
	return s.repo.List(repository.BonusListFilter{
		Page:      input.Page,
		PageSize:  input.PageSize,
		BonusType: input.BonusType,
		OnlyLive:  true,
	})
}

// ListAdmin 获取后台红利活动列表
func (s *BonusService) ListAdmin(input BonusListInput) ([]models.Bonus, int64, error) {
	return s.repo.List(repository.BonusListFilter{
		Page:      input.Page,
		PageSize:  input.PageSize,
		BonusType: input.BonusType,
		Search:    strings.TrimSpace(input.Search),
		IsActive:  input.IsActive,
	})
}

// GetByID 获取红利活动
func (s *BonusService) GetByID(id uint) (*models.Bonus, error) {
	bonus, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrNotFound
	}
	return bonus, nil
}

// GetPublicByCode 按领取代码获取当前有效的红利活动
func (s *BonusService) GetPublicByCode(code string) (*models.Bonus, error) {
	bonus, err := s.repo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if bonus == nil || !bonus.IsLiveAt(time.Now()) {
		return nil, ErrNotFound
	}
	return bonus, nil
}

// CreateBonusInput 创建/更新红利活动输入
type CreateBonusInput struct {
	Code                string
	Title               string
	Description         string
	BonusType           string
	Amount              *models.Money
	Percentage          *int
	MinDeposit          *models.Money
	MaxCashout          *models.Money
	WageringRequirement *int
	Terms               string
	StartsAt            *time.Time
	EndsAt              *time.Time
	IsActive            *bool
	SortOrder           *int
}

func validateBonusInput(input CreateBonusInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "标题不能为空"
	}
	if strings.TrimSpace(input.Code) == "" {
		fields["code"] = "领取代码不能为空"
	}
	if !constants.IsValidBonusType(input.BonusType) {
		fields["bonus_type"] = "红利类型取值非法"
	}
	if input.Percentage != nil && (*input.Percentage < 0 || *input.Percentage > 500) {
		fields["percentage"] = "百分比取值非法"
	}
	if input.WageringRequirement != nil && *input.WageringRequirement < 0 {
		fields["wagering_requirement"] = "流水倍数不能为负"
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		fields["ends_at"] = "失效时间不能早于生效时间"
	}
	return fields
}

// Create 创建红利活动
func (s *BonusService) Create(input CreateBonusInput) (*models.Bonus, error) {
	if fields := validateBonusInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	count, err := s.repo.CountByCode(code, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCodeExists
	}

	bonus := models.Bonus{
		Code:        code,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		BonusType:   input.BonusType,
		Terms:       input.Terms,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		IsActive:    true,
	}
	if input.Amount != nil {
		bonus.Amount = *input.Amount
	}
	if input.Percentage != nil {
		bonus.Percentage = *input.Percentage
	}
	if input.MinDeposit != nil {
		bonus.MinDeposit = *input.MinDeposit
	}
	if input.MaxCashout != nil {
		bonus.MaxCashout = *input.MaxCashout
	}
	if input.WageringRequirement != nil {
		bonus.WageringRequirement = *input.WageringRequirement
	}
	if input.IsActive != nil {
		bonus.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		bonus.SortOrder = *input.SortOrder
	}

	if err := s.repo.Create(&bonus); err != nil {
		return nil, err
	}
	return &bonus, nil
}

// Update 更新红利活动
func (s *BonusService) Update(id uint, input CreateBonusInput) (*models.Bonus, error) {
	bonus, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bonus == nil {
		return nil, ErrNotFound
	}
	if fields := validateBonusInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	count, err := s.repo.CountByCode(code, bonus.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCodeExists
	}

	bonus.Code = code
	bonus.Title = strings.TrimSpace(input.Title)
	bonus.Description = input.Description
	bonus.BonusType = input.BonusType
	bonus.Terms = input.Terms
	bonus.StartsAt = input.StartsAt
	bonus.EndsAt = input.EndsAt
	if input.Amount != nil {
		bonus.Amount = *input.Amount
	}
	if input.Percentage != nil {
		bonus.Percentage = *input.Percentage
	}
	if input.MinDeposit != nil {
		bonus.MinDeposit = *input.MinDeposit
	}
	if input.MaxCashout != nil {
		bonus.MaxCashout = *input.MaxCashout
	}
	if input.WageringRequirement != nil {
		bonus.WageringRequirement = *input.WageringRequirement
	}
	if input.IsActive != nil {
		bonus.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		bonus.SortOrder = *input.SortOrder
	}

	if err := s.repo.Update(bonus); err != nil {
		return nil, err
	}
	return bonus, nil
}

// Delete 删除红利活动
func (s *BonusService) Delete(id uint) error {
	bonus, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bonus == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// Claim 领取红利，计数加一并返回最新记录
func (s *BonusService) Claim(code string) (*models.Bonus, error) {
	bonus, err := s.GetPublicByCode(code)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.IncrementClaimCount(bonus.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(bonus.ID)
}
