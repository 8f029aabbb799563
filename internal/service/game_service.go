package service

import (
	"strings"

	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/repository"
)

// GameService 游戏业务服务
type GameService struct {
	repo repository.GameRepository
}

// NewGameService 创建游戏服务
func NewGameService(repo repository.GameRepository) *GameService {
	return &GameService{repo: repo}
}

// GameListInput 游戏列表查询输入
type GameListInput struct {
	Page     int
	PageSize int
	Category string
	Provider string
	Search   string
	Status   string
	Featured *bool
	Sort     string
}

// ListPublic 获取公开游戏列表（仅 active）
func (s *GameService) ListPublic(input GameListInput) ([]models.Game, int64, error) {
	return s.repo.List(repository.GameListFilter{
		Page:       input.Page,
		PageSize:   input.PageSize,
		Category:   input.Category,
		Provider:   input.Provider,
		Search:     strings.TrimSpace(input.Search),
		OnlyActive: true,
		Featured:   input.Featured,
		Sort:       input.Sort,
	})
}

// ListAdmin 获取后台游戏列表
func (s *GameService) ListAdmin(input GameListInput) ([]models.Game, int64, error) {
	return s.repo.List(repository.GameListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Category: input.Category,
		Provider: input.Provider,
		Search:   strings.TrimSpace(input.Search),
		Status:   input.Status,
		Featured: input.Featured,
		Sort:     input.Sort,
	})
}

// GetPublicBySlug 获取公开游戏详情
func (s *GameService) GetPublicBySlug(slug string) (*models.Game, error) {
	game, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

// GetByID 获取游戏
func (s *GameService) GetByID(id uint) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

// CreateGameInput 创建/更新游戏输入
type CreateGameInput struct {
	Slug        string
	Name        string
	Category    string
	Provider    string
	Description string
	Thumbnail   string
	RTP         *models.Money
	MinBet      *models.Money
	MaxBet      *models.Money
	Features    []string
	Status      string
	IsFeatured  *bool
}

func validateGameInput(input CreateGameInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "名称不能为空"
	}
	switch input.Category {
	case constants.GameCategorySlots, constants.GameCategoryTable,
		constants.GameCategoryLive, constants.GameCategoryJackpot,
		constants.GameCategoryVideoPoker:
	default:
		fields["category"] = "分类取值非法"
	}
	if input.Status != "" &&
		input.Status != constants.GameStatusActive &&
		input.Status != constants.GameStatusMaintenance &&
		input.Status != constants.GameStatusRetired {
		fields["status"] = "状态取值非法"
	}
	if input.MinBet != nil && input.MaxBet != nil &&
		input.MinBet.GreaterThan(input.MaxBet.Decimal) {
		fields["min_bet"] = "最小投注额不能大于最大投注额"
	}
	return fields
}

// Create 创建游戏
func (s *GameService) Create(input CreateGameInput) (*models.Game, error) {
	if fields := validateGameInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		generated, err := uniqueSlug(Slugify(input.Name), func(candidate string) (bool, error) {
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
		status = constants.GameStatusActive
	}

	game := models.Game{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Provider:    input.Provider,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		Features:    models.StringArray(input.Features),
		Status:      status,
	}
	if input.RTP != nil {
		game.RTP = *input.RTP
	}
	if input.MinBet != nil {
		game.MinBet = *input.MinBet
	}
	if input.MaxBet != nil {
		game.MaxBet = *input.MaxBet
	}
	if input.IsFeatured != nil {
		game.IsFeatured = *input.IsFeatured
	}

	if err := s.repo.Create(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Update 更新游戏
func (s *GameService) Update(id uint, input CreateGameInput) (*models.Game, error) {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	if fields := validateGameInput(input); len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = game.Slug
	}
	count, err := s.repo.CountBySlug(slug, game.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	game.Slug = slug
	game.Name = strings.TrimSpace(input.Name)
	game.Category = input.Category
	game.Provider = input.Provider
	game.Description = input.Description
	game.Thumbnail = input.Thumbnail
	game.Features = models.StringArray(input.Features)
	if input.RTP != nil {
		game.RTP = *input.RTP
	}
	if input.MinBet != nil {
		game.MinBet = *input.MinBet
	}
	if input.MaxBet != nil {
		game.MaxBet = *input.MaxBet
	}
	if input.Status != "" {
		game.Status = input.Status
	}
	if input.IsFeatured != nil {
		game.IsFeatured = *input.IsFeatured
	}

	if err := s.repo.Update(game); err != nil {
		return nil, err
	}
	return game, nil
}

// Delete 删除游戏
func (s *GameService) Delete(id uint) error {
	game, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// RegisterPlay 记录一次试玩
func (s *GameService) RegisterPlay(id uint) (*models.Game, error) {
	ok, err := s.repo.IncrementPlayCount(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(id)
}

// GameStats 游戏统计
type GameStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// Stats 按状态统计游戏数量
func (s *GameService) Stats() (*GameStats, error) {
	counts, err := s.repo.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats := &GameStats{ByStatus: counts}
	for _, count := range counts {
		stats.Total += count
	}
	return stats, nil
}
