package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BonusRequest 红利创建/更新请求
type BonusRequest struct {
	Code                string        `json:"code" binding:"required"`
	Title               string        `json:"title" binding:"required"`
	Description         string        `json:"description"`
	BonusType           string        `json:"bonus_type" binding:"required"`
	Amount              *models.Money `json:"amount"`
	Percentage          *int          `json:"percentage"`
	MinDeposit          *models.Money `json:"min_deposit"`
	MaxCashout          *models.Money `json:"max_cashout"`
	WageringRequirement *int          `json:"wagering_requirement"`
	Terms               string        `json:"terms"`
	StartsAt            *time.Time    `json:"starts_at"`
	EndsAt              *time.Time    `json:"ends_at"`
	IsActive            *bool         `json:"is_active"`
	SortOrder           *int          `json:"sort_order"`
}

func (r BonusRequest) toInput() service.CreateBonusInput {
	return service.CreateBonusInput{
		Code:                r.Code,
		Title:               r.Title,
		Description:         r.Description,
		BonusType:           r.BonusType,
		Amount:              r.Amount,
		Percentage:          r.Percentage,
		MinDeposit:          r.MinDeposit,
		MaxCashout:          r.MaxCashout,
		WageringRequirement: r.WageringRequirement,
		Terms:               r.Terms,
		StartsAt:            r.StartsAt,
		EndsAt:              r.EndsAt,
		IsActive:            r.IsActive,
		SortOrder:           r.SortOrder,
	}
}

// GetBonuses 后台红利列表
func (h *Handler) GetBonuses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	bonuses, total, err := h.BonusService.ListAdmin(service.BonusListInput{
		Page:      page,
		PageSize:  pageSize,
		BonusType: strings.TrimSpace(c.Query("type")),
		Search:    strings.TrimSpace(c.Query("search")),
		IsActive:  parseBoolQuery(c, "is_active"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取红利列表失败", err)
		return
	}
	response.SuccessWithPage(c, bonuses, response.NewPagination(page, pageSize, total))
}

// GetBonus 后台红利详情
func (h *Handler) GetBonus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bonus, err := h.BonusService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// CreateBonus 创建红利活动
func (h *Handler) CreateBonus(c *gin.Context) {
	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	bonus, err := h.BonusService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, bonus)
}

// UpdateBonus 更新红利活动
func (h *Handler) UpdateBonus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	bonus, err := h.BonusService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// DeleteBonus 删除红利活动
func (h *Handler) DeleteBonus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.BonusService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
