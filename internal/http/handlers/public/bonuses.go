package public

import (
	"strconv"
	"strings"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBonuses 获取当前有效红利活动列表
func (h *Handler) GetBonuses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	bonuses, total, err := h.BonusService.ListPublic(service.BonusListInput{
		Page:      page,
		PageSize:  pageSize,
		BonusType: strings.TrimSpace(c.Query("type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取红利列表失败", err)
		return
	}
	response.SuccessWithPage(c, bonuses, response.NewPagination(page, pageSize, total))
}

// GetBonusByCode 按领取代码获取红利详情
func (h *Handler) GetBonusByCode(c *gin.Context) {
	bonus, err := h.BonusService.GetPublicByCode(strings.TrimSpace(c.Param("code")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, bonus)
}

// ClaimBonus 领取红利
func (h *Handler) ClaimBonus(c *gin.Context) {
	bonus, err := h.BonusService.Claim(strings.TrimSpace(c.Param("code")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"code":        bonus.Code,
		"title":       bonus.Title,
		"claim_count": bonus.ClaimCount,
	})
}
