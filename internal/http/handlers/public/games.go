package public

import (
	"strconv"
	"strings"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetGames 获取上线游戏列表
func (h *Handler) GetGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	games, total, err := h.GameService.ListPublic(service.GameListInput{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Provider: strings.TrimSpace(c.Query("provider")),
		Search:   strings.TrimSpace(c.Query("search")),
		Featured: parseBoolQuery(c, "featured"),
		Sort:     strings.TrimSpace(c.Query("sort")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取游戏列表失败", err)
		return
	}
	response.SuccessWithPage(c, games, response.NewPagination(page, pageSize, total))
}

// GetGameBySlug 获取游戏详情
func (h *Handler) GetGameBySlug(c *gin.Context) {
	game, err := h.GameService.GetPublicBySlug(strings.TrimSpace(c.Param("slug")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, game)
}

// PlayGame 记录游戏打开次数
func (h *Handler) PlayGame(c *gin.Context) {
	game, err := h.GameService.GetPublicBySlug(strings.TrimSpace(c.Param("slug")))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	updated, err := h.GameService.RegisterPlay(game.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"play_count": updated.PlayCount})
}
