package admin

import (
	"strconv"
	"strings"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GameRequest 游戏创建/更新请求
type GameRequest struct {
	Slug        string        `json:"slug"`
	Name        string        `json:"name" binding:"required"`
	Category    string        `json:"category" binding:"required"`
	Provider    string        `json:"provider"`
	Description string        `json:"description"`
	Thumbnail   string        `json:"thumbnail"`
	RTP         *models.Money `json:"rtp"`
	MinBet      *models.Money `json:"min_bet"`
	MaxBet      *models.Money `json:"max_bet"`
	Features    []string      `json:"features"`
	Status      string        `json:"status"`
	IsFeatured  *bool         `json:"is_featured"`
}

func (r GameRequest) toInput() service.CreateGameInput {
	return service.CreateGameInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Category:    r.Category,
		Provider:    r.Provider,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		RTP:         r.RTP,
		MinBet:      r.MinBet,
		MaxBet:      r.MaxBet,
		Features:    r.Features,
		Status:      r.Status,
		IsFeatured:  r.IsFeatured,
	}
}

// GetGames 后台游戏列表
func (h *Handler) GetGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	games, total, err := h.GameService.ListAdmin(service.GameListInput{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Provider: strings.TrimSpace(c.Query("provider")),
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
		Featured: parseBoolQuery(c, "featured"),
		Sort:     strings.TrimSpace(c.Query("sort")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取游戏列表失败", err)
		return
	}
	response.SuccessWithPage(c, games, response.NewPagination(page, pageSize, total))
}

// GetGame 后台游戏详情
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	game, err := h.GameService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, game)
}

// CreateGame 创建游戏
func (h *Handler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	game, err := h.GameService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, game)
}

// UpdateGame 更新游戏
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	game, err := h.GameService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, game)
}

// DeleteGame 删除游戏
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.GameService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetGameStats 按状态统计游戏数量
func (h *Handler) GetGameStats(c *gin.Context) {
	stats, err := h.GameService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "获取游戏统计失败", err)
		return
	}
	response.Success(c, stats)
}
