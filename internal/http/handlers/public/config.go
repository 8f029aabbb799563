package public

import (
	"time"

	"github.com/luckyace-next/internal/cache"
	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取站点公共配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := map[string]interface{}{
		"post_categories": constants.PostCategories,
		"bonus_types": []string{
			constants.BonusTypeWelcome,
			constants.BonusTypeDeposit,
			constants.BonusTypeFreeSpins,
			constants.BonusTypeCashback,
			constants.BonusTypeReload,
			constants.BonusTypeHighRoller,
		},
		"game_categories": []string{
			constants.GameCategorySlots,
			constants.GameCategoryTable,
			constants.GameCategoryLive,
			constants.GameCategoryJackpot,
			constants.GameCategoryVideoPoker,
		},
		"default_page_size": h.Config.Content.DefaultPageSize,
		"max_page_size":     h.Config.Content.MaxPageSize,
		"captcha": map[string]interface{}{
			"enabled": h.CaptchaService != nil && h.CaptchaService.Enabled(),
		},
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
