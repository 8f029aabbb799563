package admin

import (
	handlershared "github.com/luckyace-next/internal/http/handlers/shared"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// currentActor 从请求上下文提取操作者身份。
func currentActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		ID:   userID,
		Role: handlershared.GetContextString(c, "user_role"),
	}, true
}
