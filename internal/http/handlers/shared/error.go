package shared

import (
	"errors"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/repository"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// serviceErrorRule 定义业务哨兵错误到响应码的映射。
type serviceErrorRule struct {
	target error
	code   int
	msg    string
}

var serviceErrorRules = []serviceErrorRule{
	{service.ErrNotFound, response.CodeNotFound, "资源不存在"},
	{service.ErrForbidden, response.CodeForbidden, "没有权限执行该操作"},
	{service.ErrSlugExists, response.CodeConflict, "别名已被占用"},
	{service.ErrCodeExists, response.CodeConflict, "代码已被占用"},
	{service.ErrUsernameExists, response.CodeConflict, "用户名已存在"},
	{service.ErrEmailExists, response.CodeConflict, "邮箱已被注册"},
	{service.ErrInvalidCredentials, response.CodeUnauthorized, "用户名或密码错误"},
	{service.ErrInvalidPassword, response.CodeBadRequest, "旧密码不正确"},
	{service.ErrAccountDisabled, response.CodeForbidden, "账号已被停用"},
	{service.ErrCaptchaRequired, response.CodeBadRequest, "请先完成验证码"},
	{service.ErrCaptchaInvalid, response.CodeBadRequest, "验证码错误或已过期"},
	{service.ErrQueueUnavailable, response.CodeInternal, "任务队列不可用"},
	{repository.ErrInvalidPageSize, response.CodeBadRequest, "分页大小必须为正数"},
}

// RespondServiceError 将业务错误映射为统一的错误响应。
// 校验错误携带字段明细返回，未匹配的错误按内部错误处理。
func RespondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if verr, ok := service.AsValidationError(err); ok {
		if len(verr.Fields) > 0 {
			response.ErrorWithData(c, response.CodeBadRequest, verr.Error(), gin.H{"fields": verr.Fields})
			return
		}
		response.Error(c, response.CodeBadRequest, verr.Error())
		return
	}
	if errors.Is(err, service.ErrWeakPassword) {
		response.Error(c, response.CodeBadRequest, err.Error())
		return
	}
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, rule.msg)
			return
		}
	}
	RespondError(c, response.CodeInternal, "服务器内部错误", err)
}
