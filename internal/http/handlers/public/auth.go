package public

import (
	"time"

	"github.com/luckyace-next/internal/http/response"
	"github.com/luckyace-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	RememberMe     bool                         `json:"remember_me"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// Login 账号登录，支持用户名或邮箱
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(req.CaptchaPayload); captchaErr != nil {
			respondServiceError(c, captchaErr)
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"email":        user.Email,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
			"role":         user.Role,
		},
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}
