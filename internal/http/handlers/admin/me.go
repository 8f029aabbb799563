package admin

import (
	handlershared "github.com/luckyace-next/internal/http/handlers/shared"
	"github.com/luckyace-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMe 获取当前登录账号信息
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, newUserView(user))
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 修改当前账号密码，成功后旧令牌全部失效
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := handlershared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "密码修改成功", nil)
}
