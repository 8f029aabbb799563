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

// userView 后台用户响应结构，不暴露密码散列。
type userView struct {
	ID          uint       `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Avatar      string     `json:"avatar"`
	Bio         string     `json:"bio"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func newUserView(user *models.User) userView {
	return userView{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// GetUsers 后台用户列表
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserService.List(service.UserListInput{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取用户列表失败", err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	response.SuccessWithPage(c, views, response.NewPagination(page, pageSize, total))
}

// GetUser 后台用户详情
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, newUserView(user))
}

// UserCreateRequest 创建用户请求
type UserCreateRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

// CreateUser 创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, err := h.UserService.Create(service.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
		Role:        req.Role,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := h.Authz.SyncUserRole(user.ID, user.Role); err != nil {
		requestLog(c).Warnw("sync_user_role_failed", "user_id", user.ID, "error", err)
	}
	response.Created(c, newUserView(user))
}

// UserUpdateRequest 更新用户请求，仅更新提交的字段
type UserUpdateRequest struct {
	Email       *string `json:"email"`
	DisplayName *string `json:"display_name"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
	Role        *string `json:"role"`
	Status      *string `json:"status"`
}

// UpdateUser 更新用户
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, err := h.UserService.Update(id, service.UpdateUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Avatar:      req.Avatar,
		Bio:         req.Bio,
		Role:        req.Role,
		Status:      req.Status,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Role != nil {
		if err := h.Authz.SyncUserRole(user.ID, user.Role); err != nil {
			requestLog(c).Warnw("sync_user_role_failed", "user_id", user.ID, "error", err)
		}
	}
	response.Success(c, newUserView(user))
}

// SuspendUser 停用用户账号
func (h *Handler) SuspendUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserService.Suspend(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, newUserView(user))
}

// BatchUserStatusRequest 批量变更用户状态请求
type BatchUserStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status string `json:"status" binding:"required"`
}

// BatchUpdateUserStatus 批量变更用户状态，逐条执行并返回失败明细
func (h *Handler) BatchUpdateUserStatus(c *gin.Context) {
	var req BatchUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	result, err := h.UserService.BatchSetStatus(req.IDs, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
