package service

import (
	"context"
	"strings"
	"time"

	"github.com/luckyace-next/internal/cache"
	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/repository"
)

// UserService 用户管理服务
type UserService struct {
	repo repository.UserRepository
	auth *AuthService
}

// NewUserService 创建用户管理服务
func NewUserService(repo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{repo: repo, auth: auth}
}

// UserListInput 用户列表查询输入
type UserListInput struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// List 用户列表
func (s *UserService) List(input UserListInput) ([]models.User, int64, error) {
	return s.repo.List(repository.UserListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		Keyword:     strings.TrimSpace(input.Keyword),
		Role:        input.Role,
		Status:      input.Status,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	})
}

// GetByID 获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// CreateUserInput 创建用户输入
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Avatar      string
	Bio         string
	Role        string
	Status      string
}

func validateUserRole(role string) bool {
	switch role {
	case constants.RoleAdmin, constants.RoleModerator, constants.RoleAuthor,
		constants.RolePlayer, constants.RoleVIP:
		return true
	default:
		return false
	}
}

func validateUserStatus(status string) bool {
	switch status {
	case constants.UserStatusActive, constants.UserStatusInactive, constants.UserStatusBanned:
		return true
	default:
		return false
	}
}

// Create 创建用户
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	fields := map[string]string{}
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" {
		fields["username"] = "登录名不能为空"
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "邮箱格式不正确"
	}
	role := input.Role
	if role == "" {
		role = constants.RolePlayer
	}
	if !validateUserRole(role) {
		fields["role"] = "角色取值非法"
	}
	status := input.Status
	if status == "" {
		status = constants.UserStatusActive
	}
	if !validateUserStatus(status) {
		fields["status"] = "状态取值非法"
	}
	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	if err := s.auth.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUsername(username, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameExists
	}
	count, err = s.repo.CountByEmail(email, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Avatar:       input.Avatar,
		Bio:          input.Bio,
		Role:         role,
		Status:       status,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput 更新用户输入
type UpdateUserInput struct {
	Email       *string
	DisplayName *string
	Avatar      *string
	Bio         *string
	Role        *string
	Status      *string
}

// Update 更新用户
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	roleOrStatusChanged := false
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" || !strings.Contains(email, "@") {
			return nil, NewValidationError(map[string]string{"email": "邮箱格式不正确"})
		}
		count, err := s.repo.CountByEmail(email, user.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailExists
		}
		user.Email = email
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		if !validateUserRole(*input.Role) {
			return nil, NewValidationError(map[string]string{"role": "角色取值非法"})
		}
		if user.Role != *input.Role {
			roleOrStatusChanged = true
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if !validateUserStatus(*input.Status) {
			return nil, NewValidationError(map[string]string{"status": "状态取值非法"})
		}
		if user.Status != *input.Status {
			roleOrStatusChanged = true
		}
		user.Status = *input.Status
	}

	// 角色或状态变化后作废已签发的令牌
	if roleOrStatusChanged {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// Suspend 停用账号并作废令牌
func (s *UserService) Suspend(id uint) (*models.User, error) {
	status := constants.UserStatusInactive
	return s.Update(id, UpdateUserInput{Status: &status})
}

// BatchSetStatus 批量变更账号状态，逐条执行，单条失败不影响其余
func (s *UserService) BatchSetStatus(ids []uint, status string) (*BulkResult, error) {
	if !validateUserStatus(status) {
		return nil, NewValidationError(map[string]string{"status": "状态取值非法"})
	}
	result := &BulkResult{Failed: map[uint]string{}}
	for _, id := range ids {
		if _, err := s.Update(id, UpdateUserInput{Status: &status}); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Updated++
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}
