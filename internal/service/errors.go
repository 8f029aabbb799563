package service

import "errors"

// 业务通用错误
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrForbidden          = errors.New("无权执行该操作")
	ErrSlugExists         = errors.New("slug 已存在")
	ErrCodeExists         = errors.New("领取代码已存在")
	ErrUsernameExists     = errors.New("登录名已存在")
	ErrEmailExists        = errors.New("邮箱已存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("旧密码不正确")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrCaptchaRequired    = errors.New("需要验证码")
	ErrCaptchaInvalid     = errors.New("验证码错误")
	ErrQueueUnavailable   = errors.New("异步队列不可用")
)

// ValidationError 字段级校验错误
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "参数校验失败"
}

// NewValidationError 创建字段级校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError 提取字段级校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
