package response

// AppError 统一错误包装
type AppError struct {
	Code    int
	Message string
	Err     error
	Fields  map[string]string // 字段级校验错误（可为空）
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError 创建字段级校验错误
func ValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Fields:  fields,
	}
}
