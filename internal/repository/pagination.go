package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidPageSize 分页大小必须为正数
var ErrInvalidPageSize = errors.New("分页大小必须为正数")

// applyPagination 应用分页参数，pageSize 非法时不分页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
