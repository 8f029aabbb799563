package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildSearchLikeCondition 构建多列 LIKE 条件，并返回参数数量。
func buildSearchLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildSearchLikeConditionByDialect(dbDialectName(db), columns)
}

func buildSearchLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	argCount := 0
	operator := likeOperatorByDialect(dialect)

	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		argCount++
	}

	return strings.Join(parts, " OR "), argCount
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// jsonTextColumn 将 JSON 列转换为可做文本匹配的表达式。
func jsonTextColumn(db *gorm.DB, column string) string {
	switch strings.ToLower(strings.TrimSpace(dbDialectName(db))) {
	case "postgres", "postgresql":
		return column + "::text"
	default:
		return column
	}
}

// jsonArrayContainsCondition 构建 JSON 数组包含条件，兼容 sqlite 与 postgres。
func jsonArrayContainsCondition(db *gorm.DB, column, value string) (string, interface{}) {
	return jsonArrayContainsConditionByDialect(dbDialectName(db), column, value)
}

func jsonArrayContainsConditionByDialect(dialect, column, value string) (string, interface{}) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		// postgres 转 jsonb 后用 @> 判断数组包含
		encoded, _ := json.Marshal([]string{value})
		return fmt.Sprintf("%s::jsonb @> ?", column), string(encoded)
	default:
		// sqlite 通过 json_each 展开数组逐项比较
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", column), value
	}
}
