package models

import (
	"time"

	"gorm.io/gorm"
)

// Bonus 红利活动表
type Bonus struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                              // 主键
	Code                string         `gorm:"uniqueIndex;not null" json:"code"`                  // 领取代码
	Title               string         `gorm:"type:varchar(200);not null" json:"title"`           // 标题
	Description         string         `gorm:"type:text" json:"description"`                      // 活动说明
	BonusType           string         `gorm:"type:varchar(30);not null;index" json:"bonus_type"` // 类型（welcome/deposit/...）
	Amount              Money          `gorm:"type:decimal(12,2)" json:"amount"`                  // 固定金额（与百分比二选一）
	Percentage          int            `gorm:"default:0" json:"percentage"`                       // 百分比（0 表示未设置）
	MinDeposit          Money          `gorm:"type:decimal(12,2)" json:"min_deposit"`             // 最低入金
	MaxCashout          Money          `gorm:"type:decimal(12,2)" json:"max_cashout"`             // 最高提现上限
	WageringRequirement int            `gorm:"default:0" json:"wagering_requirement"`             // 流水倍数
	Terms               string         `gorm:"type:text" json:"terms"`                            // 条款
	StartsAt            *time.Time     `gorm:"index" json:"starts_at"`                            // 生效时间
	EndsAt              *time.Time     `gorm:"index" json:"ends_at"`                              // 失效时间
	IsActive            bool           `gorm:"default:true;index" json:"is_active"`               // 是否启用
	SortOrder           int            `gorm:"default:0;index" json:"sort_order"`                 // 排序权重
	ClaimCount          uint64         `gorm:"not null;default:0" json:"claim_count"`             // 领取次数
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Bonus) TableName() string {
	return "bonuses"
}

// IsLiveAt 判断活动在指定时间是否有效
func (b *Bonus) IsLiveAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
