package models

import (
	"time"

	"gorm.io/gorm"
)

// Game 游戏表
type Game struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                      // 唯一标识
	Name        string         `gorm:"type:varchar(160);not null" json:"name"`                // 名称
	Category    string         `gorm:"type:varchar(40);not null;index" json:"category"`       // 分类（slots/table/live...）
	Provider    string         `gorm:"type:varchar(120);index" json:"provider"`               // 供应商
	Description string         `gorm:"type:text" json:"description"`                          // 介绍
	Thumbnail   string         `gorm:"type:varchar(500)" json:"thumbnail"`                    // 缩略图
	RTP         Money          `gorm:"type:decimal(5,2)" json:"rtp"`                          // 理论回报率（百分比）
	MinBet      Money          `gorm:"type:decimal(12,2)" json:"min_bet"`                     // 最小投注额
	MaxBet      Money          `gorm:"type:decimal(12,2)" json:"max_bet"`                     // 最大投注额
	Features    StringArray    `gorm:"type:json" json:"features"`                             // 玩法特性标签
	Status      string         `gorm:"type:varchar(20);default:'active';index" json:"status"` // 状态
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`                // 是否首页推荐
	PlayCount   uint64         `gorm:"not null;default:0" json:"play_count"`                  // 试玩次数
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Game) TableName() string {
	return "games"
}
