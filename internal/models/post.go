package models

import (
	"time"
)

// Post 博客文章表
type Post struct {
	ID              uint        `gorm:"primarykey" json:"id"`                                 // 主键
	Slug            string      `gorm:"uniqueIndex;not null" json:"slug"`                     // 唯一标识
	Title           string      `gorm:"type:varchar(200);not null" json:"title"`              // 标题
	Excerpt         string      `gorm:"type:varchar(500)" json:"excerpt"`                     // 摘要
	Content         string      `gorm:"type:text" json:"content"`                             // 正文
	Category        string      `gorm:"type:varchar(40);not null;index" json:"category"`      // 分类
	Tags            StringArray `gorm:"type:json" json:"tags"`                                // 标签
	Keywords        string      `gorm:"type:varchar(500)" json:"keywords"`                    // 关键词
	Thumbnail       string      `gorm:"type:varchar(500)" json:"thumbnail"`                   // 缩略图
	Status          string      `gorm:"type:varchar(20);default:'draft';index" json:"status"` // 状态（draft/published/archived）
	IsFeatured      bool        `gorm:"default:false;index" json:"is_featured"`               // 是否精选
	IsTrending      bool        `gorm:"default:false;index" json:"is_trending"`               // 是否热门
	IsSticky        bool        `gorm:"default:false;index" json:"is_sticky"`                 // 是否置顶
	PublishedAt     *time.Time  `gorm:"index" json:"published_at"`                            // 首次发布时间（只写一次）
	ScheduledFor    *time.Time  `gorm:"index" json:"scheduled_for"`                           // 计划发布时间（仅展示用）
	ViewCount       uint64      `gorm:"not null;default:0" json:"view_count"`                 // 浏览数
	LikeCount       uint64      `gorm:"not null;default:0" json:"like_count"`                 // 点赞数
	ShareCount      uint64      `gorm:"not null;default:0" json:"share_count"`                // 分享数
	ReadingTime     int         `gorm:"not null;default:0" json:"reading_time"`               // 预计阅读分钟数
	MetaTitle       string      `gorm:"type:varchar(60)" json:"meta_title"`                   // SEO 标题
	MetaDescription string      `gorm:"type:varchar(160)" json:"meta_description"`            // SEO 描述
	AuthorID        uint        `gorm:"not null;index" json:"author_id"`                      // 作者 ID
	AuthorName      string      `gorm:"type:varchar(120)" json:"author_name"`                 // 作者展示名（冗余）
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt       time.Time   `json:"updated_at"`                                           // 更新时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// IsPublished 判断文章是否对外可见
func (p *Post) IsPublished() bool {
	return p.Status == "published"
}
