package repository

import "time"

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page           int
	PageSize       int
	Category       string
	Tags           []string
	AuthorID       uint
	Search         string
	Status         string
	OnlyPublished  bool
	Featured       *bool
	Trending       *bool
	PublishedAfter *time.Time
	Sort           string
	ExcludeID      uint
	OmitContent    bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// GameListFilter 查询游戏列表的过滤条件
type GameListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Provider   string
	Search     string
	Status     string
	OnlyActive bool
	Featured   *bool
	Sort       string
}

// BonusListFilter 查询红利活动列表的过滤条件
type BonusListFilter struct {
	Page      int
	PageSize  int
	BonusType string
	Search    string
	IsActive  *bool
	OnlyLive  bool
}
