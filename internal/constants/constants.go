package constants

// 文章状态常量
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// 文章分类常量
const (
	PostCategoryStrategies        = "strategies"
	PostCategoryGameGuides        = "game-guides"
	PostCategoryPromotions        = "promotions"
	PostCategoryIndustryNews      = "industry-news"
	PostCategoryWinnerStories     = "winner-stories"
	PostCategoryResponsibleGaming = "responsible-gaming"
)

// PostCategories 全部合法分类
var PostCategories = []string{
	PostCategoryStrategies,
	PostCategoryGameGuides,
	PostCategoryPromotions,
	PostCategoryIndustryNews,
	PostCategoryWinnerStories,
	PostCategoryResponsibleGaming,
}

// IsValidPostCategory 校验分类取值
func IsValidPostCategory(category string) bool {
	for _, c := range PostCategories {
		if c == category {
			return true
		}
	}
	return false
}

// 用户角色常量
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleAuthor    = "author"
	RolePlayer    = "player"
	RoleVIP       = "vip"
)

// StaffRoles 可进入后台的角色
var StaffRoles = []string{RoleAdmin, RoleModerator, RoleAuthor}

// IsStaffRole 判断角色是否属于后台角色
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBanned   = "banned"
)

// 游戏分类常量
const (
	GameCategorySlots      = "slots"
	GameCategoryTable      = "table"
	GameCategoryLive       = "live"
	GameCategoryJackpot    = "jackpot"
	GameCategoryVideoPoker = "video-poker"
)

// 游戏状态常量
const (
	GameStatusActive      = "active"
	GameStatusMaintenance = "maintenance"
	GameStatusRetired     = "retired"
)

// 红利类型常量
const (
	BonusTypeWelcome    = "welcome"
	BonusTypeDeposit    = "deposit"
	BonusTypeFreeSpins  = "free_spins"
	BonusTypeCashback   = "cashback"
	BonusTypeReload     = "reload"
	BonusTypeHighRoller = "high_roller"
)

// BonusTypes 全部合法红利类型
var BonusTypes = []string{
	BonusTypeWelcome,
	BonusTypeDeposit,
	BonusTypeFreeSpins,
	BonusTypeCashback,
	BonusTypeReload,
	BonusTypeHighRoller,
}

// IsValidBonusType 校验红利类型取值
func IsValidBonusType(bonusType string) bool {
	for _, t := range BonusTypes {
		if t == bonusType {
			return true
		}
	}
	return false
}

// 文章排序方式常量
const (
	PostSortLatest    = "latest"
	PostSortPopular   = "popular"
	PostSortTrending  = "trending"
	PostSortRelevance = "relevance"
)

// 阅读时长估算的每分钟词数
const ReadingWordsPerMinute = 200

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskPostView = "post:view"
)
