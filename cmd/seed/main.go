package main

import (
	"time"

	"github.com/luckyace-next/internal/config"
	"github.com/luckyace-next/internal/constants"
	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 示例作者账号
	author := seedAuthor(stdLog)

	// 示例文章
	now := time.Now()
	publishedAt := func(daysAgo int) *time.Time {
		t := now.AddDate(0, 0, -daysAgo)
		return &t
	}
	posts := []models.Post{
		{
			Slug:        "blackjack-basic-strategy",
			Title:       "21 点基础策略完全指南",
			Excerpt:     "从要牌与停牌的数学依据讲起，带你把庄家优势压到最低。",
			Content:     "21 点是少数玩家决策能显著影响期望收益的赌场游戏。本文逐一拆解硬牌、软牌与对子的标准打法，并解释每条规则背后的概率逻辑。",
			Category:    constants.PostCategoryStrategies,
			Tags:        models.StringArray([]string{"blackjack", "strategy", "beginner"}),
			Status:      constants.PostStatusPublished,
			IsFeatured:  true,
			PublishedAt: publishedAt(10),
			ReadingTime: 6,
			AuthorID:    author.ID,
			AuthorName:  author.DisplayName,
		},
		{
			Slug:        "slots-rtp-explained",
			Title:       "老虎机 RTP 到底意味着什么",
			Excerpt:     "返还率 96% 不代表你每投 100 元能拿回 96 元。",
			Content:     "RTP 是长期统计值，与波动率共同决定游戏体验。本文解释 RTP 的计算口径、波动率分档，以及如何根据预算挑选合适的机型。",
			Category:    constants.PostCategoryGameGuides,
			Tags:        models.StringArray([]string{"slots", "rtp"}),
			Status:      constants.PostStatusPublished,
			IsTrending:  true,
			PublishedAt: publishedAt(3),
			ReadingTime: 4,
			AuthorID:    author.ID,
			AuthorName:  author.DisplayName,
		},
		{
			Slug:        "responsible-gaming-limits",
			Title:       "设置存款上限的正确姿势",
			Excerpt:     "预算管理是长期享受游戏的前提。",
			Content:     "本文介绍平台提供的存款上限、损失上限与冷静期工具，以及如何评估适合自己的额度。",
			Category:    constants.PostCategoryResponsibleGaming,
			Tags:        models.StringArray([]string{"responsible-gaming"}),
			Status:      constants.PostStatusDraft,
			ReadingTime: 3,
			AuthorID:    author.ID,
			AuthorName:  author.DisplayName,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// 示例游戏
	money := func(v float64) models.Money {
		return models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
	}
	games := []models.Game{
		{
			Slug:        "golden-pharaoh",
			Name:        "Golden Pharaoh",
			Category:    constants.GameCategorySlots,
			Provider:    "AceStudio",
			Description: "埃及主题五轴老虎机，带免费旋转与累积倍数。",
			RTP:         money(96.2),
			MinBet:      money(0.1),
			MaxBet:      money(100),
			Features:    models.StringArray([]string{"free-spins", "multiplier"}),
			Status:      constants.GameStatusActive,
			IsFeatured:  true,
		},
		{
			Slug:        "speed-roulette",
			Name:        "Speed Roulette",
			Category:    constants.GameCategoryLive,
			Provider:    "LiveHub",
			Description: "真人极速轮盘，单局 25 秒。",
			RTP:         money(97.3),
			MinBet:      money(0.5),
			MaxBet:      money(2000),
			Status:      constants.GameStatusActive,
		},
		{
			Slug:        "mega-jackpot-wheel",
			Name:        "Mega Jackpot Wheel",
			Category:    constants.GameCategoryJackpot,
			Provider:    "AceStudio",
			Description: "四级累积奖池转轮。",
			RTP:         money(94.8),
			MinBet:      money(0.2),
			MaxBet:      money(50),
			Status:      constants.GameStatusMaintenance,
		},
	}
	for _, game := range games {
		var existing models.Game
		if err := models.DB.Where("slug = ?", game.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&game).Error; err != nil {
				stdLog.Printf("Failed to create game %s: %v", game.Slug, err)
			} else {
				stdLog.Printf("Created game: %s", game.Slug)
			}
		} else {
			stdLog.Printf("Game already exists: %s", game.Slug)
		}
	}

	// 示例红利
	endsAt := now.AddDate(0, 1, 0)
	bonuses := []models.Bonus{
		{
			Code:                "WELCOME100",
			Title:               "首存 100% 红利",
			Description:         "首次存款最高匹配 500 元。",
			BonusType:           constants.BonusTypeWelcome,
			Amount:              money(500),
			Percentage:          100,
			MinDeposit:          money(20),
			WageringRequirement: 35,
			StartsAt:            &now,
			EndsAt:              &endsAt,
			IsActive:            true,
			SortOrder:           1,
		},
		{
			Code:                "SPINS50",
			Title:               "50 次免费旋转",
			Description:         "指定老虎机可用的 50 次免费旋转。",
			BonusType:           constants.BonusTypeFreeSpins,
			MinDeposit:          money(10),
			WageringRequirement: 20,
			StartsAt:            &now,
			EndsAt:              &endsAt,
			IsActive:            true,
			SortOrder:           2,
		},
	}
	for _, bonus := range bonuses {
		var existing models.Bonus
		if err := models.DB.Where("code = ?", bonus.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&bonus).Error; err != nil {
				stdLog.Printf("Failed to create bonus %s: %v", bonus.Code, err)
			} else {
				stdLog.Printf("Created bonus: %s", bonus.Code)
			}
		} else {
			stdLog.Printf("Bonus already exists: %s", bonus.Code)
		}
	}

	stdLog.Printf("Seed finished")
}

func seedAuthor(stdLog interface{ Printf(string, ...interface{}) }) *models.User {
	var existing models.User
	if err := models.DB.Where("username = ?", "ace-editor").First(&existing).Error; err == nil {
		stdLog.Printf("Author already exists: ace-editor")
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("editor123456"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash author password: %v", err)
		return &existing
	}
	author := models.User{
		Username:     "ace-editor",
		Email:        "editor@luckyace.local",
		PasswordHash: string(hash),
		DisplayName:  "Ace Editor",
		Role:         constants.RoleAuthor,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&author).Error; err != nil {
		stdLog.Printf("Failed to create author: %v", err)
	} else {
		stdLog.Printf("Created author: ace-editor")
	}
	return &author
}
