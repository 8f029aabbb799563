package router

import (
	"fmt"
	"strings"

	"github.com/luckyace-next/internal/cache"
	"github.com/luckyace-next/internal/config"
	adminhandlers "github.com/luckyace-next/internal/http/handlers/admin"
	publichandlers "github.com/luckyace-next/internal/http/handlers/public"
	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "la"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/posts", OptionalJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
			public.POST("/posts/:slug/like", publicHandler.LikePost)
			public.POST("/posts/:slug/share", publicHandler.SharePost)
			public.GET("/games", publicHandler.GetGames)
			public.GET("/games/:slug", publicHandler.GetGameBySlug)
			public.POST("/games/:slug/play", publicHandler.PlayGame)
			public.GET("/bonuses", publicHandler.GetBonuses)
			public.GET("/bonuses/:code", publicHandler.GetBonusByCode)
			public.POST("/bonuses/:code/claim", publicHandler.ClaimBonus)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)
		}

		// 管理端接口（需鉴权）
		admin := apiV1.Group("/admin")
		admin.Use(
			JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			StaffOnlyMiddleware(),
			AdminRBACMiddleware(c.Authz),
		)
		{
			// 当前账号
			admin.GET("/me", adminHandler.GetMe)
			admin.PUT("/password", adminHandler.ChangePassword)

			// 文章管理
			admin.GET("/posts", adminHandler.GetPosts)
			admin.POST("/posts", adminHandler.CreatePost)
			admin.PATCH("/posts/bulk", adminHandler.BulkUpdatePostStatus)
			admin.DELETE("/posts/bulk", adminHandler.BulkDeletePosts)
			admin.GET("/posts/:id", adminHandler.GetPost)
			admin.PUT("/posts/:id", adminHandler.UpdatePost)
			admin.PATCH("/posts/:id/status", adminHandler.UpdatePostStatus)
			admin.DELETE("/posts/:id", adminHandler.DeletePost)

			// 游戏管理
			admin.GET("/games", adminHandler.GetGames)
			admin.GET("/games/stats", adminHandler.GetGameStats)
			admin.POST("/games", adminHandler.CreateGame)
			admin.GET("/games/:id", adminHandler.GetGame)
			admin.PUT("/games/:id", adminHandler.UpdateGame)
			admin.DELETE("/games/:id", adminHandler.DeleteGame)

			// 红利管理
			admin.GET("/bonuses", adminHandler.GetBonuses)
			admin.POST("/bonuses", adminHandler.CreateBonus)
			admin.GET("/bonuses/:id", adminHandler.GetBonus)
			admin.PUT("/bonuses/:id", adminHandler.UpdateBonus)
			admin.DELETE("/bonuses/:id", adminHandler.DeleteBonus)

			// 用户管理
			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/batch-status", adminHandler.BatchUpdateUserStatus)
			admin.GET("/users/:id/permissions", adminHandler.GetUserPermissions)

			// 授权管理（仅 admin，依赖 /admin/* 通配策略）
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.POST("/users/:id/suspend", adminHandler.SuspendUser)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
