package provider

import (
	"github.com/luckyace-next/internal/authz"
	"github.com/luckyace-next/internal/cache"
	"github.com/luckyace-next/internal/config"
	"github.com/luckyace-next/internal/logger"
	"github.com/luckyace-next/internal/models"
	"github.com/luckyace-next/internal/queue"
	"github.com/luckyace-next/internal/repository"
	"github.com/luckyace-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo  repository.UserRepository
	PostRepo  repository.PostRepository
	GameRepo  repository.GameRepository
	BonusRepo repository.BonusRepository

	// Services
	Authz          *authz.Service
	AuthService    *service.AuthService
	UserService    *service.UserService
	PostService    *service.PostService
	GameService    *service.GameService
	BonusService   *service.BonusService
	CaptchaService *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.GameRepo = repository.NewGameRepository(db)
	c.BonusRepo = repository.NewBonusRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.Authz = authzService
	if err := c.Authz.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.PostService = service.NewPostService(c.PostRepo, c.UserRepo, c.QueueClient)
	c.GameService = service.NewGameService(c.GameRepo)
	c.BonusService = service.NewBonusService(c.BonusRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
}
