package container

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/config"
	infraCache "bookjournal-backend/internal/infrastructure/cache"
	"bookjournal-backend/internal/infrastructure/database"
	"bookjournal-backend/internal/infrastructure/metrics"
	"bookjournal-backend/internal/shared/middleware"
	"bookjournal-backend/pkg/cache"
	"bookjournal-backend/pkg/jwt"

	// USER
	"bookjournal-backend/internal/domains/user"
	userHandler "bookjournal-backend/internal/domains/user/handler"
	userRepo "bookjournal-backend/internal/domains/user/repository"
	userService "bookjournal-backend/internal/domains/user/service"

	// CATALOG
	authorHandler "bookjournal-backend/internal/domains/author/handler"
	authorRepo "bookjournal-backend/internal/domains/author/repository"
	authorService "bookjournal-backend/internal/domains/author/service"
	bookHandler "bookjournal-backend/internal/domains/book/handler"
	bookModel "bookjournal-backend/internal/domains/book/model"
	bookRepo "bookjournal-backend/internal/domains/book/repository"
	bookService "bookjournal-backend/internal/domains/book/service"

	// SOCIAL
	followHandler "bookjournal-backend/internal/domains/follow/handler"
	followRepo "bookjournal-backend/internal/domains/follow/repository"
	followService "bookjournal-backend/internal/domains/follow/service"
	"bookjournal-backend/internal/domains/gate"
	journalHandler "bookjournal-backend/internal/domains/journal/handler"
	journalRepo "bookjournal-backend/internal/domains/journal/repository"
	journalService "bookjournal-backend/internal/domains/journal/service"
	"bookjournal-backend/internal/domains/visibility"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application.
// Thứ tự build: config -> infrastructure -> repositories -> services -> handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Registry    *prometheus.Registry
	Metrics     metrics.Recorder
	RateLimiter *middleware.RateLimiter

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo    user.Repository
	AuthorRepo  authorRepo.RepositoryInterface
	BookRepo    bookModel.RepositoryInterface
	FollowRepo  followRepo.RepositoryInterface
	JournalRepo journalRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService    user.Service
	AuthorService  authorService.ServiceInterface
	BookService    bookModel.ServiceInterface
	FollowService  followService.ServiceInterface
	Policy         *visibility.Policy
	Gate           *gate.Gate
	QueryBuilder   *journalService.QueryBuilder
	JournalService journalService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler    *userHandler.UserHandler
	AuthorHandler  *authorHandler.AuthorHandler
	BookHandler    *bookHandler.Handler
	FollowHandler  *followHandler.FollowHandler
	GateHandler    *gate.Handler
	JournalHandler *journalHandler.JournalHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole dependency graph. Postgres is mandatory;
// Redis is optional and falls back to a no-op cache.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.Cache = c.initCache(ctx)

	// ========================================
	// STEP 3: JWT, METRICS, RATE LIMIT
	// ========================================
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		c.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c.Metrics = metrics.NewCollector(c.Registry)
	} else {
		c.Metrics = metrics.Nop{}
	}

	c.RateLimiter = middleware.NewRateLimiter(
		middleware.PerMinute(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	)

	// ========================================
	// STEP 4-6: REPOSITORIES -> SERVICES -> HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// initCache - Redis lỗi không critical, dùng Nop cache
func (c *Container) initCache(ctx context.Context) cache.Cache {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, catalog cache off")
		return cache.Nop{}
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), catalog cache off")
		_ = redisCache.Close()
		return cache.Nop{}
	}
	return redisCache
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	ttl := c.Config.Redis.CacheTTL

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.FollowRepo = followRepo.NewPostgresRepository(pool)
	c.JournalRepo = journalRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)

	// follow graph cần user directory; policy cần follow graph
	c.FollowService = followService.NewFollowService(c.FollowRepo, c.UserService, c.Metrics)
	c.Policy = visibility.NewPolicy(c.FollowService)
	c.Gate = gate.New(c.UserService, c.FollowService, c.JournalRepo, c.Policy, c.Metrics)
	c.QueryBuilder = journalService.NewQueryBuilder(c.Policy, c.Metrics)

	c.JournalService = journalService.NewEntryService(
		c.JournalRepo,
		c.BookService,
		c.UserService,
		c.Gate,
		c.QueryBuilder,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.FollowHandler = followHandler.NewFollowHandler(c.FollowService)
	c.GateHandler = gate.NewHandler(c.Gate)
	c.JournalHandler = journalHandler.NewJournalHandler(c.JournalService)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// Health pings every backing store. Redis đang tắt => Nop luôn trả nil.
func (c *Container) Health(ctx context.Context) map[string]error {
	return map[string]error{
		"database": c.DB.Ping(ctx),
		"cache":    c.Cache.Ping(ctx),
	}
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
