package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/config"
	"github.com/avash81/mindmeter-iq-app/internal/controller"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/internal/service"
	"github.com/avash81/mindmeter-iq-app/pkg/configwatcher"
	"github.com/avash81/mindmeter-iq-app/pkg/database"
	"github.com/avash81/mindmeter-iq-app/pkg/logger"
	"github.com/avash81/mindmeter-iq-app/pkg/monitoring"
	"github.com/avash81/mindmeter-iq-app/pkg/security"
	"github.com/avash81/mindmeter-iq-app/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	// config holds the current snapshot; the reload watcher swaps it, so
	// reads go through Config().
	config atomic.Pointer[config.Config]
}

// Config returns the current configuration snapshot.
func (a *App) Config() *config.Config {
	return a.config.Load()
}

type repositories struct {
	question *repository.QuestionRepository
	session  *repository.SessionRepository
	result   *repository.ResultRepository
	stats    *repository.StatsRepository
}

type services struct {
	question    *service.QuestionService
	session     *service.SessionService
	stats       *service.StatsService
	storage     *service.StorageService
	certificate *service.CertificateService
}

type controllers struct {
	test        *controller.TestController
	question    *controller.QuestionController
	stats       *controller.StatsController
	certificate *controller.CertificateController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(db),
		session:  repository.NewSessionRepository(db),
		result:   repository.NewResultRepository(db),
		stats:    repository.NewStatsRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.stats = service.NewStatsService(repos.stats, repos.result)
	s.question = service.NewQuestionService(repos.question)
	s.session = service.NewSessionService(repos.session, repos.question, repos.result, s.stats, cfg.Test)
	s.certificate = service.NewCertificateService(repos.result, s.storage)

	if err := s.stats.Prime(context.Background()); err != nil {
		logger.Log.Warn("failed to prime stats counters", zap.Error(err))
	}

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		test:        controller.NewTestController(s.session),
		question:    controller.NewQuestionController(s.question),
		stats:       controller.NewStatsController(s.stats),
		certificate: controller.NewCertificateController(s.certificate),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go configwatcher.WatchConfig("configs/config.yaml", func(raw interface{}) {
		cfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		// Only later readers of Config() see the new snapshot; components
		// built at startup keep the configuration they were constructed
		// with.
		a.config.Store(cfg)
		logger.Log.Info("configuration file reloaded")
	})

	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if n, err := s.session.AbandonStale(context.Background()); err != nil {
				logger.Log.Error("session sweep error", zap.Error(err))
			} else if n > 0 {
				logger.Log.Info("abandoned stale sessions", zap.Int("count", n))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := &App{
		DB:    db,
		Redis: rdb,
	}
	app.config.Store(cfg)

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("mindmeter", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	cfg := a.Config()
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
