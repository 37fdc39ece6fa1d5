package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mentora_backend/internal/config"
	"mentora_backend/internal/controller"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/service"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/database"
	"mentora_backend/pkg/logger"
	"mentora_backend/pkg/monitoring"
	"mentora_backend/pkg/security"
	"mentora_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	mu sync.Mutex
}

type repositories struct {
	participant *repository.ParticipantRepository
	carta       *repository.CartaRepository
	task        *repository.TaskRepository
	enrollment  *repository.EnrollmentRepository
	reward      *repository.RewardRepository
	evidence    *repository.EvidenceRepository
	collection  *repository.CollectionRepository
	quote       *repository.QuoteRepository
}

type services struct {
	cycle       *service.CycleService
	generator   *service.TaskGeneratorService
	reward      *service.RewardService
	perfectDay  *service.PerfectDayService
	collection  *service.CollectionService
	participant *service.ParticipantService
}

type controllers struct {
	cycle       *controller.CycleController
	generation  *controller.GenerationController
	reward      *controller.RewardController
	collection  *controller.CollectionController
	participant *controller.ParticipantController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		participant: repository.NewParticipantRepository(db),
		carta:       repository.NewCartaRepository(db),
		task:        repository.NewTaskRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		reward:      repository.NewRewardRepository(db),
		evidence:    repository.NewEvidenceRepository(db),
		collection:  repository.NewCollectionRepository(db),
		quote:       repository.NewQuoteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.cycle = service.NewCycleService(repos.participant, repos.enrollment, repos.task)
	s.generator = service.NewTaskGeneratorService(repos.carta, repos.task, s.cycle, rdb)
	s.reward = service.NewRewardService(db, repos.evidence, repos.reward)
	s.perfectDay = service.NewPerfectDayService(db, repos.task, repos.reward)
	s.collection = service.NewCollectionService(db, repos.collection, repos.participant, repos.evidence)
	s.participant = service.NewParticipantService(repos.participant, repos.collection, repos.reward, repos.quote, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		cycle:       controller.NewCycleController(s.cycle),
		generation:  controller.NewGenerationController(s.generator),
		reward:      controller.NewRewardController(s.reward, s.perfectDay),
		collection:  controller.NewCollectionController(s.collection),
		participant: controller.NewParticipantController(s.participant),
		health:      controller.NewHealthController(db),
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

// startBackgroundTasks runs the optional nightly perfect-day sweep. The
// sweep evaluates yesterday for every participant with an active
// enrollment; deployments driving this from an external scheduler keep it
// disabled in config.
func (a *App) startBackgroundTasks(s *services, db *gorm.DB, cfg *config.Config) {
	if !cfg.Sweep.Enabled {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		var lastRun string
		for range ticker.C {
			now := time.Now()
			today := now.Format(util.DateFormat)
			if lastRun == today || now.Format("15:04") < cfg.Sweep.At {
				continue
			}
			lastRun = today
			a.sweepPerfectDays(s, db, now.AddDate(0, 0, -1))
		}
	}()
}

func (a *App) sweepPerfectDays(s *services, db *gorm.DB, day time.Time) {
	var participantIDs []uint
	err := db.Model(&model.Enrollment{}).
		Where("status = ?", model.EnrollmentActive).
		Distinct().
		Pluck("participant_id", &participantIDs).Error
	if err != nil {
		logger.Log.Error("perfect day sweep query failed", zap.Error(err))
		return
	}

	for _, id := range participantIDs {
		if _, err := s.perfectDay.Evaluate(id, day); err != nil {
			logger.Log.Error("perfect day sweep failed for participant",
				zap.Uint("participantID", id), zap.Error(err))
		}
	}
}

// ReloadConfig swaps in a freshly loaded configuration. Only settings read
// per-request (none today) pick it up live; connection settings require a
// restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Config = cfg
	logger.Log.Info("configuration reloaded")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("mentora-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	app.startBackgroundTasks(svcs, db, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
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
