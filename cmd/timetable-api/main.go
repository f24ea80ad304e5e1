package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/acadsync/timetable-api/api/swagger"
	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/internal/engine"
	"github.com/acadsync/timetable-api/internal/handler"
	"github.com/acadsync/timetable-api/internal/middleware"
	"github.com/acadsync/timetable-api/internal/repository"
	"github.com/acadsync/timetable-api/internal/scheduling"
	"github.com/acadsync/timetable-api/internal/service"
	"github.com/acadsync/timetable-api/pkg/cache"
	"github.com/acadsync/timetable-api/pkg/config"
	"github.com/acadsync/timetable-api/pkg/database"
	"github.com/acadsync/timetable-api/pkg/logger"
	corsmiddleware "github.com/acadsync/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/acadsync/timetable-api/pkg/middleware/requestid"
	"github.com/acadsync/timetable-api/pkg/storage"
)

// @title AcadSync Timetable API
// @version 1.0.0
// @description Timetable management backend with constraint-solver based generation
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, timetable caching disabled")
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Cache.TTL, logr, true)
		}
	}

	roomRepo := repository.NewRoomRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	assembler := scheduling.NewAssembler(
		scheduling.NewDeriver(scheduling.FirstQualified{}, logr),
		dto.EngineMetadata{DaysPerWeek: cfg.Engine.DaysPerWeek, SlotsPerDay: cfg.Engine.SlotsPerDay},
	)
	engineClient := engine.New(cfg.Engine, logr)

	authService := service.NewAuthService(userRepo, nil, logr, cfg.JWT)
	roomService := service.NewRoomService(roomRepo, nil, logr)
	batchService := service.NewBatchService(batchRepo, nil, logr)
	subjectService := service.NewSubjectService(subjectRepo, batchRepo, nil, logr)
	facultyService := service.NewFacultyService(facultyRepo, subjectRepo, userRepo, nil, logr)
	studentService := service.NewStudentService(studentRepo, batchRepo, userRepo, nil, logr)
	timetableService := service.NewTimetableService(
		roomRepo, facultyRepo, batchRepo, timetableRepo, studentRepo,
		assembler, engineClient, cacheService, metricsService, logr,
	)
	exportService := service.NewExportService(timetableService, logr)

	store, err := storage.NewArchive(cfg.Export.ArchiveDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export archive", "error", err)
	}
	signer := storage.NewTokenSigner(cfg.JWT.Secret, cfg.Export.DownloadTTL)
	exportArchive := service.NewExportArchive(store, signer, cfg.Export.DownloadTTL, logr)
	exportArchive.Start(context.Background())
	defer exportArchive.Stop()

	dashboardService := service.NewDashboardService(
		statsRepo, facultyRepo, studentRepo, batchRepo, timetableRepo,
		metricsService, logr,
	)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Rooms:     handler.NewRoomHandler(roomService),
		Batches:   handler.NewBatchHandler(batchService),
		Subjects:  handler.NewSubjectHandler(subjectService),
		Faculty:   handler.NewFacultyHandler(facultyService),
		Students:  handler.NewStudentHandler(studentService),
		Timetable: handler.NewTimetableHandler(timetableService, exportService, exportArchive),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}, authService)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "engine_url", cfg.Engine.URL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
