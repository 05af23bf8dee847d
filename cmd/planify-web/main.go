package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/planify-web/api/swagger"
	"github.com/noah-isme/planify-web/internal/handler"
	internalmiddleware "github.com/noah-isme/planify-web/internal/middleware"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/repository"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/internal/ui"
	"github.com/noah-isme/planify-web/pkg/backend"
	"github.com/noah-isme/planify-web/pkg/cache"
	"github.com/noah-isme/planify-web/pkg/config"
	"github.com/noah-isme/planify-web/pkg/export"
	"github.com/noah-isme/planify-web/pkg/logger"
	corsmiddleware "github.com/noah-isme/planify-web/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/planify-web/pkg/middleware/requestid"
)

// @title Planify Web
// @version 1.0.0
// @description Server-rendered school planner: calendar, timetable, classrooms and chat in front of the Planify REST backend.
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		logr.Sugar().Warnw("unknown calendar timezone, using local time", "timezone", cfg.Calendar.Timezone, "error", err)
		loc = time.Local
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	client := backend.NewClient(cfg.Backend, logr, metricsSvc)

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	var cacheStore service.CacheRepository
	if redisClient != nil {
		cacheStore = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheStore, metricsSvc, service.CacheConfig{
		TTL:      cfg.Calendar.CacheTTL,
		StaleTTL: cfg.Calendar.StaleTTL,
	}, logr)

	calendarSvc := service.NewCalendarService(repository.NewEventRepository(client), cacheSvc, metricsSvc, validate, logr, service.CalendarConfig{
		Location:  loc,
		MaxEvents: cfg.Calendar.MaxChips,
	})
	timetableSvc := service.NewTimetableService(
		repository.NewScheduleRepository(client),
		export.NewPDFExporter(),
		export.NewCSVExporter(';'),
		export.NewICalExporter("-//Planify//Emploi du temps//FR"),
		logr,
		service.TimetableConfig{Days: cfg.Timetable.Days, TimeSlots: cfg.Timetable.TimeSlots, Location: loc},
	)
	classroomSvc := service.NewClassroomService(repository.NewClassroomRepository(client), validate, logr)
	chatSvc := service.NewChatService(repository.NewChatRepository(client), metricsSvc, validate, logr)
	preferenceSvc := service.NewPreferenceService(repository.NewPreferenceRepository(redisClient), logr)
	authSvc := service.NewAuthService(logr, service.AuthConfig{Secret: cfg.Session.Secret, Issuer: cfg.Session.Issuer})

	renderer, err := render.New(loc)
	if err != nil {
		logr.Sugar().Fatalw("failed to parse templates", "error", err)
	}
	notifier := ui.NewNotifier(cfg.UI.ToastTTL)
	defer notifier.Close()
	dialogs := ui.NewDialogRegistry(10 * time.Minute)
	defer dialogs.Close()

	pages := handler.NewPages(renderer, notifier, dialogs, preferenceSvc, cfg.UI.ThemeCookie, logr)
	handlers := handler.Handlers{
		Calendar:   handler.NewCalendarHandler(calendarSvc, pages),
		Timetable:  handler.NewTimetableHandler(timetableSvc, pages, loc),
		Classroom:  handler.NewClassroomHandler(classroomSvc, pages),
		Chat:       handler.NewChatHandler(chatSvc, pages, handler.ChatIntervals{Conversation: cfg.Chat.PollInterval, Inbox: cfg.Chat.InboxPollInterval}),
		Preference: handler.NewPreferenceHandler(preferenceSvc, cfg.UI.ThemeCookie),
		Dialog:     handler.NewDialogHandler(dialogs),
		Metrics: handler.NewMetricsHandler(metricsSvc, map[string]handler.Pinger{
			"redis": cacheRepo,
		}),
		ManageRoles: internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleTeacher),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := internalmiddleware.JWT(authSvc, internalmiddleware.SessionConfig{
		CookieName: cfg.Session.CookieName,
		LoginURL:   cfg.Session.LoginURL,
	})
	handler.RegisterRoutes(r, handlers, auth)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Sugar().Info("server stopped")
}
