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
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/rainbow-kids-api/api/swagger"
	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/handler"
	internalmiddleware "github.com/noah-isme/rainbow-kids-api/internal/middleware"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	"github.com/noah-isme/rainbow-kids-api/internal/repository"
	"github.com/noah-isme/rainbow-kids-api/internal/service"
	"github.com/noah-isme/rainbow-kids-api/pkg/breaker"
	"github.com/noah-isme/rainbow-kids-api/pkg/cache"
	"github.com/noah-isme/rainbow-kids-api/pkg/config"
	"github.com/noah-isme/rainbow-kids-api/pkg/database"
	"github.com/noah-isme/rainbow-kids-api/pkg/logger"
	"github.com/noah-isme/rainbow-kids-api/pkg/mail"
	"github.com/noah-isme/rainbow-kids-api/pkg/messaging"
	corsmiddleware "github.com/noah-isme/rainbow-kids-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/rainbow-kids-api/pkg/middleware/requestid"
	"github.com/noah-isme/rainbow-kids-api/pkg/storage"
)

// @title Rainbow Kids Academy API
// @version 1.0.0
// @description Public site content, visitor intake and the admin content dashboard
// @BasePath /
// @schemes http https
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to apply schema", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	metricsSvc := service.NewMetricsService()
	gateway := repository.NewGatewayRepository(db, metricsSvc)
	authRepo := repository.NewAuthRepository(db)
	validate := service.NewValidator()

	var cacheRepo service.CacheRepository
	var publisher service.SessionPublisher
	var subscriber service.SessionSubscriber
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		redisBroker := repository.NewRedisSessionBroker(redisClient, logr)
		if err := redisBroker.Listen(ctx); err != nil {
			logr.Sugar().Warnw("session events unavailable, using in-process broker", "error", err)
		} else {
			publisher, subscriber = redisBroker, redisBroker
		}
	}
	if subscriber == nil {
		localBroker := service.NewLocalSessionBroker()
		publisher, subscriber = localBroker, localBroker
	}

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.PublicContent.CacheTTL, logr, cfg.PublicContent.CacheEnabled)
	publicSvc := service.NewPublicContentService(gateway, cacheSvc, metricsSvc, logr)
	authSvc := service.NewAuthService(authRepo, publisher, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	gate := service.NewAdminGate(authSvc, gateway, subscriber, cfg.Admin.LoginPath, metricsSvc, logr)

	mailer := mail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, breaker.New("resend", 30*time.Second, logr), logr)
	var events *messaging.RabbitMQPublisher
	if cfg.AMQP.URL != "" {
		events, err = messaging.NewRabbitMQPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, breaker.New("amqp", 30*time.Second, logr))
		if err != nil {
			logr.Sugar().Warnw("amqp unavailable, intake events disabled", "error", err)
			events = nil
		}
	}
	if events != nil {
		defer events.Close() //nolint:errcheck
	}

	notifications := service.NewNotificationService(mailer, events, service.NotificationConfig{
		Workers:    cfg.Intake.NotifyWorkers,
		MaxRetries: cfg.Intake.NotifyRetries,
		RetryDelay: 2 * time.Second,
		Recipients: cfg.Mail.NotifyTo,
	}, logr)
	notifications.Start(ctx)
	defer notifications.Stop()

	store, err := storage.NewBucketStorage(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init storage", "error", err)
	}

	intakeSvc := service.NewIntakeService(gateway, notifications, metricsSvc, cfg.Intake.CloseDelay, validate, logr)
	dashboardSvc := service.NewDashboardService(gateway, logr)
	settingsSvc := service.NewSettingsService(gateway, logr)
	exportSvc := service.NewExportService(gateway, validate, logr)
	uploadSvc := service.NewUploadService(store, service.UploadConfig{Bucket: cfg.Storage.Bucket, MaxSize: cfg.Storage.MaxUploadSize}, logr)

	onChange := publicSvc.Invalidate

	metricsHandler := handler.NewMetricsHandler(metricsSvc, readinessChecks(db.PingContext, redisClient))
	authHandler := handler.NewAuthHandler(authSvc)
	publicHandler := handler.NewPublicHandler(publicSvc)
	intakeHandler := handler.NewIntakeHandler(intakeSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(gateway, exportSvc, validate, logr)
	messageHandler := handler.NewMessageHandler(gateway, validate, logr)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, onChange)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	sessionHandler := handler.NewSessionHandler(0)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static(storage.PublicPathPrefix, store.BaseDir())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	public := api.Group("/public")
	publicHandler.Register(public)
	public.POST("/enrollments", intakeHandler.Enrollment)
	public.POST("/contact", intakeHandler.Contact)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.SignUp)
	auth.GET("/session", authHandler.Session)
	auth.POST("/logout", authHandler.Logout)

	admin := api.Group("/admin")
	admin.Use(internalmiddleware.AdminGate(gate))
	admin.GET("/session", sessionHandler.Current)
	admin.GET("/session/events", sessionHandler.Events)
	admin.POST("/logout", sessionHandler.Logout)
	admin.GET("/dashboard", dashboardHandler.Summary)

	audited := func(resource string) *gin.RouterGroup {
		return admin.Group("/"+resource, internalmiddleware.Audit(authRepo, resource, logr))
	}
	handler.NewEntityHandler[models.Teacher, dto.TeacherForm](gateway, service.TeacherSchema(), validate, logr, onChange).Register(audited(models.TableTeachers))
	handler.NewEntityHandler[models.ClassProgram, dto.ClassForm](gateway, service.ClassSchema(), validate, logr, onChange).Register(audited(models.TableClasses))
	handler.NewEntityHandler[models.Activity, dto.ActivityForm](gateway, service.ActivitySchema(), validate, logr, onChange).Register(audited(models.TableActivities))
	handler.NewEntityHandler[models.GalleryItem, dto.GalleryForm](gateway, service.GallerySchema(), validate, logr, onChange).Register(audited(models.TableGallery))
	handler.NewEntityHandler[models.Testimonial, dto.TestimonialForm](gateway, service.TestimonialSchema(), validate, logr, onChange).Register(audited(models.TableTestimonials))
	enrollmentHandler.Register(audited(models.TableEnrollments))
	messageHandler.Register(audited("messages"))

	settings := audited("settings")
	settings.GET("", settingsHandler.Get)
	settings.PUT("", settingsHandler.Update)
	audited("uploads").POST("", uploadHandler.Image)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func readinessChecks(pingDB handler.Pinger, redisClient *redis.Client) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{"postgres": pingDB}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	return checks
}
