package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-api/internal/db"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-api/internal/handlers"
	"github.com/BruksfildServices01/barbershop-api/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-api/internal/infra/gateway"
	infraRepo "github.com/BruksfildServices01/barbershop-api/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-api/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-api/internal/logger"
	"github.com/BruksfildServices01/barbershop-api/internal/media"
	"github.com/BruksfildServices01/barbershop-api/internal/middleware"
	"github.com/BruksfildServices01/barbershop-api/internal/routes"
	"github.com/BruksfildServices01/barbershop-api/internal/timezone"
	ucPayment "github.com/BruksfildServices01/barbershop-api/internal/usecase/payment"
	ucUser "github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
	"github.com/BruksfildServices01/barbershop-api/internal/validators"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	if cfg.JWTSecret == "changeme" && !cfg.IsDevelopment() {
		zlog.Warn("JWT_SECRET is using the default value")
	}

	loc := timezone.Location(cfg.ShopTimezone)
	hasher := auth.BcryptHasher{}
	users := infraRepo.NewUserGormRepository(db)
	auditLogger := audit.New(db)

	seedAdmin(cfg, users, hasher, auditLogger, zlog)

	deps := routes.Dependencies{
		Log:          zlog,
		Location:     loc,
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		Payments:     infraRepo.NewPaymentGormRepository(db),
		Users:        users,
		Catalog:      infraRepo.NewServiceGormRepository(db),
		AuditLogs:    auditLogger,
		Tokens:       auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Hasher:       hasher,
		Transitions:  appointment.TransitionsFor(cfg.StrictTransitions),
		Checkout: ucPayment.CheckoutConfig{
			Currency:   cfg.PaymentCurrency,
			SuccessURL: cfg.FrontendURL + "/payments/success",
			CancelURL:  cfg.FrontendURL + "/payments/cancel",
		},
		EncodePhoto:  media.ToWebP,
		Metrics:      middleware.NewMetrics(nil),
		HealthChecks: map[string]handlers.Pinger{"postgres": pingDB(db)},
		CORSOrigins:  cfg.CORSOrigins,
	}

	if cfg.CheckEmailDomain {
		deps.EmailDomain = validators.NewEmailDomain(nil, 3*time.Second).Valid
	}

	// --------------------------------------------------
	// Optional adapters
	// --------------------------------------------------

	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zlog.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			deps.Cache = cache.NewRedisCatalogCache(rdb, cfg.CacheTTL, zlog)
			deps.HealthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	switch cfg.PaymentGateway {
	case string(payment.MethodStripe):
		stripeGateway := gateway.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		deps.Gateway = stripeGateway
		if cfg.StripeWebhookSecret != "" {
			deps.Webhook = stripeGateway
		}
	case string(payment.MethodMercadoPago):
		mp, err := gateway.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			zlog.Fatal("mercadopago", zap.Error(err))
		}
		deps.Gateway = mp
	case "", "none":
	default:
		zlog.Fatal("unknown PAYMENT_GATEWAY", zap.String("value", cfg.PaymentGateway))
	}

	if cfg.StorageEnabled() {
		deps.Photos = storage.NewS3Store(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		zlog.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("timezone", loc.String()),
			zap.String("gateway", cfg.PaymentGateway),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}

func seedAdmin(
	cfg *config.Config,
	users *infraRepo.UserGormRepository,
	hasher auth.PasswordHasher,
	auditLogger *audit.Logger,
	zlog *zap.Logger,
) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}

	ctx := context.Background()
	u, created, err := ucUser.SeedAdmin(ctx, users, hasher, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		zlog.Fatal("seed admin", zap.Error(err))
	}
	if !created {
		return
	}

	if err := auditLogger.Log(ctx, audit.Event{
		UserID:   &u.ID,
		Action:   "admin_seeded",
		Entity:   "user",
		EntityID: &u.ID,
	}); err != nil {
		zlog.Warn("audit admin_seeded", zap.Error(err))
	}
	zlog.Info("admin seeded", zap.String("email", u.Email))
}

func pingDB(db *gorm.DB) handlers.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
