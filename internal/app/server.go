// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"hh-order-service/internal/config"
	"hh-order-service/internal/db"
	invoiceHandler "hh-order-service/internal/handlers/invoice"
	orderHandler "hh-order-service/internal/handlers/order"
	"hh-order-service/internal/middleware"
	"hh-order-service/internal/pkg/auth"
	"hh-order-service/internal/pkg/ratelimit"
	"hh-order-service/internal/repository/postgres"
	"hh-order-service/internal/service/allocator"
	"hh-order-service/internal/service/eventlog"
	invoicesvc "hh-order-service/internal/service/invoice"
	"hh-order-service/internal/service/lifecycle"
	"hh-order-service/internal/service/mailer"
	"hh-order-service/internal/service/registry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := postgres.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis (rate limiting only; optional) -----
	var limiter *ratelimit.Limiter
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		PoolSize: 10,
	})
	if err != nil {
		logger.Warn("redis unavailable, public endpoints run unthrottled", zap.Error(err))
	} else {
		limiter = ratelimit.NewLimiter(redisClient)
	}

	// ----- Repositories -----
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	// ----- Services -----
	events := eventlog.NewLog(s.cfg.PublicDir, logger)
	generator := invoicesvc.NewGenerator(s.cfg.PublicDir, logger)
	templates := mailer.NewTemplateSet()
	dispatcher := mailer.NewSMTPDispatcher(mailer.SMTPConfig{
		Host:     s.cfg.SMTPHost,
		Port:     s.cfg.SMTPPort,
		User:     s.cfg.SMTPUser,
		Pass:     s.cfg.SMTPPass,
		From:     s.cfg.SMTPFrom,
		FromName: s.cfg.SMTPFromName,
		Secure:   s.cfg.SMTPSecure,
	}, logger)

	reg := registry.NewRegistry(customerRepo, logger)
	alloc := allocator.NewAllocator(orderRepo, s.cfg.OrderPrefix, s.cfg.OrderSeed, logger)
	monitor := lifecycle.NewMonitor(orderRepo, generator, dispatcher, templates, events, lifecycle.Config{
		BaseURL:       s.cfg.BaseURL,
		InternalEmail: s.cfg.InternalEmail,
	}, logger)

	// ----- Handlers -----
	orders := orderHandler.NewOrderHandler(reg, alloc, monitor, logger)
	invoices := invoiceHandler.NewInvoiceHandler(monitor, generator, events, s.cfg.BaseURL, logger)

	// ----- Middlewares -----
	authMiddleware := auth.New(s.cfg.AuthSecret)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	SetupRouter(s.engine, &Handlers{
		OrderHandler:   orders,
		InvoiceHandler: invoices,
		AuthMiddleware: authMiddleware,
		Limiter:        limiter,
		Logger:         logger,
	})

	// ----- Start HTTP -----
	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
