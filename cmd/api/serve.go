package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "accounting/api/swagger" // swagger docs
	"accounting/internal/config"
	"accounting/internal/database"
	"accounting/internal/handler"
	"accounting/internal/logger"
	"accounting/internal/middleware"
	"accounting/internal/repository"
	"accounting/internal/service"
	"accounting/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "start without applying pending migrations")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("server")

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		return err
	}
	log.Info().Str("host", cfg.DBHost).Str("database", cfg.DBName).Msg("connected to PostgreSQL")

	if !skipMigrations {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	router := buildRouter(cfg, db, wsHub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("mode", cfg.GinMode).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildRouter wires repositories, services and handlers onto a gin engine
func buildRouter(cfg *config.Config, db *gorm.DB, wsHub *websocket.Hub) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	middleware.InitJWT(cfg.JWTSecret)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	sequenceRepo := repository.NewInvoiceSequenceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	auditService := service.NewAuditService(auditRepo)
	userService := service.NewUserService(userRepo, auditService, cfg.JWTSecret, cfg.TokenTTL)
	partyService := service.NewPartyService(partyRepo, auditService, txManager)
	statisticsService := service.NewStatisticsService(statisticsRepo)
	invoiceService := service.NewInvoiceService(
		invoiceRepo,
		sequenceRepo,
		service.NewPartyDirectory(partyRepo),
		auditService,
		wsHub,
		txManager,
	)
	categoryService := service.NewCategoryService(categoryRepo, auditService, txManager)
	incomeService := service.NewIncomeService(incomeRepo, categoryRepo, auditService, txManager)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, auditService, wsHub, txManager)

	secureCookies := cfg.GinMode == gin.ReleaseMode
	userHandler := handler.NewUserHandler(userService, cfg.TokenTTL, secureCookies)
	partyHandler := handler.NewPartyHandler(partyService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	incomeHandler := handler.NewIncomeHandler(incomeService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DEGRADED", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	root := router.Group("")
	userHandler.RegisterRoutes(root)
	partyHandler.RegisterRoutes(root)
	invoiceHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	statisticsHandler.RegisterRoutes(root)
	categoryHandler.RegisterRoutes(root)
	incomeHandler.RegisterRoutes(root)
	expenseHandler.RegisterRoutes(root)

	return router
}
