package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/barbizo19/Bankist/internal/api/handlers"
	"github.com/barbizo19/Bankist/internal/api/middleware"
	"github.com/barbizo19/Bankist/internal/domain/session"
	"github.com/barbizo19/Bankist/internal/pkg/jwt"
	"github.com/barbizo19/Bankist/internal/pkg/logger"
	"github.com/barbizo19/Bankist/internal/pkg/metrics"
	"github.com/barbizo19/Bankist/internal/pkg/ratelimit"
	"github.com/barbizo19/Bankist/internal/repository"
	"github.com/barbizo19/Bankist/internal/seed"
	"github.com/barbizo19/Bankist/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	env := os.Getenv("ENV")
	logger.Init(env)
	defer logger.Sync()

	// Set Gin mode
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Build the in-memory account directory from the canonical seeds
	directory, err := repository.NewDirectoryRepository(seed.Accounts())
	if err != nil {
		logger.Fatal("Failed to build account directory", zap.Error(err))
	}
	metrics.UpdateAccountsTotal(directory.Count())

	sessions := session.NewStore()
	auditRepo := repository.NewAuditRepository()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		logger.Warn("JWT_SECRET not set, using insecure default")
	}
	jwtExpiryHours := 24
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			jwtExpiryHours = parsed
		}
	}
	jwtService := jwt.NewJWTService(jwtSecret, jwtExpiryHours)

	// Initialize services
	statementService := service.NewStatementService(directory, sessions)
	authService := service.NewAuthService(directory, sessions, auditRepo, jwtService, statementService)
	transactionService := service.NewTransactionService(directory, sessions, auditRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(statementService, transactionService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, statementService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting is optional: without Redis the API runs unthrottled
	var limiter *ratelimit.RateLimiter
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limiting disabled", zap.Error(err))
		} else {
			limiter = ratelimit.NewRateLimiter(redisClient)
			router.Use(middleware.RateLimitMiddleware(limiter))
			router.Use(middleware.SuspiciousActivityMiddleware(limiter))
			logger.Info("Rate limiting enabled", zap.String("redis", redisAddr))
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	// Ready check endpoint
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"accounts": directory.Count(),
		})
	})

	// API version endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Bankist API",
			"version": "0.1.0",
			"status":  "operational",
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtService, sessions))
		{
			authorized.GET("/statement", accountHandler.GetStatement)
			authorized.POST("/statement/sort", accountHandler.ToggleSort)
			authorized.POST("/transactions/transfer", transactionHandler.Transfer)
			authorized.POST("/transactions/loan", transactionHandler.RequestLoan)
			authorized.POST("/account/close", accountHandler.Close)
		}
	}

	// Server configuration
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
