package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Florddev/match-room-sub001/internal/api"
	"github.com/Florddev/match-room-sub001/internal/api/handler"
	"github.com/Florddev/match-room-sub001/internal/api/middleware"
	"github.com/Florddev/match-room-sub001/internal/application"
	"github.com/Florddev/match-room-sub001/internal/config"
	"github.com/Florddev/match-room-sub001/internal/infrastructure/paymentapi"
	"github.com/Florddev/match-room-sub001/internal/infrastructure/postgres"
	redisinfra "github.com/Florddev/match-room-sub001/internal/infrastructure/redis"
	"github.com/Florddev/match-room-sub001/internal/pkg/logger"
	"github.com/Florddev/match-room-sub001/internal/pkg/metrics"
	"github.com/Florddev/match-room-sub001/internal/worker"
)

func main() {
	defer logger.Sync()

	cfg := config.Load()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Error("データベース接続に失敗", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Error("マイグレーションに失敗", zap.Error(err))
		os.Exit(1)
	}

	// Redis接続
	redisClient, err := redisinfra.NewClient(&cfg.Redis)
	if err != nil {
		logger.Error("Redis接続に失敗", zap.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	// インフラ層
	hotelRepo := postgres.NewHotelRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	negotiationRepo := postgres.NewNegotiationRepository(db)
	txManager := postgres.NewTxManager(db)
	lockManager := redisinfra.NewLockManager(redisClient)
	roomCache := redisinfra.NewRoomCache(redisClient)
	paymentClient := paymentapi.NewClient(&cfg.Payment)

	// アプリケーション層
	availabilityService := application.NewAvailabilityService(bookingRepo, negotiationRepo, roomRepo)
	roomService := application.NewRoomService(roomRepo, hotelRepo, roomCache, availabilityService)
	bookingService := application.NewBookingService(bookingRepo, roomRepo, txManager, lockManager, availabilityService, paymentClient)
	negotiationService := application.NewNegotiationService(negotiationRepo, bookingRepo, roomRepo, txManager, lockManager, availabilityService)

	// ハンドラー
	roomHandler := handler.NewRoomHandler(roomService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	negotiationHandler := handler.NewNegotiationHandler(negotiationService)
	healthHandler := handler.NewHealthHandler()

	// メトリクスと統計ワーカー
	m := metrics.New()
	statsCollector := worker.NewBookingStatsCollector(bookingRepo, m, cfg.Worker.StatsInterval)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	// 公開エンドポイント
	v1.GET("/rooms", roomHandler.List)
	v1.GET("/rooms/:id", roomHandler.GetByID)
	v1.GET("/rooms/:id/availability", roomHandler.CheckAvailability)
	v1.GET("/hotels", roomHandler.ListHotels)
	v1.GET("/hotels/:id", roomHandler.GetHotel)
	v1.GET("/hotels/:id/rooms", roomHandler.GetHotelRooms)

	// 認証済みエンドポイント
	authed := v1.Group("", middleware.Identity(hotelRepo))
	authed.POST("/rooms", roomHandler.Create)
	authed.GET("/hotels/:id/negotiations", negotiationHandler.ListByHotel)

	authed.POST("/bookings", bookingHandler.Create)
	authed.GET("/bookings", bookingHandler.List)
	authed.GET("/bookings/:id", bookingHandler.GetByID)
	authed.POST("/bookings/:id/checkout", bookingHandler.Checkout)
	authed.POST("/bookings/:id/confirm", bookingHandler.Confirm)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	authed.POST("/negotiations", negotiationHandler.Create)
	authed.GET("/negotiations", negotiationHandler.List)
	authed.GET("/negotiations/:id", negotiationHandler.GetByID)
	authed.POST("/negotiations/:id/accept", negotiationHandler.Accept)
	authed.POST("/negotiations/:id/reject", negotiationHandler.Reject)
	authed.POST("/negotiations/:id/counter", negotiationHandler.Counter)
	authed.POST("/negotiations/:id/cancel", negotiationHandler.Cancel)

	// 予約統計の収集を開始
	workerCtx, workerCancel := context.WithCancel(context.Background())
	go statsCollector.Start(workerCtx)

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("サーバー起動エラー", zap.Error(err))
			os.Exit(1)
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	workerCancel()
	statsCollector.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
