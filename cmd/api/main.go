package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // PostgreSQL драйвер
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/config"
	"github.com/n1cash1/ClubOK/internal/handler"
	"github.com/n1cash1/ClubOK/internal/repository"
	"github.com/n1cash1/ClubOK/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("Файл .env не найден")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("ошибка конфигурации", zap.Error(err))
	}

	var store repository.Store
	if cfg.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.DSN)
		if err != nil {
			logger.Fatal("не удалось подключиться к базе данных", zap.Error(err))
		}
		store, err = repository.NewPostgresStore(db)
		if err != nil {
			logger.Fatal("не удалось инициализировать хранилище", zap.Error(err))
		}
	} else {
		store = repository.NewFileStore(cfg.DataFile, logger)
	}

	snap, err := store.Load()
	if err != nil {
		logger.Fatal("не удалось загрузить данные", zap.Error(err))
	}

	// API только читает состояние: уведомления не нужны.
	bookings := service.NewBookingService(snap, cfg.Admins, store, nil, logger)
	reviews := service.NewReviewService(snap, bookings, store, nil, logger)

	h := handler.NewHandler(bookings, reviews)
	router := gin.Default()
	api := router.Group("/api")
	{
		api.GET("/bookings", h.ListBookings)
		api.GET("/reviews", h.ListReviews)
		api.GET("/stats", h.Stats)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if err := router.Run(":" + cfg.APIPort); err != nil {
		logger.Fatal("ошибка запуска сервера", zap.Error(err))
	}
}
