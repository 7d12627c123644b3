package main

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/n1cash1/ClubOK/internal/bot"
	"github.com/n1cash1/ClubOK/internal/config"
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
	if err := cfg.RequireBotToken(); err != nil {
		logger.Fatal("ошибка конфигурации", zap.Error(err))
	}
	if len(cfg.Admins) == 0 {
		logger.Warn("администраторы не указаны, бот будет работать без админ-панели")
	}

	// Хранилище: PostgreSQL при заданном DB_HOST, иначе JSON-файл.
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
		// Работаем на состоянии по умолчанию: потеря данных хуже простоя.
		logger.Error("критическая ошибка загрузки данных, используются данные по умолчанию", zap.Error(err))
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("ошибка инициализации бота", zap.Error(err))
	}
	logger.Info("бот запущен", zap.String("username", api.Self.UserName))

	dispatcher := bot.NewDispatcher(api, cfg.Admins, logger)
	defer dispatcher.Close()

	bookings := service.NewBookingService(snap, cfg.Admins, store, dispatcher, logger)
	reviews := service.NewReviewService(snap, bookings, store, dispatcher, logger)
	h := bot.NewHandler(api, bookings, reviews, cfg.DonateURL, logger)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for update := range api.GetUpdatesChan(u) {
		h.HandleUpdate(update)
	}
}
