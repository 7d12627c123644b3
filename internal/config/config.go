package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config - настройки процесса, читаются из переменных окружения
// (в main перед этим подгружается .env через godotenv).
type Config struct {
	BotToken  string  // TELEGRAM_BOT_TOKEN, обязателен для бота
	Admins    []int64 // TELEGRAM_ADMINS, список ID через запятую
	DonateURL string  // DONATE_URL, ссылка для чаевых
	DataFile  string  // DATA_FILE, путь к JSON-файлу состояния
	DSN       string  // строка подключения PostgreSQL, если задан DB_HOST
	APIPort   string  // API_PORT для REST API
}

// Load читает конфигурацию. Некорректный список администраторов не
// останавливает запуск: бот работает без админ-панели.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		DonateURL: getenv("DONATE_URL", "https://example.com/donate"),
		DataFile:  getenv("DATA_FILE", "data.json"),
		APIPort:   getenv("API_PORT", "8080"),
	}

	admins, err := parseAdmins(os.Getenv("TELEGRAM_ADMINS"))
	if err != nil {
		return nil, err
	}
	cfg.Admins = admins

	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DSN = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, getenv("DB_PORT", "5432"),
			os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"),
		)
	}

	return cfg, nil
}

// RequireBotToken проверяет наличие токена бота.
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return errors.New("токен бота не найден: проверьте файл .env или переменные окружения")
	}
	return nil
}

func parseAdmins(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	admins := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный формат ID администраторов в TELEGRAM_ADMINS: %w", err)
		}
		admins = append(admins, id)
	}
	return admins, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
