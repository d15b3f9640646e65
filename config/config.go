package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"suggest-relay-bot/logging"
)

const (
	defaultPort         = 8080
	defaultDatabasePath = "database.db"
	defaultLogDir       = "logs"
	defaultLogLevel     = "info"
	defaultWebhookPath  = "/webhook"
)

// Ограничения Telegram для secret_token.
var webhookSecretPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,256}$`)

type Config struct {
	TelegramToken string
	AdminIDs      []int64
	// Числовой id канала или @username.
	ChannelID  string
	WebhookURL string
	// Секрет для заголовка X-Telegram-Bot-Api-Secret-Token. Пустой - без проверки.
	WebhookSecret string
	Port          int

	DatabasePath string
	LogDir       string
	LogLevel     string

	DiscordToken     string
	DiscordChannelID string
	DiscordMention   string
}

// LoadConfig читает .env (если он есть) и переменные окружения.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Log(logging.ModuleSystem, logrus.WarnLevel, fmt.Sprintf("Ошибка загрузки .env файла: %v", err))
	}

	adminIDs, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}

	port, err := getInt("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	config := &Config{
		TelegramToken:    strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		AdminIDs:         adminIDs,
		ChannelID:        strings.TrimSpace(os.Getenv("CHANNEL_ID")),
		WebhookURL:       strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		WebhookSecret:    strings.TrimSpace(os.Getenv("WEBHOOK_SECRET")),
		Port:             port,
		DatabasePath:     getString("DATABASE_PATH", defaultDatabasePath),
		LogDir:           getString("LOG_DIR", defaultLogDir),
		LogLevel:         getString("LOG_LEVEL", defaultLogLevel),
		DiscordToken:     strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		DiscordChannelID: strings.TrimSpace(os.Getenv("DISCORD_CHANNEL_ID")),
		DiscordMention:   strings.TrimSpace(os.Getenv("DISCORD_MENTION")),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch {
	case c.TelegramToken == "":
		return errors.New("BOT_TOKEN is required")
	case len(c.AdminIDs) == 0:
		return errors.New("ADMIN_IDS is required")
	case c.ChannelID == "":
		return errors.New("CHANNEL_ID is required")
	case c.WebhookURL == "":
		return errors.New("WEBHOOK_URL is required")
	}

	if _, err := url.Parse(c.WebhookURL); err != nil {
		return fmt.Errorf("parse WEBHOOK_URL: %w", err)
	}
	if c.WebhookSecret != "" && !webhookSecretPattern.MatchString(c.WebhookSecret) {
		return errors.New("WEBHOOK_SECRET must be 1-256 characters of A-Z, a-z, 0-9, _ and -")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}

	return nil
}

// WebhookPath - путь, на котором сервер принимает обновления.
func (c *Config) WebhookPath() string {
	u, err := url.Parse(c.WebhookURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return defaultWebhookPath
	}
	return u.Path
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_IDS: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
