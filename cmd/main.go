package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"suggest-relay-bot/config"
	"suggest-relay-bot/internal/core/service/discord"
	"suggest-relay-bot/internal/core/service/moderation"
	"suggest-relay-bot/internal/core/service/telegram"
	"suggest-relay-bot/internal/lib/database"
	"suggest-relay-bot/logging"
)

func main() {
	configData, err := config.LoadConfig()
	if err != nil {
		logging.Log(logging.ModuleSystem, logrus.FatalLevel, fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	logger, err := logging.SetupLogger(configData.LogDir, configData.LogLevel)
	if err != nil {
		logging.Log(logging.ModuleSystem, logrus.FatalLevel, fmt.Sprintf("Ошибка настройки логов: %v", err))
	}
	logger.Info("suggest-relay-bot")

	channel, err := moderation.ParseChat(configData.ChannelID)
	if err != nil {
		logging.Log(logging.ModuleSystem, logrus.FatalLevel, fmt.Sprintf("Некорректный CHANNEL_ID: %v", err))
	}

	dbHandlers, err := database.InitDB(database.Options{
		Path:   configData.DatabasePath,
		LogDir: configData.LogDir,
	})
	if err != nil {
		logging.Log(logging.ModuleDatabase, logrus.FatalLevel, fmt.Sprintf("Ошибка инициализации базы данных: %v", err))
	}
	defer dbHandlers.Close()

	telegramBot, err := telegram.NewTelegramBot(configData.TelegramToken)
	if err != nil {
		logging.Log(logging.ModuleTelegram, logrus.FatalLevel, fmt.Sprintf("%v", err))
	}

	var mirrors []moderation.Mirror
	if configData.DiscordEnabled() {
		discordBot, err := discord.NewDiscordBot(configData.DiscordToken, configData.DiscordChannelID, configData.DiscordMention)
		if err != nil {
			logging.Log(logging.ModuleDiscord, logrus.ErrorLevel, fmt.Sprintf("Дублирование в Discord отключено: %v", err))
		} else {
			if err := discordBot.Open(); err != nil {
				logging.Log(logging.ModuleDiscord, logrus.ErrorLevel, fmt.Sprintf("Ошибка подключения Discord бота: %v", err))
			}
			defer discordBot.Close()
			mirrors = append(mirrors, discordBot)
		}
	}

	relay := moderation.NewRelay(dbHandlers.SuggestionHandlers, telegramBot, moderation.Settings{
		Admins:  configData.AdminIDs,
		Channel: channel,
		Mirrors: mirrors,
	})
	if configData.WebhookSecret == "" {
		logging.Log(logging.ModuleWebhook, logrus.WarnLevel, "WEBHOOK_SECRET не задан, запросы к webhook не проверяются")
	}
	server := telegram.NewWebhookServer(configData.ListenAddr(), configData.WebhookPath(), configData.WebhookSecret, telegram.NewRouter(relay))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telegramBot.SetWebhook(configData.WebhookURL, configData.WebhookSecret); err != nil {
		logging.Log(logging.ModuleTelegram, logrus.ErrorLevel, fmt.Sprintf("%v", err))
		return
	}

	logging.Log(logging.ModuleSystem, logrus.InfoLevel, "Бот приступил к работе...")
	if err := server.Run(ctx); err != nil {
		logging.Log(logging.ModuleWebhook, logrus.ErrorLevel, fmt.Sprintf("Ошибка сервера: %v", err))
	}

	if err := telegramBot.DeleteWebhook(); err != nil {
		logging.Log(logging.ModuleTelegram, logrus.WarnLevel, fmt.Sprintf("%v", err))
	}
	logging.Log(logging.ModuleSystem, logrus.InfoLevel, "Бот остановлен")
}
