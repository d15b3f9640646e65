package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"suggest-relay-bot/internal/core/service/moderation"
	"suggest-relay-bot/logging"
)

// BotTelegram - исходящая сторона Telegram: отправка, правка сообщений
// и ответы на нажатия кнопок.
type BotTelegram struct {
	Bot *tgbotapi.BotAPI
}

func NewTelegramBot(token string) (*BotTelegram, error) {
	return NewTelegramBotWithEndpoint(token, tgbotapi.APIEndpoint, nil)
}

// NewTelegramBotWithEndpoint позволяет указать свой адрес Bot API.
// Формат endpoint как у tgbotapi.APIEndpoint.
func NewTelegramBotWithEndpoint(token, endpoint string, client tgbotapi.HTTPClient) (*BotTelegram, error) {
	if client == nil {
		client = defaultHTTPClient()
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}
	logging.Log(logging.ModuleTelegram, logrus.InfoLevel, fmt.Sprintf("Успешное подключение к боту Telegram @%s", bot.Self.UserName))

	return &BotTelegram{Bot: bot}, nil
}

func (t *BotTelegram) SendText(ctx context.Context, chat moderation.Chat, text string, buttons []moderation.Button) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig
	if chat.Username != "" {
		msg = tgbotapi.NewMessageToChannel(chat.Username, text)
	} else {
		msg = tgbotapi.NewMessage(chat.ID, text)
	}
	if len(buttons) > 0 {
		msg.ReplyMarkup = buildInlineKeyboard(buttons)
	}

	if _, err := t.Bot.Send(msg); err != nil {
		return fmt.Errorf("send message to %s: %w", chat, err)
	}
	return nil
}

// EditText заменяет текст сообщения. Клавиатура при этом снимается,
// так что по отработанному запросу кнопок больше нет.
func (t *BotTelegram) EditText(ctx context.Context, msg moderation.MessageRef, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(msg.ChatID, msg.MessageID, text)
	if _, err := t.Bot.Send(edit); err != nil {
		return fmt.Errorf("edit message %d in %d: %w", msg.MessageID, msg.ChatID, err)
	}
	return nil
}

func (t *BotTelegram) Answer(ctx context.Context, callbackID string, toast string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.Bot.Request(tgbotapi.NewCallback(callbackID, toast)); err != nil {
		return fmt.Errorf("answer callback %s: %w", callbackID, err)
	}
	return nil
}

// SetWebhook регистрирует url. Непустой secret Telegram будет присылать в
// заголовке X-Telegram-Bot-Api-Secret-Token каждого обновления.
func (t *BotTelegram) SetWebhook(url, secret string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}

	// в WebhookConfig этой версии tgbotapi нет secret_token
	params := tgbotapi.Params{"url": wh.URL.String()}
	params.AddNonEmpty("secret_token", secret)
	if _, err := t.Bot.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	logging.Log(logging.ModuleTelegram, logrus.InfoLevel, fmt.Sprintf("Webhook установлен: %s", url))
	return nil
}

func (t *BotTelegram) DeleteWebhook() error {
	if _, err := t.Bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	logging.Log(logging.ModuleTelegram, logrus.InfoLevel, "Webhook удален")
	return nil
}

func buildInlineKeyboard(buttons []moderation.Button) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, button := range buttons {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
