package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"suggest-relay-bot/internal/core/service/moderation"
	"suggest-relay-bot/logging"
)

// Router разбирает входящие обновления и передает их модерации.
// Каждое обновление обрабатывается независимо, ошибки только логируются.
type Router struct {
	relay *moderation.Relay
}

func NewRouter(relay *moderation.Relay) *Router {
	return &Router{relay: relay}
}

func (r *Router) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		r.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		r.handleCallback(ctx, update.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}

	if message.IsCommand() && message.Command() == "start" {
		if err := r.relay.Greet(ctx, moderation.Chat{ID: message.Chat.ID}); err != nil {
			logging.Log(logging.ModuleTelegram, logrus.WarnLevel, fmt.Sprintf("Не удалось ответить на /start: %v", err))
		}
		return
	}

	outcome, err := r.relay.HandleSubmission(ctx, moderation.Submission{
		SubmitterID: message.From.ID,
		ChatID:      message.Chat.ID,
		DisplayName: displayName(message.From),
		Text:        message.Text,
	})
	if outcome.Ignored {
		return
	}
	if err != nil {
		logging.Log(logging.ModuleTelegram, logrus.ErrorLevel, fmt.Sprintf("Предложение от %d не сохранено: %v", message.From.ID, err))
	}
	if outcome.TooLong {
		logging.Log(logging.ModuleTelegram, logrus.WarnLevel, fmt.Sprintf("Предложение #%d от %d слишком длинное и не разослано", outcome.SuggestionID, message.From.ID))
		return
	}
	logging.Log(logging.ModuleTelegram, logrus.InfoLevel, fmt.Sprintf("Получено предложение #%d от %d, разослано админам: %d из %d",
		outcome.SuggestionID, message.From.ID, len(outcome.Deliveries)-len(outcome.Failed()), len(outcome.Deliveries)))
}

func (r *Router) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	in := moderation.Interaction{
		ID:  callback.ID,
		Tag: callback.Data,
	}
	if callback.From != nil {
		in.AdminID = callback.From.ID
	}
	if callback.Message != nil {
		in.MessageText = callback.Message.Text
		if callback.Message.Chat != nil {
			in.Message = moderation.MessageRef{ChatID: callback.Message.Chat.ID, MessageID: callback.Message.MessageID}
		}
	}

	switch {
	case strings.HasPrefix(callback.Data, string(moderation.ActionApprove)):
		_, _ = r.relay.Approve(ctx, in)
	case strings.HasPrefix(callback.Data, string(moderation.ActionReject)):
		_, _ = r.relay.Reject(ctx, in)
	default:
		_ = r.relay.Fail(ctx, in, fmt.Errorf("%w: %q", moderation.ErrMalformedAction, callback.Data))
	}
}

// displayName - username, а если его нет, то имя и фамилия.
func displayName(user *tgbotapi.User) string {
	if user.UserName != "" {
		return user.UserName
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
