package telegram

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suggest-relay-bot/internal/core/service/moderation"
)

func TestSendTextWithButtons(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	err := bot.SendText(context.Background(), moderation.Chat{ID: 42}, "hello", moderation.ReviewButtons(7))
	require.NoError(t, err)

	calls := api.callsTo("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "42", calls[0].Values.Get("chat_id"))
	assert.Equal(t, "hello", calls[0].Values.Get("text"))
	assert.Contains(t, calls[0].Values.Get("reply_markup"), `"callback_data":"approve:7"`)
	assert.Contains(t, calls[0].Values.Get("reply_markup"), `"callback_data":"reject:7"`)
}

func TestSendTextToChannelUsername(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	require.NoError(t, bot.SendText(context.Background(), moderation.Chat{Username: "@ideas"}, "post", nil))

	calls := api.callsTo("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "@ideas", calls[0].Values.Get("chat_id"))
	assert.Empty(t, calls[0].Values.Get("reply_markup"))
}

func TestSendTextReportsAPIError(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)
	api.fail("sendMessage:42", "Forbidden: bot was blocked by the user")

	err := bot.SendText(context.Background(), moderation.Chat{ID: 42}, "hello", nil)
	assert.ErrorContains(t, err, "bot was blocked")
}

func TestSendTextHonoursCancelledContext(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, bot.SendText(ctx, moderation.Chat{ID: 1}, "x", nil), context.Canceled)
	assert.Empty(t, api.allCalls())
}

func TestEditTextAndAnswer(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	require.NoError(t, bot.EditText(context.Background(), moderation.MessageRef{ChatID: 5, MessageID: 99}, "done"))
	require.NoError(t, bot.Answer(context.Background(), "cb-1", "ok!"))

	edits := api.callsTo("editMessageText")
	require.Len(t, edits, 1)
	assert.Equal(t, "5", edits[0].Values.Get("chat_id"))
	assert.Equal(t, "99", edits[0].Values.Get("message_id"))
	assert.Equal(t, "done", edits[0].Values.Get("text"))

	answers := api.callsTo("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, "cb-1", answers[0].Values.Get("callback_query_id"))
	assert.Equal(t, "ok!", answers[0].Values.Get("text"))
}

func TestWebhookRegistration(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	require.NoError(t, bot.SetWebhook("https://relay.example.com/webhook", "s3cret"))
	require.NoError(t, bot.DeleteWebhook())

	set := api.callsTo("setWebhook")
	require.Len(t, set, 1)
	assert.Equal(t, "https://relay.example.com/webhook", set[0].Values.Get("url"))
	assert.Equal(t, "s3cret", set[0].Values.Get("secret_token"))
	assert.Len(t, api.callsTo("deleteWebhook"), 1)

	api.fail("setWebhook", "Bad Request: bad webhook")
	assert.Error(t, bot.SetWebhook("https://relay.example.com/webhook", "s3cret"))
}

func TestWebhookRegistrationWithoutSecret(t *testing.T) {
	api := newFakeBotAPI(t)
	bot := api.bot(t)

	require.NoError(t, bot.SetWebhook("https://relay.example.com/webhook", ""))

	set := api.callsTo("setWebhook")
	require.Len(t, set, 1)
	_, sent := set[0].Values["secret_token"]
	assert.False(t, sent)
}
