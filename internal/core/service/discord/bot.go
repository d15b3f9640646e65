package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"suggest-relay-bot/logging"
)

// Ограничение Discord на длину одного сообщения.
const maxMessageLength = 2000

// BotDiscord дублирует опубликованные предложения в канал Discord.
type BotDiscord struct {
	Session   *discordgo.Session
	ChannelID string
	Mention   string
}

func NewDiscordBot(token, channelID, mention string) (*BotDiscord, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	logging.Log(logging.ModuleDiscord, logrus.InfoLevel, fmt.Sprintf("Создана сессия Discord для канала %s", channelID))

	return &BotDiscord{Session: dg, ChannelID: channelID, Mention: mention}, nil
}

// Open подключает сессию к шлюзу Discord. Сами сообщения уходят через REST,
// но бот должен хотя бы раз представиться шлюзу, иначе Discord их не примет.
func (d *BotDiscord) Open() error {
	if err := d.Session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	logging.Log(logging.ModuleDiscord, logrus.InfoLevel, "Подключение к шлюзу Discord установлено")
	return nil
}

func (d *BotDiscord) Close() error {
	if err := d.Session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

func (d *BotDiscord) Mirror(ctx context.Context, text string) error {
	for _, chunk := range splitContent(formatContent(d.Mention, text), maxMessageLength) {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := d.Session.ChannelMessageSendComplex(d.ChannelID, &discordgo.MessageSend{
			Content: chunk,
		})
		if err != nil {
			return fmt.Errorf("send to discord channel %s: %w", d.ChannelID, err)
		}
	}

	logging.Log(logging.ModuleDiscord, logrus.InfoLevel, fmt.Sprintf("Пост продублирован в канал %s", d.ChannelID))
	return nil
}

func formatContent(mention, text string) string {
	switch {
	case mention == "":
		return text
	case strings.HasPrefix(mention, "@"):
		// @everyone или @here
		return mention + " " + text
	default:
		// ID роли
		return fmt.Sprintf("<@&%s> %s", mention, text)
	}
}

// splitContent режет текст на части не длиннее limit символов,
// стараясь резать по переводу строки.
func splitContent(content string, limit int) []string {
	runes := []rune(content)
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return append(chunks, string(runes))
}
