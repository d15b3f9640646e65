package moderation

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

const separator = "\n\n"

// MaxMessageLength - предел Telegram для текста сообщения в UTF-16 единицах.
const MaxMessageLength = 4096

const (
	welcomeText   = "Привет! Отправь своё предложение сюда, и админы его рассмотрят 👀"
	submissionAck = "✅ Предложение отправлено на модерацию!"

	toastPublished     = "Пост опубликован в канал!"
	toastPublishFailed = "Ошибка публикации!"
	toastRejected      = "Пост отклонён"
	toastFailed        = "Не удалось обработать запрос"

	tooLongNotice = "⚠️ Предложение слишком длинное, сократите его до %d символов и отправьте снова"
)

// BuildPrompt собирает текст запроса для админа: заголовок, пустая строка, текст.
func BuildPrompt(displayName, text string) string {
	displayName = strings.Join(strings.Fields(displayName), " ")
	return fmt.Sprintf("💬 Новое предложение от @%s:%s%s", displayName, separator, text)
}

func approvedText(text string) string {
	return "✅ Одобрено и опубликовано:" + separator + text
}

func rejectedText(text string) string {
	return "❌ Отклонено:" + separator + text
}

// ExtractSuggestion возвращает все, что идет после первой пустой строки.
// Пустые строки внутри самого предложения сохраняются.
func ExtractSuggestion(body string) (string, error) {
	_, text, found := strings.Cut(body, separator)
	if !found {
		return "", fmt.Errorf("%w: no blank line separator", ErrMalformedContent)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty suggestion text", ErrMalformedContent)
	}
	return text, nil
}

// messageLength считает длину так же, как Telegram: в UTF-16 единицах.
func messageLength(text string) int {
	return len(utf16.Encode([]rune(text)))
}

// fitsMessage проверяет, что и запрос админу, и его итоговая правка
// помещаются в одно сообщение.
func fitsMessage(prompt, text string) bool {
	return messageLength(prompt) <= MaxMessageLength && messageLength(approvedText(text)) <= MaxMessageLength
}

// textLimit - сколько символов текста поместится в запрос от displayName.
func textLimit(displayName string) int {
	header := max(messageLength(BuildPrompt(displayName, "")), messageLength(approvedText("")))
	return MaxMessageLength - header
}
