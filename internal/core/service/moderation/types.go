package moderation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chat адресует получателя: по числовому id либо по @username канала.
type Chat struct {
	ID       int64
	Username string
}

// ParseChat разбирает "-1001234567890" или "@channel".
func ParseChat(raw string) (Chat, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "@") && len(raw) > 1 {
		return Chat{Username: raw}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Chat{}, fmt.Errorf("parse chat %q: %w", raw, err)
	}
	return Chat{ID: id}, nil
}

func (c Chat) String() string {
	if c.Username != "" {
		return c.Username
	}
	return strconv.FormatInt(c.ID, 10)
}

// MessageRef указывает на уже отправленное сообщение.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

type Button struct {
	Text string
	Data string
}

type Store interface {
	RecordSuggestion(ctx context.Context, submitterID int64, text string, submittedAt time.Time) (uint, error)
}

type Transport interface {
	SendText(ctx context.Context, chat Chat, text string, buttons []Button) error
	EditText(ctx context.Context, msg MessageRef, text string) error
	Answer(ctx context.Context, interactionID string, toast string) error
}

// Mirror дублирует опубликованный пост в другое место.
type Mirror interface {
	Mirror(ctx context.Context, text string) error
}

type Submission struct {
	SubmitterID int64
	// Чат для подтверждения. Ноль - писать в SubmitterID.
	ChatID      int64
	DisplayName string
	Text        string
}

// Interaction - нажатие админом кнопки под запросом на модерацию.
type Interaction struct {
	ID          string
	AdminID     int64
	Tag         string
	MessageText string
	Message     MessageRef
}

type Delivery struct {
	AdminID int64
	Err     error
}

// SubmissionOutcome описывает, что стало с предложением. При TooLong текст
// сохранен, но админам не отправлен.
type SubmissionOutcome struct {
	Ignored      bool
	TooLong      bool
	SuggestionID uint
	Deliveries   []Delivery
	Acknowledged bool
}

// Failed возвращает админов, до которых запрос не дошел.
func (o SubmissionOutcome) Failed() []int64 {
	var ids []int64
	for _, d := range o.Deliveries {
		if d.Err != nil {
			ids = append(ids, d.AdminID)
		}
	}
	return ids
}

type State int

const (
	StatePending State = iota
	StateApproved
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateApproved:
		return "approved"
	case StateRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Resolution - состояние копии запроса у конкретного админа после нажатия.
type Resolution struct {
	State       State
	SubmitterID int64
	Text        string
}
