package moderation

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"suggest-relay-bot/logging"
)

type Settings struct {
	Admins  []int64
	Channel Chat
	Mirrors []Mirror
}

// Relay ведет предложение от пользователя к админам и дальше в канал.
// Своего состояния у него нет: все, что нужно для решения, берется из
// текста сообщения, на кнопку под которым нажал админ. Копии запроса у
// разных админов друг о друге не знают, поэтому два одобрения дают две
// публикации.
type Relay struct {
	store     Store
	transport Transport
	admins    []int64
	channel   Chat
	mirrors   []Mirror
	now       func() time.Time
}

func NewRelay(store Store, transport Transport, settings Settings) *Relay {
	return &Relay{
		store:     store,
		transport: transport,
		admins:    settings.Admins,
		channel:   settings.Channel,
		mirrors:   settings.Mirrors,
		now:       time.Now,
	}
}

// Greet отвечает на /start.
func (r *Relay) Greet(ctx context.Context, chat Chat) error {
	if err := r.transport.SendText(ctx, chat, welcomeText, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

// HandleSubmission сохраняет предложение, рассылает его админам и
// подтверждает прием автору. Ошибка сохранения не останавливает рассылку,
// она возвращается вызывающему после подтверждения.
func (r *Relay) HandleSubmission(ctx context.Context, s Submission) (SubmissionOutcome, error) {
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return SubmissionOutcome{Ignored: true}, nil
	}

	var (
		outcome  SubmissionOutcome
		storeErr error
	)

	id, err := r.store.RecordSuggestion(ctx, s.SubmitterID, text, r.now())
	if err != nil {
		storeErr = fmt.Errorf("%w: %w", ErrStorage, err)
		logging.Logf(logging.ModuleModeration, logrus.ErrorLevel, "Не удалось сохранить предложение от %d: %v", s.SubmitterID, err)
	} else {
		outcome.SuggestionID = id
	}

	ack := submissionAck
	prompt := BuildPrompt(s.DisplayName, text)
	if fitsMessage(prompt, text) {
		outcome.Deliveries = r.fanOut(ctx, prompt, ReviewButtons(s.SubmitterID))
	} else {
		outcome.TooLong = true
		ack = fmt.Sprintf(tooLongNotice, textLimit(s.DisplayName))
		logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Предложение от %d длиннее %d символов, админам не отправлено", s.SubmitterID, MaxMessageLength)
	}

	ackChat := Chat{ID: s.ChatID}
	if ackChat.ID == 0 {
		ackChat.ID = s.SubmitterID
	}
	if err := r.transport.SendText(ctx, ackChat, ack, nil); err != nil {
		logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Не удалось подтвердить прием пользователю %d: %v", s.SubmitterID, err)
	} else {
		outcome.Acknowledged = true
	}

	return outcome, storeErr
}

func (r *Relay) fanOut(ctx context.Context, prompt string, buttons []Button) []Delivery {
	deliveries := make([]Delivery, 0, len(r.admins))
	for _, adminID := range r.admins {
		d := Delivery{AdminID: adminID}
		if err := r.transport.SendText(ctx, Chat{ID: adminID}, prompt, buttons); err != nil {
			d.Err = fmt.Errorf("%w: admin %d: %w", ErrDelivery, adminID, err)
			logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Не удалось отправить админу %d: %v", adminID, err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries
}

// Approve публикует текст запроса в канал и помечает копию админа как
// одобренную. Если канал не принял пост, сообщение админа не меняется и
// кнопку можно нажать снова.
func (r *Relay) Approve(ctx context.Context, in Interaction) (Resolution, error) {
	if err := r.authorize(in); err != nil {
		return r.fail(ctx, in, err)
	}

	action, err := ParseAction(in.Tag)
	if err == nil && action.Kind != ActionApprove {
		err = fmt.Errorf("%w: %q is not an approval", ErrMalformedAction, in.Tag)
	}
	if err != nil {
		return r.fail(ctx, in, err)
	}

	text, err := ExtractSuggestion(in.MessageText)
	if err != nil {
		return r.fail(ctx, in, err)
	}

	if err := r.transport.SendText(ctx, r.channel, text, nil); err != nil {
		logging.Logf(logging.ModuleModeration, logrus.ErrorLevel, "Ошибка публикации в канал %s: %v", r.channel, err)
		r.answer(ctx, in.ID, toastPublishFailed)
		return Resolution{State: StatePending, SubmitterID: action.SubmitterID, Text: text}, fmt.Errorf("%w: %w", ErrPublication, err)
	}

	for _, m := range r.mirrors {
		if err := m.Mirror(ctx, text); err != nil {
			logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Не удалось продублировать пост: %v", err)
		}
	}

	if err := r.transport.EditText(ctx, in.Message, approvedText(text)); err != nil {
		logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Пост опубликован, но сообщение админа %d не обновлено: %v", in.AdminID, err)
	}
	r.answer(ctx, in.ID, toastPublished)

	logging.Logf(logging.ModuleModeration, logrus.InfoLevel, "Админ %d одобрил предложение пользователя %d", in.AdminID, action.SubmitterID)
	return Resolution{State: StateApproved, SubmitterID: action.SubmitterID, Text: text}, nil
}

// Reject помечает копию админа как отклоненную. В канал ничего не уходит.
// Пустой Tag допустим: для отказа id автора не нужен.
func (r *Relay) Reject(ctx context.Context, in Interaction) (Resolution, error) {
	if err := r.authorize(in); err != nil {
		return r.fail(ctx, in, err)
	}

	var action Action
	if in.Tag != "" {
		var err error
		action, err = ParseAction(in.Tag)
		if err == nil && action.Kind != ActionReject {
			err = fmt.Errorf("%w: %q is not a rejection", ErrMalformedAction, in.Tag)
		}
		if err != nil {
			return r.fail(ctx, in, err)
		}
	}

	text, err := ExtractSuggestion(in.MessageText)
	if err != nil {
		return r.fail(ctx, in, err)
	}

	if err := r.transport.EditText(ctx, in.Message, rejectedText(text)); err != nil {
		return r.fail(ctx, in, fmt.Errorf("%w: %w", ErrDelivery, err))
	}
	r.answer(ctx, in.ID, toastRejected)

	logging.Logf(logging.ModuleModeration, logrus.InfoLevel, "Админ %d отклонил предложение пользователя %d", in.AdminID, action.SubmitterID)
	return Resolution{State: StateRejected, SubmitterID: action.SubmitterID, Text: text}, nil
}

// authorize пропускает только нажатия от админов из настроек.
func (r *Relay) authorize(in Interaction) error {
	if slices.Contains(r.admins, in.AdminID) {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnauthorized, in.AdminID)
}

// Fail отвечает админу общим сообщением об ошибке. Используется и
// роутером для кнопок, которые он не узнал.
func (r *Relay) Fail(ctx context.Context, in Interaction, err error) error {
	_, err = r.fail(ctx, in, err)
	return err
}

func (r *Relay) fail(ctx context.Context, in Interaction, err error) (Resolution, error) {
	logging.Logf(logging.ModuleModeration, logrus.ErrorLevel, "Ошибка обработки кнопки %q от админа %d: %v", in.Tag, in.AdminID, err)
	r.answer(ctx, in.ID, toastFailed)
	return Resolution{State: StatePending}, err
}

func (r *Relay) answer(ctx context.Context, interactionID, toast string) {
	if interactionID == "" {
		return
	}
	if err := r.transport.Answer(ctx, interactionID, toast); err != nil {
		logging.Logf(logging.ModuleModeration, logrus.WarnLevel, "Не удалось ответить на нажатие %s: %v", interactionID, err)
	}
}
