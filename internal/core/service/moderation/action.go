package moderation

import (
	"fmt"
	"strconv"
	"strings"
)

type ActionKind string

const (
	ActionApprove ActionKind = "approve"
	ActionReject  ActionKind = "reject"
)

type Action struct {
	Kind        ActionKind
	SubmitterID int64
}

func (a Action) Tag() string {
	return string(a.Kind) + ":" + strconv.FormatInt(a.SubmitterID, 10)
}

// ParseAction разбирает "approve:<id>" и "reject:<id>". Старый формат
// "approve_<id>" тоже принимается, чтобы работали уже разосланные кнопки.
func ParseAction(tag string) (Action, error) {
	sep := strings.IndexAny(tag, ":_")
	if sep < 0 {
		return Action{}, fmt.Errorf("%w: %q", ErrMalformedAction, tag)
	}

	kind := ActionKind(tag[:sep])
	if kind != ActionApprove && kind != ActionReject {
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrMalformedAction, tag[:sep])
	}

	id, err := strconv.ParseInt(tag[sep+1:], 10, 64)
	if err != nil {
		return Action{}, fmt.Errorf("%w: bad user id in %q", ErrMalformedAction, tag)
	}

	return Action{Kind: kind, SubmitterID: id}, nil
}

// ReviewButtons - кнопки под запросом на модерацию.
func ReviewButtons(submitterID int64) []Button {
	return []Button{
		{Text: "✅ Одобрить", Data: Action{Kind: ActionApprove, SubmitterID: submitterID}.Tag()},
		{Text: "❌ Отклонить", Data: Action{Kind: ActionReject, SubmitterID: submitterID}.Tag()},
	}
}
