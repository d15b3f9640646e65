package suggestion

import (
	"context"
	"errors"
	"time"

	modeldb "suggest-relay-bot/internal/lib/database/model"
)

func (h *HandlerDBSuggestion) RecordSuggestion(ctx context.Context, userID int64, text string, date time.Time) (uint, error) {
	if text == "" {
		return 0, errors.New("suggestion text is empty")
	}

	row := modeldb.Suggestion{
		UserID: userID,
		Text:   text,
		Date:   date,
	}
	if err := h.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}
