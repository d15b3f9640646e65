package suggestion

import (
	"context"

	modeldb "suggest-relay-bot/internal/lib/database/model"
)

func (h *HandlerDBSuggestion) GetSuggestionsByUser(ctx context.Context, userID int64) ([]modeldb.Suggestion, error) {
	var suggestions []modeldb.Suggestion
	err := h.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}
