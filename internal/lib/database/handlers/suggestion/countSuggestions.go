package suggestion

import (
	"context"

	modeldb "suggest-relay-bot/internal/lib/database/model"
)

func (h *HandlerDBSuggestion) CountSuggestions(ctx context.Context) (int64, error) {
	var count int64
	err := h.DB.WithContext(ctx).Model(&modeldb.Suggestion{}).Count(&count).Error
	return count, err
}
