package handlers

import (
	"gorm.io/gorm"
	"suggest-relay-bot/internal/lib/database/handlers/suggestion"
)

type DBHandlers struct {
	DB                 *gorm.DB
	SuggestionHandlers *suggestion.HandlerDBSuggestion
}

func (h *DBHandlers) Close() error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
