package suggestion

import "gorm.io/gorm"

type HandlerDBSuggestion struct {
	DB *gorm.DB
}

func NewHandlerDBSuggestion(db *gorm.DB) *HandlerDBSuggestion {
	return &HandlerDBSuggestion{DB: db}
}
