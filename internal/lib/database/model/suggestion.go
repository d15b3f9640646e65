package modeldb

import "time"

// Suggestion - предложение пользователя. Строка только добавляется,
// результат модерации в ней не хранится.
type Suggestion struct {
	ID     uint      `gorm:"primaryKey;autoIncrement"`
	UserID int64     `gorm:"column:user_id;not null"`
	Text   string    `gorm:"column:text;not null"`
	Date   time.Time `gorm:"column:date;not null"`
}

func (Suggestion) TableName() string {
	return "suggestions"
}
