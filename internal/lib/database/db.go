package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"suggest-relay-bot/internal/lib/database/handlers"
	"suggest-relay-bot/internal/lib/database/handlers/suggestion"
	modeldb "suggest-relay-bot/internal/lib/database/model"
	"suggest-relay-bot/logging"
)

type Options struct {
	Path string
	// Каталог для db_queries.log. Пустой - журнал запросов отключен.
	LogDir string
}

// InitDB открывает базу и создает таблицу suggestions, если ее нет.
// Вызывать можно при каждом старте.
func InitDB(opts Options) (*handlers.DBHandlers, error) {
	// Создаем файл базы данных, если он не существует
	if _, err := os.Stat(opts.Path); os.IsNotExist(err) {
		logging.Log(logging.ModuleDatabase, logrus.InfoLevel, fmt.Sprintf("Создание базы данных по адресу: %s", opts.Path))
		if dir := filepath.Dir(opts.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		file, err := os.Create(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("create database file: %w", err)
		}
		file.Close()
	}

	queryLogger, err := newQueryLogger(opts.LogDir)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), &gorm.Config{
		Logger: queryLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Соединение берется на одну запись и закрывается после нее
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(0)
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&modeldb.Suggestion{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate suggestions: %w", err)
	}

	return &handlers.DBHandlers{
		DB:                 db,
		SuggestionHandlers: suggestion.NewHandlerDBSuggestion(db),
	}, nil
}

func newQueryLogger(dir string) (logger.Interface, error) {
	if dir == "" {
		return logger.Discard, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(dir, "db_queries.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open query log: %w", err)
	}

	return logger.New(
		log.New(logFile, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	), nil
}
