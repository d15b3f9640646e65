package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Модули, под которыми пишутся записи журнала.
const (
	ModuleSystem     = "Система"
	ModuleDatabase   = "Database"
	ModuleTelegram   = "Telegram"
	ModuleDiscord    = "Discord"
	ModuleModeration = "Moderation"
	ModuleWebhook    = "Webhook"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&CustomFormatter{})
}

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format("2006-01-02 15:04:05")
	level := entry.Level.String()

	module, ok := entry.Data["module"].(string)
	if !ok || module == "" {
		module = ModuleSystem
	}

	return []byte(fmt.Sprintf("%s (%s) [%s]: %s\n", timestamp, level, module, entry.Message)), nil
}

// SetupLogger направляет журнал в stdout и в ежедневный файл внутри dir.
// Пустой dir означает только stdout.
func SetupLogger(dir string, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if dir == "" {
		log.SetOutput(os.Stdout)
		return log, nil
	}

	// Создаем директорию для логов, если она не существует
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	// Файл логов на каждый день
	fileName := filepath.Join(dir, fmt.Sprintf("log-%s.log", time.Now().Format("2006-01-02")))
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(io.MultiWriter(file, os.Stdout))

	return log, nil
}

// Logger возвращает общий логгер процесса.
func Logger() *logrus.Logger {
	return log
}

func Log(module string, level logrus.Level, message string) {
	entry := log.WithFields(logrus.Fields{
		"module": module,
	})

	switch level {
	case logrus.DebugLevel:
		entry.Debug(message)
	case logrus.InfoLevel:
		entry.Info(message)
	case logrus.WarnLevel:
		entry.Warn(message)
	case logrus.ErrorLevel:
		entry.Error(message)
	case logrus.FatalLevel:
		entry.Fatal(message)
	case logrus.PanicLevel:
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func Logf(module string, level logrus.Level, format string, args ...interface{}) {
	Log(module, level, fmt.Sprintf(format, args...))
}
