package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatterWithModule(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "hello",
		Data:    logrus.Fields{"module": ModuleTelegram},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 12:30:00 (warning) [Telegram]: hello\n", string(out))
}

func TestCustomFormatterDefaultsToSystemModule(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "started",
		Data:    logrus.Fields{},
	}

	out, err := (&CustomFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 00:00:00 (info) [Система]: started\n", string(out))
}

func TestLogfTagsModule(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	Logf(ModuleModeration, logrus.InfoLevel, "admin %d", 42)

	assert.Contains(t, buf.String(), "[Moderation]: admin 42")
}

func TestSetupLoggerCreatesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	prev := log.Out
	t.Cleanup(func() { log.SetOutput(prev) })

	_, err := SetupLogger(dir, "debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	name := filepath.Join(dir, "log-"+time.Now().Format("2006-01-02")+".log")
	_, err = os.Stat(name)
	assert.NoError(t, err)
	log.SetLevel(logrus.InfoLevel)
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := SetupLogger("", "loud")
	assert.Error(t, err)
}
