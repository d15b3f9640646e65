package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"suggest-relay-bot/logging"
)

const (
	shutdownTimeout = 10 * time.Second
	maxUpdateSize   = 1 << 20

	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
)

// WebhookServer принимает обновления от Telegram на одном POST-маршруте.
// Ответ всегда пустой 200, чтобы Telegram не повторял доставку.
// Если задан secret, запросы без совпадающего заголовка отбрасываются.
type WebhookServer struct {
	router *Router
	secret string
	server *http.Server
}

func NewWebhookServer(addr, path, secret string, router *Router) *WebhookServer {
	ws := &WebhookServer{router: router, secret: secret}

	r := mux.NewRouter()
	r.HandleFunc(path, ws.handleWebhook).Methods(http.MethodPost)

	ws.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ws
}

func (ws *WebhookServer) Handler() http.Handler {
	return ws.server.Handler
}

// Run слушает до отмены ctx, после чего корректно останавливает сервер.
func (ws *WebhookServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Log(logging.ModuleWebhook, logrus.InfoLevel, fmt.Sprintf("Сервер слушает %s", ws.server.Addr))
		if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown webhook server: %w", err)
	}
	return nil
}

func (ws *WebhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer w.WriteHeader(http.StatusOK)

	if !ws.authorized(r) {
		logging.Log(logging.ModuleWebhook, logrus.WarnLevel, fmt.Sprintf("Отброшен запрос с неверным секретом от %s", r.RemoteAddr))
		return
	}

	var update tgbotapi.Update
	body := http.MaxBytesReader(w, r.Body, maxUpdateSize)
	if err := json.NewDecoder(body).Decode(&update); err != nil {
		logging.Log(logging.ModuleWebhook, logrus.WarnLevel, fmt.Sprintf("Не удалось разобрать обновление: %v", err))
		return
	}

	// Обработка не должна обрываться, если Telegram закрыл соединение
	ws.router.HandleUpdate(context.WithoutCancel(r.Context()), update)
}

func (ws *WebhookServer) authorized(r *http.Request) bool {
	if ws.secret == "" {
		return true
	}
	got := r.Header.Get(secretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(ws.secret)) == 1
}
