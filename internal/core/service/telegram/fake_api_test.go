package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type apiCall struct {
	Method string
	Values url.Values
}

// fakeBotAPI отвечает на запросы tgbotapi как Bot API и запоминает их.
type fakeBotAPI struct {
	mu       sync.Mutex
	calls    []apiCall
	failures map[string]string
	server   *httptest.Server
}

func newFakeBotAPI(t *testing.T) *fakeBotAPI {
	t.Helper()
	f := &fakeBotAPI{failures: make(map[string]string)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

// fail заставляет method вернуть ошибку. Ключ - "method" или "method:chat_id".
func (f *fakeBotAPI) fail(key, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key] = description
}

func (f *fakeBotAPI) serve(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)
	_ = r.ParseForm()

	f.mu.Lock()
	if method != "getMe" {
		f.calls = append(f.calls, apiCall{Method: method, Values: r.PostForm})
	}
	desc, failed := f.failures[method+":"+r.PostForm.Get("chat_id")]
	if !failed {
		desc, failed = f.failures[method]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failed {
		fmt.Fprintf(w, `{"ok":false,"error_code":400,"description":%q}`, desc)
		return
	}

	switch method {
	case "getMe":
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Relay","username":"relay_bot"}}`)
	case "sendMessage", "editMessageText":
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":10,"date":0,"chat":{"id":1,"type":"private"}}}`)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}

func (f *fakeBotAPI) bot(t *testing.T) *BotTelegram {
	t.Helper()
	bot, err := NewTelegramBotWithEndpoint("TEST-TOKEN", f.server.URL+"/bot%s/%s", f.server.Client())
	require.NoError(t, err)
	return bot
}

func (f *fakeBotAPI) callsTo(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeBotAPI) allCalls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

type memStore struct {
	mu    sync.Mutex
	texts []string
	users []int64
}

func (s *memStore) RecordSuggestion(_ context.Context, submitterID int64, text string, _ time.Time) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	s.users = append(s.users, submitterID)
	return uint(len(s.texts)), nil
}

func (s *memStore) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.texts...)
}
