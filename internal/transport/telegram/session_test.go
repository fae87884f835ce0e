package telegram

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/feed-announcer/internal/modules/channel/domain"
	"github.com/reshetovitsme/feed-announcer/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:TEST"

// fakeBotAPI answers the handful of Bot API methods the session uses.
type fakeBotAPI struct {
	mu         sync.Mutex
	getMeFails atomic.Int32
	chatFound  bool
	sendFails  bool
	sentTexts  []string
	sentChats  []string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	_ = r.ParseMultipartForm(1 << 20)

	switch method {
	case "getMe":
		if f.getMeFails.Load() > 0 {
			f.getMeFails.Add(-1)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Announcer","username":"announcer_bot"}}`))
	case "getChat":
		f.mu.Lock()
		found := f.chatFound
		f.mu.Unlock()
		if !found {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":-100123,"type":"channel","title":"News","username":"news","accent_color_id":0,"max_reaction_count":0}}`))
	case "sendMessage":
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.sendFails {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot is not a member of the channel chat"}`))
			return
		}
		f.sentTexts = append(f.sentTexts, r.FormValue("text"))
		f.sentChats = append(f.sentChats, r.FormValue("chat_id"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":-100123,"type":"channel"},"text":"ok"}}`))
	default:
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	}
}

func newTestSession(t *testing.T, api *fakeBotAPI) *Session {
	t.Helper()
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	b, err := bot.New(testToken, bot.WithSkipGetMe(), bot.WithServerURL(ts.URL))
	require.NoError(t, err)

	s := NewSession(b)
	s.retryDelay = 10 * time.Millisecond
	return s
}

func TestSession_AwaitReady(t *testing.T) {
	api := &fakeBotAPI{}
	api.getMeFails.Store(2)
	s := newTestSession(t, api)

	select {
	case <-s.Ready():
		t.Fatal("session ready before login")
	default:
	}

	s.awaitReady(context.Background())

	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("session never became ready")
	}
	assert.Equal(t, int32(0), api.getMeFails.Load())
}

func TestSession_AwaitReady_ContextCancelled(t *testing.T) {
	api := &fakeBotAPI{}
	api.getMeFails.Store(1000)
	s := newTestSession(t, api)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.awaitReady(ctx)

	select {
	case <-s.Ready():
		t.Fatal("session must not be ready")
	default:
	}
}

func TestSession_ResolveChannel(t *testing.T) {
	api := &fakeBotAPI{chatFound: true}
	s := newTestSession(t, api)

	ch, err := s.ResolveChannel(context.Background(), -100123)
	require.NoError(t, err)
	assert.Equal(t, int64(-100123), ch.ID)
	assert.Equal(t, "News", ch.Title)
	assert.Equal(t, "news", ch.Username)
	assert.Equal(t, "channel", ch.Type)
}

func TestSession_ResolveChannel_NotFound(t *testing.T) {
	s := newTestSession(t, &fakeBotAPI{})

	_, err := s.ResolveChannel(context.Background(), -100999)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrChannelNotFound))
}

func TestSession_Send(t *testing.T) {
	api := &fakeBotAPI{}
	s := newTestSession(t, api)

	err := s.Send(context.Background(), &domain.Channel{ID: -100123}, "https://example.com/a")
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"https://example.com/a"}, api.sentTexts)
	assert.Equal(t, []string{"-100123"}, api.sentChats)
}

func TestSession_Send_Failure(t *testing.T) {
	s := newTestSession(t, &fakeBotAPI{sendFails: true})

	err := s.Send(context.Background(), &domain.Channel{ID: -100123}, "https://example.com/a")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrDelivery))
}
