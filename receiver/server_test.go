package receiver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prilive-com/parkbot"
	"github.com/prilive-com/parkbot/internal/metrics"
	"github.com/prilive-com/parkbot/internal/testutil"
	"github.com/prilive-com/parkbot/receiver"
	"github.com/prilive-com/parkbot/tg"
)

func newServer(t *testing.T, cfg receiver.Config, d receiver.Dispatcher, m *metrics.Metrics) *receiver.Server {
	t.Helper()
	handler := receiver.NewWebhookHandler(testLogger(), d, cfg, receiver.WithWebhookMetrics(m))
	return receiver.NewServer(cfg, handler,
		receiver.WithServerLogger(testLogger()),
		receiver.WithServerMetrics(m))
}

func TestServer_Routes(t *testing.T) {
	m := metrics.New()
	d := &stubDispatcher{reply: tg.SendMessage{ChatID: int64(1), Text: "hi"}}
	srv := newServer(t, testConfig(), d, m)
	h := srv.Handler()

	t.Run("GET root", func(t *testing.T) {
		resp := testutil.Get(t, h, "/")
		resp.AssertStatus(t, http.StatusOK)
		assert.Equal(t, hint, resp.BodyString())
	})

	t.Run("POST any path", func(t *testing.T) {
		for _, path := range []string{"/", "/bot123", "/a/b"} {
			resp := testutil.PostUpdate(t, h, path, tg.Update{UpdateID: 1})
			resp.AssertStatus(t, http.StatusOK)
			resp.AssertMethod(t, tg.MethodSendMessage)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		resp := testutil.Get(t, h, "/supersecretmetrics")
		resp.AssertStatus(t, http.StatusOK)
		resp.AssertContentType(t, "text/plain")
		assert.Contains(t, resp.BodyString(), "root_get_requests 1")
	})

	t.Run("metrics on POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/supersecretmetrics", nil)
		resp := testutil.Do(t, h, req)
		resp.AssertStatus(t, http.StatusOK)
		resp.AssertContentType(t, "text/plain")
	})

	t.Run("health disabled", func(t *testing.T) {
		resp := testutil.Get(t, h, "/readyz")
		assert.Equal(t, hint, resp.BodyString())
	})
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv := newServer(t, testConfig(), &stubDispatcher{}, nil)

	resp := testutil.Get(t, srv.Handler(), "/supersecretmetrics")
	resp.AssertStatus(t, http.StatusOK)
	assert.Equal(t, hint, resp.BodyString())
}

func TestServer_CustomMetricsPath(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsPath = "/metrics"
	srv := newServer(t, cfg, &stubDispatcher{}, metrics.New())

	testutil.Get(t, srv.Handler(), "/metrics").AssertContentType(t, "text/plain")
	assert.Equal(t, hint, testutil.Get(t, srv.Handler(), "/supersecretmetrics").BodyString())
}

func TestServer_WebhookPath(t *testing.T) {
	cfg := testConfig()
	cfg.WebhookPath = "/telegram"
	d := &stubDispatcher{}
	srv := newServer(t, cfg, d, nil)
	h := srv.Handler()

	testutil.PostUpdate(t, h, "/telegram", tg.Update{UpdateID: 1}).AssertStatus(t, http.StatusOK)

	resp := testutil.PostUpdate(t, h, "/elsewhere", tg.Update{UpdateID: 2})
	resp.AssertStatus(t, http.StatusNotFound)
	resp.AssertContentType(t, "application/json")
	resp.AssertJSONField(t, "error", "not found")

	assert.Equal(t, hint, testutil.Get(t, h, "/elsewhere").BodyString())
	assert.Equal(t, hint, testutil.Get(t, h, "/telegram").BodyString())
	assert.Equal(t, 1, d.calls())
}

func TestServer_Health(t *testing.T) {
	cfg := testConfig()
	cfg.HealthPathPrefix = "/healthz"
	srv := newServer(t, cfg, &stubDispatcher{}, nil)
	h := srv.Handler()

	live := testutil.Get(t, h, "/healthz/livez")
	live.AssertStatus(t, http.StatusOK)
	live.AssertJSONField(t, "status", "ok")

	notReady := testutil.Get(t, h, "/healthz/readyz")
	notReady.AssertStatus(t, http.StatusServiceUnavailable)
	notReady.AssertJSONField(t, "status", "not ready")

	srv.Health().SetReady(true)
	ready := testutil.Get(t, h, "/healthz/readyz")
	ready.AssertStatus(t, http.StatusOK)
	ready.AssertJSONField(t, "status", "ready")
}

func TestServer_HealthAtRoot(t *testing.T) {
	cfg := testConfig()
	cfg.HealthPathPrefix = "/"
	srv := newServer(t, cfg, &stubDispatcher{}, nil)

	testutil.Get(t, srv.Handler(), "/livez").AssertJSONField(t, "status", "ok")
	assert.Equal(t, hint, testutil.Get(t, srv.Handler(), "/").BodyString())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := newServer(t, testConfig(), &stubDispatcher{}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/"
	require.Eventually(t, srv.Health().Ready, time.Second, 10*time.Millisecond)

	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, hint, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.False(t, srv.Health().Ready())
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	srv := newServer(t, cfg, &stubDispatcher{}, nil)

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

// ==================== End to end ====================

func TestServer_ParkedBot(t *testing.T) {
	m := metrics.New()
	bot, err := parkbot.New(parkbot.WithMetrics(m), parkbot.WithLogger(testLogger()))
	require.NoError(t, err)
	defer bot.Close()

	srv := newServer(t, testConfig(), bot, m)
	h := srv.Handler()

	start := testutil.PostUpdate(t, h, "/", testutil.CommandUpdate(1, "/start", "en"))
	start.AssertStatus(t, http.StatusOK)
	start.AssertContentType(t, "application/json")
	start.AssertMethod(t, tg.MethodSendMessage)
	start.AssertJSONField(t, "parse_mode", "HTML")
	start.AssertJSONField(t, "chat_id", float64(testutil.TestChatID))
	start.AssertJSONField(t, "reply_markup", map[string]any{"remove_keyboard": true})

	// Same sender inside the window: acknowledged without a reply.
	testutil.PostUpdate(t, h, "/", testutil.CommandUpdate(2, "/help", "en")).AssertNoReply(t)

	// Group chatter is never answered.
	group := testutil.MessageUpdate(3, testutil.TestGroupChat(tg.ChatTypeGroup), "en", "hello")
	group.Message.From.ID = 555
	testutil.PostUpdate(t, h, "/", group).AssertNoReply(t)

	inline := testutil.InlineQueryUpdate(4, "", "de")
	inline.InlineQuery.From.ID = 777
	iq := testutil.PostUpdate(t, h, "/", inline)
	iq.AssertMethod(t, tg.MethodAnswerInlineQuery)
	iq.AssertJSONField(t, "switch_pm_parameter", "from_inline_query")
	iq.AssertJSONField(t, "results", []any{})

	metricsBody := testutil.Get(t, h, "/supersecretmetrics").BodyString()
	assert.Contains(t, metricsBody, `parked_bot_update{method="/start"} 1`)
	assert.Contains(t, metricsBody, `parked_bot_update{method="inline_query"} 1`)
	assert.Contains(t, metricsBody, `parked_bot_dropped_updates{reason="rate_limited"} 1`)
	assert.NotContains(t, metricsBody, `method="/help"`)
}

func TestServer_ParkedBotRawTelegramPayload(t *testing.T) {
	bot, err := parkbot.New(parkbot.WithLogger(testLogger()))
	require.NoError(t, err)
	defer bot.Close()

	srv := newServer(t, testConfig(), bot, nil)

	payload := `{
		"update_id": 10000,
		"message": {
			"message_id": 1365,
			"date": 1441645532,
			"chat": {"id": 1111111, "type": "private", "first_name": "Test"},
			"from": {"id": 1111111, "is_bot": false, "first_name": "Test", "language_code": "fr"},
			"text": "/settings@any_parked_bot",
			"entities": [{"type": "bot_command", "offset": 0, "length": 24}]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(payload)))
	resp := testutil.Do(t, srv.Handler(), req)

	resp.AssertStatus(t, http.StatusOK)
	var reply map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &reply))
	assert.Equal(t, "sendMessage", reply["method"])
	assert.Equal(t, float64(1111111), reply["chat_id"])
	assert.True(t, strings.Contains(reply["text"].(string), "<b>"))
}
