package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/metrics"
	"github.com/garyellow/strcheck/internal/ratelimit"
)

const testSecret = "test_channel_secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeReplier struct {
	mu       sync.Mutex
	requests []*messaging_api.ReplyMessageRequest
	err      error
}

func (f *fakeReplier) ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &messaging_api.ReplyMessageResponse{}, nil
}

func (f *fakeReplier) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, req := range f.requests {
		for _, msg := range req.Messages {
			if tm, ok := msg.(*messaging_api.TextMessage); ok {
				out = append(out, tm.Text)
			}
		}
	}
	return out
}

type testEnv struct {
	handler *Handler
	replier *fakeReplier
	metrics *metrics.Metrics
	router  *gin.Engine
}

func setupTestHandler(t *testing.T, burst int) *testEnv {
	t.Helper()

	log := logger.NewWithWriter("error", &bytes.Buffer{})
	m := metrics.New(prometheus.NewRegistry())

	svc, err := analyzer.New(config.CheckConfig{
		DefaultAlphabet:            "ascii",
		DefaultUniqueStrategy:      "table",
		DefaultPermutationStrategy: "array",
		MaxInputRunes:              32,
		MaxBatchSize:               4,
		BatchConcurrency:           2,
	}, m, log)
	require.NoError(t, err)

	botCfg := config.DefaultBotConfig()
	botCfg.LineChannelSecret = testSecret
	botCfg.LineChannelToken = "test_channel_token"
	botCfg.MaxEventsPerWebhook = 3

	limiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:         "user",
		Burst:        burst,
		RefillPerSec: 0.001,
		Metrics:      m,
	})
	t.Cleanup(limiter.Stop)

	replier := &fakeReplier{}
	handler, err := NewHandler(HandlerConfig{
		BotConfig:   botCfg,
		Analyzer:    svc,
		Metrics:     m,
		Logger:      log,
		UserLimiter: limiter,
	}, WithReplier(replier), WithWebhookTimeout(5*time.Second))
	require.NoError(t, err)

	router := gin.New()
	router.POST("/webhook", handler.Handle)

	return &testEnv{handler: handler, replier: replier, metrics: m, router: router}
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func textEvent(replyToken, userID, text string) string {
	return fmt.Sprintf(`{
		"type": "message",
		"mode": "active",
		"timestamp": 1700000000000,
		"webhookEventId": "evt-%s",
		"deliveryContext": {"isRedelivery": false},
		"replyToken": %q,
		"source": {"type": "user", "userId": %q},
		"message": {"type": "text", "id": "1", "quoteToken": "q", "text": %q}
	}`, replyToken, replyToken, userID, text)
}

func groupEvent(replyToken, text string, mentionSelf bool) string {
	mention := ""
	if mentionSelf {
		mention = `, "mention": {"mentionees": [{"type": "user", "index": 0, "length": 4, "isSelf": true}]}`
	}
	return fmt.Sprintf(`{
		"type": "message",
		"mode": "active",
		"timestamp": 1700000000000,
		"webhookEventId": "evt-%s",
		"deliveryContext": {"isRedelivery": false},
		"replyToken": %q,
		"source": {"type": "group", "groupId": "C1", "userId": "U9"},
		"message": {"type": "text", "id": "2", "quoteToken": "q", "text": %q%s}
	}`, replyToken, replyToken, text, mention)
}

func (e *testEnv) post(t *testing.T, events ...string) int {
	t.Helper()
	body := []byte(`{"destination": "Ubot", "events": [`)
	for i, ev := range events {
		if i > 0 {
			body = append(body, ',')
		}
		body = append(body, ev...)
	}
	body = append(body, "]}"...)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", sign(body))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.handler.Shutdown(ctx))
	return w.Code
}

func TestNewHandler_RequiresAnalyzer(t *testing.T) {
	_, err := NewHandler(HandlerConfig{
		BotConfig: config.DefaultBotConfig(),
		Logger:    logger.NewWithWriter("error", &bytes.Buffer{}),
	})
	assert.Error(t, err)
}

func TestHandle_HelpHasQuickReply(t *testing.T) {
	env := setupTestHandler(t, 10)

	require.Equal(t, http.StatusOK, env.post(t, textEvent("rt-h", "U1", "help")))
	require.Len(t, env.replier.requests, 1)
	msg, ok := env.replier.requests[0].Messages[0].(*messaging_api.TextMessage)
	require.True(t, ok)
	require.NotNil(t, msg.QuickReply)
	assert.Len(t, msg.QuickReply.Items, len(quickReplyActions()))
}

func TestHandleInvalidSignature(t *testing.T) {
	env := setupTestHandler(t, 10)

	body := []byte(`{"events":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", "invalid_signature")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.replier.texts())
}

func TestHandle_Commands(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contains string
	}{
		{"Unique distinct", "unique abc", "✅ 「abc」的字元皆不重複"},
		{"Unique repeated", "唯一 hello", "❌ 「hello」含有重複字元"},
		{"Permutation", "perm dog          | gOd", "互為排列"},
		{"Not a permutation", "排列 aab | abb", "不是彼此的排列"},
		{"Permutation without separator", "perm dog god", "請用「|」分隔"},
		{"Compare", "compare abca", "所有策略結果一致"},
		{"Compare permutation", "比較 listen | silent", "所有策略結果一致"},
		{"Outside alphabet", "unique café", "第 4 個字元「é」不在字元集 ascii 內"},
		{"Too long", "unique abcdefghijklmnopqrstuvwxyz0123456789", "輸入過長"},
		{"Help", "help", "使用說明"},
		{"Unknown", "hello there", "看不懂"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestHandler(t, 10)

			code := env.post(t, textEvent("rt-1", "U1", tt.text))
			require.Equal(t, http.StatusOK, code)

			texts := env.replier.texts()
			require.Len(t, texts, 1)
			assert.Contains(t, texts[0], tt.contains)
			assert.Equal(t, "rt-1", env.replier.requests[0].ReplyToken)
		})
	}
}

func TestHandle_GroupRequiresMention(t *testing.T) {
	env := setupTestHandler(t, 10)

	code := env.post(t,
		groupEvent("rt-1", "unique abc", false),
		groupEvent("rt-2", "@Bot unique abc", true),
	)
	require.Equal(t, http.StatusOK, code)

	texts := env.replier.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "字元皆不重複")
	assert.Equal(t, "rt-2", env.replier.requests[0].ReplyToken)
}

func TestHandle_UserRateLimit(t *testing.T) {
	env := setupTestHandler(t, 1)

	code := env.post(t,
		textEvent("rt-1", "U1", "unique abc"),
		textEvent("rt-2", "U1", "unique abc"),
		textEvent("rt-3", "U2", "unique abc"),
	)
	require.Equal(t, http.StatusOK, code)

	texts := env.replier.texts()
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "字元皆不重複")
	assert.Contains(t, texts[1], "請求過於頻繁")
	assert.Contains(t, texts[2], "字元皆不重複")
	assert.InDelta(t, 1, testutil.ToFloat64(env.metrics.WebhookRequestsTotal.WithLabelValues("unique", "rate_limited")), 0)
}

func TestHandle_TruncatesEvents(t *testing.T) {
	env := setupTestHandler(t, 10)

	events := make([]string, 0, 5)
	for i := range 5 {
		events = append(events, textEvent(fmt.Sprintf("rt-%d", i), fmt.Sprintf("U%d", i), "help"))
	}
	require.Equal(t, http.StatusOK, env.post(t, events...))

	assert.Len(t, env.replier.texts(), 3)
}

func TestHandle_ReplyError(t *testing.T) {
	env := setupTestHandler(t, 10)
	env.replier.err = errors.New("boom")

	require.Equal(t, http.StatusOK, env.post(t, textEvent("rt-1", "U1", "help")))
	assert.InDelta(t, 1, testutil.ToFloat64(env.metrics.WebhookRequestsTotal.WithLabelValues("help", "reply_error")), 0)
}

func TestHandlerShutdown(t *testing.T) {
	env := setupTestHandler(t, 10)

	ctx := context.Background()
	assert.NoError(t, env.handler.Shutdown(ctx))
	assert.NoError(t, env.handler.Shutdown(ctx))
}
