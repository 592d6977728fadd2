// Package webhook serves the LINE bot: it validates webhook signatures,
// answers uniqueness and permutation commands, and replies through the
// Messaging API.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/garyellow/strcheck/internal/analyzer"
	"github.com/garyellow/strcheck/internal/config"
	"github.com/garyellow/strcheck/internal/ctxutil"
	"github.com/garyellow/strcheck/internal/logger"
	"github.com/garyellow/strcheck/internal/metrics"
	"github.com/garyellow/strcheck/internal/ratelimit"
	"github.com/garyellow/strcheck/pkg/lineutil"
)

// Replier sends reply messages. *messaging_api.MessagingApiAPI satisfies it.
type Replier interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
}

// Handler handles LINE webhook events
type Handler struct {
	channelSecret string
	client        Replier
	svc           *analyzer.Service
	metrics       *metrics.Metrics
	logger        *logger.Logger
	userLimiter   *ratelimit.KeyedLimiter
	wg            sync.WaitGroup

	webhookTimeout      time.Duration
	maxEventsPerWebhook int
	maxMessageLength    int
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	BotConfig   config.BotConfig
	Analyzer    *analyzer.Service
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
	UserLimiter *ratelimit.KeyedLimiter
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig, opts ...HandlerOption) (*Handler, error) {
	if cfg.Analyzer == nil {
		return nil, errors.New("webhook: analyzer is required")
	}

	h := &Handler{
		channelSecret:       cfg.BotConfig.LineChannelSecret,
		svc:                 cfg.Analyzer,
		metrics:             cfg.Metrics,
		logger:              cfg.Logger.WithModule("webhook"),
		userLimiter:         cfg.UserLimiter,
		webhookTimeout:      cfg.BotConfig.WebhookTimeout,
		maxEventsPerWebhook: cfg.BotConfig.MaxEventsPerWebhook,
		maxMessageLength:    cfg.BotConfig.MaxMessageLength,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.client == nil {
		client, err := messaging_api.NewMessagingApiAPI(cfg.BotConfig.LineChannelToken)
		if err != nil {
			return nil, fmt.Errorf("create messaging API client: %w", err)
		}
		h.client = client
	}

	return h, nil
}

// Handle is the Gin handler for the webhook endpoint
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("Invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.WithError(err).Error("Failed to parse webhook request")
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	// LINE expects 200 right away; replies go out asynchronously.
	c.Status(http.StatusOK)

	events := cb.Events
	if len(events) > h.maxEventsPerWebhook {
		h.logger.WithField("event_count", len(events)).
			WithField("limit", h.maxEventsPerWebhook).
			Warn("Too many events in webhook batch; truncating")
		events = events[:h.maxEventsPerWebhook]
	}
	// The request's backing memory may be reused once the response completes.
	events = append([]webhook.EventInterface(nil), events...)

	baseCtx := ctxutil.PreserveTracing(c.Request.Context())
	h.wg.Go(func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()

		for _, event := range events {
			h.processEvent(baseCtx, event)
		}
	})
}

// processEvent handles a single webhook event
func (h *Handler) processEvent(baseCtx context.Context, event webhook.EventInterface) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(baseCtx, h.webhookTimeout)
	defer cancel()

	source, replyToken, eventID := eventMeta(event)
	if eventID != "" {
		ctx = ctxutil.WithEventID(ctx, eventID)
	}
	userID := getUserID(source)
	if userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
	}
	if chatID := getChatID(source); chatID != "" {
		ctx = ctxutil.WithChatID(ctx, chatID)
	}

	var (
		name   string
		text   string
		status = "success"
	)
	switch e := event.(type) {
	case webhook.MessageEvent:
		msg, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			h.logger.DebugContext(ctx, "Ignoring non-text message", "message_type", e.Message.GetType())
			return
		}
		content := msg.Text
		if !isPersonalChat(source) {
			if !isBotMentioned(msg) {
				return
			}
			content = removeBotMentions(content, msg.Mention)
		}
		cmd := parseCommand(content)
		if cmd.name == cmdUnknown && !isPersonalChat(source) {
			cmd = command{name: cmdHelp}
		}
		name = cmd.name
		if !h.allow(userID) {
			h.logger.InfoContext(ctx, "User rate limit exceeded")
			status = "rate_limited"
			text = "⏳ 請求過於頻繁，請稍後再試"
			break
		}
		text = h.execute(ctx, cmd)
	case webhook.FollowEvent, webhook.JoinEvent:
		name = "welcome"
		text = "👋 你好！我可以檢查文字的字元是否重複，或兩段文字是否互為排列。\n\n" + helpText()
	default:
		h.logger.DebugContext(ctx, "Unsupported event type", "event_type", fmt.Sprintf("%T", event))
		return
	}

	if err := h.reply(replyToken, text, name); err != nil {
		h.logger.WithError(err).ErrorContext(ctx, "Failed to send reply", "command", name)
		h.record(name, "reply_error", start)
		return
	}
	h.record(name, status, start)

	h.logger.InfoContext(ctx, "Event processed",
		"command", name,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *Handler) allow(userID string) bool {
	if h.userLimiter == nil {
		return true
	}
	return h.userLimiter.Allow(userID)
}

func (h *Handler) reply(replyToken, text, command string) error {
	if replyToken == "" {
		return errors.New("empty reply token")
	}
	msg := lineutil.NewTextMessage(text, h.maxMessageLength)
	if command == cmdHelp || command == cmdUnknown || command == "welcome" {
		lineutil.AddQuickReply(msg, quickReplyActions()...)
	}
	_, err := h.client.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []messaging_api.MessageInterface{msg},
	})
	if err != nil && strings.Contains(err.Error(), "Invalid reply token") {
		return fmt.Errorf("reply token already used or expired: %w", err)
	}
	return err
}

func (h *Handler) record(command, status string, start time.Time) {
	if h.metrics != nil {
		h.metrics.RecordWebhook(command, status, time.Since(start).Seconds())
	}
}

// eventMeta extracts the source, reply token and webhook event ID.
func eventMeta(event webhook.EventInterface) (webhook.SourceInterface, string, string) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return e.Source, e.ReplyToken, e.WebhookEventId
	case webhook.FollowEvent:
		return e.Source, e.ReplyToken, e.WebhookEventId
	case webhook.JoinEvent:
		return e.Source, e.ReplyToken, e.WebhookEventId
	default:
		return nil, "", ""
	}
}

// getChatID returns the user, group or room ID the reply goes to.
func getChatID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.GroupId
	case webhook.RoomSource:
		return s.RoomId
	}
	return ""
}

func getUserID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}

func isPersonalChat(source webhook.SourceInterface) bool {
	_, ok := source.(webhook.UserSource)
	return ok
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
