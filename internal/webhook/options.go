package webhook

import "time"

// HandlerOption is a functional option for configuring Handler.
type HandlerOption func(*Handler)

// WithReplier replaces the Messaging API client, e.g. with a fake in tests.
func WithReplier(r Replier) HandlerOption {
	return func(h *Handler) {
		h.client = r
	}
}

// WithWebhookTimeout overrides the per-event processing timeout.
func WithWebhookTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.webhookTimeout = timeout
	}
}
