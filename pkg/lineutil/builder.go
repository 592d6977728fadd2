// Package lineutil provides helpers for building LINE reply messages.
package lineutil

import (
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// MaxQuickReplyItems is the LINE limit on quick reply buttons per message.
const MaxQuickReplyItems = 13

// maxLabelRunes is the LINE limit on action label length.
const maxLabelRunes = 20

// Action is an alias for the LINE SDK action interface for convenience.
type Action = messaging_api.ActionInterface

// NewTextMessage creates a text message, shortening text to at most limit
// runes. A limit of zero or less disables truncation.
func NewTextMessage(text string, limit int) *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text: TruncateRunes(text, limit),
	}
}

// NewMessageAction creates an action that sends text when tapped.
// Labels longer than LINE allows are shortened.
func NewMessageAction(label, text string) Action {
	return &messaging_api.MessageAction{
		Label: TruncateRunes(label, maxLabelRunes),
		Text:  text,
	}
}

// NewQuickReply wraps actions in a quick reply, keeping at most
// MaxQuickReplyItems of them.
func NewQuickReply(actions ...Action) *messaging_api.QuickReply {
	actions = actions[:min(len(actions), MaxQuickReplyItems)]
	items := make([]messaging_api.QuickReplyItem, len(actions))
	for i, action := range actions {
		items[i] = messaging_api.QuickReplyItem{Action: action}
	}
	return &messaging_api.QuickReply{Items: items}
}

// AddQuickReply attaches quick reply actions to message and returns it.
func AddQuickReply(message *messaging_api.TextMessage, actions ...Action) *messaging_api.TextMessage {
	if len(actions) == 0 {
		return message
	}
	message.QuickReply = NewQuickReply(actions...)
	return message
}

// TruncateRunes shortens text to at most limit runes, ending with "…" when
// anything was cut.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}
