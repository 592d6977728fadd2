package webhook

import (
	"slices"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// isBotMentioned reports whether any mentionee in the message is the bot itself.
func isBotMentioned(textMsg webhook.TextMessageContent) bool {
	if textMsg.Mention == nil {
		return false
	}
	for _, mentionee := range textMsg.Mention.Mentionees {
		if m, ok := mentionee.(webhook.UserMentionee); ok && m.IsSelf {
			return true
		}
	}
	return false
}

type mentionSpan struct {
	index  int
	length int
}

// removeBotMentions cuts every "@Bot" span out of text and trims the result.
// Indexes are in runes, as LINE reports them. Inner whitespace is left alone
// since it is part of what gets checked.
func removeBotMentions(text string, mention *webhook.Mention) string {
	if mention == nil || len(mention.Mentionees) == 0 {
		return text
	}

	var spans []mentionSpan
	for _, mentionee := range mention.Mentionees {
		if m, ok := mentionee.(webhook.UserMentionee); ok && m.IsSelf {
			spans = append(spans, mentionSpan{index: int(m.Index), length: int(m.Length)})
		}
	}
	if len(spans) == 0 {
		return text
	}

	// Back to front keeps earlier indexes valid.
	slices.SortFunc(spans, func(a, b mentionSpan) int { return b.index - a.index })

	runes := []rune(text)
	for _, s := range spans {
		start := max(s.index, 0)
		end := min(s.index+s.length, len(runes))
		if start >= end {
			continue
		}
		runes = append(runes[:start], runes[end:]...)
	}

	return strings.TrimSpace(string(runes))
}
