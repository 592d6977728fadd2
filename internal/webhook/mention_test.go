package webhook

import (
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

func TestIsBotMentioned(t *testing.T) {
	tests := []struct {
		name     string
		textMsg  webhook.TextMessageContent
		expected bool
	}{
		{
			name: "bot is mentioned",
			textMsg: webhook.TextMessageContent{
				Text: "@Bot unique abc",
				Mention: &webhook.Mention{
					Mentionees: []webhook.MentioneeInterface{
						webhook.UserMentionee{Index: 0, Length: 4, IsSelf: true},
					},
				},
			},
			expected: true,
		},
		{
			name: "other user is mentioned",
			textMsg: webhook.TextMessageContent{
				Text: "@Amy unique abc",
				Mention: &webhook.Mention{
					Mentionees: []webhook.MentioneeInterface{
						webhook.UserMentionee{Index: 0, Length: 4, UserId: "U1234567890"},
					},
				},
			},
			expected: false,
		},
		{
			name: "all mention",
			textMsg: webhook.TextMessageContent{
				Text: "@All unique abc",
				Mention: &webhook.Mention{
					Mentionees: []webhook.MentioneeInterface{
						webhook.AllMentionee{Index: 0, Length: 4},
					},
				},
			},
			expected: false,
		},
		{
			name:     "no mention",
			textMsg:  webhook.TextMessageContent{Text: "unique abc"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBotMentioned(tt.textMsg); got != tt.expected {
				t.Errorf("isBotMentioned() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRemoveBotMentions(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		mention *webhook.Mention
		want    string
	}{
		{
			name:    "nil mention",
			text:    "unique abc",
			mention: nil,
			want:    "unique abc",
		},
		{
			name: "leading bot mention",
			text: "@Bot unique abc",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 0, Length: 4, IsSelf: true},
			}},
			want: "unique abc",
		},
		{
			name: "trailing bot mention keeps inner spacing",
			text: "perm a  b | b  a @Bot",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 17, Length: 4, IsSelf: true},
			}},
			want: "perm a  b | b  a",
		},
		{
			name: "other mentions are kept",
			text: "@Amy @Bot 唯一 資工",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 0, Length: 4, UserId: "U1"},
				webhook.UserMentionee{Index: 5, Length: 4, IsSelf: true},
			}},
			want: "@Amy  唯一 資工",
		},
		{
			name: "two bot mentions",
			text: "@Bot help @Bot",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 0, Length: 4, IsSelf: true},
				webhook.UserMentionee{Index: 10, Length: 4, IsSelf: true},
			}},
			want: "help",
		},
		{
			name: "index past end is ignored",
			text: "help",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 10, Length: 4, IsSelf: true},
			}},
			want: "help",
		},
		{
			name: "span clipped at end",
			text: "help @Bo",
			mention: &webhook.Mention{Mentionees: []webhook.MentioneeInterface{
				webhook.UserMentionee{Index: 5, Length: 10, IsSelf: true},
			}},
			want: "help",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeBotMentions(tt.text, tt.mention); got != tt.want {
				t.Errorf("removeBotMentions(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
