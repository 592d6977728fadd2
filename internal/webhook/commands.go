package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garyellow/strcheck/internal/analyzer"
	domerrors "github.com/garyellow/strcheck/internal/errors"
	"github.com/garyellow/strcheck/internal/stringutil"
	"github.com/garyellow/strcheck/pkg/lineutil"
)

// Command names, also used as metrics labels.
const (
	cmdUnique      = "unique"
	cmdPermutation = "permutation"
	cmdCompare     = "compare"
	cmdHelp        = "help"
	cmdUnknown     = "unknown"
)

// pairSeparator splits the two sides of a permutation command.
const pairSeparator = "|"

// maxEcho caps how much of the user's input is quoted back in a reply.
const maxEcho = 40

var (
	uniqueKeywords      = []string{"unique", "唯一"}
	permutationKeywords = []string{"perm", "permutation", "排列"}
	compareKeywords     = []string{"compare", "比較"}
	helpKeywords        = []string{"help", "說明", "?", "？"}
)

type command struct {
	name string
	args string
}

// parseCommand matches the leading keyword of a chat message.
func parseCommand(text string) command {
	if rest, ok := stringutil.CutKeyword(text, uniqueKeywords...); ok {
		return command{name: cmdUnique, args: rest}
	}
	if rest, ok := stringutil.CutKeyword(text, permutationKeywords...); ok {
		return command{name: cmdPermutation, args: rest}
	}
	if rest, ok := stringutil.CutKeyword(text, compareKeywords...); ok {
		return command{name: cmdCompare, args: rest}
	}
	if _, ok := stringutil.CutKeyword(text, helpKeywords...); ok {
		return command{name: cmdHelp}
	}
	return command{name: cmdUnknown, args: text}
}

// execute runs cmd and builds the reply text.
func (h *Handler) execute(ctx context.Context, cmd command) string {
	switch cmd.name {
	case cmdUnique:
		return h.runUnique(ctx, cmd.args)
	case cmdPermutation:
		return h.runPermutation(ctx, cmd.args)
	case cmdCompare:
		return h.runCompare(ctx, cmd.args)
	case cmdHelp:
		return helpText()
	default:
		return "🤔 看不懂這個指令\n\n" + helpText()
	}
}

func (h *Handler) runUnique(ctx context.Context, input string) string {
	if input == "" {
		return "⚠️ 請在指令後輸入要檢查的文字\n例如：unique hello"
	}

	res, err := h.svc.Unique(ctx, analyzer.UniqueRequest{Input: input})
	if err != nil {
		return userMessage(cmdUnique, err)
	}

	verdict := fmt.Sprintf("✅ 「%s」的字元皆不重複", echo(input))
	if !res.Unique {
		verdict = fmt.Sprintf("❌ 「%s」含有重複字元", echo(input))
	}
	return fmt.Sprintf("%s\n\n策略：%s｜字元集：%s｜長度：%d", verdict, res.Strategy, res.Alphabet, res.Runes)
}

func (h *Handler) runPermutation(ctx context.Context, args string) string {
	a, b, ok := stringutil.SplitPair(args, pairSeparator)
	if !ok {
		return "⚠️ 請用「|」分隔兩段文字\n例如：perm dog | God"
	}

	res, err := h.svc.Permutation(ctx, analyzer.PermutationRequest{A: a, B: b})
	if err != nil {
		return userMessage(cmdPermutation, err)
	}

	verdict := fmt.Sprintf("✅ 「%s」與「%s」互為排列", echo(strings.TrimSpace(a)), echo(strings.TrimSpace(b)))
	if !res.Permutation {
		verdict = fmt.Sprintf("❌ 「%s」與「%s」不是彼此的排列", echo(strings.TrimSpace(a)), echo(strings.TrimSpace(b)))
	}
	return fmt.Sprintf("%s\n\n策略：%s｜字元集：%s", verdict, res.Strategy, res.Alphabet)
}

// runCompare runs every strategy. Arguments containing the pair separator
// are treated as a permutation check.
func (h *Handler) runCompare(ctx context.Context, args string) string {
	if args == "" {
		return "⚠️ 請在指令後輸入要比較的文字\n例如：compare hello 或 compare dog | God"
	}

	var (
		cmp *analyzer.Comparison
		err error
	)
	if a, b, ok := stringutil.SplitPair(args, pairSeparator); ok {
		cmp, err = h.svc.ComparePermutation(ctx, a, b, "", false)
	} else {
		cmp, err = h.svc.CompareUnique(ctx, args, "")
	}
	if err != nil {
		return userMessage(cmdCompare, err)
	}

	var sb strings.Builder
	if cmp.Consistent {
		sb.WriteString("🔍 所有策略結果一致\n")
	} else {
		sb.WriteString("🚨 策略結果不一致\n")
	}
	for _, r := range cmp.Results {
		mark := "❌"
		if r.Result {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s（%s）", mark, r.Strategy, r.Duration)
	}
	fmt.Fprintf(&sb, "\n\n字元集：%s", cmp.Alphabet)
	return sb.String()
}

// userMessage turns a check error into a chat reply.
func userMessage(cmd string, err error) string {
	wrapper := domerrors.NewWrapper("webhook", cmd)

	switch {
	case domerrors.IsInvalidAlphabet(err):
		var alphaErr *domerrors.AlphabetError
		if errors.As(err, &alphaErr) {
			err = wrapper.Wrapf(err, "⚠️ 第 %d 個字元「%c」不在字元集 %s 內",
				alphaErr.Position+1, alphaErr.Rune, alphaErr.Alphabet)
		} else {
			err = wrapper.Wrap(err, "⚠️ 輸入含有字元集以外的字元")
		}
	case domerrors.IsInputTooLong(err):
		err = wrapper.Wrap(err, "⚠️ 輸入過長，請縮短後再試")
	case domerrors.IsUnknownStrategy(err), domerrors.IsUnknownAlphabet(err), domerrors.IsInvalidInput(err):
		err = wrapper.Wrap(err, "⚠️ 輸入格式有誤")
	case domerrors.IsTimeout(err):
		err = wrapper.Wrap(err, "⌛ 檢查逾時，請稍後再試")
	default:
		err = wrapper.Wrap(err, "😵 檢查時發生錯誤，請稍後再試")
	}
	return domerrors.GetUserMessage(err)
}

// echo shortens s for quoting back to the user.
func echo(s string) string {
	return lineutil.TruncateRunes(s, maxEcho+1)
}

func helpText() string {
	return strings.Join([]string{
		"📖 使用說明",
		"",
		"🔤 唯一 <文字>",
		"檢查文字中的字元是否皆不重複",
		"例如：unique hello",
		"",
		"🔀 排列 <文字> | <文字>",
		"檢查兩段文字是否互為排列（忽略大小寫與前後空白）",
		"例如：perm dog | God",
		"",
		"🔍 比較 <文字>",
		"以所有策略執行檢查並比對結果",
		"例如：compare hello",
	}, "\n")
}

// quickReplyActions offers one example per command.
func quickReplyActions() []lineutil.Action {
	return []lineutil.Action{
		lineutil.NewMessageAction("🔤 唯一", "unique hello"),
		lineutil.NewMessageAction("🔀 排列", "perm dog | God"),
		lineutil.NewMessageAction("🔍 比較", "compare hello"),
		lineutil.NewMessageAction("📖 說明", "help"),
	}
}
