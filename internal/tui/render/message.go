package render

import (
	"strings"

	"tide-cli/internal/agent"
	"tide-cli/internal/scroll"

	"github.com/charmbracelet/lipgloss"
)

var (
	userPrefixStyle      = lipgloss.NewStyle().Faint(true).Bold(true)
	userIndentStyle      = lipgloss.NewStyle().Faint(true)
	assistantPrefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	assistantIndentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	systemStyle          = lipgloss.NewStyle().Faint(true).Italic(true)
)

// MessageLines 把一条消息渲染为已折行的显示行。折行由 scroll.Wrap
// 在纯文本上完成，样式之后再套；行数即视口里该块的高度。
func MessageLines(msg agent.Message, width int) []Line {
	content := strings.TrimRight(msg.Content, "\n")
	switch msg.Role {
	case agent.RoleUser:
		return renderUserLines(content, width)
	case agent.RoleAssistant:
		return renderAssistantLines(content, width)
	default:
		return renderSystemLines(content, width)
	}
}

// TranscriptLines 渲染整个消息列表，返回拍平的行与每条消息的行数。
// 两个返回值共同喂给视口：行用于绘制，行数用于累计索引。
func TranscriptLines(msgs []agent.Message, width int) ([]Line, []int) {
	var lines []Line
	heights := make([]int, 0, len(msgs))
	for _, msg := range msgs {
		block := MessageLines(msg, width)
		lines = append(lines, block...)
		heights = append(heights, len(block))
	}
	return lines, heights
}

func renderUserLines(content string, width int) []Line {
	body := plainLines(content, indentWidth(width))
	prefixed := PrefixLines(body, Span{Text: "› ", Style: userPrefixStyle}, Span{Text: "  ", Style: userIndentStyle})
	// 用户消息上下各留一条空行，视觉上切开回合。
	lines := make([]Line, 0, len(prefixed)+2)
	lines = append(lines, Line{})
	lines = append(lines, prefixed...)
	lines = append(lines, Line{})
	return lines
}

func renderAssistantLines(content string, width int) []Line {
	body := plainLines(content, indentWidth(width))
	prefixed := PrefixLines(body, Span{Text: "• ", Style: assistantPrefixStyle}, Span{Text: "  ", Style: assistantIndentStyle})
	if len(prefixed) == 0 {
		prefixed = []Line{{Spans: []Span{{Text: "• ", Style: assistantPrefixStyle}}}}
	}
	return prefixed
}

func renderSystemLines(content string, width int) []Line {
	out := []Line{}
	for _, l := range scroll.Wrap(content, width) {
		out = append(out, Line{Spans: []Span{{Text: l, Style: systemStyle}}})
	}
	return out
}

func plainLines(content string, width int) []Line {
	out := []Line{}
	for _, l := range scroll.Wrap(content, width) {
		out = append(out, Line{Spans: []Span{{Text: l}}})
	}
	return out
}

// indentWidth 扣掉两列前缀，保证前缀加正文不超过总宽。
func indentWidth(width int) int {
	if w := width - 2; w >= 1 {
		return w
	}
	return 1
}
