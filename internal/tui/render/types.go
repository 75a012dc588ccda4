package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Span 表示一段文本及其样式。
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Line 由多个 Span 组成，是一条已折行的显示行。
type Line struct {
	Spans []Span
}

// String 渲染整行（逐 Span 应用样式后拼接）。
func (l Line) String() string {
	segments := make([]string, 0, len(l.Spans))
	for _, sp := range l.Spans {
		segments = append(segments, sp.Style.Render(sp.Text))
	}
	return strings.Join(segments, "")
}

// Plain 返回去除样式的纯文本行。
func (l Line) Plain() string {
	segments := make([]string, 0, len(l.Spans))
	for _, sp := range l.Spans {
		segments = append(segments, sp.Text)
	}
	return strings.Join(segments, "")
}

// LinesToStrings 将样式化的行转换为字符串列表。
func LinesToStrings(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.String())
	}
	return out
}

// PrefixLines 为首行/续行添加前缀（消息的 bullet 与悬挂缩进）。
func PrefixLines(lines []Line, initial Span, subsequent Span) []Line {
	out := make([]Line, 0, len(lines))
	for i, l := range lines {
		spans := make([]Span, 0, len(l.Spans)+1)
		if i == 0 {
			spans = append(spans, initial)
		} else {
			spans = append(spans, subsequent)
		}
		spans = append(spans, l.Spans...)
		out = append(out, Line{Spans: spans})
	}
	return out
}
