package scroll

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap 将文本按显示宽度折行。显式换行原样保留（空段落产生一个空行），
// 段落内按贪心策略填充：超宽时回退到 maxWidth 内最后一个空格断行，
// 找不到空格则在 maxWidth 处硬切。宽度以终端 cell 计（宽字符占 2）。
func Wrap(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, maxWidth)...)
	}
	return lines
}

// Height 返回 Wrap 后的行数。非空文本恒 ≥ 1。
func Height(text string, maxWidth int) int {
	return len(Wrap(text, maxWidth))
}

func wrapParagraph(para string, maxWidth int) []string {
	if runewidth.StringWidth(para) <= maxWidth {
		return []string{para}
	}
	out := []string{}
	runes := []rune(para)
	for len(runes) > 0 {
		if runewidth.StringWidth(string(runes)) <= maxWidth {
			out = append(out, string(runes))
			break
		}
		cut := fitRunes(runes, maxWidth)
		if brk := lastSpace(runes, cut); brk > 0 {
			out = append(out, string(runes[:brk]))
			runes = runes[brk+1:] // the break-point space is consumed
			continue
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(out) == 0 {
		return []string{para}
	}
	return out
}

// fitRunes 返回不超过 maxWidth 的最长前缀长度（至少 1，保证推进）。
func fitRunes(runes []rune, maxWidth int) int {
	w := 0
	for i, r := range runes {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth && i > 0 {
			return i
		}
		w += rw
	}
	return len(runes)
}

// lastSpace 在 runes[:cut+1] 内寻找最后一个可断行的空格；空格恰好紧跟在
// 填满的行之后也算（该行刚好填满，应在此断开并吞掉空格）。
func lastSpace(runes []rune, cut int) int {
	if cut < len(runes) && runes[cut] == ' ' {
		return cut
	}
	for i := cut - 1; i > 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
