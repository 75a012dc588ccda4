package tui

import (
	"fmt"
	"strings"
	"time"

	"tide-cli/internal/scroll"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusStyle    = lipgloss.NewStyle().Faint(true)
	thumbStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	trackStyle     = lipgloss.NewStyle().Faint(true)
	paletteStyle   = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	helpTitleStyle = lipgloss.NewStyle().Bold(true)
)

func (m *Model) View() string {
	var overlay string
	if m.showHelp {
		overlay = m.helpView()
	} else if m.palette.Open() {
		overlay = m.paletteView()
	}

	transcript := m.transcriptView()
	if overlay != "" {
		// 弹层占掉转录区顶部同样多的行，整帧高度保持不变。
		rows := strings.Split(transcript, "\n")
		if drop := strings.Count(overlay, "\n") + 1; drop < len(rows) {
			transcript = strings.Join(rows[drop:], "\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(transcript)
	sb.WriteString("\n")
	if overlay != "" {
		sb.WriteString(overlay)
		sb.WriteString("\n")
	}
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	return sb.String()
}

// transcriptView 按引擎给出的偏移切取拍平的样式行：内容不满一屏时
// 底部对齐（上方留白），最右一列画滚动条。
func (m *Model) transcriptView() string {
	height := m.vp.Height()
	offset := m.vp.Offset()
	frame := m.vp.Frame()

	rows := make([]string, 0, height)
	if frame.BottomAligned {
		for pad := height - len(m.lines); pad > 0; pad-- {
			rows = append(rows, "")
		}
	}
	for i := offset; i < len(m.lines) && len(rows) < height; i++ {
		rows = append(rows, m.lines[i].String())
	}
	for len(rows) < height {
		rows = append(rows, "")
	}

	for row := range rows {
		rows[row] = padToWidth(rows[row], m.transcriptWidth()) + m.scrollbarCell(frame, row)
	}
	return strings.Join(rows, "\n")
}

// scrollbarCell 返回某一行的滚动条字符。内容全可见时不画轨道，
// 但列仍保留，避免换行宽度随滚动条出现与否抖动。
func (m *Model) scrollbarCell(frame scroll.Frame, row int) string {
	if !frame.Scrollbar.Visible {
		return " "
	}
	if frame.Scrollbar.Thumb(row) {
		return thumbStyle.Render("█")
	}
	return trackStyle.Render("│")
}

func (m *Model) statusView() string {
	left := m.modelName
	if left == "" {
		left = "tide"
	}
	if m.pending {
		left = fmt.Sprintf("%s %s · %ds", m.spin.View(), left, int(time.Since(m.pendingSince).Seconds()))
	}

	right := "? help"
	if !m.vp.AtBottom() {
		pct := 0
		if m.vp.MaxOffset() > 0 {
			pct = m.vp.Offset() * 100 / m.vp.MaxOffset()
		}
		right = fmt.Sprintf("%d%% · end to follow", pct)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return statusStyle.Render(" " + left + strings.Repeat(" ", gap) + right)
}

func (m *Model) paletteView() string {
	matches := m.palette.Matches()
	var sb strings.Builder
	for i, cmd := range matches {
		label := fmt.Sprintf("/%s  %s", cmd.Name, cmd.Desc)
		if i == m.palette.SelectedIndex() {
			sb.WriteString(selectedStyle.Render("› " + label))
		} else {
			sb.WriteString(paletteStyle.Render("  " + label))
		}
		if i != len(matches)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m *Model) helpView() string {
	lines := []string{
		helpTitleStyle.Render("Keys"),
		"  ↑/k ↓/j      scroll (composer empty)",
		"  ctrl+u/d     half page up/down",
		"  pgup/pgdn    page up/down",
		"  home/end     jump to top/bottom",
		"  ctrl+p/n     prompt history",
		"  ctrl+y       copy last reply",
		"  /            command palette",
		"  ctrl+c       quit",
	}
	return paletteStyle.Render(strings.Join(lines, "\n"))
}

func padToWidth(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
