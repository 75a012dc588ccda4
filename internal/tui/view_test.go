package tui

import (
	"strings"
	"testing"

	"tide-cli/internal/agent"
)

func transcriptRows(m *Model) []string {
	return strings.Split(m.transcriptView(), "\n")
}

func TestTranscriptViewFillsViewportHeight(t *testing.T) {
	m := New(Options{})
	m.resize(40, 10)
	fillTranscript(m, 20)
	m.vp.JumpToBottom()

	rows := transcriptRows(m)
	if len(rows) != m.vp.Height() {
		t.Fatalf("transcript rows = %d, want viewport height %d", len(rows), m.vp.Height())
	}
}

func TestTranscriptViewBottomAlignsShortContent(t *testing.T) {
	m := New(Options{})
	m.resize(40, 12)
	m.messages = append(m.messages, agent.Message{Role: agent.RoleAssistant, Content: "hi"})
	m.refreshTranscript()

	rows := transcriptRows(m)
	if len(rows) != m.vp.Height() {
		t.Fatalf("transcript rows = %d, want viewport height %d", len(rows), m.vp.Height())
	}
	// 内容不满一屏：留白在上方，内容贴底。
	if strings.TrimSpace(rows[0]) != "" {
		t.Fatalf("top row = %q, want blank padding", rows[0])
	}
	if !strings.Contains(rows[len(rows)-1], "hi") {
		t.Fatalf("bottom row = %q, want the message content", rows[len(rows)-1])
	}
}

func TestTranscriptViewDrawsScrollbarOnlyOnOverflow(t *testing.T) {
	m := New(Options{})
	m.resize(40, 10)
	m.messages = append(m.messages, agent.Message{Role: agent.RoleAssistant, Content: "short"})
	m.refreshTranscript()

	if view := m.transcriptView(); strings.Contains(view, "█") || strings.Contains(view, "│") {
		t.Fatal("scrollbar should be invisible when content fits")
	}

	fillTranscript(m, 20)
	m.vp.JumpToBottom()
	view := m.transcriptView()
	if !strings.Contains(view, "█") {
		t.Fatal("scrollbar thumb missing on overflow")
	}
	if !strings.Contains(view, "│") {
		t.Fatal("scrollbar track missing on overflow")
	}
}

func TestStatusViewShowsScrollPercent(t *testing.T) {
	m := New(Options{})
	m.resize(60, 10)
	fillTranscript(m, 20)
	m.vp.JumpToBottom()

	if status := m.statusView(); strings.Contains(status, "%") {
		t.Fatalf("status = %q, should not show percent while pinned to bottom", status)
	}

	m.vp.JumpToTop()
	status := m.statusView()
	if !strings.Contains(status, "0%") {
		t.Fatalf("status = %q, want scroll percent at top", status)
	}
	if !strings.Contains(status, "end to follow") {
		t.Fatalf("status = %q, want a hint to re-follow", status)
	}
}

func TestPaletteViewMarksSelection(t *testing.T) {
	m := New(Options{})
	m.resize(60, 20)
	m.palette.SyncInput("/")
	if !m.palette.Open() {
		t.Fatal("palette should open on /")
	}
	m.palette.MoveDown()

	lines := strings.Split(m.paletteView(), "\n")
	if len(lines) != len(m.palette.Matches()) {
		t.Fatalf("palette lines = %d, want %d", len(lines), len(m.palette.Matches()))
	}
	if !strings.Contains(lines[m.palette.SelectedIndex()], "›") {
		t.Fatalf("selected line = %q, want the › marker", lines[m.palette.SelectedIndex()])
	}
}

func TestViewIncludesComposerAndStatus(t *testing.T) {
	m := New(Options{})
	m.resize(60, 20)

	view := m.View()
	if !strings.Contains(view, "Message tide") {
		t.Fatal("view missing composer placeholder")
	}
	if !strings.Contains(view, "? help") {
		t.Fatal("view missing status hint")
	}
}
