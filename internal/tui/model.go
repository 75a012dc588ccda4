package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tide-cli/internal/agent"
	"tide-cli/internal/docs"
	"tide-cli/internal/history"
	"tide-cli/internal/logger"
	"tide-cli/internal/scroll"
	"tide-cli/internal/session"
	"tide-cli/internal/tui/render"
	"tide-cli/internal/tui/slash"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxComposerHeight = 5
	statusHeight      = 1
)

type Options struct {
	Client          agent.ModelClient
	Model           string
	InitialMessages []agent.Message
	InitialPrompt   string
	SessionID       string
	History         *history.Store
	Sessions        *session.Store
}

// Model 是聊天 TUI 的 Bubble Tea 模型。转录区不用 bubbles 的 viewport，
// 而由 scroll.Viewport 驱动：消息渲染为带样式的显示行，行数作为预计算
// 高度喂给引擎，引擎只回答“哪些行可见”。
type Model struct {
	textarea   textarea.Model
	vp         *scroll.Viewport
	spin       spinner.Model
	palette    *slash.State
	promptHist promptHistory

	client    agent.ModelClient
	modelName string
	history   *history.Store
	sessions  *session.Store
	sessionID string

	messages     []agent.Message
	lines        []render.Line
	streamCh     chan streamEvent
	pending      bool
	pendingSince time.Time
	err          error

	// submitSeq 是跳底触发计数器：仅用户提交时递增，助手流式输出
	// 从不触发，所以上翻阅读不会被新内容拽回底部。
	submitSeq int

	initSend string
	showHelp bool
	width    int
	height   int
	log      *logger.LogEntry
}

func New(opts Options) *Model {
	ti := textarea.New()
	ti.Placeholder = "Message tide…"
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.SetWidth(90)
	ti.SetHeight(1)
	ti.ShowLineNumbers = false
	ti.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	client := opts.Client
	if client == nil {
		client = &agent.ScriptClient{}
	}

	m := &Model{
		textarea:  ti,
		vp:        scroll.New(89, 20),
		spin:      spin,
		palette:   slash.NewState(nil),
		client:    client,
		modelName: opts.Model,
		history:   opts.History,
		sessions:  opts.Sessions,
		sessionID: opts.SessionID,
		initSend:  opts.InitialPrompt,
		width:     90,
		height:    24,
		log:       logger.Named("tui"),
	}
	if len(opts.InitialMessages) > 0 {
		m.messages = append(m.messages, opts.InitialMessages...)
	}
	if m.history != nil {
		if texts, err := m.history.LoadTexts(); err == nil {
			m.promptHist.Set(texts)
		}
	}
	m.refreshTranscript()
	m.vp.JumpToBottom()
	return m
}

// History 返回当前会话消息副本（退出时由上层决定是否落盘）。
func (m *Model) History() []agent.Message {
	return append([]agent.Message{}, m.messages...)
}

// SessionID 返回当前会话 id（未保存过则为空）。
func (m *Model) SessionID() string {
	return m.sessionID
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.spin.Tick}
	if prompt := strings.TrimSpace(m.initSend); prompt != "" {
		cmds = append(cmds, func() tea.Msg {
			return startPromptMsg{Text: prompt}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case startPromptMsg:
		cmds = append(cmds, m.submit(msg.Text))
		return m, tea.Batch(cmds...)
	case assistantChunkMsg:
		m.appendChunk(msg.Text)
		cmds = append(cmds, m.listenStream())
		return m, tea.Batch(cmds...)
	case assistantDoneMsg:
		m.pending = false
		m.streamCh = nil
		return m, nil
	case agentErrorMsg:
		m.pending = false
		m.streamCh = nil
		m.err = msg.Err
		m.appendSystem(fmt.Sprintf("error: %v", msg.Err))
		return m, nil
	case systemNoticeMsg:
		m.appendSystem(msg.Text)
		return m, nil
	case docsResultMsg:
		m.appendSystem(formatDocsResult(msg))
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.palette.Open() {
		switch msg.String() {
		case "up", "ctrl+p":
			m.palette.MoveUp()
			return m, nil
		case "down", "ctrl+n":
			m.palette.MoveDown()
			return m, nil
		case "esc":
			m.palette.Close()
			return m, nil
		case "enter":
			cmd := m.runSelectedCommand()
			return m, cmd
		}
		return m.updateComposer(msg)
	}

	if cmd, handled := m.handleScrollKeys(msg); handled {
		return m, cmd
	}

	switch msg.String() {
	case "?":
		if strings.TrimSpace(m.textarea.Value()) == "" {
			m.showHelp = !m.showHelp
			return m, nil
		}
	case "ctrl+y":
		m.copyLastReply()
		return m, nil
	case "ctrl+p":
		if text, ok := m.promptHist.Prev(m.textarea.Value()); ok {
			m.textarea.SetValue(text)
			m.textarea.CursorEnd()
		}
		return m, nil
	case "ctrl+n":
		if text, ok := m.promptHist.Next(); ok {
			m.textarea.SetValue(text)
			m.textarea.CursorEnd()
		}
		return m, nil
	case "enter":
		if m.pending {
			return m, nil
		}
		input := strings.TrimSpace(m.textarea.Value())
		if input == "" {
			return m, nil
		}
		m.textarea.Reset()
		m.setComposerHeight()
		return m, m.submit(input)
	}

	return m.updateComposer(msg)
}

// handleScrollKeys 把键盘滚动请求转成相对量喂给引擎。↑/k 与 j 只在
// 输入框为空时生效，否则让位给编辑；Ctrl-U/D 与翻页键始终滚动。
func (m *Model) handleScrollKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	composerEmpty := strings.TrimSpace(m.textarea.Value()) == ""

	switch msg.String() {
	case "ctrl+u":
		m.vp.HalfPageUp()
		return nil, true
	case "ctrl+d":
		m.vp.HalfPageDown()
		return nil, true
	case "pgup":
		m.vp.ScrollBy(-m.vp.Height())
		return nil, true
	case "pgdown":
		m.vp.ScrollBy(m.vp.Height())
		return nil, true
	case "home":
		m.vp.JumpToTop()
		return nil, true
	case "end":
		m.vp.JumpToBottom()
		return nil, true
	case "up", "k":
		if composerEmpty {
			m.vp.ScrollBy(-1)
			return nil, true
		}
	case "down", "j":
		if composerEmpty {
			m.vp.ScrollBy(1)
			return nil, true
		}
	}
	return nil, false
}

func (m *Model) updateComposer(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.setComposerHeight()
	m.palette.SyncInput(m.textarea.Value())
	return m, cmd
}

func (m *Model) submit(input string) tea.Cmd {
	if strings.HasPrefix(input, "/") {
		m.palette.SyncInput(input)
		cmd := m.runSelectedCommand()
		return cmd
	}

	m.messages = append(m.messages, agent.Message{Role: agent.RoleUser, Content: input})
	m.messages = append(m.messages, agent.Message{Role: agent.RoleAssistant, Content: ""})
	m.refreshTranscript()

	// 用户主动发言：递增触发计数并跳底。
	m.submitSeq++
	m.vp.SyncTrigger(m.submitSeq)

	m.promptHist.Add(input)
	if m.history != nil {
		if err := m.history.Append(input); err != nil {
			m.log.WithField("error", err).Warn("failed to append prompt history")
		}
	}

	m.pending = true
	m.pendingSince = time.Now()
	m.err = nil
	return tea.Batch(m.startStream(), m.spin.Tick)
}

func (m *Model) startStream() tea.Cmd {
	ch := make(chan streamEvent, 16)
	m.streamCh = ch
	msgs := append([]agent.Message{}, m.messages[:len(m.messages)-1]...)
	client := m.client
	modelName := m.modelName
	go func() {
		err := client.Stream(context.Background(), msgs, modelName, func(chunk string) {
			ch <- streamEvent{chunk: chunk}
		})
		if err != nil {
			ch <- streamEvent{err: err}
			return
		}
		ch <- streamEvent{done: true}
	}()
	return m.listenStream()
}

func (m *Model) listenStream() tea.Cmd {
	ch := m.streamCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok || ev.done {
			return assistantDoneMsg{}
		}
		if ev.err != nil {
			return agentErrorMsg{Err: ev.err}
		}
		return assistantChunkMsg{Text: ev.chunk}
	}
}

// appendChunk 把流式片段并入最后一条助手消息。内容变化只收紧偏移，
// 不回底。
func (m *Model) appendChunk(chunk string) {
	if len(m.messages) == 0 || m.messages[len(m.messages)-1].Role != agent.RoleAssistant {
		m.messages = append(m.messages, agent.Message{Role: agent.RoleAssistant})
	}
	m.messages[len(m.messages)-1].Content += chunk
	m.refreshTranscript()
}

func (m *Model) appendSystem(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.messages = append(m.messages, agent.Message{Role: agent.RoleSystem, Content: text})
	m.refreshTranscript()
}

func (m *Model) runSelectedCommand() tea.Cmd {
	cmd, ok := m.palette.Selected()
	args := m.palette.Args()
	m.palette.Close()
	m.textarea.Reset()
	m.setComposerHeight()
	if !ok {
		return nil
	}

	switch cmd.Name {
	case "help":
		m.showHelp = !m.showHelp
	case "clear":
		m.messages = nil
		m.sessionID = ""
		m.refreshTranscript()
	case "save":
		if m.sessions == nil {
			m.appendSystem("session store is not configured")
			break
		}
		id, err := m.sessions.Save(m.sessionID, m.messages)
		if err != nil {
			m.appendSystem(fmt.Sprintf("save failed: %v", err))
			break
		}
		m.sessionID = id
		m.appendSystem("session saved: " + id)
	case "resume":
		if m.sessions == nil {
			m.appendSystem("session store is not configured")
			break
		}
		rec, err := m.sessions.Last()
		if err != nil {
			m.appendSystem(fmt.Sprintf("resume failed: %v", err))
			break
		}
		m.messages = append([]agent.Message{}, rec.Messages...)
		m.sessionID = rec.ID
		m.refreshTranscript()
		m.vp.JumpToBottom()
	case "docs":
		url := strings.TrimSpace(args)
		if url == "" {
			m.appendSystem("usage: /docs <url>")
			break
		}
		return fetchDocsCmd(url)
	case "quit":
		return tea.Quit
	}
	return nil
}

func fetchDocsCmd(url string) tea.Cmd {
	return func() tea.Msg {
		page, err := docs.Fetch(context.Background(), url, docs.Options{})
		return docsResultMsg{URL: url, Page: page, Err: err}
	}
}

func formatDocsResult(msg docsResultMsg) string {
	if msg.Err != nil {
		return fmt.Sprintf("docs %s: %v", msg.URL, msg.Err)
	}
	var sb strings.Builder
	if msg.Page.Title != "" {
		sb.WriteString(msg.Page.Title + "\n")
	}
	sb.WriteString(msg.Page.Text)
	if len(msg.Page.Links) > 0 {
		sb.WriteString("\n\nLinks:")
		for _, l := range msg.Page.Links {
			sb.WriteString(fmt.Sprintf("\n  %s — %s", l.Text, l.Href))
		}
	}
	return sb.String()
}

func (m *Model) copyLastReply() {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == agent.RoleAssistant && strings.TrimSpace(m.messages[i].Content) != "" {
			if err := clipboard.WriteAll(m.messages[i].Content); err != nil {
				m.appendSystem(fmt.Sprintf("copy failed: %v", err))
				return
			}
			m.appendSystem("copied last reply to clipboard")
			return
		}
	}
}

// refreshTranscript 重渲染全部消息：拍平的样式行用于绘制，每条消息的
// 行数作为预计算高度交给引擎。
func (m *Model) refreshTranscript() {
	lines, heights := render.TranscriptLines(m.messages, m.transcriptWidth())
	m.lines = lines
	items := make([]scroll.Item, len(m.messages))
	for i := range m.messages {
		items[i] = scroll.Item{Content: m.messages[i].Content, Height: heights[i]}
	}
	m.vp.ReplaceItems(items)
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.textarea.SetWidth(width - 2)
	// resize 先于内容重算：MaxOffset 依赖最新视口高度。
	m.vp.Resize(m.transcriptWidth(), m.transcriptHeight())
	m.refreshTranscript()
}

func (m *Model) setComposerHeight() {
	h := m.textarea.LineCount()
	if h < 1 {
		h = 1
	}
	if h > maxComposerHeight {
		h = maxComposerHeight
	}
	if h != m.textarea.Height() {
		m.textarea.SetHeight(h)
		m.vp.Resize(m.transcriptWidth(), m.transcriptHeight())
	}
}

// transcriptWidth 给滚动条预留最右一列。
func (m *Model) transcriptWidth() int {
	if w := m.width - 1; w >= 1 {
		return w
	}
	return 1
}

func (m *Model) transcriptHeight() int {
	h := m.height - m.textarea.Height() - statusHeight
	if h < 1 {
		h = 1
	}
	return h
}
