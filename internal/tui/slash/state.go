package slash

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Command 是一条可执行的 slash 命令。
type Command struct {
	Name string
	Desc string
}

// Builtins 返回内置命令表（展示顺序即此顺序）。
func Builtins() []Command {
	return []Command{
		{Name: "help", Desc: "Toggle the key binding help"},
		{Name: "clear", Desc: "Clear the current conversation"},
		{Name: "save", Desc: "Save the conversation as a session"},
		{Name: "resume", Desc: "Resume the most recent session"},
		{Name: "docs", Desc: "Fetch a documentation page: /docs <url>"},
		{Name: "quit", Desc: "Exit tide"},
	}
}

// State 维护 slash 弹窗的匹配与选择状态。输入以 "/" 开头且在首行时
// 打开，按模糊匹配过滤命令表。
type State struct {
	commands []Command
	matches  []Command
	selected int
	open     bool
	args     string
}

func NewState(commands []Command) *State {
	if len(commands) == 0 {
		commands = Builtins()
	}
	return &State{commands: commands}
}

// Open 返回弹窗是否展示。
func (s *State) Open() bool {
	return s != nil && s.open
}

// Matches 返回当前过滤结果。
func (s *State) Matches() []Command {
	if s == nil {
		return nil
	}
	return s.matches
}

// Args 返回命令 token 之后的参数串。
func (s *State) Args() string {
	if s == nil {
		return ""
	}
	return s.args
}

// SyncInput 根据最新输入同步过滤列表与选中项。
func (s *State) SyncInput(value string) {
	if s == nil {
		return
	}
	if !strings.HasPrefix(value, "/") || strings.Contains(value, "\n") {
		s.Close()
		return
	}
	token := strings.TrimPrefix(value, "/")
	s.args = ""
	if i := strings.IndexByte(token, ' '); i >= 0 {
		s.args = strings.TrimSpace(token[i+1:])
		token = token[:i]
	}
	s.matches = filter(s.commands, token)
	s.open = len(s.matches) > 0
	if s.selected >= len(s.matches) {
		s.selected = 0
	}
}

// Close 关闭弹窗并清空过滤状态。
func (s *State) Close() {
	if s == nil {
		return
	}
	s.open = false
	s.matches = nil
	s.selected = 0
	s.args = ""
}

// MoveUp 上移选中项（到顶停住）。
func (s *State) MoveUp() {
	if s == nil || !s.open {
		return
	}
	if s.selected > 0 {
		s.selected--
	}
}

// MoveDown 下移选中项（到底停住）。
func (s *State) MoveDown() {
	if s == nil || !s.open {
		return
	}
	if s.selected < len(s.matches)-1 {
		s.selected++
	}
}

// Selected 返回当前选中的命令。
func (s *State) Selected() (Command, bool) {
	if s == nil || !s.open || s.selected >= len(s.matches) {
		return Command{}, false
	}
	return s.matches[s.selected], true
}

// SelectedIndex 返回选中下标（渲染高亮用）。
func (s *State) SelectedIndex() int {
	if s == nil {
		return 0
	}
	return s.selected
}

func filter(commands []Command, token string) []Command {
	if token == "" {
		return append([]Command(nil), commands...)
	}
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	ranked := fuzzy.Find(token, names)
	out := make([]Command, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, commands[m.Index])
	}
	return out
}
