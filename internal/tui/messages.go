package tui

import "tide-cli/internal/docs"

type streamEvent struct {
	chunk string
	done  bool
	err   error
}

type assistantChunkMsg struct {
	Text string
}

type assistantDoneMsg struct{}

type agentErrorMsg struct {
	Err error
}

type startPromptMsg struct {
	Text string
}

type docsResultMsg struct {
	URL  string
	Page docs.Page
	Err  error
}

type systemNoticeMsg struct {
	Text string
}
