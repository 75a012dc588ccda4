package agent

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ModelClient 定义模型客户端接口。Stream 按到达顺序回调增量片段，
// 全部片段拼接后等于 Complete 的结果。
type ModelClient interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
	Stream(ctx context.Context, messages []Message, model string, onChunk func(string)) error
}

// ScriptClient is the offline pipeline used when no API token is configured:
// it replies with a deterministic canned response derived from the last user
// message and streams it word by word, so the TUI's streaming path is
// exercised without a network dependency.
type ScriptClient struct {
	// Replies are cycled per completed turn. Empty means echo mode.
	Replies []string
	// ChunkDelay paces streamed words; zero streams immediately (tests).
	ChunkDelay time.Duration

	turn int
}

func (c *ScriptClient) Complete(_ context.Context, messages []Message, _ string) (string, error) {
	last := lastUserMessage(messages)
	if last == "" {
		return "", errors.New("no user message to reply to")
	}
	if len(c.Replies) == 0 {
		return "You said: " + last, nil
	}
	reply := c.Replies[c.turn%len(c.Replies)]
	c.turn++
	return reply, nil
}

func (c *ScriptClient) Stream(ctx context.Context, messages []Message, model string, onChunk func(string)) error {
	text, err := c.Complete(ctx, messages, model)
	if err != nil {
		return err
	}
	words := strings.SplitAfter(text, " ")
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return err
		}
		onChunk(w)
		if c.ChunkDelay > 0 {
			select {
			case <-time.After(c.ChunkDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func lastUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}
