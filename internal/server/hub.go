package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message 是中继服务器广播的一条聊天消息。
type Message struct {
	ID   string    `json:"id"`
	From string    `json:"from"`
	Text string    `json:"text"`
	TS   time.Time `json:"ts"`
}

// Hub 在已连接的客户端之间做简单 pub-sub 广播。慢客户端不阻塞
// 广播路径：投递时缓冲已满就丢弃该条（由客户端写泵断开清理）。
type Hub struct {
	mu     sync.Mutex
	subs   []chan Message
	closed bool
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe 返回接收后续广播的通道。
func (h *Hub) Subscribe() <-chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		ch := make(chan Message)
		close(ch)
		return ch
	}
	ch := make(chan Message, 32)
	h.subs = append(h.subs, ch)
	return ch
}

// Unsubscribe 移除并关闭订阅通道。
func (h *Hub) Unsubscribe(sub <-chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ch := range h.subs {
		if ch == sub {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Publish 给消息补齐 id/时间戳后广播给所有订阅者。
func (h *Hub) Publish(msg Message) Message {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.TS.IsZero() {
		msg.TS = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return msg
	}
	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	return msg
}

// Close 关闭所有订阅通道，之后的 Publish 为空操作。
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
	h.closed = true
}
