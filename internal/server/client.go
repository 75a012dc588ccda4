package server

import (
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// client 对应一条 WebSocket 连接：readPump 收取入站消息并广播，
// writePump 将 hub 的广播写回连接并维持 ping 心跳。任一泵退出即
// 断开并注销订阅。
type client struct {
	server *Server
	conn   *websocket.Conn
	from   string
	sub    <-chan Message
}

func (c *client) readPump() {
	defer func() {
		c.server.hub.Unsubscribe(c.sub)
		c.conn.Close()
		c.server.log.WithField("name", c.from).Info("client disconnected")
	}()
	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in Message
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.log.WithField("error", err).Warn("websocket read failed")
			}
			return
		}
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		if strings.TrimSpace(in.From) == "" {
			in.From = c.from
		}
		// id 与时间戳由服务端统一补齐，客户端给的值不信任。
		in.ID = ""
		in.TS = time.Time{}
		c.server.hub.Publish(in)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.sub:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
