package server

import (
	"net/http"
	"strings"
	"time"

	"tide-cli/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 16 * 1024
)

// Server 是聊天中继：客户端经 WebSocket 接入，每条入站消息广播给
// 全部在线客户端。终端侧的 TUI 只是它的一个普通消费者。
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      *logger.LogEntry
}

func New() *Server {
	return &Server{
		hub: NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logger.Named("server"),
	}
}

// Hub 暴露底层广播器（进程内发布，如系统通知）。
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes 构建 chi 路由。
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/ws", s.handleWS)
	return r
}

// ListenAndServe 在 addr 上启动中继，阻塞直到服务终止。
func (s *Server) ListenAndServe(addr string) error {
	if strings.TrimSpace(addr) == "" {
		addr = ":8089"
	}
	s.log.WithField("addr", addr).Info("chat relay listening")
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithField("error", err).Error("websocket upgrade failed")
		return
	}
	from := strings.TrimSpace(r.URL.Query().Get("name"))
	if from == "" {
		from = "anonymous"
	}
	c := &client{
		server: s,
		conn:   conn,
		from:   from,
		sub:    s.hub.Subscribe(),
	}
	s.log.WithField("remote", r.RemoteAddr).WithField("name", from).Info("client connected")
	go c.writePump()
	go c.readPump()
}
