package main

import (
	"flag"
	"strings"

	"tide-cli/internal/config"
	"tide-cli/internal/server"
)

// serveMain 启动 WebSocket 中继：终端里的多个 tide-cli 客户端可以
// 经同一个中继互发消息。
func serveMain(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path (default ~/.tide/config.toml)")
	listen := fs.String("listen", "", "Listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse serve args: %v", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	addr := cfg.Listen
	if strings.TrimSpace(*listen) != "" {
		addr = strings.TrimSpace(*listen)
	}

	srv := server.New()
	log.Infof("relay listening on %s", addr)
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatalf("relay stopped: %v", err)
	}
}
