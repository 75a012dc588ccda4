package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"tide-cli/internal/agent"
	openaimodel "tide-cli/internal/agent/openai"
	"tide-cli/internal/config"
	"tide-cli/internal/history"
	"tide-cli/internal/logger"
	"tide-cli/internal/session"
	"tide-cli/internal/tui"
)

var log = logger.Named("main")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			serveMain(args[1:])
			return
		case "docs":
			docsMain(args[1:])
			return
		case "version":
			fmt.Println("tide-cli " + version)
			return
		}
	}

	chatMain(args)
}

func chatMain(args []string) {
	fs := flag.NewFlagSet("tide-cli", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path (default ~/.tide/config.toml)")
	modelOverride := fs.String("model", "", "Model name override")
	prompt := fs.String("prompt", "", "Prompt to send on startup")
	resumeID := fs.String("session", "", "Session id to resume")
	resumeLast := fs.Bool("last", false, "Resume the most recent session")
	echoMode := fs.Bool("echo", false, "Skip the model backend and echo prompts back")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	model := cfg.Model
	if strings.TrimSpace(*modelOverride) != "" {
		model = strings.TrimSpace(*modelOverride)
	}

	hist, err := history.NewDefault()
	if err != nil {
		log.Warnf("prompt history unavailable: %v", err)
	}
	sessions, err := session.NewDefault()
	if err != nil {
		log.Warnf("session store unavailable: %v", err)
	}

	var seed []agent.Message
	seedID := ""
	if sessions != nil {
		if *resumeID != "" {
			rec, err := sessions.Load(*resumeID)
			if err != nil {
				log.Fatalf("failed to load session %s: %v", *resumeID, err)
			}
			seed = rec.Messages
			seedID = rec.ID
		} else if *resumeLast {
			if rec, err := sessions.Last(); err == nil {
				seed = rec.Messages
				seedID = rec.ID
			}
		}
	}

	result, err := tui.Run(tui.Options{
		Client:          buildModelClient(cfg, model, *echoMode),
		Model:           model,
		InitialMessages: seed,
		InitialPrompt:   *prompt,
		SessionID:       seedID,
		History:         hist,
		Sessions:        sessions,
	})
	if err != nil {
		log.Fatalf("program exit: %v", err)
	}
	if len(result.History) == 0 || sessions == nil {
		return
	}
	savedID, err := sessions.Save(result.SessionID, result.History)
	if err != nil {
		log.Warnf("failed to save session: %v", err)
		return
	}
	fmt.Printf("session saved: %s\n", savedID)
}

// buildModelClient 依据配置选择后端：没有 token 或显式 -echo 时退回
// 本地回显客户端，保证离线也能跑通 TUI。
func buildModelClient(cfg config.Config, model string, echoMode bool) agent.ModelClient {
	if echoMode {
		return &agent.ScriptClient{}
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		log.Warnf("no token in config (%s); falling back to echo mode", cfg.Source)
		return &agent.ScriptClient{}
	}
	client, err := openaimodel.New(openaimodel.Options{
		APIKey:  token,
		BaseURL: cfg.URL,
		Model:   model,
	})
	if err != nil {
		log.Fatalf("failed to init model client: %v", err)
	}
	return client
}
