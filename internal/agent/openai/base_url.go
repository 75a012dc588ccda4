package openai

import (
	"net/url"
	"strings"
)

// normalizeBaseURL 容忍用户把完整 endpoint 填进配置：剥掉
// /chat/completions 等后缀并保证以 /v1 结尾。
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		path = strings.TrimSuffix(path, "/chat/completions")
	case strings.HasSuffix(path, "/completions"):
		path = strings.TrimSuffix(path, "/completions")
	}
	path = strings.TrimRight(path, "/")

	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path = path + "/v1"
		}
	}

	parsed.Path = path
	return parsed.String()
}
