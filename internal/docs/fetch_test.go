package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<!doctype html>
<html>
<head><title>Tide Docs</title><style>body { color: red }</style></head>
<body>
  <script>var hidden = true;</script>
  <h1>Viewport</h1>
  <p>Scroll   offset is measured in
  display lines.</p>
  <a href="/guide">User guide</a>
  <a href="#anchor">Skip me</a>
  <a href="https://example.com/api">API</a>
</body>
</html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetch(t *testing.T) {
	ts := testServer(t)

	page, err := Fetch(context.Background(), ts.URL, Options{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Title != "Tide Docs" {
		t.Fatalf("Title = %q, want %q", page.Title, "Tide Docs")
	}
	if !strings.Contains(page.Text, "Scroll offset is measured in display lines.") {
		t.Fatalf("Text = %q, whitespace not collapsed", page.Text)
	}
	if strings.Contains(page.Text, "hidden") || strings.Contains(page.Text, "color: red") {
		t.Fatalf("Text = %q, script/style leaked", page.Text)
	}
	if len(page.Links) != 2 {
		t.Fatalf("Links = %+v, want 2 (anchor skipped)", page.Links)
	}
	if !strings.HasPrefix(page.Links[0].Href, ts.URL) {
		t.Fatalf("relative link not resolved: %q", page.Links[0].Href)
	}
}

func TestFetch_Selector(t *testing.T) {
	ts := testServer(t)

	page, err := Fetch(context.Background(), ts.URL, Options{Selector: "h1"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Text != "Viewport" {
		t.Fatalf("Text = %q, want %q", page.Text, "Viewport")
	}

	if _, err := Fetch(context.Background(), ts.URL, Options{Selector: "#nope"}); err == nil {
		t.Fatal("expected error for selector matching nothing")
	}
}

func TestFetch_Truncates(t *testing.T) {
	ts := testServer(t)

	page, err := Fetch(context.Background(), ts.URL, Options{MaxChars: 10})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasSuffix(page.Text, "…") {
		t.Fatalf("Text = %q, want truncated with ellipsis", page.Text)
	}
}

func TestFetch_Errors(t *testing.T) {
	ts := testServer(t)

	if _, err := Fetch(context.Background(), "not a url", Options{}); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := Fetch(context.Background(), "ftp://example.com", Options{}); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if _, err := Fetch(context.Background(), ts.URL+"/missing", Options{}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
