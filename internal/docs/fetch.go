package docs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultMaxChars = 4000
	maxLinks        = 10
	fetchTimeout    = 15 * time.Second
)

// Page 是一次文档抓取的结果：标题、正文纯文本与页面内的前若干链接。
type Page struct {
	Title string
	Text  string
	Links []Link
}

type Link struct {
	Text string
	Href string
}

// Options 控制抓取行为。Selector 为空时提取整个 body。
type Options struct {
	Selector string
	MaxChars int
	Client   *http.Client
}

// Fetch 抓取网页并抽取纯文本。脚本与样式剔除，空白折叠，超长截断。
func Fetch(ctx context.Context, rawURL string, opts Options) (Page, error) {
	var page Page

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return page, fmt.Errorf("invalid url %q", rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return page, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return page, err
	}
	req.Header.Set("User-Agent", "tide-cli/docs")

	resp, err := client.Do(req)
	if err != nil {
		return page, fmt.Errorf("fetch %s: %w", parsed.Host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return page, fmt.Errorf("fetch %s: unexpected status %d", parsed.Host, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return page, fmt.Errorf("parse %s: %w", parsed.Host, err)
	}
	doc.Find("script, style, noscript").Remove()

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())

	selection := doc.Selection
	if sel := strings.TrimSpace(opts.Selector); sel != "" {
		selection = doc.Find(sel)
		if selection.Length() == 0 {
			return page, fmt.Errorf("selector %q matched nothing", sel)
		}
	} else if body := doc.Find("body"); body.Length() > 0 {
		selection = body
	}

	text := collapseWhitespace(selection.Text())
	if len(text) > maxChars {
		text = text[:maxChars] + "…"
	}
	page.Text = text
	page.Links = collectLinks(doc, parsed, maxLinks)
	return page, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func collectLinks(doc *goquery.Document, base *url.URL, limit int) []Link {
	var links []Link
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		if ref, err := url.Parse(href); err == nil {
			href = base.ResolveReference(ref).String()
		}
		text := collapseWhitespace(sel.Text())
		if text == "" {
			text = href
		}
		links = append(links, Link{Text: text, Href: href})
		return len(links) < limit
	})
	return links
}
