package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tide-cli/internal/docs"
	"tide-cli/internal/scroll"
)

// docsMain 抓取网页正文并折行打印，与 TUI 里的 /docs 共用同一套
// 抓取逻辑。
func docsMain(args []string) {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	width := fs.Int("width", 100, "Wrap output at this column")
	selector := fs.String("selector", "", "CSS selector to extract (default page body)")
	maxChars := fs.Int("max-chars", 0, "Truncate extracted text (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse docs args: %v", err)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tide-cli docs [flags] <url>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	page, err := docs.Fetch(ctx, fs.Arg(0), docs.Options{
		Selector: *selector,
		MaxChars: *maxChars,
	})
	if err != nil {
		log.Fatalf("docs fetch failed: %v", err)
	}

	if page.Title != "" {
		fmt.Println(page.Title)
		fmt.Println()
	}
	for _, line := range scroll.Wrap(page.Text, *width) {
		fmt.Println(line)
	}
	if len(page.Links) > 0 {
		fmt.Println()
		fmt.Println("Links:")
		for _, l := range page.Links {
			fmt.Printf("  %s — %s\n", l.Text, l.Href)
		}
	}
}
