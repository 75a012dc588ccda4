package scroll

import (
	"slices"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			text:  "hello",
			width: 10,
			want:  []string{"hello"},
		},
		{
			name:  "break at last space",
			text:  "hello world",
			width: 8,
			want:  []string{"hello", "world"},
		},
		{
			name:  "space right after a full line",
			text:  "abcd efg",
			width: 4,
			want:  []string{"abcd", "efg"},
		},
		{
			name:  "hard break without spaces",
			text:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		{
			name:  "explicit newlines preserved",
			text:  "a\n\nb",
			width: 10,
			want:  []string{"a", "", "b"},
		},
		{
			name:  "empty text is one empty line",
			text:  "",
			width: 10,
			want:  []string{""},
		},
		{
			name:  "degenerate width treated as one",
			text:  "ab",
			width: 0,
			want:  []string{"a", "b"},
		},
		{
			name:  "wide runes count two cells",
			text:  "你好世界",
			width: 4,
			want:  []string{"你好", "世界"},
		},
		{
			name:  "greedy fill over several lines",
			text:  "one two three four",
			width: 9,
			want:  []string{"one two", "three", "four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Wrap(%q, %d) = %v, want %v", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrap_RoundTrip(t *testing.T) {
	// 仅在空格处断行的段落，重插单个空格后应还原原文。
	text := "the quick brown fox jumps over the lazy dog"
	for _, width := range []int{6, 10, 15, 44} {
		lines := Wrap(text, width)
		if got := strings.Join(lines, " "); got != text {
			t.Fatalf("width %d: rejoined %q, want %q", width, got, text)
		}
	}
}

func TestHeight(t *testing.T) {
	if got := Height("hello world", 8); got != 2 {
		t.Fatalf("Height = %d, want 2", got)
	}
	if got := Height("x", 80); got != 1 {
		t.Fatalf("Height of short text = %d, want 1", got)
	}
	// 非空文本高度恒 ≥ 1，宽度再退化也不例外。
	if got := Height("abc", -5); got < 1 {
		t.Fatalf("Height with negative width = %d, want >= 1", got)
	}
}
