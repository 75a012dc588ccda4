package scroll

import (
	"fmt"
	"slices"
	"testing"
)

func newChat(n, width, height int) *Viewport {
	v := New(width, height)
	for i := 1; i <= n; i++ {
		v.Append(fmt.Sprintf("msg %d", i))
	}
	v.JumpToBottom()
	return v
}

func visible(t *testing.T, v *Viewport) (int, int) {
	t.Helper()
	f := v.Frame()
	if f.First < 0 {
		t.Fatal("no visible items")
	}
	return f.First, f.Last
}

func TestViewport_InitialBottomPinned(t *testing.T) {
	// 10 个单行块、视口高 3：首帧显示最后三条。
	v := newChat(10, 40, 3)
	first, last := visible(t, v)
	if first != 7 || last != 9 {
		t.Fatalf("visible = [%d, %d], want [7, 9]", first, last)
	}
}

func TestViewport_ScrollUpOne(t *testing.T) {
	v := newChat(10, 40, 3)
	v.ScrollBy(-1)
	first, last := visible(t, v)
	if first != 6 || last != 8 {
		t.Fatalf("visible = [%d, %d], want [6, 8]", first, last)
	}
}

func TestViewport_ClampedAtTop(t *testing.T) {
	v := newChat(5, 40, 3)
	for i := 0; i < 10; i++ {
		v.ScrollBy(-1)
	}
	first, last := visible(t, v)
	if first != 0 || last != 2 {
		t.Fatalf("visible = [%d, %d], want [0, 2]", first, last)
	}
}

func TestViewport_ClampedAtBottom(t *testing.T) {
	v := newChat(5, 40, 3)
	for i := 0; i < 5; i++ {
		v.ScrollBy(1)
	}
	first, last := visible(t, v)
	if first != 2 || last != 4 {
		t.Fatalf("visible = [%d, %d], want [2, 4]", first, last)
	}
}

func TestViewport_HalfPageFromTop(t *testing.T) {
	v := newChat(20, 40, 6)
	v.JumpToTop()
	v.HalfPageDown()
	first, _ := visible(t, v)
	if first != 3 {
		t.Fatalf("first visible = %d, want 3", first)
	}
}

func TestViewport_ShortContentBottomAligned(t *testing.T) {
	v := newChat(3, 40, 5)
	f := v.Frame()
	if f.First != 0 || f.Last != 2 {
		t.Fatalf("visible = [%d, %d], want [0, 2]", f.First, f.Last)
	}
	if !f.BottomAligned {
		t.Fatal("short content not bottom-aligned")
	}
	if f.Scrollbar.Visible {
		t.Fatal("scrollbar emitted for content that fits")
	}
}

func TestViewport_VisibleLinesPartialFirstItem(t *testing.T) {
	v := New(10, 3)
	v.Append("aaa bbb ccc ddd") // 2 lines at width 10: "aaa bbb", "ccc ddd"
	v.Append("x")
	v.Append("y")
	v.JumpToBottom() // total 4, offset 1
	got := v.VisibleLines()
	want := []string{"ccc ddd", "x", "y"}
	if !slices.Equal(got, want) {
		t.Fatalf("VisibleLines = %v, want %v", got, want)
	}
}

func TestViewport_AppendKeepsReaderPosition(t *testing.T) {
	v := newChat(10, 40, 3)
	v.ScrollBy(-4)
	offset := v.Offset()
	v.Append("msg 11", "msg 12")
	if v.Offset() != offset {
		t.Fatalf("append moved reader: %d -> %d", offset, v.Offset())
	}
	// 显式触发才回底。
	if !v.SyncTrigger(1) {
		t.Fatal("trigger did not fire")
	}
	if !v.AtBottom() {
		t.Fatal("trigger did not land at bottom")
	}
	if v.SyncTrigger(1) {
		t.Fatal("repeated trigger value fired again")
	}
}

func TestViewport_ResizeWidthRewraps(t *testing.T) {
	v := New(20, 4)
	v.Append("aaa bbb ccc ddd eee") // one line at width 20
	if v.TotalLines() != 1 {
		t.Fatalf("TotalLines = %d, want 1", v.TotalLines())
	}
	v.Resize(4, 4)
	if v.TotalLines() != 5 {
		t.Fatalf("TotalLines after narrow resize = %d, want 5", v.TotalLines())
	}
	if v.Offset() < 0 || v.Offset() > v.MaxOffset() {
		t.Fatalf("invariant violated after resize: offset %d, max %d", v.Offset(), v.MaxOffset())
	}
}

func TestViewport_EmptyFrame(t *testing.T) {
	v := New(40, 5)
	f := v.Frame()
	if f.First != -1 || len(f.Items) != 0 {
		t.Fatalf("empty viewport frame = %+v, want no items", f)
	}
	if f.Scrollbar.Visible {
		t.Fatal("scrollbar emitted for empty viewport")
	}
	if v.VisibleLines() != nil {
		t.Fatal("VisibleLines non-nil for empty viewport")
	}
}

func TestNewFromItems_PrecomputedHeights(t *testing.T) {
	items := []Item{
		{Content: "a", Height: 2}, // caller-provided height wins
		{Content: "b"},            // missing height recomputed
	}
	v := NewFromItems(items, 40, 10)
	if v.TotalLines() != 3 {
		t.Fatalf("TotalLines = %d, want 3", v.TotalLines())
	}
	if !v.AtBottom() {
		t.Fatal("NewFromItems not bottom-pinned")
	}
}
