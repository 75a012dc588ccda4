package scroll

import "testing"

func TestBuildIndex(t *testing.T) {
	ix := BuildIndex([]int{2, 1, 3})
	if got := ix.TotalLines(); got != 6 {
		t.Fatalf("TotalLines = %d, want 6", got)
	}
	wantPos := []int{0, 2, 3}
	for i, want := range wantPos {
		if got := ix.Position(i); got != want {
			t.Fatalf("Position(%d) = %d, want %d", i, got, want)
		}
	}
	if got := BuildIndex(nil).TotalLines(); got != 0 {
		t.Fatalf("empty TotalLines = %d, want 0", got)
	}
}

func TestVisibleRange(t *testing.T) {
	heights := []int{2, 1, 3, 1} // positions 0, 2, 3, 6; total 7
	ix := BuildIndex(heights)

	tests := []struct {
		name           string
		offset, height int
		first, last    int
		ok             bool
	}{
		{name: "from top", offset: 0, height: 3, first: 0, last: 2, ok: true},
		{name: "offset inside first item", offset: 1, height: 2, first: 0, last: 1, ok: true},
		{name: "offset at item boundary", offset: 2, height: 1, first: 1, last: 1, ok: true},
		{name: "middle of tall item", offset: 4, height: 1, first: 2, last: 2, ok: true},
		{name: "bottom", offset: 4, height: 3, first: 2, last: 3, ok: true},
		{name: "viewport taller than content keeps last item", offset: 0, height: 50, first: 0, last: 3, ok: true},
		{name: "offset beyond content", offset: 7, height: 3, ok: false},
		{name: "degenerate viewport height", offset: 0, height: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := ix.VisibleRange(tt.offset, tt.height)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if first != tt.first || last != tt.last {
				t.Fatalf("VisibleRange(%d, %d) = [%d, %d], want [%d, %d]",
					tt.offset, tt.height, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestVisibleRange_Empty(t *testing.T) {
	ix := BuildIndex(nil)
	if _, _, ok := ix.VisibleRange(0, 10); ok {
		t.Fatal("empty index reported a visible range")
	}
}
