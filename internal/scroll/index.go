package scroll

import "sort"

// Index 是按序内容块的累计行号表：positions[i] 为第 i 块之前所有块的
// 总行数。块只追加、不重排，宽度或数量变化时整表重建。
type Index struct {
	positions []int
	heights   []int
	total     int
}

// BuildIndex 由高度序列构建累计表。
func BuildIndex(heights []int) Index {
	positions := make([]int, len(heights))
	total := 0
	for i, h := range heights {
		positions[i] = total
		total += h
	}
	return Index{
		positions: positions,
		heights:   append([]int(nil), heights...),
		total:     total,
	}
}

// Len 返回块数。
func (ix Index) Len() int { return len(ix.heights) }

// TotalLines 返回全部内容的总行数。
func (ix Index) TotalLines() int { return ix.total }

// Position 返回第 i 块的起始行号。
func (ix Index) Position(i int) int {
	if i < 0 || i >= len(ix.positions) {
		return 0
	}
	return ix.positions[i]
}

// VisibleRange 返回覆盖视口行区间 [offset, offset+viewportHeight) 的
// 块下标闭区间。视口超出内容末尾时最后一块仍然可见；空序列或退化
// 视口返回 ok=false。positions 单调不减，查找用二分。
func (ix Index) VisibleRange(offset, viewportHeight int) (first, last int, ok bool) {
	n := len(ix.heights)
	if n == 0 || viewportHeight <= 0 {
		return 0, 0, false
	}
	if offset < 0 {
		offset = 0
	}
	// 第一个底边越过 offset 的块。positions[i]+heights[i] == positions[i+1]，
	// 同样单调。
	first = sort.Search(n, func(i int) bool {
		return ix.positions[i]+ix.heights[i] > offset
	})
	if first == n {
		return 0, 0, false
	}
	limit := offset + viewportHeight
	last = sort.Search(n, func(i int) bool {
		return ix.positions[i] >= limit
	}) - 1
	if last < first {
		return 0, 0, false
	}
	return first, last, true
}
