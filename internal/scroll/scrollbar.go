package scroll

// Scrollbar 描述按比例绘制的滚动条。内容不超过视口时不可见，
// 此时连轨道字符也不绘制。
type Scrollbar struct {
	Visible     bool
	ThumbStart  int
	ThumbHeight int
}

// RenderScrollbar 由滚动状态计算滑块的位置与高度。滑块高度与
// 视口占内容的比例对应，且恒 ≥ 1。
func RenderScrollbar(offset, maxOffset, viewportHeight, totalLines int) Scrollbar {
	if viewportHeight <= 0 || totalLines <= viewportHeight {
		return Scrollbar{}
	}
	thumb := viewportHeight * viewportHeight / totalLines
	if thumb < 1 {
		thumb = 1
	}
	if thumb > viewportHeight {
		thumb = viewportHeight
	}
	start := 0
	if maxOffset > 0 {
		if offset < 0 {
			offset = 0
		}
		if offset > maxOffset {
			offset = maxOffset
		}
		start = offset * (viewportHeight - thumb) / maxOffset
	}
	return Scrollbar{Visible: true, ThumbStart: start, ThumbHeight: thumb}
}

// Thumb 报告视口第 row 行落在滑块还是轨道上。
func (s Scrollbar) Thumb(row int) bool {
	return s.Visible && row >= s.ThumbStart && row < s.ThumbStart+s.ThumbHeight
}
