package scroll

// Item 是一个不透明内容块及其在当前折行宽度下的高度（行数）。
// 块只追加、不重排；宽度变化时高度整体重算。
type Item struct {
	Content string
	Height  int
}

// Frame 是一次视口计算的输出：可见块切片、是否需要贴底对齐，
// 以及滚动条描述（内容未超出视口时 Scrollbar.Visible 为 false）。
type Frame struct {
	Items         []Item
	First         int
	Last          int
	BottomAligned bool
	Scrollbar     Scrollbar
}

// Viewport 把折行、累计索引、滚动控制和滚动条组装为一个调用面。
// 数据单向流动：内容高度变化 → 重建索引 → 控制器重新钳制 →
// 可见切片/滚动条重算。所有操作同步完成，单个实例不做并发访问。
type Viewport struct {
	items []Item
	index Index
	ctrl  *Controller
	width int
}

// New 创建空视口，宽高退化值（≤0）按最小可用值处理而不报错。
func New(width, height int) *Viewport {
	v := &Viewport{width: width}
	v.ctrl = NewController(height, 0)
	return v
}

// NewFromItems 用既有内容块创建视口。Height ≤ 0 的块按当前宽度重算。
func NewFromItems(items []Item, width, height int) *Viewport {
	v := New(width, height)
	v.items = make([]Item, len(items))
	copy(v.items, items)
	for i := range v.items {
		if v.items[i].Height <= 0 {
			v.items[i].Height = Height(v.items[i].Content, width)
		}
	}
	v.reindex()
	v.ctrl.JumpToBottom()
	return v
}

// Append 追加内容块并按当前宽度折行计高。
func (v *Viewport) Append(blocks ...string) {
	if v == nil {
		return
	}
	for _, b := range blocks {
		v.items = append(v.items, Item{Content: b, Height: Height(b, v.width)})
	}
	v.reindex()
}

// SetItems 整体替换内容（清屏、会话恢复、重新渲染）。
func (v *Viewport) SetItems(blocks []string) {
	if v == nil {
		return
	}
	v.items = v.items[:0]
	for _, b := range blocks {
		v.items = append(v.items, Item{Content: b, Height: Height(b, v.width)})
	}
	v.reindex()
}

// AppendItems 追加带预计算高度的块（Height ≤ 0 时按当前宽度重算）。
// 渲染层做过装饰（前缀、染色）的内容行数由调用方给出，引擎不重折。
func (v *Viewport) AppendItems(items ...Item) {
	if v == nil {
		return
	}
	for _, it := range items {
		if it.Height <= 0 {
			it.Height = Height(it.Content, v.width)
		}
		v.items = append(v.items, it)
	}
	v.reindex()
}

// ReplaceItems 整体替换为带预计算高度的块。
func (v *Viewport) ReplaceItems(items []Item) {
	if v == nil {
		return
	}
	v.items = v.items[:0]
	v.AppendItems(items...)
}

// Resize 更新视口尺寸。高度先于内容高度重算应用——MaxOffset 依赖
// 最新高度；宽度变化时全部块重新折行并重建索引。
func (v *Viewport) Resize(width, height int) {
	if v == nil {
		return
	}
	v.ctrl.Resize(height)
	if width != v.width {
		v.width = width
		for i := range v.items {
			v.items[i].Height = Height(v.items[i].Content, v.width)
		}
	}
	v.reindex()
}

// ScrollBy 施加相对滚动（键盘路径：↑/k=-1，↓/j=+1）。
func (v *Viewport) ScrollBy(delta int) {
	if v == nil {
		return
	}
	v.ctrl.ScrollBy(delta)
}

// HalfPageUp 对应 Ctrl-U。
func (v *Viewport) HalfPageUp() {
	if v == nil {
		return
	}
	v.ctrl.HalfPageUp()
}

// HalfPageDown 对应 Ctrl-D。
func (v *Viewport) HalfPageDown() {
	if v == nil {
		return
	}
	v.ctrl.HalfPageDown()
}

// JumpToTop 跳到内容顶端。
func (v *Viewport) JumpToTop() {
	if v == nil {
		return
	}
	v.ctrl.JumpToTop()
}

// JumpToBottom 跳到内容底端。
func (v *Viewport) JumpToBottom() {
	if v == nil {
		return
	}
	v.ctrl.JumpToBottom()
}

// SyncTrigger 转发外部跳底计数器（边沿触发，见 Controller.SyncTrigger）。
func (v *Viewport) SyncTrigger(counter int) bool {
	if v == nil {
		return false
	}
	return v.ctrl.SyncTrigger(counter)
}

// AtBottom 报告是否贴底。
func (v *Viewport) AtBottom() bool { return v != nil && v.ctrl.AtBottom() }

// Offset 返回当前行偏移。
func (v *Viewport) Offset() int {
	if v == nil {
		return 0
	}
	return v.ctrl.Offset()
}

// MaxOffset 返回最大行偏移。
func (v *Viewport) MaxOffset() int {
	if v == nil {
		return 0
	}
	return v.ctrl.MaxOffset()
}

// TotalLines 返回全部内容折行后的总行数。
func (v *Viewport) TotalLines() int {
	if v == nil {
		return 0
	}
	return v.index.TotalLines()
}

// Width 返回当前折行宽度。
func (v *Viewport) Width() int {
	if v == nil {
		return 0
	}
	return v.width
}

// Height 返回视口高度。
func (v *Viewport) Height() int {
	if v == nil {
		return 0
	}
	return v.ctrl.ViewportHeight()
}

// Len 返回内容块数。
func (v *Viewport) Len() int {
	if v == nil {
		return 0
	}
	return len(v.items)
}

// Frame 计算当前可见的块切片与滚动条描述。内容比视口矮时
// BottomAligned 为 true（短历史贴底而非贴顶）。
func (v *Viewport) Frame() Frame {
	if v == nil {
		return Frame{First: -1, Last: -1}
	}
	f := Frame{First: -1, Last: -1}
	total := v.index.TotalLines()
	h := v.ctrl.ViewportHeight()
	f.BottomAligned = total < h
	if first, last, ok := v.index.VisibleRange(v.ctrl.Offset(), h); ok {
		f.First, f.Last = first, last
		f.Items = v.items[first : last+1]
	}
	f.Scrollbar = RenderScrollbar(v.ctrl.Offset(), v.ctrl.MaxOffset(), h, total)
	return f
}

// VisibleLines 返回视口内逐行的折行文本（首个可见块可能被截掉
// 顶部若干行），长度不超过视口高度。绘制层只负责把这些行画出来。
func (v *Viewport) VisibleLines() []string {
	if v == nil {
		return nil
	}
	h := v.ctrl.ViewportHeight()
	first, last, ok := v.index.VisibleRange(v.ctrl.Offset(), h)
	if !ok {
		return nil
	}
	var lines []string
	for i := first; i <= last; i++ {
		lines = append(lines, Wrap(v.items[i].Content, v.width)...)
	}
	skip := v.ctrl.Offset() - v.index.Position(first)
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]
	if len(lines) > h {
		lines = lines[:h]
	}
	return lines
}

func (v *Viewport) reindex() {
	heights := make([]int, len(v.items))
	for i, it := range v.items {
		heights[i] = it.Height
	}
	v.index = BuildIndex(heights)
	v.ctrl.SetTotalLines(v.index.TotalLines())
}
