package scroll

// Controller 持有单个视口的滚动状态。唯一的不变量是
// 0 ≤ offset ≤ maxOffset，每次变更后统一经 clamp 重建。
// “贴底”不是独立标志位，而是 offset == MaxOffset() 的派生条件，
// 避免标志与实际偏移在 resize/内容变化后各说各话。
type Controller struct {
	offset      int
	height      int
	totalLines  int
	lastTrigger int
}

// NewController 创建滚动控制器，初始贴底（首帧即显示最新内容）。
func NewController(viewportHeight, totalLines int) *Controller {
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if totalLines < 0 {
		totalLines = 0
	}
	c := &Controller{height: viewportHeight, totalLines: totalLines}
	c.offset = c.MaxOffset()
	return c
}

// Offset 返回视口顶端相对全部内容顶端的行偏移。
func (c *Controller) Offset() int {
	if c == nil {
		return 0
	}
	return c.offset
}

// ViewportHeight 返回当前视口高度。
func (c *Controller) ViewportHeight() int {
	if c == nil {
		return 0
	}
	return c.height
}

// MaxOffset 返回允许的最大偏移。
func (c *Controller) MaxOffset() int {
	if c == nil {
		return 0
	}
	if m := c.totalLines - c.height; m > 0 {
		return m
	}
	return 0
}

// AtBottom 报告视口是否贴底。
func (c *Controller) AtBottom() bool {
	return c != nil && c.offset == c.MaxOffset()
}

// ScrollBy 施加相对滚动（负值向上），越界时停在边界。
func (c *Controller) ScrollBy(delta int) {
	if c == nil {
		return
	}
	c.offset += delta
	c.clamp()
}

// HalfPageUp 按半屏上滚（Ctrl-U）。
func (c *Controller) HalfPageUp() { c.ScrollBy(-c.ViewportHeight() / 2) }

// HalfPageDown 按半屏下滚（Ctrl-D）。
func (c *Controller) HalfPageDown() { c.ScrollBy(c.ViewportHeight() / 2) }

// JumpToBottom 绝对跳转到最大偏移。
func (c *Controller) JumpToBottom() {
	if c == nil {
		return
	}
	c.offset = c.MaxOffset()
}

// JumpToTop 绝对跳转到 0。
func (c *Controller) JumpToTop() {
	if c == nil {
		return
	}
	c.offset = 0
}

// SyncTrigger 消费外部跳底计数器：仅在计数器严格递增时跳底一次
// （边沿触发）。重复收到同一值不重复跳转。返回是否发生跳转。
// 控制器只记住计数器值，不关心触发原因。
func (c *Controller) SyncTrigger(counter int) bool {
	if c == nil || counter <= c.lastTrigger {
		return false
	}
	c.lastTrigger = counter
	c.JumpToBottom()
	return true
}

// SetTotalLines 响应内容总行数变化：只会向下收紧偏移，绝不把
// 主动上滚的读者拽回底部——回底只经由 SyncTrigger 的显式触发。
func (c *Controller) SetTotalLines(n int) {
	if c == nil {
		return
	}
	if n < 0 {
		n = 0
	}
	c.totalLines = n
	c.clamp()
}

// Resize 更新视口高度并重建不变量。同一帧内 resize 必须先于内容
// 变化/跳转应用，MaxOffset 依赖最新高度。
func (c *Controller) Resize(viewportHeight int) {
	if c == nil {
		return
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	c.height = viewportHeight
	c.clamp()
}

func (c *Controller) clamp() {
	if m := c.MaxOffset(); c.offset > m {
		c.offset = m
	}
	if c.offset < 0 {
		c.offset = 0
	}
}
