package components

import "github.com/decker502/cardstack/pkg/scroller"

// StackScrollComponent 保存一个纵向卡片栈的滚动状态
//
// 位置约定：ScrollY = 0 时第 0 张卡片居中，
// 向下浏览时 ScrollY 递减，合法范围为 [MinY, MaxY] = [-(CardCount-1)·CardSpacing, 0]。
type StackScrollComponent struct {
	// Scroller 驱动该卡片栈的滚动器（只使用 Y 轴）
	Scroller *scroller.DualAxisScroller

	// CardCount 卡片数量
	CardCount int

	// CardSpacing 相邻卡片的间距（像素），同时作为吸附距离
	CardSpacing int

	// MinY、MaxY 合法滚动范围
	MinY int
	MaxY int

	// OverY 惯性滑动触边后允许的越界距离
	OverY int

	// ScrollY 当前滚动位置
	ScrollY int

	// Dragging 手指/鼠标按下并拖动中
	Dragging bool

	// TouchDownY 按下时的滚动位置
	TouchDownY int

	// TouchDownVelocity 按下时被打断的滑动速度，按下前已静止为 0
	TouchDownVelocity float64

	// SnapEnabled 是否把滑动终点吸附到卡片边界
	SnapEnabled bool
}

// InBounds 返回 ScrollY 是否在合法范围内
func (c *StackScrollComponent) InBounds() bool {
	return c.ScrollY >= c.MinY && c.ScrollY <= c.MaxY
}
