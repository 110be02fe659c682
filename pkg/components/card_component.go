package components

// CardComponent 卡片栈中的一张卡片
type CardComponent struct {
	// Index 卡片在栈中的序号（从 0 开始）
	Index int

	// OffsetY 相对视口中心的纵向偏移（像素），由 StackScrollSystem 每帧更新
	OffsetY int

	// Label 卡片上显示的文字
	Label string
}
