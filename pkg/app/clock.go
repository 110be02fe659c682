package app

// FrameClock 以固定 tick 推进的毫秒时钟
//
// 滚动引擎不读取系统时钟，App 每个 Update 推进 1000/TPS 毫秒，
// 动画因此与 tick 数严格对应，且在调试暂停时不会跳帧。
type FrameClock struct {
	baseMs int64
	ticks  int64
	tps    int
}

// Advance 推进一个 tick 并返回当前时间（毫秒）
// tps <= 0 时按 60 计算；TPS 变化时以当前时间为新起点
func (c *FrameClock) Advance(tps int) int64 {
	if tps <= 0 {
		tps = 60
	}
	if tps != c.tps {
		c.baseMs = c.Now()
		c.ticks = 0
		c.tps = tps
	}
	c.ticks++
	return c.Now()
}

// Now 返回当前时间（毫秒）
func (c *FrameClock) Now() int64 {
	if c.tps == 0 {
		return c.baseMs
	}
	return c.baseMs + c.ticks*1000/int64(c.tps)
}
