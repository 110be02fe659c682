// Package scroller 实现与时钟解耦的双轴滚动/惯性滑动物理引擎
//
// 位置由调用方每帧传入的时间戳（毫秒）计算得出，可以由任意帧时钟驱动。
// 引擎支持三种物理阶段（样条减速、越界匀减速、三次回弹）、
// 固定时长的粘滞流体缓动滚动，以及量化到固定间距的吸附滑动。
//
// 典型用法：
//
//	s := scroller.New(cfg)
//	s.Fling(x, y, vx, vy, minX, maxX, minY, maxY, overX, overY, now)
//	for each frame:
//	    s.ComputeScrollOffset(now)
//	    draw(s.CurrX(), s.CurrY())
package scroller

import (
	"math"

	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/utils"
)

// DualAxisScroller 持有 X、Y 两个单轴滚动器
//
// ModeScroll 下两轴共享同一条缓动进度，保证视觉同步；
// ModeFling 下两轴各自推进物理阶段。
type DualAxisScroller struct {
	mode      Mode
	scrollerX *AxisScroller
	scrollerY *AxisScroller
	flywheel  bool
}

// New 创建双轴滚动器
// cfg 为 nil 时使用默认配置
func New(cfg *config.ScrollerConfig) *DualAxisScroller {
	if cfg == nil {
		cfg = config.DefaultScrollerConfig()
	}
	return &DualAxisScroller{
		mode:      ModeFling,
		scrollerX: NewAxisScroller(cfg),
		scrollerY: NewAxisScroller(cfg),
		flywheel:  cfg.Flywheel,
	}
}

// X 返回 X 轴滚动器
func (s *DualAxisScroller) X() *AxisScroller { return s.scrollerX }

// Y 返回 Y 轴滚动器
func (s *DualAxisScroller) Y() *AxisScroller { return s.scrollerY }

// Mode 返回当前运动模式
func (s *DualAxisScroller) Mode() Mode { return s.mode }

// SetFlywheel 开关连续滑动的速度叠加
func (s *DualAxisScroller) SetFlywheel(enabled bool) { s.flywheel = enabled }

// Flywheel 返回是否启用速度叠加
func (s *DualAxisScroller) Flywheel() bool { return s.flywheel }

// SetFrictionMultiplier 同时设置两轴的摩擦系数倍率
func (s *DualAxisScroller) SetFrictionMultiplier(multiplier float64) {
	s.scrollerX.SetFrictionMultiplier(multiplier)
	s.scrollerY.SetFrictionMultiplier(multiplier)
}

// IsFinished 两轴都结束时返回 true
func (s *DualAxisScroller) IsFinished() bool {
	return s.scrollerX.finished && s.scrollerY.finished
}

// ForceFinished 只修改两轴的结束标志，不移动位置
func (s *DualAxisScroller) ForceFinished(finished bool) {
	s.scrollerX.finished = finished
	s.scrollerY.finished = finished
}

// AbortAnimation 立即停止动画并跳到目标位置
func (s *DualAxisScroller) AbortAnimation() {
	s.scrollerX.Finish()
	s.scrollerY.Finish()
}

// CurrX 当前 X 位置
func (s *DualAxisScroller) CurrX() int { return s.scrollerX.current }

// CurrY 当前 Y 位置
func (s *DualAxisScroller) CurrY() int { return s.scrollerY.current }

// StartX 起点 X
func (s *DualAxisScroller) StartX() int { return s.scrollerX.start }

// StartY 起点 Y
func (s *DualAxisScroller) StartY() int { return s.scrollerY.start }

// FinalX 目标 X（ModeFling 下有效）
func (s *DualAxisScroller) FinalX() int { return s.scrollerX.final }

// FinalY 目标 Y（ModeFling 下有效）
func (s *DualAxisScroller) FinalY() int { return s.scrollerY.final }

// SetFinalX 修改进行中动画的目标 X
func (s *DualAxisScroller) SetFinalX(x int) { s.scrollerX.SetFinalPosition(x) }

// SetFinalY 修改进行中动画的目标 Y
func (s *DualAxisScroller) SetFinalY(y int) { s.scrollerY.SetFinalPosition(y) }

// CurrVelocity 返回两轴合速度（像素/秒）
func (s *DualAxisScroller) CurrVelocity() float64 {
	return math.Hypot(s.scrollerX.currVelocity, s.scrollerY.currVelocity)
}

// TimePassed 返回自动画开始经过的毫秒数
func (s *DualAxisScroller) TimePassed(time int64) int64 {
	startTime := min(s.scrollerX.startTime, s.scrollerY.startTime)
	return time - startTime
}

// SetXSnapDistance 设置 X 轴吸附距离
func (s *DualAxisScroller) SetXSnapDistance(distance int) { s.scrollerX.SetSnapDistance(distance) }

// SetYSnapDistance 设置 Y 轴吸附距离
func (s *DualAxisScroller) SetYSnapDistance(distance int) { s.scrollerY.SetSnapDistance(distance) }

// SetCenteredXSnapIndexAtTouchDown 记录按下时 X 轴居中的吸附索引
func (s *DualAxisScroller) SetCenteredXSnapIndexAtTouchDown(index int) {
	s.scrollerX.SetCenteredSnapIndexAtTouchDown(index)
}

// SetCenteredYSnapIndexAtTouchDown 记录按下时 Y 轴居中的吸附索引
func (s *DualAxisScroller) SetCenteredYSnapIndexAtTouchDown(index int) {
	s.scrollerY.SetCenteredSnapIndexAtTouchDown(index)
}

// ComputeScrollOffset 推进到给定时间
//
// 每帧调用一次，time 必须单调不减。
//
// 返回:
//   - bool: 仍在动画中返回 true；两轴均已结束返回 false
func (s *DualAxisScroller) ComputeScrollOffset(time int64) bool {
	if s.IsFinished() {
		return false
	}

	switch s.mode {
	case ModeScroll:
		// 两轴同时开始，任取 X 轴计时
		elapsed := time - s.scrollerX.startTime
		duration := int64(s.scrollerX.duration)
		if elapsed < duration {
			q := utils.ViscousFluid(float64(elapsed) / float64(duration))
			s.scrollerX.UpdateScroll(q)
			s.scrollerY.UpdateScroll(q)
		} else {
			s.AbortAnimation()
		}

	case ModeFling:
		advanceFling(s.scrollerX, time)
		advanceFling(s.scrollerY, time)
	}

	return !s.IsFinished()
}

func advanceFling(a *AxisScroller, time int64) {
	if a.finished {
		return
	}
	if !a.Update(time) {
		if !a.ContinueWhenFinished(time) {
			a.Finish()
		}
	}
}

// StartScroll 开始一次固定时长的缓动滚动
//
// 参数:
//   - startX, startY: 起点
//   - dx, dy: 位移
//   - startTime: 起始时间（毫秒）
//   - duration: 时长（毫秒）
func (s *DualAxisScroller) StartScroll(startX, startY, dx, dy int, startTime int64, duration int) {
	s.mode = ModeScroll
	s.scrollerX.StartScroll(startX, dx, startTime, duration)
	s.scrollerY.StartScroll(startY, dy, startTime, duration)
}

// SpringBack 越界时回弹到合法范围
//
// 返回:
//   - bool: 任一轴需要回弹返回 true
func (s *DualAxisScroller) SpringBack(startX, startY, minX, maxX, minY, maxY int, time int64) bool {
	s.mode = ModeFling

	// 两轴都必须调用
	springbackX := s.scrollerX.Springback(startX, minX, maxX, time)
	springbackY := s.scrollerY.Springback(startY, minY, maxY, time)
	return springbackX || springbackY
}

// Fling 开始一次双轴惯性滑动
//
// 启用飞轮时，若上一次滑动仍在进行且两轴速度方向均与当前速度一致，
// 新速度会叠加上一次的当前速度。
func (s *DualAxisScroller) Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY, overX, overY int, time int64) {
	if s.flywheel && !s.IsFinished() {
		oldVelocityX := s.scrollerX.currVelocity
		oldVelocityY := s.scrollerY.currVelocity
		if signum(float64(velocityX)) == signum(oldVelocityX) &&
			signum(float64(velocityY)) == signum(oldVelocityY) {
			velocityX += int(oldVelocityX)
			velocityY += int(oldVelocityY)
		}
	}

	s.mode = ModeFling
	s.scrollerX.Fling(startX, velocityX, minX, maxX, overX, time)
	s.scrollerY.Fling(startY, velocityY, minY, maxY, overY, time)
}

// FlingXTo 以样条手感把 X 轴滑动到指定位置
func (s *DualAxisScroller) FlingXTo(startX, finalX int, time int64) {
	s.mode = ModeFling
	s.scrollerX.FlingTo(startX, finalX, time)
}

// FlingYTo 以样条手感把 Y 轴滑动到指定位置
func (s *DualAxisScroller) FlingYTo(startY, finalY int, time int64) {
	s.mode = ModeFling
	s.scrollerY.FlingTo(startY, finalY, time)
}

// NotifyHorizontalEdgeReached 通知 X 轴滑动已触边
func (s *DualAxisScroller) NotifyHorizontalEdgeReached(startX, finalX, overX int, time int64) {
	s.scrollerX.NotifyEdgeReached(startX, finalX, overX, time)
}

// NotifyVerticalEdgeReached 通知 Y 轴滑动已触边
func (s *DualAxisScroller) NotifyVerticalEdgeReached(startY, finalY, overY int, time int64) {
	s.scrollerY.NotifyEdgeReached(startY, finalY, overY, time)
}

// IsOverScrolled 任一未结束的轴处于越界或回弹阶段时返回 true
func (s *DualAxisScroller) IsOverScrolled() bool {
	return (!s.scrollerX.finished && s.scrollerX.state != StateSpline) ||
		(!s.scrollerY.finished && s.scrollerY.state != StateSpline)
}

// IsScrollingInDirection 动画未结束且剩余位移方向与给定速度一致时返回 true
func (s *DualAxisScroller) IsScrollingInDirection(xvel, yvel float64) bool {
	dx := s.scrollerX.final - s.scrollerX.start
	dy := s.scrollerY.final - s.scrollerY.start
	return !s.IsFinished() &&
		signum(xvel) == signum(float64(dx)) &&
		signum(yvel) == signum(float64(dy))
}
