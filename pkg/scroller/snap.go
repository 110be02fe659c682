package scroller

import (
	"math"

	"github.com/decker502/cardstack/pkg/config"
)

// snapTuning 吸附滑动的速度阈值（已按屏幕密度换算为像素/秒）
type snapTuning struct {
	singleVelocity   float64
	doubleVelocity   float64
	tripleVelocity   float64
	maxVelocity      float64
	repeatedVelocity float64
	maxSteps         int
	repeatedWindowMs int64
}

func newSnapTuning(cfg *config.SnapConfig, density float64) snapTuning {
	return snapTuning{
		singleVelocity:   cfg.SingleVelocity * density,
		doubleVelocity:   cfg.DoubleVelocity * density,
		tripleVelocity:   cfg.TripleVelocity * density,
		maxVelocity:      cfg.MaxVelocity * density,
		repeatedVelocity: cfg.RepeatedFlingVelocity * density,
		maxSteps:         cfg.MaxSteps,
		repeatedWindowMs: cfg.RepeatedFlingWindowMs,
	}
}

// stepCount 把速度大小映射为要跨越的吸附格数
func (s snapTuning) stepCount(speed float64) int {
	switch {
	case speed < s.singleVelocity:
		return 0
	case speed < s.doubleVelocity:
		return 1
	case speed < s.tripleVelocity:
		return 2
	case speed < s.maxVelocity:
		ratio := (speed - s.tripleVelocity) / (s.maxVelocity - s.tripleVelocity)
		return 3 + int(ratio*float64(s.maxSteps-3))
	default:
		return s.maxSteps
	}
}

// maxFlingRecord 上一次最大档位滑动的时间和方向
type maxFlingRecord struct {
	time int64
	sign int
}

// SetSnapDistance 设置吸附距离，0 表示不吸附
func (a *AxisScroller) SetSnapDistance(distance int) {
	a.snapDistance = max(distance, 0)
}

// SnapDistance 返回吸附距离
func (a *AxisScroller) SnapDistance() int { return a.snapDistance }

// SetCenteredSnapIndexAtTouchDown 记录按下时居中的吸附索引
func (a *AxisScroller) SetCenteredSnapIndexAtTouchDown(index int) {
	a.centeredSnapIndex = index
}

// CenteredSnapIndexAtTouchDown 返回按下时居中的吸附索引
func (a *AxisScroller) CenteredSnapIndexAtTouchDown() int { return a.centeredSnapIndex }

// snapFling 把滑动终点量化到吸附距离的整数倍
//
// 上一次最大档位滑动后 repeatedWindowMs 内同向且足够快的滑动直接取最大档位，
// 使连续快速拨动保持跟手。
func (a *AxisScroller) snapFling(start, velocity, min, max int, time int64) {
	speed := math.Abs(float64(velocity))
	sign := int(signum(float64(velocity)))

	steps := a.snap.stepCount(speed)
	if rec := a.lastMaxFling; rec != nil && sign != 0 &&
		time-rec.time < a.snap.repeatedWindowMs &&
		sign == rec.sign &&
		speed > a.snap.repeatedVelocity {
		steps = a.snap.maxSteps
	}

	newIndex := a.centeredSnapIndex - sign*steps
	candidate := -newIndex * a.snapDistance
	if candidate < min {
		candidate = min
	}
	if candidate > max {
		candidate = max
	}

	if candidate == start {
		a.state = StateSpline
		a.final = start
		a.splineDistance = 0
		a.currVelocity = 0
		a.finished = true
		return
	}

	if steps >= a.snap.maxSteps {
		a.lastMaxFling = &maxFlingRecord{time: time, sign: sign}
	} else {
		a.lastMaxFling = nil
	}

	a.FlingTo(start, candidate, time)
}
