package scroller

import (
	"log"
	"math"

	"github.com/decker502/cardstack/pkg/config"
)

// Mode 选择运动是固定时长的缓动滚动还是基于物理的惯性滑动
type Mode int

const (
	// ModeScroll 固定时长缓动（进度由 DualAxisScroller 统一计算）
	ModeScroll Mode = iota
	// ModeFling 物理惯性滑动
	ModeFling
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModeScroll:
		return "scroll"
	case ModeFling:
		return "fling"
	default:
		return "unknown"
	}
}

// PhysicsState 惯性滑动中的物理阶段
//
// 单次滑动中阶段只会按 Spline → Ballistic → Cubic 的顺序推进。
type PhysicsState int

const (
	// StateSpline 样条减速阶段（查表插值）
	StateSpline PhysicsState = iota
	// StateCubic 三次曲线回弹阶段
	StateCubic
	// StateBallistic 触边后的匀减速越界阶段
	StateBallistic
)

// String 返回阶段名称
func (s PhysicsState) String() string {
	switch s {
	case StateSpline:
		return "spline"
	case StateCubic:
		return "cubic"
	case StateBallistic:
		return "ballistic"
	default:
		return "unknown"
	}
}

// AxisScroller 单轴运动状态机
//
// 位置是调用方传入时间戳（毫秒）的函数，不读取系统时钟。
// 所有位置单位为设备像素，速度单位为像素/秒。
// 非并发安全：实例只应由一个调用方（通常是渲染线程）使用。
type AxisScroller struct {
	mode  Mode
	state PhysicsState

	start   int
	current int
	final   int

	// velocity 阶段起点速度（整数）
	velocity int
	// currVelocity 最近一次 Update 计算的速度
	// Finish 不会清零，连续滑动的飞轮加速依赖该值
	currVelocity float64

	deceleration float64

	startTime      int64
	duration       int
	splineDuration int
	splineDistance int

	// over 允许的越界距离
	over     int
	finished bool

	baseFriction       float64
	frictionMultiplier float64
	flingFriction      float64
	physicalCoeff      float64

	snap              snapTuning
	snapDistance      int
	centeredSnapIndex int
	lastMaxFling      *maxFlingRecord
}

// NewAxisScroller 根据配置创建单轴滚动器
// cfg 为 nil 时使用默认配置
func NewAxisScroller(cfg *config.ScrollerConfig) *AxisScroller {
	if cfg == nil {
		cfg = config.DefaultScrollerConfig()
	}
	a := &AxisScroller{
		mode:               ModeFling,
		state:              StateSpline,
		finished:           true,
		baseFriction:       cfg.ScrollFriction,
		frictionMultiplier: cfg.FrictionMultiplier,
		physicalCoeff:      PhysicalCoefficient(cfg.Density),
		snap:               newSnapTuning(&cfg.Snap, cfg.Density),
	}
	a.flingFriction = a.baseFriction * a.frictionMultiplier
	return a
}

// SetFrictionMultiplier 调整摩擦系数倍率（默认 1.0）
func (a *AxisScroller) SetFrictionMultiplier(multiplier float64) {
	a.frictionMultiplier = multiplier
	a.flingFriction = a.baseFriction * multiplier
}

// FrictionMultiplier 返回当前摩擦系数倍率
func (a *AxisScroller) FrictionMultiplier() float64 { return a.frictionMultiplier }

// Mode 返回当前运动模式
func (a *AxisScroller) Mode() Mode { return a.mode }

// State 返回当前物理阶段
func (a *AxisScroller) State() PhysicsState { return a.state }

// Start 返回当前阶段的起点
func (a *AxisScroller) Start() int { return a.start }

// Current 返回当前位置
func (a *AxisScroller) Current() int { return a.current }

// Final 返回目标位置
func (a *AxisScroller) Final() int { return a.final }

// CurrVelocity 返回当前速度（像素/秒）
func (a *AxisScroller) CurrVelocity() float64 { return a.currVelocity }

// Finished 返回运动是否已结束
func (a *AxisScroller) Finished() bool { return a.finished }

// SetFinished 只修改结束标志，不移动位置
func (a *AxisScroller) SetFinished(finished bool) { a.finished = finished }

// StartTime 返回当前阶段的起始时间（毫秒）
func (a *AxisScroller) StartTime() int64 { return a.startTime }

// Duration 返回当前阶段的时长（毫秒）
func (a *AxisScroller) Duration() int { return a.duration }

// SplineDuration 返回未截断的样条总时长（毫秒）
func (a *AxisScroller) SplineDuration() int { return a.splineDuration }

// StartScroll 记录一次线性位移，进度由外部统一的缓动曲线驱动
func (a *AxisScroller) StartScroll(start, distance int, startTime int64, duration int) {
	a.mode = ModeScroll
	a.finished = false
	a.start = start
	a.current = start
	a.final = start + distance
	a.startTime = startTime
	a.duration = max(duration, 0)

	a.deceleration = 0
	a.velocity = 0
}

// UpdateScroll 按缓动进度 q ∈ [0,1] 更新 ModeScroll 下的位置
func (a *AxisScroller) UpdateScroll(q float64) {
	a.current = a.start + int(math.Round(q*float64(a.final-a.start)))
}

// Finish 立即跳到目标位置并结束
//
// currVelocity 保留不清零。
func (a *AxisScroller) Finish() {
	a.current = a.final
	a.finished = true
}

// SetFinalPosition 只修改进行中滑动的目标位置，不重启曲线
func (a *AxisScroller) SetFinalPosition(position int) {
	a.final = position
	a.finished = false
}

// Springback 越界时回弹到最近的边界
//
// 返回:
//   - bool: 需要回弹返回 true；start 已在 [min, max] 内返回 false（运动保持结束状态）
func (a *AxisScroller) Springback(start, min, max int, time int64) bool {
	a.mode = ModeFling
	a.finished = true
	a.start = start
	a.current = start
	a.final = start
	a.velocity = 0
	a.startTime = time
	a.duration = 0

	if start < min {
		a.startSpringback(start, min)
	} else if start > max {
		a.startSpringback(start, max)
	}
	return !a.finished
}

func (a *AxisScroller) startSpringback(start, end int) {
	a.finished = false
	a.state = StateCubic
	a.start = start
	a.final = end
	delta := start - end
	a.deceleration = edgeDeceleration(delta)
	// 只使用符号
	a.velocity = -delta
	a.over = abs(delta)
	a.duration = int(1000.0 * math.Sqrt(-2.0*float64(delta)/a.deceleration))
}

// Fling 以初速度开始一次减速滑动
//
// 参数:
//   - start: 起点
//   - velocity: 初速度（像素/秒）
//   - min, max: 合法范围
//   - over: 触边后允许的越界距离
//   - time: 起始时间（毫秒）
//
// 设置了吸附距离时，目标位置会被量化到吸附距离的整数倍。
func (a *AxisScroller) Fling(start, velocity, min, max, over int, time int64) {
	a.resetFling(start, velocity, over, time)

	if start > max || start < min {
		a.startAfterEdge(start, min, max, velocity, time)
		return
	}

	if a.snapDistance > 0 {
		a.snapFling(start, velocity, min, max, time)
		return
	}

	a.splineFling(start, velocity, min, max)
}

func (a *AxisScroller) resetFling(start, velocity, over int, time int64) {
	a.mode = ModeFling
	a.over = over
	a.finished = false
	a.velocity = velocity
	a.currVelocity = float64(velocity)
	a.duration = 0
	a.splineDuration = 0
	a.startTime = time
	a.start = start
	a.current = start
}

func (a *AxisScroller) splineFling(start, velocity, min, max int) {
	a.state = StateSpline

	totalDistance := 0.0
	if velocity != 0 {
		a.splineDuration = a.SplineFlingDuration(velocity)
		a.duration = a.splineDuration
		totalDistance = a.SplineFlingDistance(velocity)
	}

	a.splineDistance = int(totalDistance * signum(float64(velocity)))
	a.final = start + a.splineDistance

	if a.final < min {
		a.adjustDuration(a.start, a.final, min)
		a.final = min
	}
	if a.final > max {
		a.adjustDuration(a.start, a.final, max)
		a.final = max
	}
}

// FlingTo 以样条模型滑动到指定终点
//
// 反解距离公式得到与之匹配的初速度和时长，使程序触发的滑动
// 与手势滑动的手感一致。
func (a *AxisScroller) FlingTo(start, final int, time int64) {
	a.resetFling(start, 0, 0, time)
	a.state = StateSpline

	distance := final - start
	a.final = final
	a.splineDistance = distance
	if distance == 0 {
		a.currVelocity = 0
		a.finished = true
		return
	}

	coeff := a.flingFriction * a.physicalCoeff
	l := math.Log(math.Abs(float64(distance))/coeff) * (decelerationRate - 1.0) / decelerationRate
	speed := math.Exp(l) * coeff / inflexion
	sign := signum(float64(distance))

	a.velocity = int(sign * speed)
	a.currVelocity = sign * speed
	a.splineDuration = int(1000.0 * math.Exp(l/(decelerationRate-1.0)))
	a.duration = a.splineDuration
}

// adjustDuration 目标被截断到边界时按比例缩短时长
func (a *AxisScroller) adjustDuration(start, oldFinal, newFinal int) {
	oldDistance := oldFinal - start
	newDistance := newFinal - start
	if oldDistance == 0 {
		return
	}
	x := math.Abs(float64(newDistance) / float64(oldDistance))
	a.duration = int(float64(a.duration) * splineTimeAt(x))
}

func (a *AxisScroller) splineDeceleration(velocity int) float64 {
	return math.Log(inflexion * math.Abs(float64(velocity)) / (a.flingFriction * a.physicalCoeff))
}

// SplineFlingDistance 返回给定初速度的样条滑动总距离（像素，非负）
func (a *AxisScroller) SplineFlingDistance(velocity int) float64 {
	if velocity == 0 {
		return 0
	}
	l := a.splineDeceleration(velocity)
	decelMinusOne := decelerationRate - 1.0
	return a.flingFriction * a.physicalCoeff * math.Exp(decelerationRate/decelMinusOne*l)
}

// SplineFlingDuration 返回给定初速度的样条滑动总时长（毫秒）
func (a *AxisScroller) SplineFlingDuration(velocity int) int {
	if velocity == 0 {
		return 0
	}
	l := a.splineDeceleration(velocity)
	decelMinusOne := decelerationRate - 1.0
	return int(1000.0 * math.Exp(l/decelMinusOne))
}

// fitOnBounceCurve 构造一条从边界出发的虚拟弹跳轨迹
func (a *AxisScroller) fitOnBounceCurve(start, end, velocity int) {
	v := float64(velocity)
	decel := math.Abs(a.deceleration)
	durationToApex := -v / a.deceleration
	distanceToApex := v * v / 2.0 / decel
	distanceToEdge := math.Abs(float64(end - start))
	totalDuration := math.Sqrt(2.0 * (distanceToApex + distanceToEdge) / decel)
	a.startTime -= int64(1000.0 * (totalDuration - durationToApex))
	a.start = end
	a.velocity = int(-a.deceleration * totalDuration)
}

func (a *AxisScroller) startBounceAfterEdge(start, end, velocity int) {
	if velocity == 0 {
		a.deceleration = edgeDeceleration(start - end)
	} else {
		a.deceleration = edgeDeceleration(velocity)
	}
	a.fitOnBounceCurve(start, end, velocity)
	a.onEdgeReached()
}

// startAfterEdge 处理起点已在边界外的滑动
func (a *AxisScroller) startAfterEdge(start, min, max, velocity int, time int64) {
	if start > min && start < max {
		log.Printf("[AxisScroller] Warning: startAfterEdge called from a valid position %d in (%d, %d)", start, min, max)
		a.current = start
		a.final = start
		a.finished = true
		return
	}

	positive := start > max
	edge := min
	if positive {
		edge = max
	}
	overDistance := start - edge
	keepIncreasing := overDistance*velocity >= 0

	if keepIncreasing {
		// 继续向外：弹跳或直接回到边界
		a.startBounceAfterEdge(start, edge, velocity)
		return
	}

	totalDistance := a.SplineFlingDistance(velocity)
	if totalDistance > math.Abs(float64(overDistance)) {
		lo, hi := start, max
		if positive {
			lo, hi = min, start
		}
		// 起点落在新范围的边界上，按范围内滑动处理（含吸附）
		a.Fling(start, velocity, lo, hi, a.over, time)
	} else {
		a.startSpringback(start, edge)
	}
}

// NotifyEdgeReached 外部检测到样条滑动已触边
//
// 只在 Spline 阶段生效，重复通知会被忽略。
func (a *AxisScroller) NotifyEdgeReached(start, end, over int, time int64) {
	if a.state != StateSpline {
		return
	}
	a.over = over
	a.startTime = time
	// 当前速度使与边界的距离递增，startAfterEdge 不会开始新的样条
	a.startAfterEdge(start, end, end, int(a.currVelocity), time)
}

// onEdgeReached 进入触边后的匀减速阶段
// start、velocity、startTime 已调整为触边时刻的值
func (a *AxisScroller) onEdgeReached() {
	v := float64(a.velocity)
	distance := v * v / (2.0 * math.Abs(a.deceleration))
	sign := signum(v)

	zeroAllowance := false
	if distance > float64(a.over) {
		if a.over > 0 {
			// 默认减速度不足以在允许的越界距离内停下
			a.deceleration = -sign * v * v / (2.0 * float64(a.over))
		} else {
			zeroAllowance = true
		}
		distance = float64(a.over)
	}

	a.over = int(distance)
	a.state = StateBallistic
	if a.velocity > 0 {
		a.final = a.start + int(distance)
	} else {
		a.final = a.start - int(distance)
	}

	if zeroAllowance {
		a.duration = 0
		return
	}
	a.duration = -int(1000.0 * v / a.deceleration)
}

// ContinueWhenFinished 当前阶段到期后切换到下一阶段
//
// 返回:
//   - bool: 切换成功返回 true；运动已自然结束返回 false
func (a *AxisScroller) ContinueWhenFinished(time int64) bool {
	switch a.state {
	case StateSpline:
		if a.duration >= a.splineDuration {
			return false
		}
		// 样条被截断：已到达边界
		a.start = a.final
		a.velocity = int(a.currVelocity)
		a.deceleration = edgeDeceleration(a.velocity)
		a.startTime += int64(a.duration)
		a.onEdgeReached()
	case StateBallistic:
		a.startTime += int64(a.duration)
		a.startSpringback(a.final, a.start)
	case StateCubic:
		return false
	}

	a.Update(time)
	return true
}

// Update 计算给定时间的位置和速度
//
// 返回:
//   - bool: 已更新返回 true；当前阶段时长已到期返回 false（需调用 ContinueWhenFinished）
func (a *AxisScroller) Update(time int64) bool {
	elapsed := time - a.startTime
	if elapsed > int64(a.duration) {
		return false
	}

	distance := 0.0
	switch a.state {
	case StateSpline:
		t := 1.0
		if a.splineDuration > 0 {
			t = float64(elapsed) / float64(a.splineDuration)
		}
		distanceCoef, velocityCoef := splineCoefficients(t)
		distance = distanceCoef * float64(a.splineDistance)
		if a.splineDuration > 0 {
			a.currVelocity = velocityCoef * float64(a.splineDistance) / float64(a.splineDuration) * 1000.0
		} else {
			a.currVelocity = 0
		}

	case StateBallistic:
		t := float64(elapsed) / 1000.0
		a.currVelocity = float64(a.velocity) + a.deceleration*t
		distance = float64(a.velocity)*t + a.deceleration*t*t/2.0

	case StateCubic:
		t := 1.0
		if a.duration > 0 {
			t = float64(elapsed) / float64(a.duration)
		}
		t2 := t * t
		sign := signum(float64(a.velocity))
		over := float64(a.over)
		distance = sign * over * (3.0*t2 - 2.0*t*t2)
		// 单位是像素/归一化时间，不是像素/秒
		a.currVelocity = sign * over * 6.0 * (-t + t2)
	}

	a.current = a.start + int(math.Round(distance))
	if a.state == StateSpline && a.duration < a.splineDuration {
		a.current = clampTowards(a.start, a.current, a.final)
	}
	return true
}

// clampTowards 保证从 start 出发的 pos 不越过 final
func clampTowards(start, pos, final int) int {
	if final >= start {
		return min(pos, final)
	}
	return max(pos, final)
}

// edgeDeceleration 返回与运动方向相反的默认减速度
func edgeDeceleration(velocity int) float64 {
	if velocity > 0 {
		return -gravityDeceleration
	}
	return gravityDeceleration
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
