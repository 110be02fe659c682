package systems

import (
	"math"

	"github.com/decker502/cardstack/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerInput 指针输入接口（触摸或鼠标）
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	// PointerState 返回是否按下以及指针位置
	PointerState() (pressed bool, x, y int)
}

// ebitenPointerInput Ebitengine 默认实现
// 优先跟踪第一个触摸点，没有触摸时使用鼠标左键
type ebitenPointerInput struct{}

func (e *ebitenPointerInput) PointerState() (bool, int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	x, y := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

// defaultPointerInput 默认指针输入实例
var defaultPointerInput PointerInput = &ebitenPointerInput{}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
)

// StackDragSystem 把指针拖拽转换为卡片栈的拖动和释放
//
// 职责：
//   - 检测按下/移动/释放
//   - 按下时调用 BeginDrag，移动时调用 DragBy
//   - 释放时用最近的采样估计速度并调用 Release
type StackDragSystem struct {
	stack    *StackScrollSystem
	input    PointerInput
	tracker  utils.VelocityTracker
	state    DragState
	lastY    int
	maxSpeed float64
}

// NewStackDragSystem 创建使用 Ebitengine 输入的拖拽系统
//
// 参数:
//   - stack: 被拖动的卡片栈
//   - maxSpeed: 释放速度上限（像素/秒，<= 0 表示不限制）
func NewStackDragSystem(stack *StackScrollSystem, maxSpeed float64) *StackDragSystem {
	return NewStackDragSystemWithInput(stack, defaultPointerInput, maxSpeed)
}

// NewStackDragSystemWithInput 创建带自定义指针输入的拖拽系统（用于测试）
func NewStackDragSystemWithInput(stack *StackScrollSystem, input PointerInput, maxSpeed float64) *StackDragSystem {
	return &StackDragSystem{
		stack:    stack,
		input:    input,
		maxSpeed: maxSpeed,
	}
}

// State 返回当前拖拽状态
func (s *StackDragSystem) State() DragState { return s.state }

// Update 读取指针状态（每帧调用一次）
func (s *StackDragSystem) Update(now int64) {
	pressed, _, y := s.input.PointerState()

	switch s.state {
	case DragStateNone:
		if !pressed {
			return
		}
		s.state = DragStateDragging
		s.lastY = y
		s.tracker.Reset()
		s.tracker.AddSample(now, float64(y))
		s.stack.BeginDrag(now)

	case DragStateDragging:
		if !pressed {
			s.state = DragStateNone
			s.stack.Release(s.releaseVelocity(), now)
			return
		}
		s.tracker.AddSample(now, float64(y))
		if dy := y - s.lastY; dy != 0 {
			s.stack.DragBy(dy)
		}
		s.lastY = y
	}
}

// releaseVelocity 估计释放速度并限制到 maxSpeed
func (s *StackDragSystem) releaseVelocity() int {
	v := s.tracker.Velocity()
	if s.maxSpeed > 0 {
		v = math.Max(-s.maxSpeed, math.Min(s.maxSpeed, v))
	}
	return int(math.Round(v))
}
