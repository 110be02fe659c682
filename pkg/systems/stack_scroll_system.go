package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/cardstack/pkg/components"
	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/ecs"
	"github.com/decker502/cardstack/pkg/scroller"
)

const (
	// overscrollRatio 越界距离相对卡片间距的比例
	overscrollRatio = 0.5

	// dragResistance 越界拖动时的位移衰减
	dragResistance = 0.5
)

// StackScrollSystem 管理纵向卡片栈的拖动、惯性滑动和吸附
//
// 职责：
//   - 创建卡片栈实体（StackScrollComponent）和每张卡片的实体（CardComponent）
//   - 把拖动/释放转换为滚动器的 Fling / SpringBack 调用
//   - 每帧用外部时间推进滚动器并更新卡片偏移
type StackScrollSystem struct {
	entityManager *ecs.EntityManager
	stackEntity   ecs.EntityID
	cardEntities  []ecs.EntityID
}

// NewStackScrollSystem 创建卡片栈滚动系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 滚动手感配置（nil 使用默认值）
//   - cardCount: 卡片数量（至少 1 张）
//   - spacing: 卡片间距（像素，必须为正）
func NewStackScrollSystem(em *ecs.EntityManager, cfg *config.ScrollerConfig, cardCount, spacing int) *StackScrollSystem {
	cardCount = max(cardCount, 1)
	spacing = max(spacing, 1)

	s := scroller.New(cfg)
	s.SetYSnapDistance(spacing)

	sys := &StackScrollSystem{
		entityManager: em,
		stackEntity:   em.CreateEntity(),
	}
	ecs.AddComponent(em, sys.stackEntity, &components.StackScrollComponent{
		Scroller:    s,
		CardCount:   cardCount,
		CardSpacing: spacing,
		MinY:        -(cardCount - 1) * spacing,
		MaxY:        0,
		OverY:       int(float64(spacing) * overscrollRatio),
		SnapEnabled: true,
	})

	for i := 0; i < cardCount; i++ {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.CardComponent{
			Index:   i,
			OffsetY: i * spacing,
			Label:   fmt.Sprintf("Card %d", i+1),
		})
		sys.cardEntities = append(sys.cardEntities, id)
	}

	log.Printf("[StackScrollSystem] Created stack: %d cards, spacing %d, bounds [%d, 0]", cardCount, spacing, -(cardCount-1)*spacing)
	return sys
}

// stack 返回卡片栈组件
func (s *StackScrollSystem) stack() *components.StackScrollComponent {
	comp, ok := ecs.GetComponent[*components.StackScrollComponent](s.entityManager, s.stackEntity)
	if !ok {
		return nil
	}
	return comp
}

// Stack 返回卡片栈组件（只读使用）
func (s *StackScrollSystem) Stack() *components.StackScrollComponent { return s.stack() }

// CardEntities 返回卡片实体，按卡片序号排列
func (s *StackScrollSystem) CardEntities() []ecs.EntityID { return s.cardEntities }

// SetSnapEnabled 开关卡片吸附
func (s *StackScrollSystem) SetSnapEnabled(enabled bool) {
	comp := s.stack()
	if comp == nil {
		return
	}
	comp.SnapEnabled = enabled
	if enabled {
		comp.Scroller.SetYSnapDistance(comp.CardSpacing)
	} else {
		comp.Scroller.SetYSnapDistance(0)
	}
}

// SetFlywheel 开关连续滑动的速度叠加
func (s *StackScrollSystem) SetFlywheel(enabled bool) {
	if comp := s.stack(); comp != nil {
		comp.Scroller.SetFlywheel(enabled)
	}
}

// BeginDrag 按下：停止当前动画，记录按下时居中的卡片和被打断的速度
func (s *StackScrollSystem) BeginDrag(now int64) {
	comp := s.stack()
	if comp == nil {
		return
	}

	comp.TouchDownVelocity = 0
	if !comp.Scroller.IsFinished() {
		comp.Scroller.ComputeScrollOffset(now)
		comp.ScrollY = comp.Scroller.CurrY()
		if !comp.Scroller.IsFinished() && comp.Scroller.Mode() == scroller.ModeFling {
			comp.TouchDownVelocity = comp.Scroller.Y().CurrVelocity()
		}
	}
	comp.Scroller.ForceFinished(true)

	comp.Dragging = true
	comp.TouchDownY = comp.ScrollY
	comp.Scroller.SetCenteredYSnapIndexAtTouchDown(s.CenteredIndex())
}

// DragBy 拖动中直接移动卡片栈
// 越界部分按 dragResistance 衰减，且不超过允许的越界距离
func (s *StackScrollSystem) DragBy(dy int) {
	comp := s.stack()
	if comp == nil || !comp.Dragging {
		return
	}

	next := comp.ScrollY + dy
	if next > comp.MaxY || next < comp.MinY {
		next = comp.ScrollY + int(math.Round(float64(dy)*dragResistance))
	}
	comp.ScrollY = max(comp.MinY-comp.OverY, min(comp.MaxY+comp.OverY, next))
}

// Release 释放：按释放速度开始惯性滑动
//
// 越界时若速度为 0 或启用了吸附，直接回弹到最近的边界卡片。
// 拖动超过半张卡片后，以当前居中的卡片作为吸附计数的起点。
//
// 参数:
//   - velocityY: 释放速度（像素/秒，向下浏览为负）
//   - now: 当前时间（毫秒）
func (s *StackScrollSystem) Release(velocityY int, now int64) {
	comp := s.stack()
	if comp == nil || !comp.Dragging {
		return
	}
	comp.Dragging = false

	if abs(comp.ScrollY-comp.TouchDownY) > comp.CardSpacing/2 {
		comp.Scroller.SetCenteredYSnapIndexAtTouchDown(s.CenteredIndex())
	}

	if !comp.InBounds() && (velocityY == 0 || comp.SnapEnabled) {
		comp.Scroller.SpringBack(0, comp.ScrollY, 0, 0, comp.MinY, comp.MaxY, now)
		log.Printf("[StackScrollSystem] Springback from %d", comp.ScrollY)
		return
	}

	velocityY = s.flywheelVelocity(comp, velocityY)
	comp.Scroller.Fling(0, comp.ScrollY, 0, velocityY, 0, 0, comp.MinY, comp.MaxY, 0, comp.OverY, now)
	log.Printf("[StackScrollSystem] Fling from %d at %d px/s, final %d", comp.ScrollY, velocityY, comp.Scroller.FinalY())
}

// flywheelVelocity 启用飞轮时，与按下前滑动同向的释放速度叠加被打断的速度
//
// 按下时滚动器已被强制结束，DualAxisScroller.Fling 自身的飞轮判断不会生效，
// 这里用按下时记录的速度代替。
func (s *StackScrollSystem) flywheelVelocity(comp *components.StackScrollComponent, velocityY int) int {
	prev := comp.TouchDownVelocity
	comp.TouchDownVelocity = 0
	if !comp.Scroller.Flywheel() || prev == 0 || velocityY == 0 {
		return velocityY
	}
	if (velocityY > 0) != (prev > 0) {
		return velocityY
	}
	return velocityY + int(prev)
}

// ScrollToCard 以缓动滚动到指定卡片
// index 超出范围时限制到首/尾卡片
func (s *StackScrollSystem) ScrollToCard(index int, now int64, duration int) {
	comp := s.stack()
	if comp == nil {
		return
	}
	index = max(0, min(comp.CardCount-1, index))
	target := -index * comp.CardSpacing

	comp.Dragging = false
	comp.Scroller.StartScroll(0, comp.ScrollY, 0, target-comp.ScrollY, now, duration)
	log.Printf("[StackScrollSystem] Scroll to card %d (%d → %d, %dms)", index, comp.ScrollY, target, duration)
}

// Update 推进滚动器并更新卡片偏移
func (s *StackScrollSystem) Update(now int64) {
	comp := s.stack()
	if comp == nil {
		return
	}

	if !comp.Dragging && !comp.Scroller.IsFinished() {
		comp.Scroller.ComputeScrollOffset(now)
		comp.ScrollY = comp.Scroller.CurrY()
	}

	for _, id := range s.cardEntities {
		card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
		if !ok {
			continue
		}
		card.OffsetY = comp.ScrollY + card.Index*comp.CardSpacing
	}
}

// ScrollY 返回当前滚动位置
func (s *StackScrollSystem) ScrollY() int {
	if comp := s.stack(); comp != nil {
		return comp.ScrollY
	}
	return 0
}

// CenteredIndex 返回最接近视口中心的卡片序号
func (s *StackScrollSystem) CenteredIndex() int {
	comp := s.stack()
	if comp == nil {
		return 0
	}
	index := int(math.Round(-float64(comp.ScrollY) / float64(comp.CardSpacing)))
	return max(0, min(comp.CardCount-1, index))
}

// IsSettled 未拖动且动画已结束时返回 true
func (s *StackScrollSystem) IsSettled() bool {
	comp := s.stack()
	if comp == nil {
		return true
	}
	return !comp.Dragging && comp.Scroller.IsFinished()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
