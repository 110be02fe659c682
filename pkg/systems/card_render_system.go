package systems

import (
	"image/color"
	"math"

	"github.com/decker502/cardstack/pkg/components"
	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/ecs"
	"github.com/decker502/cardstack/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 卡片视觉常量
var (
	// 卡片颜色（按序号循环）
	cardColors = []color.RGBA{
		{R: 232, G: 93, B: 117, A: 255},
		{R: 246, G: 174, B: 45, A: 255},
		{R: 72, G: 169, B: 166, A: 255},
		{R: 66, G: 129, B: 164, A: 255},
		{R: 134, G: 97, B: 193, A: 255},
	}

	// 卡片阴影颜色
	cardShadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 70}

	// 卡片文字背景
	cardLabelBackground = color.RGBA{R: 0, G: 0, B: 0, A: 120}
)

// CardRenderSystem 卡片栈渲染系统
// 居中的卡片以原尺寸绘制，离中心越远缩得越小
type CardRenderSystem struct {
	entityManager *ecs.EntityManager
	screenWidth   int
	screenHeight  int
	cardSpacing   int
}

// NewCardRenderSystem 创建卡片渲染系统
func NewCardRenderSystem(em *ecs.EntityManager, screenWidth, screenHeight, cardSpacing int) *CardRenderSystem {
	return &CardRenderSystem{
		entityManager: em,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
		cardSpacing:   max(cardSpacing, 1),
	}
}

// CardScale 返回给定偏移处卡片的缩放
//
// 参数:
//   - offsetY: 卡片中心相对视口中心的偏移
//   - spacing: 卡片间距
//
// 返回:
//   - float64: 居中为 CenteredCardScale，一个间距外为 CenteredCardScale - CardScaleFalloff
func CardScale(offsetY, spacing int) float64 {
	t := utils.Clamp01(math.Abs(float64(offsetY)) / float64(max(spacing, 1)))
	return config.CenteredCardScale - config.CardScaleFalloff*utils.EaseOutCubic(t)
}

// Draw 渲染所有可见卡片
func (s *CardRenderSystem) Draw(screen *ebiten.Image) {
	cards := ecs.GetEntitiesWith1[*components.CardComponent](s.entityManager)

	centerX := float64(s.screenWidth) / 2
	centerY := float64(s.screenHeight) / 2

	for _, id := range cards {
		card, ok := ecs.GetComponent[*components.CardComponent](s.entityManager, id)
		if !ok {
			continue
		}

		scale := CardScale(card.OffsetY, s.cardSpacing)
		w := config.CardWidth * scale
		h := config.CardHeight * scale
		x := centerX - w/2
		y := centerY + float64(card.OffsetY) - h/2

		// 屏幕外的卡片跳过
		if y+h < 0 || y > float64(s.screenHeight) {
			continue
		}

		vector.DrawFilledRect(screen, float32(x+6), float32(y+8), float32(w), float32(h), cardShadowColor, true)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), cardColors[card.Index%len(cardColors)], true)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), 24, cardLabelBackground, false)
		ebitenutil.DebugPrintAt(screen, card.Label, int(x)+8, int(y)+4)
	}
}
