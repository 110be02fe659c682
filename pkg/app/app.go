// Package app 提供卡片栈演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	cardaudio "github.com/decker502/cardstack/internal/audio"
	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/ecs"
	"github.com/decker502/cardstack/pkg/embedded"
	"github.com/decker502/cardstack/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// backgroundColor 背景颜色
var backgroundColor = color.RGBA{R: 28, G: 30, B: 38, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部滚动手感配置文件，为空则使用嵌入的 data/scroller.yaml
	ConfigPath string
	// CardCount 卡片数量，<= 0 使用默认值
	CardCount int
	// Sound 启用卡片切换提示音（需要音频设备）
	Sound bool
}

// App 是演示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	stack         *systems.StackScrollSystem
	drag          *systems.StackDragSystem
	render        *systems.CardRenderSystem
	detent        *systems.DetentSoundSystem
	clock         FrameClock

	snapEnabled bool
	flywheel    bool
	verbose     bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadScrollerConfig 按启动配置加载滚动手感配置
//
// ConfigPath 非空时从文件系统读取，否则读取嵌入的默认配置。
func LoadScrollerConfig(cfg Config) (*config.ScrollerConfig, error) {
	if cfg.ConfigPath != "" {
		return config.LoadScrollerConfig(cfg.ConfigPath)
	}

	data, err := embedded.ReadFile(config.ScrollerConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scroller config: %w", err)
	}
	return config.ParseScrollerConfig(data)
}

// NewApp 创建并初始化演示应用
//
// 未指定 ConfigPath 时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	scrollerConfig, err := LoadScrollerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("滚动配置加载失败: %w", err)
	}
	log.Printf("[App] Scroller config: density=%.2f friction=%.4f×%.2f flywheel=%v",
		scrollerConfig.Density, scrollerConfig.ScrollFriction, scrollerConfig.FrictionMultiplier, scrollerConfig.Flywheel)

	cardCount := cfg.CardCount
	if cardCount <= 0 {
		cardCount = config.DefaultCardCount
	}

	em := ecs.NewEntityManager()
	stack := systems.NewStackScrollSystem(em, scrollerConfig, cardCount, config.CardSpacing)

	var player systems.ClickPlayer
	if cfg.Sound {
		player = newClickPlayer(cardaudio.DefaultClickTone())
	}

	return &App{
		entityManager: em,
		stack:         stack,
		drag:          systems.NewStackDragSystem(stack, config.MaxReleaseVelocity),
		render:        systems.NewCardRenderSystem(em, config.GameWindowWidth, config.GameWindowHeight, config.CardSpacing),
		detent:        systems.NewDetentSoundSystem(stack, player),
		snapEnabled:   true,
		flywheel:      scrollerConfig.Flywheel,
		verbose:       cfg.Verbose,
	}, nil
}

// Update 更新演示逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	now := a.clock.Advance(ebiten.TPS())

	a.updateWindow()
	a.handleKeys(now)

	a.drag.Update(now)
	a.stack.Update(now)
	a.detent.Update()
	a.entityManager.RemoveMarkedEntities()
	return nil
}

// updateWindow 处理 F11 全屏切换
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

// handleKeys 处理键盘快捷键
//   - S: 开关吸附
//   - F: 开关飞轮
//   - M: 开关提示音
//   - Home / End: 跳到首张 / 末张卡片
func (a *App) handleKeys(now int64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.ToggleSnap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.ToggleFlywheel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.ToggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.stack.ScrollToCard(0, now, config.ScrollToCardDuration)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		a.stack.ScrollToCard(a.stack.Stack().CardCount-1, now, config.ScrollToCardDuration)
	}
}

// ToggleSnap 开关卡片吸附
func (a *App) ToggleSnap() {
	a.snapEnabled = !a.snapEnabled
	a.stack.SetSnapEnabled(a.snapEnabled)
	log.Printf("[App] Snap enabled: %v", a.snapEnabled)
}

// ToggleFlywheel 开关连续滑动的速度叠加
func (a *App) ToggleFlywheel() {
	a.flywheel = !a.flywheel
	a.stack.SetFlywheel(a.flywheel)
	log.Printf("[App] Flywheel enabled: %v", a.flywheel)
}

// ToggleSound 开关卡片切换提示音
func (a *App) ToggleSound() {
	a.detent.SetEnabled(!a.detent.Enabled())
	log.Printf("[App] Sound enabled: %v", a.detent.Enabled())
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.render.Draw(screen)
	ebitenutil.DebugPrintAt(screen, a.statusLine(), 8, 8)
}

// statusLine 返回顶部状态栏文字
func (a *App) statusLine() string {
	stack := a.stack.Stack()
	return fmt.Sprintf("card %d/%d  y=%d  v=%.0f\nsnap[S]=%v  flywheel[F]=%v  sound[M]=%v",
		a.stack.CenteredIndex()+1, stack.CardCount, a.stack.ScrollY(),
		stack.Scroller.CurrVelocity(), a.snapEnabled, a.flywheel, a.detent.Enabled())
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Stack 返回卡片栈系统
func (a *App) Stack() *systems.StackScrollSystem {
	return a.stack
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
