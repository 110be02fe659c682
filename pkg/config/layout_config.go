package config

// 布局配置常量
// 本文件定义了卡片栈演示的窗口和卡片尺寸

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 480

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 800
)

// Card Stack Configuration (卡片栈配置)
const (
	// DefaultCardCount 默认卡片数量
	DefaultCardCount = 12

	// CardWidth 卡片宽度（像素）
	CardWidth = 360.0

	// CardHeight 卡片高度（像素）
	CardHeight = 220.0

	// CardSpacing 相邻卡片中心的间距（像素），同时作为吸附距离
	CardSpacing = 260

	// CenteredCardScale 居中卡片的缩放；离中心一个间距及以上的卡片缩放为 1 - CardScaleFalloff
	CenteredCardScale = 1.0

	// CardScaleFalloff 非居中卡片的缩放衰减
	CardScaleFalloff = 0.12

	// MaxReleaseVelocity 释放速度上限（像素/秒）
	MaxReleaseVelocity = 16000.0

	// ScrollToCardDuration 键盘跳转卡片的缓动时长（毫秒）
	ScrollToCardDuration = 400
)
