package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScrollerConfigPath 默认滚动手感配置文件（嵌入资源路径）
const ScrollerConfigPath = "data/scroller.yaml"

// ScrollerConfig 滚动物理引擎的手感配置
//
// 摩擦、吸附阈值、连续滑动窗口等都是经验值，
// 通过配置文件调整而不是写死在算法中。
//
// 配置文件位置: data/scroller.yaml
type ScrollerConfig struct {
	// Density 屏幕密度（每英寸像素 = Density × 160）
	Density float64 `yaml:"density"`

	// ScrollFriction 基础摩擦系数
	ScrollFriction float64 `yaml:"scrollFriction"`

	// FrictionMultiplier 摩擦系数倍率（实际摩擦 = ScrollFriction × FrictionMultiplier）
	FrictionMultiplier float64 `yaml:"frictionMultiplier"`

	// Flywheel 连续同向滑动时叠加速度
	Flywheel bool `yaml:"flywheel"`

	// Snap 吸附滑动配置
	Snap SnapConfig `yaml:"snap"`
}

// SnapConfig 吸附滑动配置
//
// 速度单位为 dp/s，使用时乘以屏幕密度换算为像素/秒。
type SnapConfig struct {
	// SingleVelocity 达到该速度跨越 1 格
	SingleVelocity float64 `yaml:"singleVelocity"`

	// DoubleVelocity 达到该速度跨越 2 格
	DoubleVelocity float64 `yaml:"doubleVelocity"`

	// TripleVelocity 达到该速度跨越 3 格，之后线性插值到 MaxSteps
	TripleVelocity float64 `yaml:"tripleVelocity"`

	// MaxVelocity 达到该速度跨越 MaxSteps 格
	MaxVelocity float64 `yaml:"maxVelocity"`

	// MaxSteps 单次滑动最多跨越的格数
	MaxSteps int `yaml:"maxSteps"`

	// RepeatedFlingVelocity 连续快速滑动取最大格数所需的最低速度
	RepeatedFlingVelocity float64 `yaml:"repeatedFlingVelocity"`

	// RepeatedFlingWindowMs 连续快速滑动的判定窗口（毫秒）
	RepeatedFlingWindowMs int64 `yaml:"repeatedFlingWindowMs"`
}

// DefaultScrollerConfig 返回默认配置
func DefaultScrollerConfig() *ScrollerConfig {
	return &ScrollerConfig{
		Density:            2.0,
		ScrollFriction:     0.015,
		FrictionMultiplier: 1.0,
		Flywheel:           true,
		Snap: SnapConfig{
			SingleVelocity:        250,
			DoubleVelocity:        1000,
			TripleVelocity:        2000,
			MaxVelocity:           4000,
			MaxSteps:              6,
			RepeatedFlingVelocity: 800,
			RepeatedFlingWindowMs: 1500,
		},
	}
}

// LoadScrollerConfig 加载滚动手感配置
//
// 参数:
//   - path: 配置文件路径（如 "data/scroller.yaml"）
//
// 返回:
//   - *ScrollerConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadScrollerConfig(path string) (*ScrollerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scroller config: %w", err)
	}
	return ParseScrollerConfig(data)
}

// ParseScrollerConfig 解析 YAML 格式的配置
// 文件中未出现的字段保留默认值
func ParseScrollerConfig(data []byte) (*ScrollerConfig, error) {
	config := DefaultScrollerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scroller config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scroller config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 屏幕密度、摩擦系数、倍率必须为正
//   - 吸附速度阈值必须严格递增
//   - MaxSteps 不小于 3，判定窗口为正
func (c *ScrollerConfig) Validate() error {
	if c.Density <= 0 {
		return fmt.Errorf("density must be > 0, got %.3f", c.Density)
	}
	if c.ScrollFriction <= 0 {
		return fmt.Errorf("scrollFriction must be > 0, got %.4f", c.ScrollFriction)
	}
	if c.FrictionMultiplier <= 0 {
		return fmt.Errorf("frictionMultiplier must be > 0, got %.3f", c.FrictionMultiplier)
	}
	return c.Snap.Validate()
}

// Validate 验证吸附配置
func (s *SnapConfig) Validate() error {
	if s.SingleVelocity <= 0 {
		return fmt.Errorf("snap singleVelocity must be > 0, got %.1f", s.SingleVelocity)
	}
	if s.DoubleVelocity <= s.SingleVelocity {
		return fmt.Errorf("snap doubleVelocity(%.1f) must be > singleVelocity(%.1f)",
			s.DoubleVelocity, s.SingleVelocity)
	}
	if s.TripleVelocity <= s.DoubleVelocity {
		return fmt.Errorf("snap tripleVelocity(%.1f) must be > doubleVelocity(%.1f)",
			s.TripleVelocity, s.DoubleVelocity)
	}
	if s.MaxVelocity <= s.TripleVelocity {
		return fmt.Errorf("snap maxVelocity(%.1f) must be > tripleVelocity(%.1f)",
			s.MaxVelocity, s.TripleVelocity)
	}
	if s.MaxSteps < 3 {
		return fmt.Errorf("snap maxSteps must be >= 3, got %d", s.MaxSteps)
	}
	if s.RepeatedFlingVelocity < 0 {
		return fmt.Errorf("snap repeatedFlingVelocity must be >= 0, got %.1f", s.RepeatedFlingVelocity)
	}
	if s.RepeatedFlingWindowMs <= 0 {
		return fmt.Errorf("snap repeatedFlingWindowMs must be > 0, got %d", s.RepeatedFlingWindowMs)
	}
	return nil
}
