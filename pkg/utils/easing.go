package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。

const (
	// viscousFluidScale 粘滞流体曲线的时间缩放
	viscousFluidScale = 8.0

	// viscousFluidBlend 曲线分段点的取值 e^(-1)
	viscousFluidBlend = 0.36787944117

	// viscousFluidNormalize 使曲线在 t=1 时恰好为 1（1 / viscousFluidRaw(1)）
	viscousFluidNormalize = 1.000576751788537
)

// ViscousFluid 粘滞流体缓动
// 特点：起步快，末段按指数衰减平滑停下（滚动动画使用）
// 公式：
//
//	x = 8t
//	x < 1: f = x - (1 - e^(-x))
//	x >= 1: f = e^(-1) + (1 - e^(1-x)) * (1 - e^(-1))
func ViscousFluid(t float64) float64 {
	return viscousFluidRaw(t) * viscousFluidNormalize
}

func viscousFluidRaw(t float64) float64 {
	x := t * viscousFluidScale
	if x < 1.0 {
		return x - (1.0 - math.Exp(-x))
	}
	x = 1.0 - math.Exp(1.0-x)
	return viscousFluidBlend + x*(1.0-viscousFluidBlend)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Clamp01 把进度限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
