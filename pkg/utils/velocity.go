package utils

const (
	// velocityHistorySize 保留的采样数量
	velocityHistorySize = 20

	// velocityMaxAgeMs 早于最新采样该时长的采样不参与估计
	velocityMaxAgeMs = 100

	// velocityMaxGapMs 相邻采样间隔超过该值视为手势中断
	velocityMaxGapMs = 40
)

type velocitySample struct {
	timeMs int64
	pos    float64
}

// VelocityTracker 从带时间戳的一维位置采样估计释放速度
//
// 只使用最近 100ms 内、间隔不超过 40ms 的连续采样，
// 对其做最小二乘直线拟合，斜率即速度。
type VelocityTracker struct {
	samples [velocityHistorySize]velocitySample
	count   int
	next    int
}

// Reset 清空采样
func (vt *VelocityTracker) Reset() {
	vt.count = 0
	vt.next = 0
}

// AddSample 添加一次采样
//
// 参数:
//   - timeMs: 采样时间（毫秒，单调不减）
//   - pos: 位置（像素）
func (vt *VelocityTracker) AddSample(timeMs int64, pos float64) {
	vt.samples[vt.next] = velocitySample{timeMs: timeMs, pos: pos}
	vt.next = (vt.next + 1) % velocityHistorySize
	vt.count = min(vt.count+1, velocityHistorySize)
}

// get 返回倒数第 i 个采样（i=0 为最新）
func (vt *VelocityTracker) get(i int) velocitySample {
	idx := (vt.next - 1 - i + 2*velocityHistorySize) % velocityHistorySize
	return vt.samples[idx]
}

// Velocity 返回估计的速度（像素/秒）
// 有效采样少于 2 个或时间跨度为 0 时返回 0
func (vt *VelocityTracker) Velocity() float64 {
	if vt.count < 2 {
		return 0
	}

	newest := vt.get(0)
	prevTime := newest.timeMs
	var times, positions []float64
	for i := 0; i < vt.count; i++ {
		s := vt.get(i)
		if newest.timeMs-s.timeMs >= velocityMaxAgeMs || prevTime-s.timeMs > velocityMaxGapMs {
			break
		}
		prevTime = s.timeMs
		times = append(times, float64(s.timeMs-newest.timeMs)/1000.0)
		positions = append(positions, s.pos)
	}

	return fitSlope(times, positions)
}

// fitSlope 最小二乘直线拟合的斜率
func fitSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return 0
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var num, den float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
