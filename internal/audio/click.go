// Package audio 生成界面提示音的 PCM 数据
//
// 输出格式与 Ebitengine audio.Context 一致：16 位有符号小端、双声道交错。
package audio

import (
	"encoding/binary"
	"math"
)

// bytesPerFrame 每帧字节数（2 声道 × 16 位）
const bytesPerFrame = 4

// ClickTone 一次短促的提示音
type ClickTone struct {
	FrequencyHz float64 // 正弦波频率
	DurationMs  int     // 时长（毫秒）
	Volume      float64 // 峰值音量 [0, 1]
	DecayPerMs  float64 // 指数衰减系数（每毫秒）
}

// DefaultClickTone 返回卡片切换时使用的提示音
func DefaultClickTone() ClickTone {
	return ClickTone{
		FrequencyHz: 1800,
		DurationMs:  30,
		Volume:      0.35,
		DecayPerMs:  0.12,
	}
}

// FrameCount 返回在给定采样率下的帧数
func (c ClickTone) FrameCount(sampleRate int) int {
	if sampleRate <= 0 || c.DurationMs <= 0 {
		return 0
	}
	return sampleRate * c.DurationMs / 1000
}

// Synthesize 生成 PCM 数据
//
// 参数:
//   - sampleRate: 采样率（Hz）
//
// 返回:
//   - []byte: 16 位小端双声道 PCM，长度为 FrameCount*4
func (c ClickTone) Synthesize(sampleRate int) []byte {
	frames := c.FrameCount(sampleRate)
	out := make([]byte, frames*bytesPerFrame)
	volume := math.Max(0, math.Min(1, c.Volume))

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		amp := volume * math.Exp(-c.DecayPerMs*t*1000) * math.Sin(2*math.Pi*c.FrequencyHz*t)
		v := uint16(int16(math.Round(amp * math.MaxInt16)))

		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], v)
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], v)
	}
	return out
}
