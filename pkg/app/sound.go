package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	cardaudio "github.com/decker502/cardstack/internal/audio"
)

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// clickPlayer 用 Ebitengine 音频播放器播放预先合成的提示音
type clickPlayer struct {
	player *audio.Player
}

// newClickPlayer 创建提示音播放器
// 进程内已存在音频上下文时复用它
func newClickPlayer(tone cardaudio.ClickTone) *clickPlayer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(audioSampleRate)
	}

	pcm := tone.Synthesize(ctx.SampleRate())
	log.Printf("[App] Click sound: %.0fHz %dms (%d bytes)", tone.FrequencyHz, tone.DurationMs, len(pcm))
	return &clickPlayer{player: ctx.NewPlayerFromBytes(pcm)}
}

// PlayClick 从头播放提示音
func (c *clickPlayer) PlayClick() {
	if err := c.player.Rewind(); err != nil {
		log.Printf("[App] Warning: Failed to rewind click sound: %v", err)
		return
	}
	c.player.Play()
}
