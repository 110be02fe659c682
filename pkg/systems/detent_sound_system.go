package systems

// ClickPlayer 播放卡片切换提示音
type ClickPlayer interface {
	PlayClick()
}

// DetentSoundSystem 居中卡片变化时播放提示音
type DetentSoundSystem struct {
	stack     *StackScrollSystem
	player    ClickPlayer
	lastIndex int
	enabled   bool
}

// NewDetentSoundSystem 创建提示音系统
// player 为 nil 时只跟踪居中卡片，不发声
func NewDetentSoundSystem(stack *StackScrollSystem, player ClickPlayer) *DetentSoundSystem {
	return &DetentSoundSystem{
		stack:     stack,
		player:    player,
		lastIndex: stack.CenteredIndex(),
		enabled:   player != nil,
	}
}

// SetEnabled 开关提示音
func (s *DetentSoundSystem) SetEnabled(enabled bool) { s.enabled = enabled }

// Enabled 返回提示音是否开启
func (s *DetentSoundSystem) Enabled() bool { return s.enabled }

// Update 检查居中卡片（每帧在 StackScrollSystem.Update 之后调用）
func (s *DetentSoundSystem) Update() {
	index := s.stack.CenteredIndex()
	if index == s.lastIndex {
		return
	}
	s.lastIndex = index

	if s.enabled && s.player != nil {
		s.player.PlayClick()
	}
}
