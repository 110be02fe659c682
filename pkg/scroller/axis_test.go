package scroller

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/decker502/cardstack/pkg/config"
)

// driveAxis 以固定帧间隔推进单轴直到结束，返回结束时间
func driveAxis(a *AxisScroller, from, step int64, visit func(now int64)) int64 {
	now := from
	for i := 0; i < 100000 && !a.Finished(); i++ {
		advanceFling(a, now)
		if visit != nil {
			visit(now)
		}
		now += step
	}
	return now
}

// TestAxisScroller_SplineFlingRegression 验证距离/时长与闭式公式一致
func TestAxisScroller_SplineFlingRegression(t *testing.T) {
	tests := []struct {
		name         string
		friction     float64
		velocity     int
		wantDistance float64
		wantDuration int
	}{
		{"默认摩擦 1000px/s", 0.015, 1000, 116.64459271442703, 333},
		{"默认摩擦 -1000px/s", 0.015, -1000, 116.64459271442703, 333},
		{"默认摩擦 4000px/s", 0.015, 4000, 1294.7975567919066, 924},
		{"摩擦 1.0 1000px/s", 1.0, 1000, 5.296386715438549, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultScrollerConfig()
			cfg.ScrollFriction = tt.friction
			a := NewAxisScroller(cfg)

			p := PhysicalCoefficient(cfg.Density)
			l := math.Log(inflexion * math.Abs(float64(tt.velocity)) / (tt.friction * p))
			closedDistance := tt.friction * p * math.Exp(decelerationRate/(decelerationRate-1)*l)
			closedDuration := int(1000 * math.Exp(l/(decelerationRate-1)))

			gotDistance := a.SplineFlingDistance(tt.velocity)
			if math.Abs(gotDistance-closedDistance) > 1e-9 {
				t.Errorf("SplineFlingDistance = %v, closed form %v", gotDistance, closedDistance)
			}
			if math.Abs(gotDistance-tt.wantDistance) > 1e-6 {
				t.Errorf("SplineFlingDistance = %v, 期望 %v", gotDistance, tt.wantDistance)
			}

			gotDuration := a.SplineFlingDuration(tt.velocity)
			if gotDuration != closedDuration || gotDuration != tt.wantDuration {
				t.Errorf("SplineFlingDuration = %d, closed form %d, 期望 %d", gotDuration, closedDuration, tt.wantDuration)
			}
		})
	}
}

func TestAxisScroller_ZeroVelocityFling(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(5, 0, 0, 100, 0, 0)

	if a.Final() != 5 {
		t.Errorf("Final = %d, 期望 5", a.Final())
	}
	if a.Duration() != 0 || a.SplineDuration() != 0 {
		t.Errorf("expected zero duration, got %d/%d", a.Duration(), a.SplineDuration())
	}
	if !a.Update(0) {
		t.Error("Update at start time should succeed")
	}
	if a.Current() != 5 {
		t.Errorf("Current = %d, 期望 5", a.Current())
	}
	if a.Update(16) {
		t.Error("Update after zero duration should report expiry")
	}
	if a.ContinueWhenFinished(16) {
		t.Error("unclamped spline should not continue")
	}
}

func TestAxisScroller_UnclampedFlingEndsAtSplineDistance(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(0, 4000, -100000, 100000, 0, 0)

	want := int(a.SplineFlingDistance(4000))
	if a.Final() != want {
		t.Fatalf("Final = %d, 期望 %d", a.Final(), want)
	}

	last := 0
	driveAxis(a, 0, 16, func(now int64) {
		if a.Current() < last {
			t.Fatalf("position moved backwards at %dms: %d < %d", now, a.Current(), last)
		}
		last = a.Current()
	})
	if a.Current() != want {
		t.Errorf("Current = %d, 期望 %d", a.Current(), want)
	}
	if a.State() != StateSpline {
		t.Errorf("State = %v, 期望 spline", a.State())
	}
}

func TestAxisScroller_Springback(t *testing.T) {
	t.Run("范围内无需回弹", func(t *testing.T) {
		a := NewAxisScroller(nil)
		if a.Springback(50, 0, 100, 0) {
			t.Error("Springback inside bounds should return false")
		}
		if !a.Finished() {
			t.Error("motion should stay finished")
		}
		if a.Current() != 50 || a.Final() != 50 {
			t.Errorf("position should stay at 50, got current=%d final=%d", a.Current(), a.Final())
		}
	})

	tests := []struct {
		name         string
		start        int
		wantFinal    int
		wantDuration int
	}{
		{"超出上界", 150, 100, 223},
		{"超出下界", -80, 0, 282},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxisScroller(nil)
			if !a.Springback(tt.start, 0, 100, 0) {
				t.Fatal("Springback outside bounds should return true")
			}
			if a.State() != StateCubic {
				t.Errorf("State = %v, 期望 cubic", a.State())
			}
			if a.Final() != tt.wantFinal {
				t.Errorf("Final = %d, 期望 %d", a.Final(), tt.wantFinal)
			}
			if a.Duration() != tt.wantDuration {
				t.Errorf("Duration = %d, 期望 %d", a.Duration(), tt.wantDuration)
			}

			driveAxis(a, 0, 16, nil)
			if a.Current() != tt.wantFinal {
				t.Errorf("Current = %d, 期望 %d", a.Current(), tt.wantFinal)
			}
		})
	}
}

func TestAxisScroller_FlingTo(t *testing.T) {
	a := NewAxisScroller(nil)
	a.FlingTo(0, 900, 0)

	if a.Final() != 900 {
		t.Fatalf("Final = %d, 期望 900", a.Final())
	}
	if a.State() != StateSpline || a.Finished() {
		t.Fatalf("expected running spline, got state=%v finished=%v", a.State(), a.Finished())
	}

	// 反解出的速度代回距离公式应得到原距离
	if d := a.SplineFlingDistance(int(a.CurrVelocity())); math.Abs(d-900) > 1.0 {
		t.Errorf("SplineFlingDistance(derived velocity) = %v, 期望 ≈900", d)
	}
	if a.Duration() != 792 {
		t.Errorf("Duration = %d, 期望 792", a.Duration())
	}

	driveAxis(a, 0, 16, nil)
	if a.Current() != 900 {
		t.Errorf("Current = %d, 期望 900", a.Current())
	}

	t.Run("零距离", func(t *testing.T) {
		b := NewAxisScroller(nil)
		b.FlingTo(40, 40, 0)
		if !b.Finished() || b.Current() != 40 {
			t.Errorf("zero distance FlingTo should finish at 40, got finished=%v current=%d", b.Finished(), b.Current())
		}
	})
}

// TestAxisScroller_FinishKeepsVelocity 强制结束后保留当前速度
func TestAxisScroller_FinishKeepsVelocity(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(0, 3000, -100000, 100000, 0, 0)
	a.Update(50)

	v := a.CurrVelocity()
	if v <= 0 {
		t.Fatalf("expected positive velocity mid-fling, got %v", v)
	}

	a.Finish()
	if !a.Finished() {
		t.Error("Finish should mark finished")
	}
	if a.Current() != a.Final() {
		t.Errorf("Current = %d, 期望 Final %d", a.Current(), a.Final())
	}
	if a.CurrVelocity() != v {
		t.Errorf("CurrVelocity = %v after Finish, 期望 %v", a.CurrVelocity(), v)
	}
}

func TestAxisScroller_SetFinalPosition(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(0, 2000, -100000, 100000, 0, 0)
	a.Finish()

	a.SetFinalPosition(42)
	if a.Finished() {
		t.Error("SetFinalPosition should clear finished")
	}
	if a.Final() != 42 {
		t.Errorf("Final = %d, 期望 42", a.Final())
	}
	if a.State() != StateSpline {
		t.Errorf("SetFinalPosition should not restart the curve, state=%v", a.State())
	}
}

// TestAxisScroller_PhaseProgression 触边后依次经过 spline → ballistic → cubic
func TestAxisScroller_PhaseProgression(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(0, 8000, -500, 500, 80, 0)

	if a.Final() != 500 {
		t.Fatalf("Final = %d, 期望被截断到 500", a.Final())
	}
	if a.Duration() >= a.SplineDuration() {
		t.Fatalf("clamped fling should be shorter: %d >= %d", a.Duration(), a.SplineDuration())
	}

	order := map[PhysicsState]int{StateSpline: 0, StateBallistic: 1, StateCubic: 2}
	seen := map[PhysicsState]bool{}
	last := StateSpline
	peak := 0
	driveAxis(a, 0, 8, func(now int64) {
		if order[a.State()] < order[last] {
			t.Fatalf("phase went backwards at %dms: %v → %v", now, last, a.State())
		}
		last = a.State()
		seen[a.State()] = true
		peak = max(peak, a.Current())
	})

	for _, s := range []PhysicsState{StateSpline, StateBallistic, StateCubic} {
		if !seen[s] {
			t.Errorf("phase %v never observed", s)
		}
	}
	if peak > 580 {
		t.Errorf("overscroll peak = %d, 期望 <= 580", peak)
	}
	if peak <= 500 {
		t.Errorf("overscroll peak = %d, expected to pass the boundary", peak)
	}
	if a.Current() != 500 {
		t.Errorf("Current = %d, 期望 500", a.Current())
	}
}

func TestAxisScroller_FlingFromOutOfBounds(t *testing.T) {
	tests := []struct {
		name      string
		velocity  int
		wantState PhysicsState
		wantFinal int
	}{
		{"继续向外：弹跳", 500, StateBallistic, 160},
		{"强力向内：范围内样条", -3000, StateSpline, 0},
		{"微弱向内：直接回弹", -100, StateCubic, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxisScroller(nil)
			a.Fling(120, tt.velocity, 0, 100, 60, 0)

			if a.State() != tt.wantState {
				t.Errorf("State = %v, 期望 %v", a.State(), tt.wantState)
			}
			if a.Final() != tt.wantFinal {
				t.Errorf("Final = %d, 期望 %d", a.Final(), tt.wantFinal)
			}

			driveAxis(a, 0, 16, nil)
			if a.Current() < 0 || a.Current() > 100 {
				t.Errorf("motion should settle inside [0, 100], got %d", a.Current())
			}
		})
	}
}

// TestAxisScroller_StartAfterEdgeFromValidPosition 调用方前置条件错误时记录警告并结束
func TestAxisScroller_StartAfterEdgeFromValidPosition(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	a := NewAxisScroller(nil)
	a.SetFinalPosition(999)
	a.resetFling(50, 10, 0, 0)
	a.startAfterEdge(50, 0, 100, 10, 0)

	if !a.Finished() {
		t.Error("expected motion to be finished")
	}
	if a.Current() != 50 {
		t.Errorf("Current = %d, 期望 50", a.Current())
	}
	if a.Final() != 50 {
		t.Errorf("Final = %d, 期望 50（结束时 Final 与 Current 一致）", a.Final())
	}
	if !strings.Contains(buf.String(), "startAfterEdge called from a valid position") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestAxisScroller_NotifyEdgeReached(t *testing.T) {
	a := NewAxisScroller(nil)
	a.Fling(0, 3000, -100000, 100000, 0, 0)
	a.Update(50)
	edge := a.Current()

	a.NotifyEdgeReached(edge, edge, 40, 50)
	if a.State() != StateBallistic {
		t.Fatalf("State = %v, 期望 ballistic", a.State())
	}
	if a.Final() != edge+40 {
		t.Errorf("Final = %d, 期望 %d", a.Final(), edge+40)
	}

	// 重复通知被忽略
	a.NotifyEdgeReached(edge, edge, 10, 60)
	if a.Final() != edge+40 {
		t.Errorf("second notification should be ignored, Final = %d", a.Final())
	}

	driveAxis(a, 50, 16, nil)
	if a.Current() != edge {
		t.Errorf("Current = %d, 期望回到边界 %d", a.Current(), edge)
	}
}

func TestAxisScroller_FrictionMultiplier(t *testing.T) {
	a := NewAxisScroller(nil)
	base := a.SplineFlingDistance(2000)

	a.SetFrictionMultiplier(2.0)
	if a.FrictionMultiplier() != 2.0 {
		t.Errorf("FrictionMultiplier = %v, 期望 2.0", a.FrictionMultiplier())
	}
	if d := a.SplineFlingDistance(2000); d >= base {
		t.Errorf("higher friction should shorten the fling: %v >= %v", d, base)
	}
}

func TestModeAndStateString(t *testing.T) {
	if ModeScroll.String() != "scroll" || ModeFling.String() != "fling" {
		t.Errorf("unexpected mode names %q %q", ModeScroll, ModeFling)
	}
	if StateSpline.String() != "spline" || StateCubic.String() != "cubic" || StateBallistic.String() != "ballistic" {
		t.Errorf("unexpected state names %q %q %q", StateSpline, StateCubic, StateBallistic)
	}
}
