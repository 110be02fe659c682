// fling_trace 在命令行中采样一次滚动轨迹并逐帧输出
//
// 用法:
//
//	go run ./cmd/fling_trace -mode fling -velocity 4000 -min 0 -max 2000 -over 80
//	go run ./cmd/fling_trace -mode scroll -start 0 -distance 600 -duration 250
//	go run ./cmd/fling_trace -mode springback -start 150 -min 0 -max 100
//
// 每行输出 "t x v"：时间（毫秒）、位置（像素）、速度（像素/秒）。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/scroller"
)

// maxFrames 单次采样的帧数上限
const maxFrames = 100000

var (
	mode       = flag.String("mode", "fling", "运动类型: fling | scroll | springback")
	start      = flag.Int("start", 0, "起点（像素）")
	velocity   = flag.Int("velocity", 3000, "fling 初速度（像素/秒）")
	distance   = flag.Int("distance", 1000, "scroll 位移（像素）")
	duration   = flag.Int("duration", 250, "scroll 时长（毫秒）")
	minPos     = flag.Int("min", -100000, "合法范围下界")
	maxPos     = flag.Int("max", 100000, "合法范围上界")
	over       = flag.Int("over", 0, "触边后允许的越界距离")
	snap       = flag.Int("snap", 0, "吸附距离，0 表示不吸附")
	index      = flag.Int("index", 0, "按下时居中的吸附索引")
	frame      = flag.Int("frame", 16, "采样间隔（毫秒）")
	configPath = flag.String("config", "", "滚动手感配置文件（默认使用内置默认值）")
)

// traceOptions 一次采样的参数
type traceOptions struct {
	Mode     string
	Start    int
	Velocity int
	Distance int
	Duration int
	Min, Max int
	Over     int
	Snap     int
	Index    int
	FrameMs  int
}

// sample 一帧的采样结果
type sample struct {
	Time     int64
	Pos      int
	Velocity float64
}

// runTrace 按参数启动运动并以固定帧间隔采样直到结束
func runTrace(opts traceOptions, cfg *config.ScrollerConfig) ([]sample, error) {
	if opts.FrameMs <= 0 {
		return nil, fmt.Errorf("frame must be > 0, got %d", opts.FrameMs)
	}

	s := scroller.New(cfg)
	s.SetXSnapDistance(opts.Snap)
	s.SetCenteredXSnapIndexAtTouchDown(opts.Index)

	switch opts.Mode {
	case "fling":
		s.Fling(opts.Start, 0, opts.Velocity, 0, opts.Min, opts.Max, 0, 0, opts.Over, 0, 0)
	case "scroll":
		s.StartScroll(opts.Start, 0, opts.Distance, 0, 0, opts.Duration)
	case "springback":
		s.SpringBack(opts.Start, 0, opts.Min, opts.Max, 0, 0, 0)
	default:
		return nil, fmt.Errorf("unknown mode %q (must be fling, scroll or springback)", opts.Mode)
	}

	samples := make([]sample, 0, 64)
	for now := int64(0); len(samples) < maxFrames; now += int64(opts.FrameMs) {
		running := s.ComputeScrollOffset(now)
		samples = append(samples, sample{
			Time:     now,
			Pos:      s.CurrX(),
			Velocity: s.X().CurrVelocity(),
		})
		if !running {
			return samples, nil
		}
	}
	return samples, fmt.Errorf("motion did not finish within %d frames", maxFrames)
}

// writeTrace 输出 "t x v" 格式的采样
func writeTrace(w io.Writer, samples []sample) error {
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%d %d %.1f\n", s.Time, s.Pos, s.Velocity); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()

	cfg := config.DefaultScrollerConfig()
	if *configPath != "" {
		loaded, err := config.LoadScrollerConfig(*configPath)
		if err != nil {
			log.Fatalf("加载配置失败: %v", err)
		}
		cfg = loaded
	}

	samples, err := runTrace(traceOptions{
		Mode:     *mode,
		Start:    *start,
		Velocity: *velocity,
		Distance: *distance,
		Duration: *duration,
		Min:      *minPos,
		Max:      *maxPos,
		Over:     *over,
		Snap:     *snap,
		Index:    *index,
		FrameMs:  *frame,
	}, cfg)
	if err != nil {
		log.Fatalf("采样失败: %v", err)
	}

	if err := writeTrace(os.Stdout, samples); err != nil {
		log.Fatalf("输出失败: %v", err)
	}
}
