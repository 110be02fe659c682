package main

import (
	"flag"
	"log"

	"github.com/decker502/cardstack/pkg/app"
	"github.com/decker502/cardstack/pkg/config"
	"github.com/decker502/cardstack/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "滚动手感配置文件（默认使用内置 data/scroller.yaml）")
	cards := flag.Int("cards", config.DefaultCardCount, "卡片数量")
	sound := flag.Bool("sound", true, "启用卡片切换提示音")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		CardCount:  *cards,
		Sound:      *sound,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Card Stack Scroller")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
