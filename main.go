package main

import (
	"flag"
	"log"

	"github.com/decker502/codedefense/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose       = flag.Bool("verbose", false, "显示详细日志")
	worldFlag     = flag.Int("world", 0, "起始世界（0 表示使用上次保存的关卡）")
	levelFlag     = flag.Int("level", 0, "起始关卡（0 表示使用上次保存的关卡）")
	seedFlag      = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	configDir     = flag.String("config", "", "覆盖内置配置表的目录")
	autopilotFlag = flag.Bool("autopilot", false, "启动时开启自动种植")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		World:     *worldFlag,
		Level:     *levelFlag,
		Seed:      *seedFlag,
		ConfigDir: *configDir,
		Autopilot: *autopilotFlag,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Code Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
