// Package app 提供图形前端的核心包装器
//
// 该包把模拟核心、设置、音效和输入组装成一个 ebiten.Game，
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
// 前端只读取快照并下种植命令，不包含任何玩法规则。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/codedefense/pkg/audio"
	"github.com/decker502/codedefense/pkg/autopilot"
	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/systems"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 600
)

// AppName 设置存储使用的应用名
const AppName = "codedefense"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// World/Level 指定起始关卡，为 0 时使用上次保存的关卡
	World int
	Level int
	// Seed 随机种子，为 0 时使用当前时间
	Seed int64
	// ConfigDir 覆盖内置配置表的目录，为空时使用内置配置
	ConfigDir string
	// Autopilot 启动时开启自动种植（演示模式）
	Autopilot bool
}

// App 实现 ebiten.Game 接口
type App struct {
	sim       *systems.Simulation
	director  *game.LevelDirector
	state     *game.GameState
	scheduler *systems.TickScheduler
	settings  *game.SettingsManager
	audio     *audio.AudioManager
	pilot     *autopilot.Autopilot

	layout   utils.GridLayout
	toolbar  toolbar
	face     *text.GoXFace
	selected types.PlantType
	paused   bool
	demo     bool

	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	tables, err := config.LoadTables(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 设置存储不可用时降级为内存设置
	storage, err := game.OpenSettingsStorage(AppName)
	if err != nil {
		log.Printf("[App] Warning: %v (settings will not persist)", err)
	}
	settingsManager := game.NewSettingsManager(storage)
	settings := settingsManager.GetSettings()

	audioContext := ebaudio.NewContext(int(audio.DefaultSampleRate))
	audioManager := audio.NewAudioManager(audioContext, settingsManager)
	audioManager.PreloadSounds(types.AllSoundEvents)
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := systems.NewSimulation(tables, rand.New(rand.NewSource(seed)), audioManager)
	rules := sim.Rules()

	world, level := cfg.World, cfg.Level
	if world <= 0 || level <= 0 {
		world, level = settings.LastWorld, settings.LastLevel
	}
	world, level = tables.Levels.Clamp(world, level)

	tickMillis := rules.TickMillis
	if settings.TickMillis > 0 {
		tickMillis = settings.TickMillis
	}

	director := game.NewLevelDirector(tables.Levels, rules.InitialResources)
	a := &App{
		sim:       sim,
		director:  director,
		state:     director.StartLevel(world, level, 0),
		scheduler: systems.NewTickScheduler(time.Duration(tickMillis) * time.Millisecond),
		settings:  settingsManager,
		audio:     audioManager,
		pilot:     autopilot.New(sim, rules.Grid.Rows, rules.Grid.Cols),
		layout:    newGridLayout(rules.Grid.Rows, rules.Grid.Cols),
		toolbar:   newToolbar(types.PlantToolbarOrder),
		face:      text.NewGoXFace(basicfont.Face7x13),
		selected:  types.PlantShooter,
		demo:      cfg.Autopilot,
		verbose:   cfg.Verbose,
	}

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started at level %d-%d (seed=%d, tick=%dms)", world, level, seed, tickMillis)
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()
	a.handlePointer()

	if a.paused {
		return nil
	}

	if a.demo {
		a.state, _, _ = a.pilot.Act(a.state)
	}

	elapsed := time.Second / time.Duration(ebiten.TPS())
	prev := a.state
	a.state = a.scheduler.Update(a.sim, a.state, elapsed)
	if a.state.IsTerminal() && !prev.IsTerminal() {
		a.onLevelFinished()
	}
	return nil
}

func (a *App) handleKeys() {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
		a.saveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.paused = !a.paused
		a.scheduler.Reset()
		log.Printf("[App] Paused: %v", a.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := !a.settings.GetSettings().SoundEnabled
		a.audio.SetSoundEnabled(enabled)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.demo = !a.demo
		a.pilot.Reset()
		log.Printf("[App] Autopilot: %v", a.demo)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.startLevel(a.director.Restart(a.state))
	}
	if a.state.IsTerminal() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if a.state.Won {
			a.startLevel(a.director.NextLevel(a.state))
		} else {
			a.startLevel(a.director.Restart(a.state))
		}
	}

	// 数字键选择前 10 张卡片
	for i := 0; i < 10 && i < a.toolbar.len(); i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			a.selected = a.toolbar.plants[i]
		}
	}
}

func (a *App) handlePointer() {
	if secondaryJustPressed() {
		a.selected = types.PlantUnknown
		return
	}

	pressed, x, y := pointerJustPressed()
	if !pressed {
		return
	}

	if pt, ok := a.toolbar.plantAt(x, y); ok {
		a.selected = pt
		return
	}

	if a.selected == types.PlantUnknown {
		return
	}
	if row, col, ok := a.layout.ScreenToCell(x, y); ok {
		next, placed := a.sim.Place(a.state, row, col, a.selected)
		if placed {
			a.state = next
		}
	}
}

func (a *App) startLevel(s *game.GameState) {
	a.state = s
	a.scheduler.Reset()
	a.pilot.Reset()
	a.paused = false
	a.settings.SetLastLevel(s.World, s.Level)
	a.saveSettings()
}

func (a *App) onLevelFinished() {
	if a.state.Won {
		// 记住下一关，下次启动直接进入
		world, level := a.sim.Levels().Next(a.state.World, a.state.Level)
		a.settings.SetLastLevel(world, level)
		a.saveSettings()
	}
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	a.drawToolbar(screen)
	a.drawGrid(screen)
	a.drawPlants(screen)
	a.drawZombies(screen)
	a.drawProjectiles(screen)
	a.drawParticles(screen)
	a.drawHUD(screen)
	a.drawOverlay(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// State 返回当前快照（只读）
func (a *App) State() *game.GameState {
	return a.state
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
