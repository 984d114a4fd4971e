// codedefense-tui 终端版前端
//
// 使用方法:
//
//	go run ./cmd/codedefense-tui [-world 1] [-level 1] [-seed 0] [-mute] [-verbose]
//
// 操作:
//
//	方向键 移动光标    1-0 选择卡片    Enter/空格 种植
//	p 暂停    a 自动种植    r 重开    n 下一关    q/Esc 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/codedefense/pkg/audio"
	"github.com/decker502/codedefense/pkg/autopilot"
	"github.com/decker502/codedefense/pkg/config"
	"github.com/decker502/codedefense/pkg/game"
	"github.com/decker502/codedefense/pkg/systems"
	"github.com/decker502/codedefense/pkg/types"
	"github.com/gdamore/tcell/v2"
)

var (
	worldFlag = flag.Int("world", 1, "起始世界")
	levelFlag = flag.Int("level", 1, "起始关卡")
	seedFlag  = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	configDir = flag.String("config", "", "覆盖内置配置表的目录")
	mute      = flag.Bool("mute", false, "关闭音效")
	volume    = flag.Float64("volume", 0.6, "音量 (0.0 ~ 1.0)")
	verbose   = flag.Bool("verbose", false, "把日志写到 codedefense-tui.log")
)

// frameInterval 终端重绘间隔
const frameInterval = 16 * time.Millisecond

type tui struct {
	screen    tcell.Screen
	sim       *systems.Simulation
	director  *game.LevelDirector
	scheduler *systems.TickScheduler
	pilot     *autopilot.Autopilot
	speaker   *audio.SpeakerPlayer

	state    *game.GameState
	rows     int
	cols     int
	cursorR  int
	cursorC  int
	selected types.PlantType
	paused   bool
	demo     bool
	message  string
}

func newTUI(tables *config.Tables, seed int64) (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	sim := systems.NewSimulation(tables, rand.New(rand.NewSource(seed)), nil)
	rules := sim.Rules()

	t := &tui{
		screen:    screen,
		sim:       sim,
		director:  game.NewLevelDirector(tables.Levels, rules.InitialResources),
		scheduler: systems.NewTickScheduler(time.Duration(rules.TickMillis) * time.Millisecond),
		pilot:     autopilot.New(sim, rules.Grid.Rows, rules.Grid.Cols),
		rows:      rules.Grid.Rows,
		cols:      rules.Grid.Cols,
		selected:  types.PlantShooter,
	}

	// 没有声卡时静音运行
	if !*mute {
		player, err := audio.NewSpeakerPlayer(audio.DefaultSampleRate, *volume)
		if err != nil {
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			t.speaker = player
			sim.SetAudio(player)
		}
	}

	world, level := tables.Levels.Clamp(*worldFlag, *levelFlag)
	t.startLevel(t.director.StartLevel(world, level, 0))
	return t, nil
}

func (t *tui) startLevel(s *game.GameState) {
	t.state = s
	t.scheduler.Reset()
	t.pilot.Reset()
	t.paused = false
	cfg := t.sim.Levels().LevelFor(s.World, s.Level)
	t.message = fmt.Sprintf("%s %s: %d attackers incoming", cfg.WorldName, cfg.ID, s.TotalZombies)
}

// handleKey 返回 false 表示退出
func (t *tui) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		t.cursorR = max(t.cursorR-1, 0)
	case tcell.KeyDown:
		t.cursorR = min(t.cursorR+1, t.rows-1)
	case tcell.KeyLeft:
		t.cursorC = max(t.cursorC-1, 0)
	case tcell.KeyRight:
		t.cursorC = min(t.cursorC+1, t.cols-1)
	case tcell.KeyEnter:
		if t.state.IsTerminal() {
			t.advance()
		} else {
			t.place()
		}
	case tcell.KeyRune:
		return t.handleRune(ev.Rune())
	}
	return true
}

func (t *tui) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		t.place()
	case 'p':
		t.paused = !t.paused
		t.scheduler.Reset()
	case 'a':
		t.demo = !t.demo
		t.pilot.Reset()
	case 'r':
		t.startLevel(t.director.Restart(t.state))
	case 'n':
		if t.state.Won {
			t.startLevel(t.director.NextLevel(t.state))
		}
	default:
		if r >= '0' && r <= '9' {
			i := int(r - '1')
			if r == '0' {
				i = 9
			}
			if i < len(types.PlantToolbarOrder) {
				t.selected = types.PlantToolbarOrder[i]
			}
		}
	}
	return true
}

func (t *tui) advance() {
	if t.state.Won {
		t.startLevel(t.director.NextLevel(t.state))
	} else {
		t.startLevel(t.director.Restart(t.state))
	}
}

func (t *tui) place() {
	next, ok := t.sim.Place(t.state, t.cursorR, t.cursorC, t.selected)
	if !ok {
		stats := t.sim.PlantStats(t.selected)
		t.message = fmt.Sprintf("cannot place %s at %d,%d (cost %d, RAM %d)",
			stats.Name, t.cursorR, t.cursorC, stats.Cost, t.state.Resources)
		return
	}
	t.state = next
	t.message = ""
}

func (t *tui) update(elapsed time.Duration) {
	if t.paused || t.state.IsTerminal() {
		return
	}
	if t.demo {
		t.state, _, _ = t.pilot.Act(t.state)
	}
	t.state = t.scheduler.Update(t.sim, t.state, elapsed)
}

func (t *tui) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			events <- t.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case now := <-ticker.C:
			t.update(now.Sub(last))
			last = now
			t.draw()
		}
	}
}

func (t *tui) cleanup() {
	if t.speaker != nil {
		t.speaker.Close()
	}
	t.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端被界面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.Create("codedefense-tui.log")
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	tables, err := config.LoadTables(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	t, err := newTUI(tables, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer t.cleanup()

	t.run()
}
