package main

import (
	"fmt"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// 终端布局（字符单位）
const (
	cellWidth  = 8
	rowHeight  = 2
	gridLeft   = 2
	gridTop    = 3
	zombieText = 4
)

var (
	styleDefault  = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor   = tcell.StyleDefault.Reverse(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleAlert    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWin      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleIce      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleFire     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

func (t *tui) drawStr(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// colorStyle 配置表颜色转换为终端样式
func colorStyle(hex string) tcell.Style {
	if hex == "" {
		return styleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.GetColor(hex))
}

func (t *tui) laneWidth() int {
	return t.cols * cellWidth
}

// laneToColumn 车道坐标转终端列
func (t *tui) laneToColumn(x float64) int {
	return gridLeft + int(x/100*float64(t.laneWidth()))
}

func (t *tui) rowLine(row int) int {
	return gridTop + row*rowHeight
}

func (t *tui) draw() {
	t.screen.Clear()
	t.drawToolbar()
	t.drawGrid()
	t.drawEntities()
	t.drawStatus()
	t.screen.Show()
}

func (t *tui) drawToolbar() {
	x := 0
	for i, pt := range types.PlantToolbarOrder {
		stats := t.sim.PlantStats(pt)
		key := (i + 1) % 10
		label := fmt.Sprintf("%d:%s(%d) ", key, stats.Symbol, stats.Cost)
		if i >= 10 {
			label = fmt.Sprintf("%s(%d) ", stats.Symbol, stats.Cost)
		}

		style := colorStyle(stats.Color)
		switch {
		case pt == t.selected:
			style = styleSelected.Reverse(true)
		case stats.Cost > t.state.Resources:
			style = styleDim
		}
		x = t.drawStr(x, 0, label, style)
	}
	t.drawStr(0, 1, "selected: "+t.sim.PlantStats(t.selected).Name, styleSelected)
}

func (t *tui) drawGrid() {
	for row := 0; row < t.rows; row++ {
		y := t.rowLine(row)
		t.screen.SetContent(gridLeft-1, y, '|', nil, styleAlert)
		for col := 0; col < t.cols; col++ {
			x := gridLeft + col*cellWidth
			style := styleDim
			if row == t.cursorR && col == t.cursorC {
				style = styleCursor
			}
			t.drawStr(x, y, "  .     ", style)
		}
	}
}

func (t *tui) drawEntities() {
	s := t.state

	for _, p := range s.Plants {
		stats := t.sim.PlantStats(p.Type)
		x := gridLeft + p.Col*cellWidth
		style := colorStyle(stats.Color)
		if p.Row == t.cursorR && p.Col == t.cursorC {
			style = style.Reverse(true)
		}
		t.drawStr(x+1, t.rowLine(p.Row), stats.Symbol, style)
	}

	for _, p := range s.Projectiles {
		style := styleDefault
		switch {
		case p.Fire:
			style = styleFire
		case p.Ice:
			style = styleIce
		}
		glyph := '•'
		if p.Splash {
			glyph = '◉'
		}
		t.screen.SetContent(t.laneToColumn(p.X), t.rowLine(p.Row), glyph, nil, style)
	}

	for _, z := range s.Zombies {
		stats := t.sim.ZombieStats(z.Type)
		name := []rune(stats.Name)
		if len(name) > zombieText {
			name = name[:zombieText]
		}
		style := colorStyle(stats.Color)
		if z.Frozen {
			style = styleIce
		}
		x := t.laneToColumn(z.X)
		t.drawStr(x, t.rowLine(z.Row), string(name), style.Bold(true))
		t.drawStr(x, t.rowLine(z.Row)+1, fmt.Sprintf("%.0f", z.Health), styleDim)
	}

	for _, p := range s.Particles {
		y := gridTop + int(p.Row*rowHeight) + 1
		t.drawStr(t.laneToColumn(p.X), y, p.Symbol, colorStyle(p.Color))
	}
}

func (t *tui) drawStatus() {
	s := t.state
	y := t.rowLine(t.rows) + 1

	cfg := t.sim.Levels().LevelFor(s.World, s.Level)
	status := fmt.Sprintf("RAM %d  SCORE %d  %s %s  spawned %d/%d  t=%.0fs",
		s.Resources, s.Score, cfg.WorldName, cfg.ID, s.ZombiesSpawned, s.TotalZombies, s.Time)
	if t.paused {
		status += "  [PAUSED]"
	}
	if t.demo {
		status += "  [AUTOPILOT]"
	}
	t.drawStr(0, y, status, styleDefault)

	switch {
	case s.Won:
		t.drawStr(0, y+1, "BUILD SUCCESSFUL - Enter/n for next level", styleWin)
	case s.Lost:
		t.drawStr(0, y+1, "SEGMENTATION FAULT - Enter/r to retry", styleAlert)
	default:
		t.drawStr(0, y+1, t.message, styleDim)
	}
	t.drawStr(0, y+2, "arrows move  1-0 select  Enter place  p pause  a autopilot  r restart  q quit", styleDim)
}
