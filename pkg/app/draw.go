package app

import (
	"fmt"
	"image/color"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func (a *App) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, a.face, op)
}

// drawTextCentered 以 (cx, cy) 为中心绘制文字
func (a *App) drawTextCentered(screen *ebiten.Image, str string, cx, cy float64, clr color.Color) {
	w, h := text.Measure(str, a.face, 0)
	a.drawText(screen, str, cx-w/2, cy-h/2, clr)
}

func (a *App) drawToolbar(screen *ebiten.Image) {
	for i, pt := range a.toolbar.plants {
		stats := a.sim.PlantStats(pt)
		x := float32(a.toolbar.cardX(i))
		y := float32(toolbarY)

		vector.DrawFilledRect(screen, x, y, cardWidth, toolbarHeight, colorCard, false)
		if pt == a.selected {
			vector.StrokeRect(screen, x, y, cardWidth, toolbarHeight, 2, colorSelected, false)
		}

		cx := float64(x) + cardWidth/2
		a.drawTextCentered(screen, stats.Symbol, cx, float64(y)+22, parseHexColor(stats.Color, colorText))
		a.drawTextCentered(screen, fmt.Sprintf("%d", stats.Cost), cx, float64(y)+52, colorText)

		if stats.Cost > a.state.Resources {
			vector.DrawFilledRect(screen, x, y, cardWidth, toolbarHeight, colorDisabled, false)
		}
	}
}

func (a *App) drawGrid(screen *ebiten.Image) {
	l := a.layout
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			x, y := l.CellOrigin(row, col)
			clr := colorCellLight
			if (row+col)%2 == 1 {
				clr = colorCellDark
			}
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(l.CellWidth), float32(l.CellHeight), clr, false)
		}
	}

	// 悬停高亮（触屏没有悬停）
	if a.selected == types.PlantUnknown || utils.IsMobile() {
		return
	}
	px, py := pointerPosition()
	if row, col, ok := l.ScreenToCell(px, py); ok {
		x, y := l.CellOrigin(row, col)
		vector.StrokeRect(screen, float32(x), float32(y), float32(l.CellWidth), float32(l.CellHeight), 2, colorSelected, false)
	}
}

func (a *App) drawHealthBar(screen *ebiten.Image, x, y, width, health, maxHealth float64) {
	if maxHealth <= 0 {
		return
	}
	ratio := min(max(health/maxHealth, 0), 1)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), 4, colorHealthBg, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*ratio), 4, colorHealth, false)
}

func (a *App) drawPlants(screen *ebiten.Image) {
	l := a.layout
	for _, p := range a.state.Plants {
		stats := a.sim.PlantStats(p.Type)
		x, y := l.CellOrigin(p.Row, p.Col)
		clr := parseHexColor(stats.Color, colorText)

		vector.StrokeRect(screen, float32(x+6), float32(y+10), float32(l.CellWidth-12), float32(l.CellHeight-24), 2, clr, false)
		a.drawTextCentered(screen, stats.Symbol, x+l.CellWidth/2, y+l.CellHeight/2, clr)
		a.drawHealthBar(screen, x+6, y+l.CellHeight-10, l.CellWidth-12, p.Health, p.MaxHealth)
	}
}

func (a *App) drawZombies(screen *ebiten.Image) {
	l := a.layout
	for _, z := range a.state.Zombies {
		stats := a.sim.ZombieStats(z.Type)
		sx, sy := l.LaneToScreen(float64(z.Row), z.X)

		scale := stats.Scale
		if scale <= 0 {
			scale = 1
		}
		w := 56 * scale
		h := 30 * scale
		clr := parseHexColor(stats.Color, colorText)
		if z.Frozen {
			clr = colorIce
		}

		vector.DrawFilledRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), colorBackground, false)
		vector.StrokeRect(screen, float32(sx-w/2), float32(sy-h/2), float32(w), float32(h), 2, clr, false)
		a.drawTextCentered(screen, stats.Name, sx, sy, clr)
		a.drawHealthBar(screen, sx-w/2, sy+h/2+2, w, z.Health, z.MaxHealth)
	}
}

func (a *App) drawProjectiles(screen *ebiten.Image) {
	l := a.layout
	for _, p := range a.state.Projectiles {
		sx, sy := l.LaneToScreen(float64(p.Row), p.X)
		clr := colorProjectile
		radius := float32(5)
		switch {
		case p.Fire:
			clr = colorFire
		case p.Ice:
			clr = colorIce
		}
		if p.Splash {
			clr = colorSplash
			radius = 8
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, clr, true)
	}
}

func (a *App) drawParticles(screen *ebiten.Image) {
	l := a.layout
	for _, p := range a.state.Particles {
		sx, sy := l.LaneToScreen(p.Row, p.X)
		clr := parseHexColor(p.Color, colorText)
		alpha := min(max(p.Life, 0), 1)
		cs := color.RGBA{
			R: uint8(float64(clr.R) * alpha),
			G: uint8(float64(clr.G) * alpha),
			B: uint8(float64(clr.B) * alpha),
			A: uint8(255 * alpha),
		}
		a.drawTextCentered(screen, p.Symbol, sx, sy-l.CellHeight/3, cs)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	s := a.state
	cfg := a.sim.Levels().LevelFor(s.World, s.Level)

	status := ""
	if a.paused {
		status = "  [PAUSED]"
	}
	if a.demo {
		status += "  [AUTOPILOT]"
	}
	hud := fmt.Sprintf("RAM %d   SCORE %d   %s %s   t=%.0fs%s",
		s.Resources, s.Score, cfg.WorldName, cfg.ID, s.Time, status)
	a.drawText(screen, hud, gridStartX, hudY, colorText)

	// 进度条
	const barWidth = 240
	x := float32(gridStartX + gridWidth - barWidth)
	vector.StrokeRect(screen, x, hudY, barWidth, 12, 1, colorText, false)
	vector.DrawFilledRect(screen, x, hudY, float32(barWidth*s.Progress()), 12, colorHealth, false)

	hint := "1-0 select  click place  SPACE pause  R restart  P autopilot  M mute  F11 fullscreen"
	if utils.IsMobile() {
		hint = "tap a card, then tap a cell"
	}
	a.drawText(screen, hint, gridStartX, hudY+20, colorCard)
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	s := a.state
	if !s.IsTerminal() {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, colorOverlay, false)

	title, hint := "SEGMENTATION FAULT", "ENTER to retry"
	if s.Won {
		title, hint = "BUILD SUCCESSFUL", "ENTER for next level"
	}
	a.drawTextCentered(screen, title, ScreenWidth/2, ScreenHeight/2-20, colorText)
	a.drawTextCentered(screen, fmt.Sprintf("score %d", s.Score), ScreenWidth/2, ScreenHeight/2, colorText)
	a.drawTextCentered(screen, hint, ScreenWidth/2, ScreenHeight/2+20, colorSelected)
}
