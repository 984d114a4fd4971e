package app

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/codedefense/pkg/types"
	"github.com/decker502/codedefense/pkg/utils"
)

// 布局常量（逻辑像素）
const (
	toolbarY      = 8
	toolbarHeight = 72
	cardWidth     = 58
	cardGap       = 2
	gridStartX    = 30
	gridStartY    = 96
	gridWidth     = 900
	gridHeight    = 450
	hudY          = 560
)

var (
	colorBackground = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	colorCellLight  = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	colorCellDark   = color.RGBA{R: 24, G: 33, B: 50, A: 255}
	colorCard       = color.RGBA{R: 51, G: 65, B: 85, A: 255}
	colorSelected   = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	colorDisabled   = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	colorText       = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	colorHealthBg   = color.RGBA{R: 127, G: 29, B: 29, A: 255}
	colorHealth     = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	colorProjectile = color.RGBA{R: 134, G: 239, B: 172, A: 255}
	colorIce        = color.RGBA{R: 103, G: 232, B: 249, A: 255}
	colorFire       = color.RGBA{R: 249, G: 115, B: 22, A: 255}
	colorSplash     = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	colorOverlay    = color.RGBA{R: 0, G: 0, B: 0, A: 170}
)

func newGridLayout(rows, cols int) utils.GridLayout {
	return utils.GridLayout{
		StartX:     gridStartX,
		StartY:     gridStartY,
		Rows:       rows,
		Cols:       cols,
		CellWidth:  gridWidth / float64(cols),
		CellHeight: gridHeight / float64(rows),
	}
}

// toolbar 顶部卡片栏
type toolbar struct {
	plants []types.PlantType
	startX int
}

func newToolbar(plants []types.PlantType) toolbar {
	total := len(plants)*(cardWidth+cardGap) - cardGap
	return toolbar{
		plants: plants,
		startX: max((ScreenWidth-total)/2, 0),
	}
}

func (t toolbar) len() int {
	return len(t.plants)
}

// cardX 返回第 i 张卡片的左边界
func (t toolbar) cardX(i int) int {
	return t.startX + i*(cardWidth+cardGap)
}

// plantAt 点击位置对应的卡片
func (t toolbar) plantAt(x, y int) (types.PlantType, bool) {
	if y < toolbarY || y >= toolbarY+toolbarHeight || x < t.startX {
		return types.PlantUnknown, false
	}
	i := (x - t.startX) / (cardWidth + cardGap)
	if i >= len(t.plants) || x >= t.cardX(i)+cardWidth {
		return types.PlantUnknown, false
	}
	return t.plants[i], true
}

// colorCache 配置表中的十六进制颜色只解析一次
var colorCache = map[string]color.RGBA{}

// parseHexColor 解析 "#rrggbb"，格式错误或为空时返回 fallback
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	if c, ok := colorCache[s]; ok {
		return c
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	c := color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	colorCache[s] = c
	return c
}
