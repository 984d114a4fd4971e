package utils

// GridLayout 描述网格在屏幕上的布局
// 用于前端把鼠标坐标转换为网格坐标，以及把车道坐标转换为屏幕坐标
type GridLayout struct {
	StartX     float64 // 网格起始X坐标
	StartY     float64 // 网格起始Y坐标
	Rows       int     // 网格行数
	Cols       int     // 网格列数
	CellWidth  float64 // 每格宽度
	CellHeight float64 // 每格高度
}

// Width 返回网格总宽度
func (g GridLayout) Width() float64 {
	return float64(g.Cols) * g.CellWidth
}

// Height 返回网格总高度
func (g GridLayout) Height() float64 {
	return float64(g.Rows) * g.CellHeight
}

// ScreenToCell 将屏幕坐标转换为网格坐标
// 参数:
//   - x, y: 屏幕坐标
//
// 返回:
//   - row, col: 行列索引
//   - isValid: 是否在有效网格范围内
func (g GridLayout) ScreenToCell(x, y int) (row, col int, isValid bool) {
	fx := float64(x)
	fy := float64(y)

	if fx < g.StartX || fx >= g.StartX+g.Width() || fy < g.StartY || fy >= g.StartY+g.Height() {
		return 0, 0, false
	}

	col = int((fx - g.StartX) / g.CellWidth)
	row = int((fy - g.StartY) / g.CellHeight)

	// 边界检查（防止浮点数计算误差导致的越界）
	col = min(max(col, 0), g.Cols-1)
	row = min(max(row, 0), g.Rows-1)

	return row, col, true
}

// CellOrigin 返回格子左上角的屏幕坐标
func (g GridLayout) CellOrigin(row, col int) (x, y float64) {
	return g.StartX + float64(col)*g.CellWidth, g.StartY + float64(row)*g.CellHeight
}

// LaneToScreen 将 (行, 车道坐标) 转换为屏幕坐标
// row 可以是小数（粒子漂移后的显示行），返回该行垂直中心
func (g GridLayout) LaneToScreen(row, x float64) (sx, sy float64) {
	sx = g.StartX + x/100*g.Width()
	sy = g.StartY + (row+0.5)*g.CellHeight
	return sx, sy
}
