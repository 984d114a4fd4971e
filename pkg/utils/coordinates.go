// Package utils 提供坐标换算等通用工具函数
//
// # 车道坐标
//
// 模拟核心使用一维车道坐标：X 为车道宽度百分比，0 为防守边界，100 为攻击者出发点。
// 防御者的位置按列量化：第 c 列对应 c/cols*100。
//
//	列 0        列 1        ...      列 cols-1
//	|-----------|-----------|--...--|-----------|
//	0        100/cols                        100
//
// 子弹从格子中心 (c+0.5)/cols*100 发射；反向换算使用 floor(X/100*cols)。
package utils

import "math"

// ColumnToLane 返回第 col 列左边界的车道坐标
func ColumnToLane(col, cols int) float64 {
	return float64(col) / float64(cols) * 100
}

// ColumnCenterLane 返回第 col 列中心的车道坐标
func ColumnCenterLane(col, cols int) float64 {
	return (float64(col) + 0.5) / float64(cols) * 100
}

// LaneToColumn 返回车道坐标 x 所在的列
// 结果可能越界（x < 0 或 x >= 100），调用方用 InBounds 判断
func LaneToColumn(x float64, cols int) int {
	return int(math.Floor(x / 100 * float64(cols)))
}

// InBounds 判断 (row, col) 是否在网格内
func InBounds(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}
