// Package grid 提供网格几何：像素与格子坐标互转、占用状态、射程形状与流场寻路
package grid

import (
	"fmt"
	"math"

	"github.com/decker502/towerdefense/pkg/types"
)

// Translator 在像素坐标与格子坐标之间转换
//
// 网格左上角位于像素原点 (0, 0)，格子 (col, row) 覆盖
// [col*CellSize, (col+1)*CellSize) × [row*CellSize, (row+1)*CellSize)。
// 网格外的格子（负坐标或超出列/行数）同样可以转换，用于入口和出口。
type Translator struct {
	Columns  int
	Rows     int
	CellSize int
}

// NewTranslator 创建坐标转换器
//
// 参数：
//   - columns, rows: 网格列数与行数（>= 1）
//   - cellSize: 每格像素尺寸（>= 2，保证格子中心为整数像素）
func NewTranslator(columns, rows, cellSize int) (*Translator, error) {
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("grid must have at least one cell, got %dx%d", columns, rows)
	}
	if cellSize < 2 {
		return nil, fmt.Errorf("cell size must be at least 2 pixels, got %d", cellSize)
	}
	return &Translator{Columns: columns, Rows: rows, CellSize: cellSize}, nil
}

// PixelToCell 返回像素点所在的格子（向下取整，负坐标同样适用）
func (t *Translator) PixelToCell(x, y float64) types.Cell {
	cs := float64(t.CellSize)
	return types.Cell{
		Col: int(math.Floor(x / cs)),
		Row: int(math.Floor(y / cs)),
	}
}

// CellToPixelCentre 返回格子中心的像素坐标
// 使用整数除法，奇数格宽时中心仍为整数像素
func (t *Translator) CellToPixelCentre(c types.Cell) (float64, float64) {
	half := t.CellSize / 2
	return float64(c.Col*t.CellSize + half), float64(c.Row*t.CellSize + half)
}

// PixelToCellOffset 返回像素点相对所在格子中心的偏移（单位：格）
//
// 由移动系统产生的位置总是位于格子中心线上，因此两个分量中至多一个非零。
func (t *Translator) PixelToCellOffset(x, y float64) (float64, float64) {
	cx, cy := t.CellToPixelCentre(t.PixelToCell(x, y))
	cs := float64(t.CellSize)
	return (x - cx) / cs, (y - cy) / cs
}

// IsCellInGrid 检查格子是否位于网格内
func (t *Translator) IsCellInGrid(c types.Cell) bool {
	return c.Col >= 0 && c.Col < t.Columns && c.Row >= 0 && c.Row < t.Rows
}

// Pixels 返回网格的像素尺寸（宽, 高）
func (t *Translator) Pixels() (int, int) {
	return t.Columns * t.CellSize, t.Rows * t.CellSize
}

// Diameter 返回网格内任意两格之间最短路径长度的上界（格数）
func (t *Translator) Diameter() int {
	// 入口和出口可能位于网格外，各多一步
	return t.Columns*t.Rows + 2
}

// Line 像素线段
type Line struct {
	X1, Y1, X2, Y2 float64
}

// BorderLines 返回网格内部格线（不含外框），用于渲染
func (t *Translator) BorderLines() []Line {
	w, h := t.Pixels()
	lines := make([]Line, 0, t.Columns+t.Rows-2)
	for col := 1; col < t.Columns; col++ {
		x := float64(col * t.CellSize)
		lines = append(lines, Line{X1: x, Y1: 0, X2: x, Y2: float64(h)})
	}
	for row := 1; row < t.Rows; row++ {
		y := float64(row * t.CellSize)
		lines = append(lines, Line{X1: 0, Y1: y, X2: float64(w), Y2: y})
	}
	return lines
}
