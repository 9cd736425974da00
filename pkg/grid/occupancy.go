package grid

import (
	"fmt"
	"slices"

	"github.com/decker502/towerdefense/pkg/types"
)

// Occupant 占用格子的对象类型
type Occupant int

const (
	// OccupantNone 空格子
	OccupantNone Occupant = iota
	// OccupantObstacle 固定障碍物
	OccupantObstacle
	// OccupantTower 玩家放置的塔
	OccupantTower
)

// Occupancy 跟踪哪些格子被障碍物或塔占用
type Occupancy struct {
	translator *Translator
	cells      map[types.Cell]Occupant
}

// NewOccupancy 创建空的占用表
func NewOccupancy(t *Translator) *Occupancy {
	return &Occupancy{
		translator: t,
		cells:      make(map[types.Cell]Occupant),
	}
}

// IsOccupied 检查格子是否已被占用
// 网格外的格子视为"已占用"，防止放置
func (o *Occupancy) IsOccupied(c types.Cell) bool {
	if !o.translator.IsCellInGrid(c) {
		return true
	}
	return o.cells[c] != OccupantNone
}

// At 返回格子上的占用者
func (o *Occupancy) At(c types.Cell) Occupant {
	return o.cells[c]
}

// Occupy 标记格子为被占用状态
//
// 返回：
//   - error: 如果位置无效或格子已被占用，返回错误
func (o *Occupancy) Occupy(c types.Cell, occupant Occupant) error {
	if !o.translator.IsCellInGrid(c) {
		return fmt.Errorf("invalid grid position: col=%d, row=%d (grid is %dx%d)", c.Col, c.Row, o.translator.Columns, o.translator.Rows)
	}
	if occupant == OccupantNone {
		return fmt.Errorf("cannot occupy cell (%d, %d) with nothing", c.Col, c.Row)
	}
	if existing := o.cells[c]; existing != OccupantNone {
		return fmt.Errorf("grid cell (%d, %d) is already occupied by %d", c.Col, c.Row, existing)
	}
	o.cells[c] = occupant
	return nil
}

// Release 清空格子的占用状态
func (o *Occupancy) Release(c types.Cell) error {
	if _, ok := o.cells[c]; !ok {
		return fmt.Errorf("grid cell (%d, %d) is not occupied", c.Col, c.Row)
	}
	delete(o.cells, c)
	return nil
}

// Clear 清空指定类型的全部占用
func (o *Occupancy) Clear(occupant Occupant) {
	for c, kind := range o.cells {
		if kind == occupant {
			delete(o.cells, c)
		}
	}
}

// Cells 返回指定类型占用的所有格子（按行、列排序）
func (o *Occupancy) Cells(occupant Occupant) []types.Cell {
	result := make([]types.Cell, 0)
	for c, kind := range o.cells {
		if kind == occupant {
			result = append(result, c)
		}
	}
	slices.SortFunc(result, func(a, b types.Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return result
}

// BlockedWith 返回一个判定函数：在当前占用之外额外视 extra 为阻塞
// 用于放置预判，不修改占用表
func (o *Occupancy) BlockedWith(extra ...types.Cell) func(types.Cell) bool {
	return func(c types.Cell) bool {
		if o.cells[c] != OccupantNone {
			return true
		}
		return slices.Contains(extra, c)
	}
}
