package grid

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/types"
)

// 邻居的规范顺序：右、下、左、上
var neighbourDeltas = [4]types.Delta{
	{DX: 1, DY: 0},
	{DX: 0, DY: 1},
	{DX: -1, DY: 0},
	{DX: 0, DY: -1},
}

// PathField 流场：每个可达格子指向离终点更近一步的邻居
//
// 流场在占用变化时整体重算，计算完成后只读。
// 沿着 delta 走一步，到终点的距离严格减 1，因此不存在环。
type PathField struct {
	start    types.Cell
	goal     types.Cell
	deltas   map[types.Cell]types.Delta
	distance map[types.Cell]int
}

// ComputePathField 从终点开始广度优先搜索，计算整张流场
//
// 参数：
//   - t: 坐标转换器（用于判定格子是否在网格内）
//   - blocked: 格子是否被占用
//   - start, goal: 入口和出口格子，可以位于网格外
//   - exit: 终点格子的 delta，必须是单位轴向向量
func ComputePathField(t *Translator, blocked func(types.Cell) bool, start, goal types.Cell, exit types.Delta) *PathField {
	if !exit.IsUnitAxis() {
		panic(fmt.Sprintf("exit delta must be a unit axis vector, got (%d, %d)", exit.DX, exit.DY))
	}

	traversable := func(c types.Cell) bool {
		if c == start || c == goal {
			return true
		}
		return t.IsCellInGrid(c) && !blocked(c)
	}

	field := &PathField{
		start:    start,
		goal:     goal,
		deltas:   map[types.Cell]types.Delta{goal: exit},
		distance: map[types.Cell]int{goal: 0},
	}

	// 广度优先：order 记录出队顺序，距离单调不减
	order := []types.Cell{goal}
	for head := 0; head < len(order); head++ {
		current := order[head]
		for _, d := range neighbourDeltas {
			next := current.Add(d)
			if _, seen := field.distance[next]; seen {
				continue
			}
			if !traversable(next) {
				continue
			}
			field.distance[next] = field.distance[current] + 1
			order = append(order, next)
		}
	}

	// 按 BFS 顺序分配 delta，保证更近的邻居已经有了 delta，可做直线优先判定
	for _, cell := range order[1:] {
		field.deltas[cell] = field.chooseDelta(cell)
	}
	return field
}

// chooseDelta 在距离更近的邻居中挑选方向
// 优先选择与该邻居自身方向一致的（直线行进），否则按规范顺序取第一个
func (f *PathField) chooseDelta(cell types.Cell) types.Delta {
	want := f.distance[cell] - 1
	var fallback types.Delta
	found := false
	for _, d := range neighbourDeltas {
		next := cell.Add(d)
		dist, ok := f.distance[next]
		if !ok || dist != want {
			continue
		}
		if f.deltas[next] == d {
			return d
		}
		if !found {
			fallback = d
			found = true
		}
	}
	return fallback
}

// Start 入口格子
func (f *PathField) Start() types.Cell { return f.start }

// Goal 终点格子
func (f *PathField) Goal() types.Cell { return f.goal }

// Delta 返回格子的移动方向
func (f *PathField) Delta(c types.Cell) (types.Delta, bool) {
	d, ok := f.deltas[c]
	return d, ok
}

// Contains 格子是否在流场内（可到达终点）
func (f *PathField) Contains(c types.Cell) bool {
	_, ok := f.deltas[c]
	return ok
}

// Reachable 与 Contains 相同，语义上用于"能否到达终点"的判定
func (f *PathField) Reachable(c types.Cell) bool {
	return f.Contains(c)
}

// IsArrived 格子是否为终点
func (f *PathField) IsArrived(c types.Cell) bool {
	return c == f.goal
}

// Distance 返回格子到终点的步数，不可达时返回 -1
func (f *PathField) Distance(c types.Cell) int {
	if d, ok := f.distance[c]; ok {
		return d
	}
	return -1
}

// Len 流场覆盖的格子数
func (f *PathField) Len() int {
	return len(f.deltas)
}

// ShortestFrom 从指定格子沿流场走到终点，返回经过的格子（含首尾）
// 格子不可达时返回 nil
func (f *PathField) ShortestFrom(c types.Cell) []types.Cell {
	if !f.Contains(c) {
		return nil
	}
	path := make([]types.Cell, 0, f.distance[c]+1)
	for {
		path = append(path, c)
		if c == f.goal {
			return path
		}
		c = c.Add(f.deltas[c])
	}
}

// Shortest 从入口出发的路径，仅用于预览渲染
func (f *PathField) Shortest() []types.Cell {
	return f.ShortestFrom(f.start)
}
