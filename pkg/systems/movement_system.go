package systems

import (
	"log"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/utils"
)

// maxMoveIterations 单个敌人单 tick 的子步上限
// 每个子步要么走到格子中心，要么耗尽预算，正常情况下远小于此值
const maxMoveIterations = 64

// MovementSystem 敌人移动系统
//
// 敌人沿流场在格子中心之间移动：每个子步先回到当前格子的中心线，
// 再沿当前格子的 delta 前进，因此不会斜穿格子。
// 每个子步之后坐标四舍五入到像素：配置速度多为 1/n 格的近似值，
// 截断会让 4.999998 像素的移动变成 4 像素，且左右方向不对称。
type MovementSystem struct {
	em *ecs.EntityManager
	tr *grid.Translator

	// verbose 是否输出详细日志
	verbose bool
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, tr *grid.Translator) *MovementSystem {
	return &MovementSystem{em: em, tr: tr}
}

// SetVerbose 开关详细日志
func (s *MovementSystem) SetVerbose(verbose bool) {
	s.verbose = verbose
}

// Update 推进所有存活敌人一个 tick
//
// 参数：
//   - field: 当前流场
//
// 返回：
//   - []ecs.EntityID: 本 tick 逃脱的敌人（按实体ID升序）
func (s *MovementSystem) Update(field *grid.PathField) []ecs.EntityID {
	var escaped []ecs.EntityID

	for _, id := range liveEnemies(s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		move, ok := ecs.GetComponent[*components.MovementComponent](s.em, id)
		if !ok {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)

		budget := move.GridSpeed * enemy.SpeedMultiplier()
		if enemy.SlowSteps > 0 {
			enemy.SlowSteps--
		}

		if !s.advance(id, pos, move, field, budget) || !s.isActive(id, pos, field) {
			escaped = append(escaped, id)
		}
	}

	return escaped
}

// advance 在流场上移动 budget 格
// 返回 false 表示敌人被困（所在网格内格子没有路径），按逃脱处理
func (s *MovementSystem) advance(id ecs.EntityID, pos *components.PositionComponent, move *components.MovementComponent, field *grid.PathField, budget float64) bool {
	cs := float64(s.tr.CellSize)

	for i := 0; budget > 0; i++ {
		if i >= maxMoveIterations {
			log.Printf("[MovementSystem] WARNING: enemy %d did not settle after %d sub-steps, %.4f cells left", id, i, budget)
			return true
		}

		cell := s.tr.PixelToCell(pos.X, pos.Y)
		delta, ok := field.Delta(cell)
		if !ok {
			// 网格外（刚离开终点）沿原方向继续；网格内无路径视为被困
			if s.tr.IsCellInGrid(cell) || move.Heading.IsZero() {
				log.Printf("[MovementSystem] WARNING: enemy %d has no route from cell (%d, %d), forcing escape", id, cell.Col, cell.Row)
				return false
			}
			delta = move.Heading
		}
		move.Heading = delta

		ox, oy := s.tr.PixelToCellOffset(pos.X, pos.Y)
		dx, dy := grid.DeltaThroughCentre(ox, oy, delta)

		// 到达下一个决策点（格子中心）前可走的距离
		along := math.Abs(oy)
		if dx != 0 {
			along = math.Abs(ox)
		}
		partial := math.Min(budget, 1)
		if along > 0 {
			partial = math.Min(along, budget)
		}

		pos.X = math.Round(pos.X + dx*partial*cs)
		pos.Y = math.Round(pos.Y + dy*partial*cs)
		budget -= partial

		if s.verbose {
			log.Printf("[MovementSystem] enemy %d -> (%.0f, %.0f), %.4f cells left", id, pos.X, pos.Y, budget)
		}
	}
	return true
}

// isActive 边界框仍与网格相交，或所在格子仍在流场中
func (s *MovementSystem) isActive(id ecs.EntityID, pos *components.PositionComponent, field *grid.PathField) bool {
	if field.Contains(s.tr.PixelToCell(pos.X, pos.Y)) {
		return true
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
	if !ok {
		return false
	}
	w, h := s.tr.Pixels()
	return utils.RectanglesIntersect(
		pos.X, pos.Y, col.Width, col.Height,
		float64(w)/2, float64(h)/2, float64(w), float64(h),
	)
}
