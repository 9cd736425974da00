package simulation

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

// GridInfo 网格的只读描述
type GridInfo struct {
	Columns  int
	Rows     int
	CellSize int
	Start    types.Cell
	Goal     types.Cell
}

// Grid 返回网格描述
func (s *Simulation) Grid() GridInfo {
	return GridInfo{
		Columns:  s.tr.Columns,
		Rows:     s.tr.Rows,
		CellSize: s.tr.CellSize,
		Start:    *s.cfg.Start,
		Goal:     *s.cfg.Goal,
	}
}

// Translator 返回坐标转换器
func (s *Simulation) Translator() *grid.Translator {
	return s.tr
}

// Field 返回当前流场（只读）
func (s *Simulation) Field() *grid.PathField {
	return s.field
}

// Path 从入口到终点的当前路径，仅用于预览
func (s *Simulation) Path() []types.Cell {
	return s.field.Shortest()
}

// Obstacles 障碍物格子（按行、列排序）
func (s *Simulation) Obstacles() []types.Cell {
	return s.occupancy.Cells(grid.OccupantObstacle)
}

// Towers 所有塔的快照（按实体ID升序）
func (s *Simulation) Towers() []types.TowerSnapshot {
	ids := ecs.GetEntitiesWith1[*components.TowerComponent](s.em)
	result := make([]types.TowerSnapshot, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.towerSnapshot(id))
	}
	return result
}

// TowerAt 返回格子上的塔
func (s *Simulation) TowerAt(cell types.Cell) (types.TowerSnapshot, bool) {
	id, ok := s.towerAt[cell]
	if !ok {
		return types.TowerSnapshot{}, false
	}
	return s.towerSnapshot(id), true
}

// Enemies 所有敌人的快照（按实体ID升序，即生成顺序）
func (s *Simulation) Enemies() []types.EnemySnapshot {
	ids := ecs.GetEntitiesWith1[*components.EnemyComponent](s.em)
	result := make([]types.EnemySnapshot, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.enemySnapshot(id))
	}
	return result
}

// Projectiles 所有投射物的快照
func (s *Simulation) Projectiles() []types.ProjectileSnapshot {
	ids := ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.em)
	result := make([]types.ProjectileSnapshot, 0, len(ids))
	for _, id := range ids {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		result = append(result, types.ProjectileSnapshot{
			ID:       uint64(id),
			Kind:     proj.Kind,
			X:        pos.X,
			Y:        pos.Y,
			Rotation: proj.Rotation,
		})
	}
	return result
}

func (s *Simulation) enemySnapshot(id ecs.EntityID) types.EnemySnapshot {
	snap := types.EnemySnapshot{ID: uint64(id)}
	if enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.em, id); ok {
		snap.Type = enemy.Type
		snap.Points = enemy.Points
		snap.Wave = enemy.Wave
		snap.Slowed = enemy.SlowSteps > 0
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id); ok {
		snap.X, snap.Y = pos.X, pos.Y
	}
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id); ok {
		snap.Width, snap.Height = col.Width, col.Height
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](s.em, id); ok {
		snap.Health, snap.MaxHealth = health.CurrentHealth, health.MaxHealth
	}
	return snap
}

func (s *Simulation) towerSnapshot(id ecs.EntityID) types.TowerSnapshot {
	snap := types.TowerSnapshot{ID: uint64(id)}
	if tower, ok := ecs.GetComponent[*components.TowerComponent](s.em, id); ok {
		snap.Type = tower.Type
		snap.Cell = tower.Cell
		snap.Rotation = tower.Rotation
		snap.Level = tower.Level
		snap.Damage = tower.BaseDamage
		snap.Value = tower.Value()
		snap.LevelCost = tower.LevelCost
		snap.RangeRadius = tower.Range.OuterRadius()
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id); ok {
		snap.X, snap.Y = pos.X, pos.Y
	}
	if cooldown, ok := ecs.GetComponent[*components.CooldownComponent](s.em, id); ok {
		snap.CooldownSteps = cooldown.CooldownSteps
		snap.Remaining = cooldown.Remaining
	}
	return snap
}
