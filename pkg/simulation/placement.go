package simulation

import (
	"fmt"
	"log"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/systems"
	"github.com/decker502/towerdefense/pkg/types"
)

// CanPlace 格子是否可以放塔（不修改状态）
func (s *Simulation) CanPlace(cell types.Cell) bool {
	return s.IsLegalPlacement(cell)
}

// IsLegalPlacement 放置合法性判定
//
// 合法条件：
//   - 格子在网格内且未被占用，不是入口或终点
//   - 放置后入口仍能到达终点
//   - 放置后所有存活敌人所在的网格内格子仍能到达终点
func (s *Simulation) IsLegalPlacement(cell types.Cell) bool {
	_, ok := s.trialField(cell)
	return ok
}

// AttemptPlacement 放置预览（不修改状态）
//
// 参数：
//   - px, py: 像素坐标
//
// 返回：
//   - bool: 该像素所在格子能否放塔
//   - *grid.PathField: 放置后的流场，不合法时为 nil
func (s *Simulation) AttemptPlacement(px, py float64) (bool, *grid.PathField) {
	field, ok := s.trialField(s.tr.PixelToCell(px, py))
	if !ok {
		return false, nil
	}
	return true, field
}

// trialField 计算在 cell 放塔后的流场，放置不合法时返回 false
func (s *Simulation) trialField(cell types.Cell) (*grid.PathField, bool) {
	if !s.tr.IsCellInGrid(cell) || s.occupancy.IsOccupied(cell) {
		return nil, false
	}
	if cell == *s.cfg.Start || cell == *s.cfg.Goal {
		return nil, false
	}

	field := s.computeField(s.occupancy.BlockedWith(cell))
	if !field.Reachable(*s.cfg.Start) {
		return nil, false
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		c := s.tr.PixelToCell(pos.X, pos.Y)
		if s.tr.IsCellInGrid(c) && !field.Reachable(c) {
			return nil, false
		}
	}
	return field, true
}

// Place 在格子上放塔
//
// 返回错误：
//   - ErrUnknownTowerType: 塔类型没有属性配置
//   - ErrInvalidPlacement: 放置不合法
//
// 成功时流场在返回前重算。
func (s *Simulation) Place(cell types.Cell, towerType types.TowerType) error {
	stats, ok := s.towers.Get(towerType)
	if !ok {
		return fmt.Errorf("%s: %w", towerType, ErrUnknownTowerType)
	}

	field, ok := s.trialField(cell)
	if !ok {
		return fmt.Errorf("cell (%d, %d): %w", cell.Col, cell.Row, ErrInvalidPlacement)
	}

	id, err := entities.NewTower(s.em, s.tr, towerType, stats, cell)
	if err != nil {
		return fmt.Errorf("failed to create %s tower: %w", towerType, err)
	}
	if err := s.occupancy.Occupy(cell, grid.OccupantTower); err != nil {
		s.em.DestroyEntity(id)
		s.em.RemoveMarkedEntities()
		return fmt.Errorf("cell (%d, %d): %w", cell.Col, cell.Row, ErrInvalidPlacement)
	}

	s.towerAt[cell] = id
	s.field = field

	log.Printf("[Simulation] Placed %s tower at (%d, %d)", towerType, cell.Col, cell.Row)
	return nil
}

// Remove 移除格子上的塔，返回被移除塔的快照
// 成功时流场在返回前重算
func (s *Simulation) Remove(cell types.Cell) (types.TowerSnapshot, error) {
	id, ok := s.towerAt[cell]
	if !ok {
		return types.TowerSnapshot{}, fmt.Errorf("cell (%d, %d): %w", cell.Col, cell.Row, ErrNotFound)
	}

	snapshot := s.towerSnapshot(id)

	s.em.DestroyEntity(id)
	s.em.RemoveMarkedEntities()
	delete(s.towerAt, cell)
	if err := s.occupancy.Release(cell); err != nil {
		log.Printf("[Simulation] WARNING: %v", err)
	}
	s.field = s.computeField(s.occupancy.BlockedWith())

	log.Printf("[Simulation] Removed %s tower at (%d, %d)", snapshot.Type, cell.Col, cell.Row)
	return snapshot, nil
}

// Upgrade 升级格子上的塔，返回升级后的快照
//
// 返回错误：
//   - ErrNotFound: 格子上没有塔
//   - ErrUpgradeUnavailable: 塔不支持该升级或已达上限
func (s *Simulation) Upgrade(cell types.Cell, kind types.UpgradeKind) (types.TowerSnapshot, error) {
	id, ok := s.towerAt[cell]
	if !ok {
		return types.TowerSnapshot{}, fmt.Errorf("cell (%d, %d): %w", cell.Col, cell.Row, ErrNotFound)
	}
	if err := systems.UpgradeTower(s.em, id, kind, s.cfg.UpgradeDamageStep); err != nil {
		return types.TowerSnapshot{}, err
	}
	return s.towerSnapshot(id), nil
}

// CanUpgrade 格子上的塔是否可以进行该升级
func (s *Simulation) CanUpgrade(cell types.Cell, kind types.UpgradeKind) bool {
	id, ok := s.towerAt[cell]
	return ok && systems.CanUpgradeTower(s.em, id, kind)
}
