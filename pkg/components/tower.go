package components

import (
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

// TowerComponent 标识实体为塔
//
// 塔占据一个格子，射程形状以塔中心为原点、以格为单位。
type TowerComponent struct {
	Type types.TowerType
	Cell types.Cell

	Range grid.Range

	// Turret 炮塔型的塔需要先转向目标才能开火
	Turret bool
	// Rotation 当前朝向（弧度）
	Rotation float64
	// RotationThreshold 每 tick 最大转向角度（弧度）
	RotationThreshold float64

	// BaseDamage 单次伤害（已含升级加成）
	BaseDamage int
	DamageType types.DamageType

	// Level 等级，从 1 开始，每次升级 +1
	Level     int
	BaseCost  int
	LevelCost int

	// Upgrades 可用的升级项
	Upgrades map[types.UpgradeKind]bool
}

// Value 塔的总价值：基础价格加历次升级花费
func (t *TowerComponent) Value() int {
	return t.BaseCost + (t.Level-1)*t.LevelCost
}

// CanUpgrade 是否支持指定升级
func (t *TowerComponent) CanUpgrade(kind types.UpgradeKind) bool {
	return t.Upgrades[kind]
}
