package components

import "github.com/decker502/towerdefense/pkg/types"

// EnemyComponent 标识实体为敌人
type EnemyComponent struct {
	// Type 敌人类型
	Type types.EnemyType
	// Points 击杀奖励（金币和分数基数）
	Points int
	// Immunities 免疫的伤害类型
	Immunities map[types.DamageType]bool
	// ImmuneToSlow 是否免疫减速
	ImmuneToSlow bool
	// Wave 所属波次编号（0 表示不属于任何波次，如手动生成）
	Wave int

	// SlowSteps 剩余减速 tick 数，> 0 时移动速度乘以 SlowMultiplier
	SlowSteps int
	// SlowMultiplier 减速倍率
	SlowMultiplier float64
}

// IsImmuneTo 是否免疫指定伤害类型
func (e *EnemyComponent) IsImmuneTo(dt types.DamageType) bool {
	return e.Immunities[dt]
}

// SpeedMultiplier 返回当前速度倍率
func (e *EnemyComponent) SpeedMultiplier() float64 {
	if e.SlowSteps > 0 {
		return e.SlowMultiplier
	}
	return 1
}
