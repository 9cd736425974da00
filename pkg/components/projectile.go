package components

import (
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

// ProjectileComponent 投射物（导弹、脉冲）
type ProjectileComponent struct {
	Kind types.ProjectileKind

	// Speed 每 tick 飞行的像素数
	Speed float64
	// Rotation 飞行方向（弧度）
	Rotation float64
	// RotationThreshold 追踪投射物每 tick 最大转向角度
	RotationThreshold float64

	Damage     int
	DamageType types.DamageType

	// Target 追踪目标，0 表示不追踪
	Target ecs.EntityID

	// Hits 剩余可命中次数（脉冲），每个敌人至多命中一次
	Hits   int
	HitSet map[ecs.EntityID]bool
}
