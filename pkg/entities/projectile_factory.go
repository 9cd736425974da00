package entities

import (
	"fmt"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

// NewMissile 创建追踪导弹实体
// 导弹从塔中心沿塔的朝向发射，每 tick 朝目标转向
//
// 参数:
//   - em: 实体管理器
//   - cellSize: 格子像素尺寸（速度和尺寸以格为单位配置）
//   - cfg: 投射物参数
//   - x, y: 发射位置（塔中心）
//   - rotation: 初始飞行方向
//   - target: 追踪的敌人
//   - damage: 命中伤害
//   - damageType: 伤害类型
//
// 返回:
//   - ecs.EntityID: 创建的导弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewMissile(em *ecs.EntityManager, cellSize int, cfg *config.ProjectileConfig, x, y, rotation float64, target ecs.EntityID, damage int, damageType types.DamageType) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("missile config cannot be nil")
	}

	size := cfg.GridSize * float64(cellSize)
	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: size, Height: size})
	em.AddComponent(entityID, &components.ProjectileComponent{
		Kind:              types.ProjectileMissile,
		Speed:             cfg.GridSpeed * float64(cellSize),
		Rotation:          rotation,
		RotationThreshold: cfg.RotationThreshold * math.Pi,
		Damage:            damage,
		DamageType:        damageType,
		Target:            target,
	})

	return entityID, nil
}

// NewPulse 创建直线脉冲实体
// 脉冲沿固定方向飞行 reach 格后消失，途中每个敌人至多命中一次
//
// 参数:
//   - em: 实体管理器
//   - cellSize: 格子像素尺寸
//   - cfg: 投射物参数
//   - x, y: 发射位置（塔中心）
//   - rotation: 飞行方向
//   - reach: 飞行距离（格）
//   - damage: 命中伤害
//   - damageType: 伤害类型
func NewPulse(em *ecs.EntityManager, cellSize int, cfg *config.ProjectileConfig, x, y, rotation, reach float64, damage int, damageType types.DamageType) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("pulse config cannot be nil")
	}

	size := cfg.GridSize * float64(cellSize)
	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: size, Height: size})
	em.AddComponent(entityID, &components.ProjectileComponent{
		Kind:       types.ProjectilePulse,
		Speed:      cfg.GridSpeed * float64(cellSize),
		Rotation:   rotation,
		Damage:     damage,
		DamageType: damageType,
		Hits:       cfg.Hits,
		HitSet:     make(map[ecs.EntityID]bool),
	})
	em.AddComponent(entityID, &components.LifetimeComponent{
		MaxSteps: stepsToCover(reach, cfg.GridSpeed),
	})

	return entityID, nil
}

// stepsToCover 以 speed 格/tick 飞行 reach 格所需的 tick 数
func stepsToCover(reach, speed float64) int {
	// 容忍浮点误差，避免 1.5/0.15 这类整除被向上取整多一步
	return int(math.Ceil(reach/speed - 1e-9))
}
