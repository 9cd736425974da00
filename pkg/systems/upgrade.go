package systems

import (
	"errors"
	"fmt"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

// ErrUpgradeUnavailable 塔不支持该升级，或冷却已降到 0
var ErrUpgradeUnavailable = errors.New("upgrade unavailable")

// UpgradeTower 升级塔
//
// 参数：
//   - em: 实体管理器
//   - towerID: 塔实体
//   - kind: 升级项
//   - damageStep: 伤害升级的增量
//
// 伤害升级增加 damageStep；冷却升级使冷却 tick 数减 1 并以新周期重建计数器。
// 每次升级等级 +1。
func UpgradeTower(em *ecs.EntityManager, towerID ecs.EntityID, kind types.UpgradeKind, damageStep int) error {
	tower, ok := ecs.GetComponent[*components.TowerComponent](em, towerID)
	if !ok {
		return fmt.Errorf("entity %d is not a tower", towerID)
	}
	if !tower.CanUpgrade(kind) {
		return fmt.Errorf("%s tower has no %s upgrade: %w", tower.Type, kind, ErrUpgradeUnavailable)
	}

	switch kind {
	case types.UpgradeDamage:
		tower.BaseDamage += damageStep
	case types.UpgradeCooldown:
		cooldown, ok := ecs.GetComponent[*components.CooldownComponent](em, towerID)
		if !ok {
			return fmt.Errorf("tower %d has no cooldown: %w", towerID, ErrUpgradeUnavailable)
		}
		if cooldown.CooldownSteps <= 0 {
			return fmt.Errorf("%s tower cooldown already at 0: %w", tower.Type, ErrUpgradeUnavailable)
		}
		em.AddComponent(towerID, components.NewCooldownComponent(cooldown.CooldownSteps-1))
	default:
		return fmt.Errorf("unknown upgrade kind %q: %w", kind, ErrUpgradeUnavailable)
	}

	tower.Level++
	return nil
}

// CanUpgradeTower 检查升级是否可用（不修改状态）
func CanUpgradeTower(em *ecs.EntityManager, towerID ecs.EntityID, kind types.UpgradeKind) bool {
	tower, ok := ecs.GetComponent[*components.TowerComponent](em, towerID)
	if !ok || !tower.CanUpgrade(kind) {
		return false
	}
	if kind == types.UpgradeCooldown {
		cooldown, ok := ecs.GetComponent[*components.CooldownComponent](em, towerID)
		return ok && cooldown.CooldownSteps > 0
	}
	return true
}
