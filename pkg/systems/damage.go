package systems

import (
	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/types"
)

// SlowEffect 冰冻伤害附带的减速效果
type SlowEffect struct {
	Multiplier float64 // 速度倍率 (0, 1]
	Steps      int     // 持续 tick 数
}

// ApplyDamage 对敌人造成指定类型的伤害
//
// 规则：
//   - 敌人免疫该伤害类型时，生命值不变
//   - 生命值最低降到 0
//   - 冰冻伤害附带减速，ImmuneToSlow 的敌人不受减速
//
// 返回：
//   - bool: 伤害是否生效（未免疫）
func ApplyDamage(em *ecs.EntityManager, enemyID ecs.EntityID, amount int, damageType types.DamageType, slow SlowEffect) bool {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](em, enemyID)
	if !ok {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](em, enemyID)
	if !ok {
		return false
	}

	if enemy.IsImmuneTo(damageType) {
		return false
	}

	if amount > 0 {
		health.CurrentHealth -= amount
		if health.CurrentHealth < 0 {
			health.CurrentHealth = 0
		}
	}

	if damageType == types.DamageIce && !enemy.ImmuneToSlow && slow.Steps > 0 {
		enemy.SlowSteps = slow.Steps
		enemy.SlowMultiplier = slow.Multiplier
	}

	return true
}

// liveEnemies 返回所有存活（生命值 > 0）且未被标记删除的敌人，按实体ID升序
func liveEnemies(em *ecs.EntityManager) []ecs.EntityID {
	ids := ecs.GetEntitiesWith3[
		*components.EnemyComponent,
		*components.HealthComponent,
		*components.PositionComponent,
	](em)

	live := ids[:0]
	for _, id := range ids {
		health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
		if health.IsDead() || em.IsMarkedForDestruction(id) {
			continue
		}
		live = append(live, id)
	}
	return live
}
