package entities

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

// NewEnemy 创建敌人实体
// 敌人生成在指定格子（通常是入口格）的中心
//
// 参数:
//   - em: 实体管理器
//   - tr: 坐标转换器
//   - enemyType: 敌人类型
//   - stats: 该类型的属性配置
//   - cell: 生成格子
//   - wave: 所属波次编号（0 表示不属于任何波次）
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemy(em *ecs.EntityManager, tr *grid.Translator, enemyType types.EnemyType, stats *config.EnemyStats, cell types.Cell, wave int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if tr == nil {
		return 0, fmt.Errorf("translator cannot be nil")
	}
	if stats == nil {
		return 0, fmt.Errorf("no stats for enemy type %s", enemyType)
	}

	x, y := tr.CellToPixelCentre(cell)
	size := stats.GridSize * float64(tr.CellSize)

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: size, Height: size})
	em.AddComponent(entityID, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	em.AddComponent(entityID, &components.MovementComponent{GridSpeed: stats.GridSpeed})
	em.AddComponent(entityID, &components.EnemyComponent{
		Type:           enemyType,
		Points:         stats.Points,
		Immunities:     stats.ImmunitySet(),
		ImmuneToSlow:   stats.ImmuneToSlow,
		Wave:           wave,
		SlowMultiplier: 1,
	})

	return entityID, nil
}
