package entities

import (
	"fmt"
	"math"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

// NewTower 创建塔实体，塔位于格子中心
//
// 参数:
//   - em: 实体管理器
//   - tr: 坐标转换器
//   - towerType: 塔类型
//   - stats: 该类型的属性配置
//   - cell: 放置格子
//
// 返回:
//   - ecs.EntityID: 创建的塔实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewTower(em *ecs.EntityManager, tr *grid.Translator, towerType types.TowerType, stats *config.TowerStats, cell types.Cell) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if tr == nil {
		return 0, fmt.Errorf("translator cannot be nil")
	}
	if stats == nil {
		return 0, fmt.Errorf("no stats for tower type %s", towerType)
	}

	shape, err := stats.Range.Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build range for tower %s: %w", towerType, err)
	}
	damageType, err := types.ParseDamageType(stats.DamageType)
	if err != nil {
		return 0, fmt.Errorf("tower %s: %w", towerType, err)
	}

	upgrades := make(map[types.UpgradeKind]bool, len(stats.Upgrades))
	for _, u := range stats.Upgrades {
		upgrades[types.UpgradeKind(u)] = true
	}

	x, y := tr.CellToPixelCentre(cell)
	size := stats.GridSize * float64(tr.CellSize)

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: size, Height: size})
	em.AddComponent(entityID, &components.TowerComponent{
		Type:              towerType,
		Cell:              cell,
		Range:             shape,
		Turret:            stats.Turret,
		Rotation:          stats.Rotation * math.Pi,
		RotationThreshold: stats.RotationThresholdRadians(),
		BaseDamage:        stats.BaseDamage,
		DamageType:        damageType,
		Level:             1,
		BaseCost:          stats.BaseCost,
		LevelCost:         stats.LevelCost,
		Upgrades:          upgrades,
	})
	em.AddComponent(entityID, components.NewCooldownComponent(stats.CooldownSteps))

	return entityID, nil
}
