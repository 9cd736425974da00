package systems

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/entities"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

var testSlow = SlowEffect{Multiplier: 0.5, Steps: 10}

// testEnemyStats 测试用敌人属性
func testEnemyStats() *config.EnemyStatsConfig {
	return &config.EnemyStatsConfig{Enemies: map[string]config.EnemyStats{
		"simple":  {GridSize: 0.2, GridSpeed: 1, Health: 15, Points: 5},
		"big":     {GridSize: 0.4, GridSpeed: 0.25, Health: 150, Points: 10, Immunities: []string{"projectile", "explosive"}},
		"advance": {GridSize: 0.3, GridSpeed: 0.5, Health: 200, Points: 15, ImmuneToSlow: true},
	}}
}

// testTowerStats 测试用塔属性
func testTowerStats() *config.TowerStatsConfig {
	return &config.TowerStatsConfig{Towers: map[string]config.TowerStats{
		"simple": {
			Range: config.RangeConfig{Shape: "circular", Radius: 1.5}, BaseDamage: 10,
			DamageType: "projectile", GridSize: 0.7, BaseCost: 20, LevelCost: 15,
			Upgrades: []string{"damage"},
		},
		"energy": {
			Range: config.RangeConfig{Shape: "circular", Radius: 2}, BaseDamage: 15,
			DamageType: "energy", Turret: true, RotationThreshold: 1.0 / 6, GridSize: 0.7,
		},
		"missile": {
			Range: config.RangeConfig{Shape: "donut", Inner: 1.5, Outer: 4.5}, CooldownSteps: 10,
			BaseDamage: 150, DamageType: "explosive", GridSize: 0.9, BaseCost: 80, LevelCost: 60,
			Upgrades:   []string{"damage", "cooldown"},
			Projectile: &config.ProjectileConfig{Kind: "missile", GridSpeed: 0.5, GridSize: 0.2, RotationThreshold: 0.5},
		},
		"ice": {
			Range: config.RangeConfig{Shape: "circular", Radius: 1.5}, CooldownSteps: 5,
			DamageType: "ice", GridSize: 0.7,
		},
		"pulse": {
			Range: config.RangeConfig{Shape: "plus", Inner: 0.5, Outer: 1.5}, CooldownSteps: 20,
			BaseDamage: 10, DamageType: "energy", GridSize: 0.8,
			Projectile: &config.ProjectileConfig{Kind: "pulse", GridSpeed: 0.25, GridSize: 0.1, Hits: 3},
		},
	}}
}

// testWorld 测试用的网格与流场
type testWorld struct {
	em    *ecs.EntityManager
	tr    *grid.Translator
	field *grid.PathField
}

// newCorridorWorld 创建 cols x 1 的走廊，从左到右，终点为最右侧格
func newCorridorWorld(t *testing.T, cols int) *testWorld {
	t.Helper()
	tr, err := grid.NewTranslator(cols, 1, 60)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	field := grid.ComputePathField(tr, func(types.Cell) bool { return false },
		types.Cell{Col: 0, Row: 0}, types.Cell{Col: cols - 1, Row: 0}, types.Delta{DX: 1})
	return &testWorld{em: ecs.NewEntityManager(), tr: tr, field: field}
}

// newOpenWorld 创建 cols x rows 的空网格，入口在左侧中间，终点在右侧中间外
func newOpenWorld(t *testing.T, cols, rows int) *testWorld {
	t.Helper()
	tr, err := grid.NewTranslator(cols, rows, 60)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	field := grid.ComputePathField(tr, func(types.Cell) bool { return false },
		types.Cell{Col: -1, Row: rows / 2}, types.Cell{Col: cols, Row: rows / 2}, types.Delta{DX: 1})
	return &testWorld{em: ecs.NewEntityManager(), tr: tr, field: field}
}

func (w *testWorld) spawnEnemy(t *testing.T, enemyType types.EnemyType, cell types.Cell) ecs.EntityID {
	t.Helper()
	stats, ok := testEnemyStats().Get(enemyType)
	if !ok {
		t.Fatalf("no stats for %s", enemyType)
	}
	id, err := entities.NewEnemy(w.em, w.tr, enemyType, stats, cell, 1)
	if err != nil {
		t.Fatalf("NewEnemy: %v", err)
	}
	return id
}

func (w *testWorld) placeTower(t *testing.T, towerType types.TowerType, cell types.Cell) ecs.EntityID {
	t.Helper()
	stats, ok := testTowerStats().Get(towerType)
	if !ok {
		t.Fatalf("no stats for %s", towerType)
	}
	id, err := entities.NewTower(w.em, w.tr, towerType, stats, cell)
	if err != nil {
		t.Fatalf("NewTower: %v", err)
	}
	return id
}

func health(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) int {
	t.Helper()
	h, ok := ecs.GetComponent[*components.HealthComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no health", id)
	}
	return h.CurrentHealth
}

func position(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	p, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no position", id)
	}
	return p
}
