package simulation

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/types"
)

func testTowerStats() *config.TowerStatsConfig {
	return &config.TowerStatsConfig{Towers: map[string]config.TowerStats{
		"simple": {
			Range: config.RangeConfig{Shape: "circular", Radius: 1.5}, BaseDamage: 10,
			DamageType: "projectile", GridSize: 0.7, BaseCost: 20, LevelCost: 15,
			Upgrades: []string{"damage"},
		},
	}}
}

func testEnemyStats(speed float64) *config.EnemyStatsConfig {
	return &config.EnemyStatsConfig{Enemies: map[string]config.EnemyStats{
		"simple": {GridSize: 0.2, GridSpeed: speed, Health: 15, Points: 5},
	}}
}

// newTestSimulation 创建 cols x rows 的模拟，入口与终点由调用方指定
func newTestSimulation(t *testing.T, cols, rows int, start, goal types.Cell, speed float64, obstacles ...types.Cell) *Simulation {
	t.Helper()
	cfg := &config.GameConfig{
		Columns:   cols,
		Rows:      rows,
		CellSize:  60,
		Start:     &start,
		Goal:      &goal,
		ExitDelta: &types.Delta{DX: 1},
		Obstacles: obstacles,
	}
	cfg.ApplyDefaults()
	sim, err := New(cfg, testTowerStats(), testEnemyStats(speed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}

// newCorridor 5x1 走廊，入口 (0,0)，终点 (4,0)
func newCorridor(t *testing.T, speed float64) *Simulation {
	t.Helper()
	return newTestSimulation(t, 5, 1, types.Cell{Col: 0, Row: 0}, types.Cell{Col: 4, Row: 0}, speed)
}

// recorder 按顺序记录事件
type recorder struct {
	events []event.Event
}

func record(sim *Simulation) *recorder {
	r := &recorder{}
	for _, kind := range []event.Kind{event.EnemyDeath, event.EnemyEscape, event.WaveCleared} {
		sim.On(kind, func(e event.Event) { r.events = append(r.events, e) })
	}
	return r
}

func (r *recorder) of(kind event.Kind) []event.Event {
	var result []event.Event
	for _, e := range r.events {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}
