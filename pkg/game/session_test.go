package game

import (
	"errors"
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/event"
	"github.com/decker502/towerdefense/pkg/level"
	"github.com/decker502/towerdefense/pkg/simulation"
	"github.com/decker502/towerdefense/pkg/types"
)

// newTestSession 3x2 网格，入口 (-1,0)，终点 (3,0)；每一波是 count 个速度 1 的普通敌人
func newTestSession(t *testing.T, lives, waves, count int) (*Session, *simulation.Simulation) {
	t.Helper()
	cfg := &config.GameConfig{
		Columns:      3,
		Rows:         2,
		CellSize:     60,
		Start:        &types.Cell{Col: -1, Row: 0},
		Goal:         &types.Cell{Col: 3, Row: 0},
		InitialLives: lives,
	}
	cfg.ApplyDefaults()
	towers := &config.TowerStatsConfig{Towers: map[string]config.TowerStats{
		"simple": {
			Range: config.RangeConfig{Shape: "circular", Radius: 1.5}, BaseDamage: 1,
			DamageType: "projectile", GridSize: 0.9, BaseCost: 20, LevelCost: 15,
			Upgrades: []string{"damage"},
		},
		"missile": {
			Range: config.RangeConfig{Shape: "donut", Inner: 1.5, Outer: 4.5}, CooldownSteps: 10,
			BaseDamage: 150, DamageType: "explosive", GridSize: 0.9, BaseCost: 80, LevelCost: 60,
		},
	}}
	enemies := &config.EnemyStatsConfig{Enemies: map[string]config.EnemyStats{
		"simple": {GridSize: 0.2, GridSpeed: 1, Health: 100, Points: 5},
	}}
	sim, err := simulation.New(cfg, towers, enemies)
	if err != nil {
		t.Fatalf("simulation.New: %v", err)
	}

	lvlCfg := &config.LevelConfig{ID: "test"}
	for i := 0; i < waves; i++ {
		lvlCfg.Waves = append(lvlCfg.Waves, config.WaveConfig{
			SubWaves: []config.SubWaveConfig{{Steps: count * 2, Count: count, Enemy: "simple"}},
		})
	}
	lvl, err := level.NewScriptedLevel(lvlCfg)
	if err != nil {
		t.Fatalf("NewScriptedLevel: %v", err)
	}
	return NewSession(sim, lvl), sim
}

func runUntil(s *Session, steps int, done func() bool) {
	for i := 0; i < steps && !done(); i++ {
		s.Step()
	}
}

func TestSessionBuySellUpgrade(t *testing.T) {
	s, _ := newTestSession(t, 20, 1, 1)
	cell := types.Cell{Col: 1, Row: 1}

	if err := s.Buy(cell, types.TowerSimple); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if s.Coins() != 30 {
		t.Errorf("coins after buy = %d, want 30", s.Coins())
	}

	if err := s.Buy(types.Cell{Col: 0, Row: 1}, types.TowerMissile); !errors.Is(err, ErrInsufficientCoins) {
		t.Errorf("err = %v, want ErrInsufficientCoins", err)
	}
	if err := s.Buy(cell, types.TowerSimple); !errors.Is(err, simulation.ErrInvalidPlacement) {
		t.Errorf("err = %v, want ErrInvalidPlacement", err)
	}
	if s.Coins() != 30 {
		t.Errorf("failed purchases changed coins to %d", s.Coins())
	}

	if err := s.Upgrade(cell, types.UpgradeDamage); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if s.Coins() != 15 {
		t.Errorf("coins after upgrade = %d, want 15", s.Coins())
	}
	if err := s.Upgrade(cell, types.UpgradeCooldown); !errors.Is(err, simulation.ErrUpgradeUnavailable) {
		t.Errorf("err = %v, want ErrUpgradeUnavailable", err)
	}

	// 价值 20 + 15，返还 80%
	refund, err := s.Sell(cell)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if refund != 28 || s.Coins() != 43 {
		t.Errorf("refund = %d, coins = %d, want 28 and 43", refund, s.Coins())
	}
	if _, err := s.Sell(cell); !errors.Is(err, simulation.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionDeathReward(t *testing.T) {
	s, _ := newTestSession(t, 20, 1, 1)

	// Given 同一 tick 击杀两个 5 分的敌人
	s.handleDeath(event.Event{Kind: event.EnemyDeath, Enemies: []types.EnemySnapshot{{Points: 5}, {Points: 5}}})

	// Then 金币 +10，分数每个 int(5 × √2) = 7
	if s.Coins() != 60 {
		t.Errorf("coins = %d, want 60", s.Coins())
	}
	if s.Score() != 14 {
		t.Errorf("score = %d, want 14", s.Score())
	}
}

func TestSessionWinsAfterLastWave(t *testing.T) {
	s, sim := newTestSession(t, 20, 2, 1)
	var changes int
	s.OnChange(func() { changes++ })

	if _, err := s.NextWave(); err != nil {
		t.Fatalf("NextWave: %v", err)
	}
	runUntil(s, 50, func() bool { return len(sim.Enemies()) == 0 && sim.PendingSpawns() == 0 })
	if s.Lives() != 19 || s.Status() != StatusPlaying {
		t.Fatalf("after wave 1: lives = %d, status = %d", s.Lives(), s.Status())
	}

	if _, err := s.NextWave(); err != nil {
		t.Fatalf("NextWave: %v", err)
	}
	runUntil(s, 50, s.IsOver)

	if s.Status() != StatusWon {
		t.Errorf("status = %d, want StatusWon", s.Status())
	}
	if s.Lives() != 18 {
		t.Errorf("lives = %d, want 18", s.Lives())
	}
	if changes == 0 {
		t.Error("OnChange never called")
	}
	if _, err := s.NextWave(); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
}

func TestSessionLosesWhenLivesRunOut(t *testing.T) {
	s, sim := newTestSession(t, 2, 3, 4)

	if _, err := s.NextWave(); err != nil {
		t.Fatal(err)
	}
	runUntil(s, 100, s.IsOver)

	if s.Status() != StatusLost || s.Lives() != 0 {
		t.Fatalf("status = %d, lives = %d, want lost with 0 lives", s.Status(), s.Lives())
	}

	// 对局结束后不再推进
	step := sim.CurrentStep()
	s.Step()
	if sim.CurrentStep() != step {
		t.Error("Step advanced the simulation after game over")
	}
	if err := s.Buy(types.Cell{Col: 1, Row: 1}, types.TowerSimple); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
}

func TestSessionNoMoreWaves(t *testing.T) {
	s, _ := newTestSession(t, 20, 1, 1)

	if _, err := s.NextWave(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NextWave(); !errors.Is(err, ErrNoMoreWaves) {
		t.Errorf("err = %v, want ErrNoMoreWaves", err)
	}
}

func TestSessionRestart(t *testing.T) {
	s, sim := newTestSession(t, 20, 2, 1)
	if err := s.Buy(types.Cell{Col: 1, Row: 1}, types.TowerSimple); err != nil {
		t.Fatal(err)
	}
	if _, err := s.NextWave(); err != nil {
		t.Fatal(err)
	}

	s.Restart()

	if s.Coins() != 50 || s.Lives() != 20 || s.Wave() != 0 || s.Status() != StatusPlaying {
		t.Errorf("session not reset: coins=%d lives=%d wave=%d", s.Coins(), s.Lives(), s.Wave())
	}
	if len(sim.Towers()) != 0 {
		t.Error("towers kept after restart")
	}
	if wave, err := s.NextWave(); err != nil || wave != 1 {
		t.Errorf("NextWave after restart = %d, %v", wave, err)
	}
}
