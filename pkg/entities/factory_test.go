package entities

import (
	"math"
	"testing"

	"github.com/decker502/towerdefense/pkg/components"
	"github.com/decker502/towerdefense/pkg/ecs"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
)

func TestNewEnemy(t *testing.T) {
	_, enemies := loadTestStats(t)
	tr := newTestTranslator(t)
	em := ecs.NewEntityManager()

	tests := []struct {
		name       string
		enemyType  types.EnemyType
		wantSize   float64
		wantHealth int
		wantSpeed  float64
	}{
		{"普通敌人", types.EnemySimple, 12, 100, 0.0833333},
		{"重型敌人", types.EnemyBig, 24, 150, 0.0666667},
		{"高级敌人", types.EnemyAdvance, 18, 200, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, _ := enemies.Get(tt.enemyType)
			id, err := NewEnemy(em, tr, tt.enemyType, stats, types.Cell{Col: -1, Row: 3}, 2)
			if err != nil {
				t.Fatalf("NewEnemy() error = %v", err)
			}

			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok {
				t.Fatal("Enemy entity should have PositionComponent")
			}
			if pos.X != -30 || pos.Y != 210 {
				t.Errorf("Expected spawn at (-30, 210), got (%.1f, %.1f)", pos.X, pos.Y)
			}

			col, _ := ecs.GetComponent[*components.CollisionComponent](em, id)
			if math.Abs(col.Width-tt.wantSize) > 1e-9 {
				t.Errorf("Expected size %.1f, got %.1f", tt.wantSize, col.Width)
			}

			health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
			if health.CurrentHealth != tt.wantHealth {
				t.Errorf("Expected health %d, got %d", tt.wantHealth, health.CurrentHealth)
			}

			move, _ := ecs.GetComponent[*components.MovementComponent](em, id)
			if move.GridSpeed != tt.wantSpeed {
				t.Errorf("Expected speed %v, got %v", tt.wantSpeed, move.GridSpeed)
			}

			enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
			if enemy.Type != tt.enemyType || enemy.Wave != 2 {
				t.Errorf("Unexpected enemy component %+v", enemy)
			}
		})
	}
}

func TestNewEnemy_NilParams(t *testing.T) {
	_, enemies := loadTestStats(t)
	stats, _ := enemies.Get(types.EnemySimple)
	tr := newTestTranslator(t)

	if _, err := NewEnemy(nil, tr, types.EnemySimple, stats, types.Cell{}, 0); err == nil {
		t.Error("Expected error for nil entity manager")
	}
	if _, err := NewEnemy(ecs.NewEntityManager(), tr, types.EnemySimple, nil, types.Cell{}, 0); err == nil {
		t.Error("Expected error for missing stats")
	}
}

func TestNewTower(t *testing.T) {
	towers, _ := loadTestStats(t)
	tr := newTestTranslator(t)
	em := ecs.NewEntityManager()

	tests := []struct {
		name         string
		towerType    types.TowerType
		wantRange    grid.Range
		wantCooldown int
		wantTurret   bool
	}{
		{"普通炮塔", types.TowerSimple, grid.CircularRange{Radius: 1.5}, 0, true},
		{"导弹塔", types.TowerMissile, grid.DonutRange{Inner: 1.5, Outer: 4.5}, 10, true},
		{"能量塔", types.TowerEnergy, grid.CircularRange{Radius: 2}, 0, true},
		{"冰塔", types.TowerIce, grid.CircularRange{Radius: 1.5}, 20, false},
		{"脉冲塔", types.TowerPulse, grid.PlusRange{Inner: 0.5, Outer: 1.5}, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, _ := towers.Get(tt.towerType)
			cell := types.Cell{Col: 2, Row: 1}
			id, err := NewTower(em, tr, tt.towerType, stats, cell)
			if err != nil {
				t.Fatalf("NewTower() error = %v", err)
			}

			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			if pos.X != 150 || pos.Y != 90 {
				t.Errorf("Expected tower at (150, 90), got (%.1f, %.1f)", pos.X, pos.Y)
			}

			tower, ok := ecs.GetComponent[*components.TowerComponent](em, id)
			if !ok {
				t.Fatal("Tower entity should have TowerComponent")
			}
			if tower.Range != tt.wantRange {
				t.Errorf("Expected range %+v, got %+v", tt.wantRange, tower.Range)
			}
			if tower.Turret != tt.wantTurret {
				t.Errorf("Expected turret %v, got %v", tt.wantTurret, tower.Turret)
			}
			if tower.Level != 1 || tower.Value() != stats.BaseCost {
				t.Errorf("Expected level 1 worth %d, got level %d worth %d", stats.BaseCost, tower.Level, tower.Value())
			}
			if tower.Cell != cell {
				t.Errorf("Expected cell %v, got %v", cell, tower.Cell)
			}

			cd, _ := ecs.GetComponent[*components.CooldownComponent](em, id)
			if cd.CooldownSteps != tt.wantCooldown || !cd.IsReady() {
				t.Errorf("Expected ready cooldown of %d, got %+v", tt.wantCooldown, cd)
			}
		})
	}
}

func TestNewProjectiles(t *testing.T) {
	towers, _ := loadTestStats(t)
	em := ecs.NewEntityManager()

	missile, _ := towers.Get(types.TowerMissile)
	mid, err := NewMissile(em, 60, missile.Projectile, 100, 100, 0, 42, 150, types.DamageExplosive)
	if err != nil {
		t.Fatalf("NewMissile() error = %v", err)
	}
	mp, _ := ecs.GetComponent[*components.ProjectileComponent](em, mid)
	if mp.Kind != types.ProjectileMissile || mp.Target != 42 {
		t.Errorf("Unexpected missile component %+v", mp)
	}
	if math.Abs(mp.Speed-18) > 1e-9 {
		t.Errorf("Expected missile speed 18px, got %v", mp.Speed)
	}

	pulse, _ := towers.Get(types.TowerPulse)
	pid, err := NewPulse(em, 60, pulse.Projectile, 100, 100, math.Pi/2, 1.5, 10, types.DamageEnergy)
	if err != nil {
		t.Fatalf("NewPulse() error = %v", err)
	}
	pp, _ := ecs.GetComponent[*components.ProjectileComponent](em, pid)
	if pp.Hits != 3 || pp.HitSet == nil {
		t.Errorf("Unexpected pulse component %+v", pp)
	}
	life, ok := ecs.GetComponent[*components.LifetimeComponent](em, pid)
	if !ok || life.MaxSteps != 10 {
		t.Errorf("Expected pulse lifetime of 10 steps, got %+v", life)
	}
}
