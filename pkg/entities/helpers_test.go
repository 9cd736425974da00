package entities

import (
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/grid"
)

// loadTestStats 从仓库的 data 目录加载塔和敌人属性
func loadTestStats(t *testing.T) (*config.TowerStatsConfig, *config.EnemyStatsConfig) {
	t.Helper()
	towers, err := config.LoadTowerStats("../../data/towers.yaml")
	if err != nil {
		t.Fatalf("LoadTowerStats: %v", err)
	}
	enemies, err := config.LoadEnemyStats("../../data/enemies.yaml")
	if err != nil {
		t.Fatalf("LoadEnemyStats: %v", err)
	}
	return towers, enemies
}

func newTestTranslator(t *testing.T) *grid.Translator {
	t.Helper()
	tr, err := grid.NewTranslator(6, 6, 60)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	return tr
}
