package config

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyStatsPath 默认敌人属性配置路径
const EnemyStatsPath = "data/enemies.yaml"

// EnemyStats 单个敌人类型的属性配置
type EnemyStats struct {
	Name         string   `yaml:"name"`         // 显示名称
	Color        string   `yaml:"color"`        // 渲染颜色（#RRGGBB）
	GridSize     float64  `yaml:"gridSize"`     // 边界框边长（格）
	GridSpeed    float64  `yaml:"gridSpeed"`    // 每 tick 移动格数
	Health       int      `yaml:"health"`       // 初始生命值
	Points       int      `yaml:"points"`       // 击杀奖励
	Immunities   []string `yaml:"immunities"`   // 免疫的伤害类型
	ImmuneToSlow bool     `yaml:"immuneToSlow"` // 是否免疫减速
}

// ImmunitySet 将免疫列表转为集合（已校验）
func (s *EnemyStats) ImmunitySet() map[types.DamageType]bool {
	set := make(map[types.DamageType]bool, len(s.Immunities))
	for _, name := range s.Immunities {
		set[types.DamageType(name)] = true
	}
	return set
}

// EnemyStatsConfig 敌人属性配置文件结构
type EnemyStatsConfig struct {
	Enemies map[string]EnemyStats `yaml:"enemies"` // 敌人类型ID到属性的映射
}

// Get 按敌人类型查找属性
func (c *EnemyStatsConfig) Get(t types.EnemyType) (*EnemyStats, bool) {
	stats, ok := c.Enemies[t.String()]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// LoadEnemyStats 从 YAML 文件加载敌人属性配置
func LoadEnemyStats(filepath string) (*EnemyStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy stats file %s: %w", filepath, err)
	}

	var config EnemyStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse enemy stats YAML from %s: %w", filepath, err)
	}

	if err := validateEnemyStats(&config); err != nil {
		return nil, fmt.Errorf("invalid enemy stats in %s: %w", filepath, err)
	}

	return &config, nil
}

// validateEnemyStats 验证敌人属性配置的完整性和合法性
func validateEnemyStats(config *EnemyStatsConfig) error {
	if len(config.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}

	for id, stats := range config.Enemies {
		if _, err := types.ParseEnemyType(id); err != nil {
			return fmt.Errorf("enemy %s: %w", id, err)
		}
		if stats.GridSize <= 0 || stats.GridSize > 1 {
			return fmt.Errorf("enemy %s: gridSize must be in (0, 1], got %v", id, stats.GridSize)
		}
		if stats.GridSpeed <= 0 {
			return fmt.Errorf("enemy %s: gridSpeed must be positive, got %v", id, stats.GridSpeed)
		}
		if stats.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", id, stats.Health)
		}
		if stats.Points < 0 {
			return fmt.Errorf("enemy %s: points cannot be negative, got %d", id, stats.Points)
		}
		for _, name := range stats.Immunities {
			if _, err := types.ParseDamageType(name); err != nil {
				return fmt.Errorf("enemy %s: %w", id, err)
			}
		}
	}

	return nil
}
