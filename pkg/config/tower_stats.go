package config

import (
	"fmt"
	"math"

	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/grid"
	"github.com/decker502/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// TowerStatsPath 默认塔属性配置路径
const TowerStatsPath = "data/towers.yaml"

// RangeConfig 射程形状配置（单位：格）
type RangeConfig struct {
	Shape  string  `yaml:"shape"`  // "circular", "plus", "donut"
	Radius float64 `yaml:"radius"` // circular 半径
	Inner  float64 `yaml:"inner"`  // plus 臂宽的一半 / donut 内半径
	Outer  float64 `yaml:"outer"`  // plus 臂长 / donut 外半径
}

// Build 构建射程形状
func (r RangeConfig) Build() (grid.Range, error) {
	switch r.Shape {
	case "circular":
		if r.Radius <= 0 {
			return nil, fmt.Errorf("circular range needs a positive radius, got %v", r.Radius)
		}
		return grid.CircularRange{Radius: r.Radius}, nil
	case "plus":
		if r.Inner <= 0 || r.Outer < r.Inner {
			return nil, fmt.Errorf("plus range needs 0 < inner <= outer, got inner=%v outer=%v", r.Inner, r.Outer)
		}
		return grid.PlusRange{Inner: r.Inner, Outer: r.Outer}, nil
	case "donut":
		if r.Inner < 0 || r.Outer <= r.Inner {
			return nil, fmt.Errorf("donut range needs 0 <= inner < outer, got inner=%v outer=%v", r.Inner, r.Outer)
		}
		return grid.DonutRange{Inner: r.Inner, Outer: r.Outer}, nil
	}
	return nil, fmt.Errorf("unknown range shape %q (must be circular, plus or donut)", r.Shape)
}

// ProjectileConfig 投射物参数
type ProjectileConfig struct {
	Kind string `yaml:"kind"` // "missile", "pulse"
	// GridSpeed 每 tick 飞行格数
	GridSpeed float64 `yaml:"gridSpeed"`
	// GridSize 边界框边长（格）
	GridSize float64 `yaml:"gridSize"`
	// RotationThreshold 追踪转向上限（π 的倍数）
	RotationThreshold float64 `yaml:"rotationThreshold"`
	// Hits 脉冲可命中的敌人数
	Hits int `yaml:"hits"`
}

// TowerStats 单个塔类型的属性配置
type TowerStats struct {
	Name  string      `yaml:"name"`  // 显示名称
	Color string      `yaml:"color"` // 渲染颜色（#RRGGBB）
	Range RangeConfig `yaml:"range"`

	CooldownSteps int    `yaml:"cooldownSteps"` // 冷却 tick 数，0 表示每 tick 就绪
	BaseDamage    int    `yaml:"baseDamage"`
	DamageType    string `yaml:"damageType"`

	Turret bool `yaml:"turret"`
	// RotationThreshold 每 tick 最大转向（π 的倍数，如 1/6）
	RotationThreshold float64 `yaml:"rotationThreshold"`
	// Rotation 初始朝向（π 的倍数）
	Rotation float64 `yaml:"rotation"`
	// GridSize 边界框边长（格）
	GridSize float64 `yaml:"gridSize"`

	BaseCost  int      `yaml:"baseCost"`
	LevelCost int      `yaml:"levelCost"`
	Upgrades  []string `yaml:"upgrades"`

	Projectile *ProjectileConfig `yaml:"projectile"`
}

// RotationThresholdRadians 转向上限（弧度）
func (s *TowerStats) RotationThresholdRadians() float64 {
	return s.RotationThreshold * math.Pi
}

// TowerStatsConfig 塔属性配置文件结构
type TowerStatsConfig struct {
	Towers map[string]TowerStats `yaml:"towers"` // 塔类型ID到属性的映射
}

// Get 按塔类型查找属性
func (c *TowerStatsConfig) Get(t types.TowerType) (*TowerStats, bool) {
	stats, ok := c.Towers[t.String()]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// LoadTowerStats 从 YAML 文件加载塔属性配置
func LoadTowerStats(filepath string) (*TowerStatsConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower stats file %s: %w", filepath, err)
	}

	var config TowerStatsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse tower stats YAML from %s: %w", filepath, err)
	}

	applyTowerDefaults(&config)

	if err := validateTowerStats(&config); err != nil {
		return nil, fmt.Errorf("invalid tower stats in %s: %w", filepath, err)
	}

	return &config, nil
}

func applyTowerDefaults(config *TowerStatsConfig) {
	for id, stats := range config.Towers {
		if stats.GridSize == 0 {
			stats.GridSize = 0.7
		}
		if stats.Name == "" {
			stats.Name = id
		}
		if p := stats.Projectile; p != nil && p.GridSize == 0 {
			p.GridSize = 0.2
		}
		config.Towers[id] = stats
	}
}

// validateTowerStats 验证塔属性配置的完整性和合法性
func validateTowerStats(config *TowerStatsConfig) error {
	if len(config.Towers) == 0 {
		return fmt.Errorf("at least one tower type is required")
	}

	for id, stats := range config.Towers {
		if _, err := types.ParseTowerType(id); err != nil {
			return fmt.Errorf("tower %s: %w", id, err)
		}
		if _, err := stats.Range.Build(); err != nil {
			return fmt.Errorf("tower %s: %w", id, err)
		}
		if stats.CooldownSteps < 0 {
			return fmt.Errorf("tower %s: cooldownSteps cannot be negative, got %d", id, stats.CooldownSteps)
		}
		if stats.BaseDamage < 0 {
			return fmt.Errorf("tower %s: baseDamage cannot be negative, got %d", id, stats.BaseDamage)
		}
		if _, err := types.ParseDamageType(stats.DamageType); err != nil {
			return fmt.Errorf("tower %s: %w", id, err)
		}
		if stats.Turret && stats.RotationThreshold <= 0 {
			return fmt.Errorf("tower %s: turret towers need a positive rotationThreshold", id)
		}
		if stats.GridSize <= 0 || stats.GridSize > 1 {
			return fmt.Errorf("tower %s: gridSize must be in (0, 1], got %v", id, stats.GridSize)
		}
		if stats.BaseCost < 0 || stats.LevelCost < 0 {
			return fmt.Errorf("tower %s: costs cannot be negative", id)
		}
		for _, u := range stats.Upgrades {
			if _, err := types.ParseUpgradeKind(u); err != nil {
				return fmt.Errorf("tower %s: %w", id, err)
			}
		}
		if p := stats.Projectile; p != nil {
			if p.Kind != string(types.ProjectileMissile) && p.Kind != string(types.ProjectilePulse) {
				return fmt.Errorf("tower %s: projectile kind must be missile or pulse, got %q", id, p.Kind)
			}
			if p.GridSpeed <= 0 {
				return fmt.Errorf("tower %s: projectile gridSpeed must be positive, got %v", id, p.GridSpeed)
			}
			if p.Kind == string(types.ProjectilePulse) && p.Hits < 1 {
				return fmt.Errorf("tower %s: pulse hits must be at least 1, got %d", id, p.Hits)
			}
		}
	}

	return nil
}
