package config

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// LevelConfig 脚本关卡配置
// 每一波由若干子波段组成，子波段在给定 tick 数内均匀生成若干敌人
type LevelConfig struct {
	ID          string       `yaml:"id"`          // 关卡ID，如 "corridor"
	Name        string       `yaml:"name"`        // 关卡名称
	Description string       `yaml:"description"` // 关卡描述（可选）
	Waves       []WaveConfig `yaml:"waves"`       // 波次配置列表
}

// WaveConfig 单个波次配置
type WaveConfig struct {
	SubWaves []SubWaveConfig `yaml:"subWaves"`
}

// SubWaveConfig 子波段配置
// Count 为 0 表示空闲间隔：只推进 Steps 个 tick，不生成敌人
type SubWaveConfig struct {
	Steps int    `yaml:"steps"` // 子波段持续 tick 数
	Count int    `yaml:"count"` // 生成数量
	Enemy string `yaml:"enemy"` // 敌人类型ID："simple", "advance", "big"
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}

	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", filepath, err)
	}

	if levelConfig.Name == "" {
		levelConfig.Name = levelConfig.ID
	}

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", filepath, err)
	}

	return &levelConfig, nil
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.ID == "" {
		return fmt.Errorf("level ID is required")
	}

	if len(config.Waves) == 0 {
		return fmt.Errorf("at least one wave is required")
	}

	for i, wave := range config.Waves {
		if len(wave.SubWaves) == 0 {
			return fmt.Errorf("wave %d: at least one sub-wave is required", i+1)
		}
		spawns := 0
		for j, sub := range wave.SubWaves {
			if sub.Steps < 0 {
				return fmt.Errorf("wave %d, sub-wave %d: steps cannot be negative, got %d", i+1, j+1, sub.Steps)
			}
			if sub.Count < 0 {
				return fmt.Errorf("wave %d, sub-wave %d: count cannot be negative, got %d", i+1, j+1, sub.Count)
			}
			if sub.Count == 0 {
				continue
			}
			if _, err := types.ParseEnemyType(sub.Enemy); err != nil {
				return fmt.Errorf("wave %d, sub-wave %d: %w", i+1, j+1, err)
			}
			spawns += sub.Count
		}
		if spawns == 0 {
			return fmt.Errorf("wave %d: at least one enemy is required", i+1)
		}
	}

	return nil
}
