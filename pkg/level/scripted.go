package level

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

// ScriptedLevel 由 YAML 关卡配置驱动的关卡
type ScriptedLevel struct {
	id    string
	name  string
	waves [][]SubWave
}

// NewScriptedLevel 从关卡配置创建关卡
// 敌人类型ID在这里解析，未知类型立即报错
func NewScriptedLevel(cfg *config.LevelConfig) (*ScriptedLevel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("level config cannot be nil")
	}

	l := &ScriptedLevel{id: cfg.ID, name: cfg.Name}
	for i, wave := range cfg.Waves {
		subs := make([]SubWave, 0, len(wave.SubWaves))
		for j, sub := range wave.SubWaves {
			s := SubWave{Steps: sub.Steps, Count: sub.Count}
			if sub.Count > 0 {
				enemy, err := types.ParseEnemyType(sub.Enemy)
				if err != nil {
					return nil, fmt.Errorf("level %s wave %d sub-wave %d: %w", cfg.ID, i+1, j+1, err)
				}
				s.Enemy = enemy
			}
			subs = append(subs, s)
		}
		l.waves = append(l.waves, subs)
	}
	return l, nil
}

// LoadScriptedLevel 加载关卡文件并创建关卡
func LoadScriptedLevel(path string) (*ScriptedLevel, error) {
	cfg, err := config.LoadLevelConfig(path)
	if err != nil {
		return nil, err
	}
	return NewScriptedLevel(cfg)
}

// ID 关卡ID
func (l *ScriptedLevel) ID() string { return l.id }

// Name 关卡名称
func (l *ScriptedLevel) Name() string { return l.name }

// Waves 实现 Level 接口
func (l *ScriptedLevel) Waves() int {
	return len(l.waves)
}

// Wave 实现 Level 接口
func (l *ScriptedLevel) Wave(n int) ([]types.WaveEntry, error) {
	if err := checkWave(l, n); err != nil {
		return nil, err
	}
	return GenerateSubWaves(l.waves[n-1]), nil
}
