package config

import (
	"fmt"

	"github.com/decker502/towerdefense/pkg/embedded"
	"github.com/decker502/towerdefense/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfigPath 默认游戏配置路径
const GameConfigPath = "data/game.yaml"

// GameConfig 网格几何与经济参数
type GameConfig struct {
	Columns  int `yaml:"columns"`  // 网格列数
	Rows     int `yaml:"rows"`     // 网格行数
	CellSize int `yaml:"cellSize"` // 每格像素

	// Start 敌人入口格，默认 (-1, rows/2)，可位于网格外
	Start *types.Cell `yaml:"start"`
	// Goal 终点格，默认 (columns, rows/2)
	Goal *types.Cell `yaml:"goal"`
	// ExitDelta 终点格的离场方向，默认向右；goal+exitDelta 必须在网格外
	ExitDelta *types.Delta `yaml:"exitDelta"`
	// Obstacles 固定障碍物格子
	Obstacles []types.Cell `yaml:"obstacles"`

	InitialCoins int     `yaml:"initialCoins"` // 初始金币，默认 50
	InitialLives int     `yaml:"initialLives"` // 初始生命，默认 20
	MaxWave      int     `yaml:"maxWave"`      // 最大波次，默认 20
	SellRatio    float64 `yaml:"sellRatio"`    // 出售返还比例，默认 0.8

	SlowMultiplier    float64 `yaml:"slowMultiplier"`    // 减速倍率，默认 0.5
	SlowSteps         int     `yaml:"slowSteps"`         // 减速持续 tick 数，默认 30
	UpgradeDamageStep int     `yaml:"upgradeDamageStep"` // 伤害升级增量，默认 3
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}
	return config, nil
}

// ParseGameConfig 解析 YAML 数据、应用默认值并校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ApplyDefaults 为缺失的可选字段设置默认值
func (c *GameConfig) ApplyDefaults() {
	if c.Columns == 0 {
		c.Columns = 6
	}
	if c.Rows == 0 {
		c.Rows = 6
	}
	if c.CellSize == 0 {
		c.CellSize = 60
	}
	if c.Start == nil {
		c.Start = &types.Cell{Col: -1, Row: c.Rows / 2}
	}
	if c.Goal == nil {
		c.Goal = &types.Cell{Col: c.Columns, Row: c.Rows / 2}
	}
	if c.ExitDelta == nil {
		c.ExitDelta = &types.Delta{DX: 1, DY: 0}
	}
	if c.InitialCoins == 0 {
		c.InitialCoins = 50
	}
	if c.InitialLives == 0 {
		c.InitialLives = 20
	}
	if c.MaxWave == 0 {
		c.MaxWave = 20
	}
	if c.SellRatio == 0 {
		c.SellRatio = 0.8
	}
	if c.SlowMultiplier == 0 {
		c.SlowMultiplier = 0.5
	}
	if c.SlowSteps == 0 {
		c.SlowSteps = 30
	}
	if c.UpgradeDamageStep == 0 {
		c.UpgradeDamageStep = 3
	}
}

// Validate 校验网格几何和参数范围
func (c *GameConfig) Validate() error {
	if c.Columns < 1 || c.Rows < 1 {
		return fmt.Errorf("grid must have at least one cell, got %dx%d", c.Columns, c.Rows)
	}
	if c.CellSize < 2 {
		return fmt.Errorf("cellSize must be at least 2, got %d", c.CellSize)
	}
	if c.Start == nil || c.Goal == nil || c.ExitDelta == nil {
		return fmt.Errorf("start, goal and exitDelta are required")
	}
	if *c.Start == *c.Goal {
		return fmt.Errorf("start and goal must differ, both are (%d, %d)", c.Start.Col, c.Start.Row)
	}
	if !c.ExitDelta.IsUnitAxis() {
		return fmt.Errorf("exitDelta must be a unit axis vector, got (%d, %d)", c.ExitDelta.DX, c.ExitDelta.DY)
	}
	if !c.nearGrid(*c.Start) {
		return fmt.Errorf("start (%d, %d) must be inside the grid or adjacent to it", c.Start.Col, c.Start.Row)
	}
	if !c.nearGrid(*c.Goal) {
		return fmt.Errorf("goal (%d, %d) must be inside the grid or adjacent to it", c.Goal.Col, c.Goal.Row)
	}
	if exit := c.Goal.Add(*c.ExitDelta); c.inGrid(exit) {
		return fmt.Errorf("exitDelta must lead out of the grid, goal+exit = (%d, %d)", exit.Col, exit.Row)
	}
	for i, o := range c.Obstacles {
		if !c.inGrid(o) {
			return fmt.Errorf("obstacles[%d]: (%d, %d) is outside the grid", i, o.Col, o.Row)
		}
		if o == *c.Start || o == *c.Goal {
			return fmt.Errorf("obstacles[%d]: (%d, %d) overlaps start or goal", i, o.Col, o.Row)
		}
	}
	if c.InitialCoins < 0 {
		return fmt.Errorf("initialCoins cannot be negative, got %d", c.InitialCoins)
	}
	if c.InitialLives < 1 {
		return fmt.Errorf("initialLives must be at least 1, got %d", c.InitialLives)
	}
	if c.MaxWave < 1 {
		return fmt.Errorf("maxWave must be at least 1, got %d", c.MaxWave)
	}
	if c.SellRatio < 0 || c.SellRatio > 1 {
		return fmt.Errorf("sellRatio must be between 0 and 1, got %v", c.SellRatio)
	}
	if c.SlowMultiplier <= 0 || c.SlowMultiplier > 1 {
		return fmt.Errorf("slowMultiplier must be in (0, 1], got %v", c.SlowMultiplier)
	}
	if c.SlowSteps < 0 {
		return fmt.Errorf("slowSteps cannot be negative, got %d", c.SlowSteps)
	}
	if c.UpgradeDamageStep < 0 {
		return fmt.Errorf("upgradeDamageStep cannot be negative, got %d", c.UpgradeDamageStep)
	}
	return nil
}

func (c *GameConfig) inGrid(cell types.Cell) bool {
	return cell.Col >= 0 && cell.Col < c.Columns && cell.Row >= 0 && cell.Row < c.Rows
}

// nearGrid 格子在网格内或紧贴网格外一圈
func (c *GameConfig) nearGrid(cell types.Cell) bool {
	return cell.Col >= -1 && cell.Col <= c.Columns && cell.Row >= -1 && cell.Row <= c.Rows
}
