package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/towerdefense/pkg/types"
)

func TestLoadGameConfig_DataFile(t *testing.T) {
	config, err := LoadGameConfig("../../data/game.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}

	if config.Columns != 6 || config.Rows != 6 || config.CellSize != 60 {
		t.Errorf("unexpected geometry %dx%d@%d", config.Columns, config.Rows, config.CellSize)
	}
	if *config.Start != (types.Cell{Col: -1, Row: 3}) {
		t.Errorf("start = %v", *config.Start)
	}
	if config.InitialCoins != 50 || config.InitialLives != 20 {
		t.Errorf("economy = %d coins, %d lives", config.InitialCoins, config.InitialLives)
	}
}

func TestParseGameConfig_Defaults(t *testing.T) {
	config, err := ParseGameConfig([]byte("columns: 8\nrows: 4\n"))
	if err != nil {
		t.Fatalf("ParseGameConfig failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"默认格子尺寸", config.CellSize, 60},
		{"默认入口在左侧中间", *config.Start, types.Cell{Col: -1, Row: 2}},
		{"默认终点在右侧中间", *config.Goal, types.Cell{Col: 8, Row: 2}},
		{"默认向右离场", *config.ExitDelta, types.Delta{DX: 1}},
		{"默认出售比例", config.SellRatio, 0.8},
		{"默认最大波次", config.MaxWave, 20},
		{"默认伤害升级", config.UpgradeDamageStep, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestParseGameConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"格子过小", "cellSize: 1\n", "cellSize"},
		{"入口与终点重合", "start: {col: 6, row: 3}\ngoal: {col: 6, row: 3}\n", "must differ"},
		{"离场方向非单位向量", "exitDelta: {dx: 1, dy: 1}\n", "unit axis"},
		{"离场方向回到网格", "exitDelta: {dx: -1, dy: 0}\n", "lead out of the grid"},
		{"入口远离网格", "start: {col: -3, row: 0}\n", "start"},
		{"障碍物在网格外", "obstacles: [{col: 9, row: 0}]\n", "obstacles[0]"},
		{"出售比例越界", "sellRatio: 1.5\n", "sellRatio"},
		{"减速倍率越界", "slowMultiplier: 2\n", "slowMultiplier"},
		{"YAML 语法错误", "columns: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadGameConfig_MissingFile(t *testing.T) {
	_, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestLoadGameConfig_FromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	content := "columns: 5\nrows: 1\nstart: {col: 0, row: 0}\ngoal: {col: 4, row: 0}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	config, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("LoadGameConfig failed: %v", err)
	}
	if config.Goal.Col != 4 {
		t.Errorf("goal = %v", *config.Goal)
	}
}
