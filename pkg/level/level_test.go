package level

import (
	"errors"
	"slices"
	"testing"

	"github.com/decker502/towerdefense/pkg/config"
	"github.com/decker502/towerdefense/pkg/types"
)

func TestGenerateIntervals(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		count int
		want  []int
	}{
		{"整除", 50, 10, []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}},
		{"向下取整", 69, 6, []int{0, 11, 23, 34, 46, 57}},
		{"单个敌人", 50, 1, []int{0}},
		{"数量为零", 100, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateIntervals(tt.steps, tt.count); !slices.Equal(got, tt.want) {
				t.Errorf("GenerateIntervals(%d, %d) = %v, want %v", tt.steps, tt.count, got, tt.want)
			}
		})
	}
}

func TestGenerateSubWavesOffsets(t *testing.T) {
	entries := GenerateSubWaves([]SubWave{
		{Steps: 10, Count: 2, Enemy: types.EnemySimple},
		{Steps: 20},
		{Steps: 10, Count: 1, Enemy: types.EnemyBig},
	})

	want := []types.WaveEntry{
		{Step: 0, Enemy: types.EnemySimple},
		{Step: 5, Enemy: types.EnemySimple},
		{Step: 30, Enemy: types.EnemyBig},
	}
	if !slices.Equal(entries, want) {
		t.Errorf("entries = %v, want %v", entries, want)
	}
}

func TestStandardLevelWaves(t *testing.T) {
	l := NewStandardLevel()

	tests := []struct {
		name      string
		wave      int
		wantCount int
		wantLast  types.WaveEntry
	}{
		{"第1波", 1, 1, types.WaveEntry{Step: 10, Enemy: types.EnemySimple}},
		{"第2波", 2, 3, types.WaveEntry{Step: 30, Enemy: types.EnemySimple}},
		{"第3波", 3, 6, types.WaveEntry{Step: 57, Enemy: types.EnemySimple}},
		{"第10波", 10, 25, types.WaveEntry{Step: 240, Enemy: types.EnemyBig}},
		{"第11波", 11, 43, types.WaveEntry{Step: 143, Enemy: types.EnemyAdvance}},
		{"第20波", 20, 83, types.WaveEntry{Step: 260, Enemy: types.EnemyAdvance}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := l.Wave(tt.wave)
			if err != nil {
				t.Fatalf("Wave(%d): %v", tt.wave, err)
			}
			if len(entries) != tt.wantCount {
				t.Errorf("len = %d, want %d", len(entries), tt.wantCount)
			}
			if last := entries[len(entries)-1]; last != tt.wantLast {
				t.Errorf("last entry = %+v, want %+v", last, tt.wantLast)
			}
		})
	}
}

// TestStandardLevelSorted 所有波次的时间线都按 tick 升序且不为负
func TestStandardLevelSorted(t *testing.T) {
	l := NewStandardLevel()
	for n := 1; n <= l.Waves(); n++ {
		entries, err := l.Wave(n)
		if err != nil {
			t.Fatalf("Wave(%d): %v", n, err)
		}
		for i, e := range entries {
			if e.Step < 0 || (i > 0 && e.Step < entries[i-1].Step) {
				t.Fatalf("wave %d: entry %d out of order: %v", n, i, entries)
			}
		}
	}
}

func TestStandardLevelOutOfRange(t *testing.T) {
	l := NewStandardLevel()
	for _, n := range []int{0, 21} {
		if _, err := l.Wave(n); !errors.Is(err, ErrNoSuchWave) {
			t.Errorf("Wave(%d) err = %v, want ErrNoSuchWave", n, err)
		}
	}
}

func TestScriptedLevelFromFile(t *testing.T) {
	l, err := LoadScriptedLevel("../../data/levels/corridor.yaml")
	if err != nil {
		t.Fatalf("LoadScriptedLevel: %v", err)
	}
	if l.ID() != "corridor" || l.Waves() != 3 {
		t.Fatalf("got level %s with %d waves", l.ID(), l.Waves())
	}

	// Given 第 2 波：40 tick 内 5 个普通敌人，空闲 40 tick，然后 1 个重型敌人
	entries, err := l.Wave(2)
	if err != nil {
		t.Fatalf("Wave(2): %v", err)
	}
	want := []types.WaveEntry{
		{Step: 0, Enemy: types.EnemySimple},
		{Step: 8, Enemy: types.EnemySimple},
		{Step: 16, Enemy: types.EnemySimple},
		{Step: 24, Enemy: types.EnemySimple},
		{Step: 32, Enemy: types.EnemySimple},
		{Step: 80, Enemy: types.EnemyBig},
	}
	if !slices.Equal(entries, want) {
		t.Errorf("wave 2 = %v, want %v", entries, want)
	}
}

func TestScriptedLevelUnknownEnemy(t *testing.T) {
	cfg := &config.LevelConfig{
		ID: "broken",
		Waves: []config.WaveConfig{
			{SubWaves: []config.SubWaveConfig{{Steps: 10, Count: 1, Enemy: "dragon"}}},
		},
	}
	if _, err := NewScriptedLevel(cfg); err == nil {
		t.Error("expected error for unknown enemy type")
	}
}
