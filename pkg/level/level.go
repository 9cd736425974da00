// Package level 生成波次时间线
//
// 关卡只负责回答"第 n 波有哪些敌人、在第几个 tick 出现"，
// 时间线交给 Simulation.QueueWave 排队执行。
package level

import (
	"errors"
	"fmt"

	"github.com/decker502/towerdefense/pkg/types"
)

// ErrNoSuchWave 请求的波次超出关卡范围
var ErrNoSuchWave = errors.New("no such wave")

// Level 关卡：固定数量的波次，波次编号从 1 开始
type Level interface {
	// Waves 返回波次总数
	Waves() int
	// Wave 返回第 n 波的时间线，按 tick 升序
	Wave(n int) ([]types.WaveEntry, error)
}

// SubWave 子波段：在 Steps 个 tick 内均匀生成 Count 个敌人
// Count 为 0 表示空闲间隔
type SubWave struct {
	Steps int
	Count int
	Enemy types.EnemyType
}

// GenerateIntervals 把 count 个敌人均匀分布在 steps 个 tick 内
// 第 i 个敌人出现在 floor(i * steps / count)
func GenerateIntervals(steps, count int) []int {
	if count <= 0 {
		return nil
	}
	result := make([]int, count)
	for i := range result {
		result[i] = i * steps / count
	}
	return result
}

// GenerateSubWaves 依次拼接子波段，每个子波段从前一个结束的 tick 开始
func GenerateSubWaves(subWaves []SubWave) []types.WaveEntry {
	var entries []types.WaveEntry
	offset := 0
	for _, sub := range subWaves {
		for _, step := range GenerateIntervals(sub.Steps, sub.Count) {
			entries = append(entries, types.WaveEntry{Step: offset + step, Enemy: sub.Enemy})
		}
		offset += sub.Steps
	}
	return entries
}

func checkWave(l Level, n int) error {
	if n < 1 || n > l.Waves() {
		return fmt.Errorf("wave %d of %d: %w", n, l.Waves(), ErrNoSuchWave)
	}
	return nil
}
