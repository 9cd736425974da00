package level

import (
	"math"

	"github.com/decker502/towerdefense/pkg/types"
)

// StandardWaves 标准关卡的波次数
const StandardWaves = 20

// StandardLevel 内置的 20 波标准关卡
//
//   - 第 1、2 波：固定的少量普通敌人
//   - 第 3-9 波：2n 个普通敌人分布在 40√n 个 tick 内
//   - 第 10 波：两组普通敌人中间隔 100 个 tick，最后是重型敌人
//   - 第 11-20 波：大量普通敌人，之后出现一个高级敌人
type StandardLevel struct{}

// NewStandardLevel 创建标准关卡
func NewStandardLevel() *StandardLevel {
	return &StandardLevel{}
}

// Waves 实现 Level 接口
func (l *StandardLevel) Waves() int {
	return StandardWaves
}

// Wave 实现 Level 接口
func (l *StandardLevel) Wave(n int) ([]types.WaveEntry, error) {
	if err := checkWave(l, n); err != nil {
		return nil, err
	}

	switch {
	case n == 1:
		return []types.WaveEntry{{Step: 10, Enemy: types.EnemySimple}}, nil

	case n == 2:
		return []types.WaveEntry{
			{Step: 10, Enemy: types.EnemySimple},
			{Step: 15, Enemy: types.EnemySimple},
			{Step: 30, Enemy: types.EnemySimple},
		}, nil

	case n < 10:
		steps := int(40 * math.Sqrt(float64(n)))
		return GenerateSubWaves([]SubWave{{Steps: steps, Count: n * 2, Enemy: types.EnemySimple}}), nil

	case n == 10:
		return GenerateSubWaves([]SubWave{
			{Steps: 50, Count: 10, Enemy: types.EnemySimple},
			{Steps: 100},
			{Steps: 50, Count: 10, Enemy: types.EnemySimple},
			{Steps: 50, Count: 5, Enemy: types.EnemyBig},
		}), nil
	}

	// 后期波次：敌人数量随波次超线性增长
	w := float64(n)
	return GenerateSubWaves([]SubWave{
		{Steps: 13 * n, Count: int(25 * math.Pow(w, w/50)), Enemy: types.EnemySimple},
		{Steps: 50, Count: 1, Enemy: types.EnemyAdvance},
	}), nil
}
