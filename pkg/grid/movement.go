package grid

import "github.com/decker502/towerdefense/pkg/types"

// DeltaThroughCentre 返回本次子步的移动方向（单位：格）
//
// 敌人只在格子中心转向：若偏移落在与 delta 垂直的轴上，先沿该轴回到中心线；
// 否则直接沿 delta 前进。
func DeltaThroughCentre(offsetX, offsetY float64, delta types.Delta) (float64, float64) {
	if delta.DX != 0 && offsetY != 0 {
		return 0, -sign(offsetY)
	}
	if delta.DY != 0 && offsetX != 0 {
		return -sign(offsetX), 0
	}
	return float64(delta.DX), float64(delta.DY)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
