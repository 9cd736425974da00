package components

import "github.com/decker502/towerdefense/pkg/types"

// MovementComponent 敌人的网格移动参数
type MovementComponent struct {
	// GridSpeed 每 tick 移动的格数（可为小数）
	GridSpeed float64
	// Heading 最近一次使用的流场方向
	// 敌人位于网格外且不在流场中时沿此方向继续前进
	Heading types.Delta
}
