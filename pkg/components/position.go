package components

// PositionComponent 实体中心的像素坐标
// 敌人移动后坐标总是整数像素
type PositionComponent struct {
	X float64
	Y float64
}
