package components

// CollisionComponent 定义实体的轴对齐边界框
// 用于射程判定、投射物命中与"是否仍在网格内"的检测
type CollisionComponent struct {
	Width  float64 // 边界框宽度（像素）
	Height float64 // 边界框高度（像素）
}

// Bounds 返回以 (x, y) 为中心的边界框 (minX, minY, maxX, maxY)
func (c *CollisionComponent) Bounds(x, y float64) (float64, float64, float64, float64) {
	hw, hh := c.Width/2, c.Height/2
	return x - hw, y - hh, x + hw, y + hh
}
