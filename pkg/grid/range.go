package grid

import "math"

// Range 塔的射程形状
// 所有坐标以塔中心为原点、以格为单位
type Range interface {
	// ContainsPoint 点是否在射程内
	ContainsPoint(x, y float64) bool
	// IntersectsBox 轴对齐矩形 [minX,maxX]×[minY,maxY] 是否与射程相交
	IntersectsBox(minX, minY, maxX, maxY float64) bool
	// OuterRadius 射程外接圆半径，用于渲染
	OuterRadius() float64
}

// CircularRange 圆形射程
type CircularRange struct {
	Radius float64
}

func (r CircularRange) ContainsPoint(x, y float64) bool {
	return x*x+y*y <= r.Radius*r.Radius
}

func (r CircularRange) IntersectsBox(minX, minY, maxX, maxY float64) bool {
	near := nearestDistanceSq(minX, minY, maxX, maxY)
	return near <= r.Radius*r.Radius
}

func (r CircularRange) OuterRadius() float64 { return r.Radius }

// DonutRange 环形射程：Inner < 距离 <= Outer
type DonutRange struct {
	Inner float64
	Outer float64
}

func (r DonutRange) ContainsPoint(x, y float64) bool {
	d := x*x + y*y
	return d > r.Inner*r.Inner && d <= r.Outer*r.Outer
}

// IntersectsBox 矩形连通，其上距离取值为 [near, far]，与 (Inner, Outer] 有交集即相交
func (r DonutRange) IntersectsBox(minX, minY, maxX, maxY float64) bool {
	near := nearestDistanceSq(minX, minY, maxX, maxY)
	far := farthestDistanceSq(minX, minY, maxX, maxY)
	return near <= r.Outer*r.Outer && far > r.Inner*r.Inner
}

func (r DonutRange) OuterRadius() float64 { return r.Outer }

// PlusRange 十字射程：横臂 |x|<=Outer,|y|<=Inner 与竖臂 |x|<=Inner,|y|<=Outer 的并集
type PlusRange struct {
	Inner float64
	Outer float64
}

func (r PlusRange) ContainsPoint(x, y float64) bool {
	x, y = math.Abs(x), math.Abs(y)
	if x < y {
		x, y = y, x
	}
	return y <= r.Inner && x <= r.Outer
}

func (r PlusRange) IntersectsBox(minX, minY, maxX, maxY float64) bool {
	horizontal := intervalsOverlap(minX, maxX, -r.Outer, r.Outer) && intervalsOverlap(minY, maxY, -r.Inner, r.Inner)
	vertical := intervalsOverlap(minX, maxX, -r.Inner, r.Inner) && intervalsOverlap(minY, maxY, -r.Outer, r.Outer)
	return horizontal || vertical
}

func (r PlusRange) OuterRadius() float64 { return r.Outer }

func intervalsOverlap(a1, a2, b1, b2 float64) bool {
	return a1 <= b2 && b1 <= a2
}

// nearestDistanceSq 矩形上离原点最近点的距离平方
func nearestDistanceSq(minX, minY, maxX, maxY float64) float64 {
	dx := clampToInterval(0, minX, maxX)
	dy := clampToInterval(0, minY, maxY)
	return dx*dx + dy*dy
}

// farthestDistanceSq 矩形上离原点最远点（某个角）的距离平方
func farthestDistanceSq(minX, minY, maxX, maxY float64) float64 {
	dx := math.Max(math.Abs(minX), math.Abs(maxX))
	dy := math.Max(math.Abs(minY), math.Abs(maxY))
	return dx*dx + dy*dy
}

func clampToInterval(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
