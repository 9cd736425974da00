package utils

import "math"

// 角度工具：弧度制，屏幕坐标系（y 轴向下）

// angleEpsilon 角度比较的容差，吸收多次累加 maxStep 产生的浮点误差
const angleEpsilon = 1e-9

// NormalizeAngle 将角度规范到 (-π, π]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleBetween 返回从 (x1, y1) 指向 (x2, y2) 的角度
func AngleBetween(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// RotateToward 将 current 朝 target 旋转，单次最多转 maxStep
//
// 返回：
//   - float64: 旋转后的角度（已规范化）
//   - bool: 是否已对准目标
func RotateToward(current, target, maxStep float64) (float64, bool) {
	target = NormalizeAngle(target)
	diff := NormalizeAngle(target - current)
	if math.Abs(diff) <= maxStep+angleEpsilon {
		return target, true
	}
	if diff > 0 {
		return NormalizeAngle(current + maxStep), false
	}
	return NormalizeAngle(current - maxStep), false
}

// PolarToRectangular 极坐标转直角坐标
func PolarToRectangular(length, angle float64) (float64, float64) {
	return length * math.Cos(angle), length * math.Sin(angle)
}

// Distance 两点间欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// RectanglesIntersect 两个轴对齐矩形是否相交（闭区间）
// 矩形以中心点和宽高描述
func RectanglesIntersect(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return math.Abs(x1-x2)*2 <= w1+w2 && math.Abs(y1-y2)*2 <= h1+h2
}
