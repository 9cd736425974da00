package utils

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"零", 0, 0},
		{"π 保持不变", math.Pi, math.Pi},
		{"-π 归一到 π", -math.Pi, math.Pi},
		{"3π/2 归一到 -π/2", 3 * math.Pi / 2, -math.Pi / 2},
		{"-5π/2 归一到 -π/2", -5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateToward(t *testing.T) {
	tests := []struct {
		name        string
		current     float64
		target      float64
		step        float64
		wantAngle   float64
		wantReached bool
	}{
		{"差值小于步长直接对准", 0, 0.1, math.Pi / 6, 0.1, true},
		{"正向旋转一步", 0, math.Pi / 2, math.Pi / 6, math.Pi / 6, false},
		{"反向旋转一步", 0, -math.Pi / 2, math.Pi / 6, -math.Pi / 6, false},
		{"跨越 ±π 走短边", 5 * math.Pi / 6, -5 * math.Pi / 6, math.Pi / 6, math.Pi, false},
		{"恰好等于步长", 0, math.Pi / 3, math.Pi / 3, math.Pi / 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reached := RotateToward(tt.current, tt.target, tt.step)
			if reached != tt.wantReached {
				t.Errorf("reached = %v, want %v", reached, tt.wantReached)
			}
			if math.Abs(NormalizeAngle(got-tt.wantAngle)) > 1e-9 {
				t.Errorf("angle = %v, want %v", got, tt.wantAngle)
			}
		})
	}
}

func TestAngleBetween(t *testing.T) {
	if got := AngleBetween(0, 0, 0, 10); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("y 轴向下应为 π/2, got %v", got)
	}
	if got := AngleBetween(5, 5, -5, 5); math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("向左应为 π, got %v", got)
	}
}

func TestRectanglesIntersect(t *testing.T) {
	if !RectanglesIntersect(0, 0, 10, 10, 10, 0, 10, 10) {
		t.Error("边缘接触应视为相交")
	}
	if RectanglesIntersect(0, 0, 10, 10, 11, 0, 10, 10) {
		t.Error("分离的矩形不应相交")
	}
}
