package utils

import (
	"math"
	"testing"
)

func TestEaseInQuad(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"起点", 0, 0},
		{"中点", 0.5, 0.25},
		{"终点", 1, 1},
		{"超出上限", 1.5, 1},
		{"低于下限", -0.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EaseInQuad(tt.input); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EaseInQuad(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	// 浮字淡出前半段应比线性慢
	for p := 0.1; p < 1.0; p += 0.1 {
		if EaseInQuad(p) >= p {
			t.Errorf("EaseInQuad(%v) = %v should stay below linear", p, EaseInQuad(p))
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 255, 0, 0},
		{0, 255, 1, 255},
		{100, 200, 0.5, 150},
		{200, 100, 0.25, 175},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}
