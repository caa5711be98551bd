package utils

import (
	"math"
	"testing"

	"topo-system/model"
)

func TestPlanarDistance(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 model.PointXY
		want   float64
	}{
		{"勾股 3-4-5", model.PointXY{X: 0, Y: 0}, model.PointXY{X: 3, Y: 4}, 5},
		{"同一点", model.PointXY{X: 7, Y: 7}, model.PointXY{X: 7, Y: 7}, 0},
		{"沿单轴", model.PointXY{X: 10, Y: 5}, model.PointXY{X: 10, Y: 105}, 100},
		{"负坐标", model.PointXY{X: -3, Y: -4}, model.PointXY{X: 0, Y: 0}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PlanarDistance(c.p1, c.p2)
			if math.Abs(got-c.want) > 1e-12 {
				t.Fatalf("PlanarDistance = %v, 期望 %v", got, c.want)
			}
			// 距离对调两点不变
			if rev := PlanarDistance(c.p2, c.p1); rev != got {
				t.Fatalf("距离不对称: %v vs %v", got, rev)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0); got != 10 {
		t.Fatalf("Lerp(10,20,0) = %v", got)
	}
	if got := Lerp(10, 20, 1); got != 20 {
		t.Fatalf("Lerp(10,20,1) = %v", got)
	}
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Fatalf("Lerp(10,20,0.5) = %v", got)
	}
	if got := Lerp(5, -5, 0.25); got != 2.5 {
		t.Fatalf("Lerp(5,-5,0.25) = %v", got)
	}
}
