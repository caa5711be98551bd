package algo

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"topo-system/model"
)

// diff 比较期望值与实际值，不一致时输出差异报告
func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// assertNear 断言两个浮点数在容差内相等
func assertNear(t *testing.T, want, got, tol float64) {
	t.Helper()
	if math.Abs(want-got) > tol {
		t.Errorf("期望 %v, 实际 %v (容差 %v)", want, got, tol)
	}
}

// pt 构造一个地形测量点
func pt(n, e, z float64) model.SurveyPoint {
	return model.SurveyPoint{
		Northing:  n,
		Easting:   e,
		Elevation: z,
		Source:    model.SourceTopoSurvey,
	}
}

// station 构造一个供水站点
func station(label string, n, e, z float64) model.SurveyPoint {
	return model.SurveyPoint{
		Northing:  n,
		Easting:   e,
		Elevation: z,
		Source:    model.SourceWaterDist,
		Station:   label,
	}
}
