package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func topoPoint(n, e, z float64) SurveyPoint {
	return SurveyPoint{Northing: n, Easting: e, Elevation: z, Source: SourceTopoSurvey}
}

func waterPoint(label string, n, e, z float64) SurveyPoint {
	return SurveyPoint{Northing: n, Easting: e, Elevation: z, Source: SourceWaterDist, Station: label}
}

func TestBuildPointSetSplitsSources(t *testing.T) {
	points := []SurveyPoint{
		topoPoint(1, 1, 95),
		waterPoint("A", 0, 0, 92),
		topoPoint(2, 2, 96),
		waterPoint("B", 10, 10, 100),
		{Northing: 3, Easting: 3, Source: "unknown_source"},
	}
	ps := BuildPointSet(points)

	if len(ps.All) != 5 {
		t.Fatalf("All 长度 = %d, 期望 5", len(ps.All))
	}
	// 地形样本只含 topo_survey，保持输入顺序；未知来源被忽略
	want := []SurveyPoint{topoPoint(1, 1, 95), topoPoint(2, 2, 96)}
	if d := cmp.Diff(want, ps.Samples); d != "" {
		t.Error(d)
	}

	a, b, ok := ps.Stations()
	if !ok {
		t.Fatal("应当识别出站点对")
	}
	if a.Station != StationA || a.Elevation != 92 {
		t.Fatalf("站点 A 错误: %+v", a)
	}
	if b.Station != StationB || b.Elevation != 100 {
		t.Fatalf("站点 B 错误: %+v", b)
	}
}

func TestBuildPointSetStationRules(t *testing.T) {
	cases := []struct {
		name     string
		stations []SurveyPoint
		want     bool
	}{
		{"无站点", nil, false},
		{"只有一个站点", []SurveyPoint{waterPoint("A", 0, 0, 92)}, false},
		{"成对站点", []SurveyPoint{waterPoint("A", 0, 0, 92), waterPoint("B", 1, 1, 100)}, true},
		{"顺序颠倒", []SurveyPoint{waterPoint("B", 1, 1, 100), waterPoint("A", 0, 0, 92)}, true},
		{"标签重复", []SurveyPoint{waterPoint("A", 0, 0, 92), waterPoint("A", 1, 1, 100)}, false},
		{"标签非法", []SurveyPoint{waterPoint("A", 0, 0, 92), waterPoint("C", 1, 1, 100)}, false},
		{"三个站点", []SurveyPoint{waterPoint("A", 0, 0, 92), waterPoint("B", 1, 1, 100), waterPoint("B", 2, 2, 101)}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			points := append([]SurveyPoint{topoPoint(0, 0, 95)}, c.stations...)
			ps := BuildPointSet(points)
			if ps.HasAlignment() != c.want {
				t.Fatalf("HasAlignment = %v, 期望 %v", ps.HasAlignment(), c.want)
			}
			// 站点不合法时地形样本照常可用
			if len(ps.Samples) != 1 {
				t.Fatalf("地形样本数 = %d, 期望 1", len(ps.Samples))
			}
		})
	}
}

func TestValidateStations(t *testing.T) {
	topo := topoPoint(0, 0, 95)

	cases := []struct {
		name    string
		points  []SurveyPoint
		wantErr error
	}{
		{"无站点合法", []SurveyPoint{topo}, nil},
		{"成对站点合法", []SurveyPoint{topo, waterPoint("A", 0, 0, 92), waterPoint("B", 1, 1, 100)}, nil},
		{"单个站点", []SurveyPoint{topo, waterPoint("A", 0, 0, 92)}, ErrStationCount},
		{"三个站点", []SurveyPoint{topo, waterPoint("A", 0, 0, 92), waterPoint("B", 1, 1, 100), waterPoint("A", 2, 2, 93)}, ErrStationCount},
		{"标签重复", []SurveyPoint{topo, waterPoint("B", 0, 0, 92), waterPoint("B", 1, 1, 100)}, ErrStationLabels},
		{"标签非法", []SurveyPoint{topo, waterPoint("X", 0, 0, 92), waterPoint("B", 1, 1, 100)}, ErrStationLabels},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateStations(c.points)
			if c.wantErr == nil && err != nil {
				t.Fatalf("err = %v, 期望 nil", err)
			}
			if c.wantErr != nil && !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, 期望 %v", err, c.wantErr)
			}
		})
	}
}

func TestElevationRange(t *testing.T) {
	ps := BuildPointSet([]SurveyPoint{
		topoPoint(0, 0, 95.5),
		topoPoint(1, 1, 88.2),
		topoPoint(2, 2, 104.7),
		// 站点高程不参与地形高程范围
		waterPoint("A", 3, 3, 200),
		waterPoint("B", 4, 4, 10),
	})

	min, max, ok := ps.ElevationRange()
	if !ok {
		t.Fatal("非空样本应返回 ok=true")
	}
	if min != 88.2 || max != 104.7 {
		t.Fatalf("高程范围 [%v, %v], 期望 [88.2, 104.7]", min, max)
	}

	empty := BuildPointSet(nil)
	if _, _, ok := empty.ElevationRange(); ok {
		t.Fatal("空样本应返回 ok=false")
	}
}
