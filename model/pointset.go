package model

import "errors"

// 上传入库时的站点校验错误
var (
	ErrStationCount  = errors.New("供水站点数量必须是 0 个或成对的 2 个")
	ErrStationLabels = errors.New("供水站点标签必须恰好是 A 和 B 各一个")
)

// PointSet 装配好的点集: 地形样本加上可选的管线站点对
// 装配完成后不再修改，可以被多个请求并发读取
type PointSet struct {
	All      []SurveyPoint // 全部原始记录，保持输入顺序
	Samples  []SurveyPoint // 地形样本 (source == topo_survey)，保持输入顺序
	StationA *SurveyPoint  // 站点 A，缺失或不合法时为 nil
	StationB *SurveyPoint  // 站点 B，缺失或不合法时为 nil
}

// BuildPointSet 从原始记录装配点集
// 站点不合法时 (数量不是两个、标签缺失或重复) 只是没有站点对，
// 地形样本照常可用: 管线计算被跳过，而不是整体失败
func BuildPointSet(points []SurveyPoint) *PointSet {
	ps := &PointSet{All: points}
	var stations []SurveyPoint
	for _, p := range points {
		switch p.Source {
		case SourceTopoSurvey:
			ps.Samples = append(ps.Samples, p)
		case SourceWaterDist:
			stations = append(stations, p)
		}
	}

	// 恰好两个站点、标签一个 A 一个 B 时才认定站点对
	if len(stations) == 2 {
		var a, b *SurveyPoint
		for i := range stations {
			switch stations[i].Station {
			case StationA:
				a = &stations[i]
			case StationB:
				b = &stations[i]
			}
		}
		if a != nil && b != nil {
			ps.StationA, ps.StationB = a, b
		}
	}
	return ps
}

// Stations 返回站点对 (A, B)，没有合法站点对时 ok 为 false
func (ps *PointSet) Stations() (a, b SurveyPoint, ok bool) {
	if ps.StationA == nil || ps.StationB == nil {
		return SurveyPoint{}, SurveyPoint{}, false
	}
	return *ps.StationA, *ps.StationB, true
}

// HasAlignment 是否存在合法的管线站点对
func (ps *PointSet) HasAlignment() bool {
	return ps.StationA != nil && ps.StationB != nil
}

// ElevationRange 地形样本的高程范围，样本为空时 ok 为 false
func (ps *PointSet) ElevationRange() (min, max float64, ok bool) {
	if len(ps.Samples) == 0 {
		return 0, 0, false
	}
	min, max = ps.Samples[0].Elevation, ps.Samples[0].Elevation
	for _, p := range ps.Samples[1:] {
		if p.Elevation < min {
			min = p.Elevation
		}
		if p.Elevation > max {
			max = p.Elevation
		}
	}
	return min, max, true
}

// ValidateStations 上传入库前的严格校验
// 读取已有数据时走宽松的 BuildPointSet，新数据入库则必须干净:
// water_dist 点要么没有，要么恰好两个且标签分别为 A 和 B
func ValidateStations(points []SurveyPoint) error {
	var stations []SurveyPoint
	for _, p := range points {
		if p.Source == SourceWaterDist {
			stations = append(stations, p)
		}
	}
	if len(stations) == 0 {
		return nil
	}
	if len(stations) != 2 {
		return ErrStationCount
	}
	seenA, seenB := false, false
	for _, s := range stations {
		switch s.Station {
		case StationA:
			seenA = true
		case StationB:
			seenB = true
		}
	}
	if !seenA || !seenB {
		return ErrStationLabels
	}
	return nil
}
