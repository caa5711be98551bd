package algo

import (
	"topo-system/model"
	"topo-system/utils"
)

// AlignmentProfile 两个供水站点之间的管线纵断面
// PathX/PathY/PathZ 等长，按参数 t 从站点 A (t=0) 单调走到站点 B (t=1)
type AlignmentProfile struct {
	Distance     float64   // 平面距离 (米)
	SlopePercent float64   // 坡度百分比，B 比 A 高时为正
	PathX        []float64 // northing 序列
	PathY        []float64 // easting 序列
	PathZ        []float64 // 高程序列 (已含下垂)
}

// StationMetrics 计算站点对的平面距离和坡度百分比 (B 相对 A 的高差 / 平面距离)
// 两站点平面位置重合时坡度无定义，返回 ErrStationsCoincide
func StationMetrics(a, b model.SurveyPoint) (distance, slopePercent float64, err error) {
	distance = utils.PlanarDistance(a.PlanePos(), b.PlanePos())
	if distance == 0 {
		return 0, 0, ErrStationsCoincide
	}
	slopePercent = (b.Elevation - a.Elevation) / distance * 100
	return distance, slopePercent, nil
}

// BuildAlignmentProfile 计算站点 A 到 B 的管线纵断面
// 平面坐标在两站点之间线性插值，高程走一条二次 Bezier 曲线:
//   z(t) = (1-t)^2*zA + 2(1-t)t*zMid + t^2*zB,  zMid = (zA+zB)/2 - sag
// 两端高程精确等于站点高程，中段向下弯出 sag 控制的"下垂"，
// 模拟管道自重下的悬垂形态; sag 为 0 时退化成直线
func BuildAlignmentProfile(a, b model.SurveyPoint, sag float64, samples int) (*AlignmentProfile, error) {
	if samples < 2 {
		return nil, ErrCurveSamples
	}
	distance, slope, err := StationMetrics(a, b)
	if err != nil {
		return nil, err
	}

	p := &AlignmentProfile{
		Distance:     distance,
		SlopePercent: slope,
		PathX:        make([]float64, samples),
		PathY:        make([]float64, samples),
		PathZ:        make([]float64, samples),
	}
	zMid := (a.Elevation+b.Elevation)/2 - sag
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		p.PathX[i] = utils.Lerp(a.Northing, b.Northing, t)
		p.PathY[i] = utils.Lerp(a.Easting, b.Easting, t)
		p.PathZ[i] = quadBezier(a.Elevation, zMid, b.Elevation, t)
	}
	return p, nil
}

// quadBezier 一维二次 Bezier: (1-t)^2*p0 + 2(1-t)t*p1 + t^2*p2
func quadBezier(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}
