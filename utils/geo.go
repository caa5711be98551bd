package utils

import (
	"math"
	"topo-system/model"
)

// PlanarDistance 计算投影平面内两点间的欧氏距离 (米)
// 测量数据使用的 northing/easting 已经是投影坐标（单位米），
// 直接用勾股定理即可，不需要做球面换算
func PlanarDistance(p1, p2 model.PointXY) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Lerp 线性插值: t=0 返回 a, t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
