package algo

import "topo-system/model"

// 各项计算的默认参数 (与原始数据处理流程保持一致)
const (
	DefaultResolution   = 50  // 网格每边的节点数
	DefaultSag          = 1.0 // 管线中点下垂量 (米)
	DefaultCurveSamples = 50  // 管线曲线采样点数
)

// Grid 覆盖测量点包围盒的规则采样网格
// X[i][j] 沿第一维变化 (northing)，Y[i][j] 沿第二维变化 (easting)，
// 与 numpy mgrid 的排布一致，前端可以直接喂给 Plotly 的 Surface
type Grid struct {
	Resolution int
	MinN, MaxN float64 // northing 范围
	MinE, MaxE float64 // easting 范围
	X, Y       [][]float64
}

// BuildGrid 根据地形样本的包围盒生成 resolution x resolution 的规则网格
// 网格边界取样本坐标的最小/最大值，首尾节点正好落在包围盒边上
// 某一轴上所有样本坐标相同时该轴跨度为零，网格在该方向退化成一条线，
// 允许生成 (插值会整体退化到最近邻回退)
func BuildGrid(samples []model.SurveyPoint, resolution int) (*Grid, error) {
	if resolution < 1 {
		return nil, ErrResolution
	}
	if len(samples) == 0 {
		return nil, ErrNoSurveyPoints
	}

	minN, maxN := samples[0].Northing, samples[0].Northing
	minE, maxE := samples[0].Easting, samples[0].Easting
	for _, p := range samples[1:] {
		if p.Northing < minN {
			minN = p.Northing
		}
		if p.Northing > maxN {
			maxN = p.Northing
		}
		if p.Easting < minE {
			minE = p.Easting
		}
		if p.Easting > maxE {
			maxE = p.Easting
		}
	}

	// resolution == 1 时步长为 0，唯一的节点落在包围盒的最小角上
	stepN, stepE := 0.0, 0.0
	if resolution > 1 {
		stepN = (maxN - minN) / float64(resolution-1)
		stepE = (maxE - minE) / float64(resolution-1)
	}

	g := &Grid{
		Resolution: resolution,
		MinN:       minN,
		MaxN:       maxN,
		MinE:       minE,
		MaxE:       maxE,
		X:          make([][]float64, resolution),
		Y:          make([][]float64, resolution),
	}
	for i := 0; i < resolution; i++ {
		g.X[i] = make([]float64, resolution)
		g.Y[i] = make([]float64, resolution)
		n := minN + float64(i)*stepN
		for j := 0; j < resolution; j++ {
			g.X[i][j] = n
			g.Y[i][j] = minE + float64(j)*stepE
		}
	}
	return g, nil
}
