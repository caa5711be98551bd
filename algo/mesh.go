package algo

import "topo-system/model"

// TerrainMesh 插值完成的地形网格，构建完成后只读，可被多个请求并发共享
type TerrainMesh struct {
	Resolution int
	MinN, MaxN float64
	MinE, MaxE float64
	X, Y, Z    [][]float64
}

// BuildTerrainMesh 地形重建的入口: 包围盒网格 + 两遍插值
// 任何一步失败都让整个地形构建失败，调用方不应拿部分结果去渲染
func BuildTerrainMesh(samples []model.SurveyPoint, resolution int) (*TerrainMesh, error) {
	grid, err := BuildGrid(samples, resolution)
	if err != nil {
		return nil, err
	}
	z, err := InterpolateSurface(samples, grid)
	if err != nil {
		return nil, err
	}
	return &TerrainMesh{
		Resolution: grid.Resolution,
		MinN:       grid.MinN,
		MaxN:       grid.MaxN,
		MinE:       grid.MinE,
		MaxE:       grid.MaxE,
		X:          grid.X,
		Y:          grid.Y,
		Z:          z,
	}, nil
}
