package algo

// 垂直夸张: 展示前按系数放大高程，让平缓地形的起伏在图上可辨
// 只在输出边界使用，存储的原始高程、插值和最近邻判定一概不受影响

// ExaggerateValue 单个高程值乘以夸张系数
func ExaggerateValue(z, factor float64) float64 {
	return z * factor
}

// ExaggerateSlice 返回放大后的新切片，输入保持原样
func ExaggerateSlice(zs []float64, factor float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = z * factor
	}
	return out
}

// ExaggerateGrid 返回放大后的新二维阵列，输入保持原样
func ExaggerateGrid(zz [][]float64, factor float64) [][]float64 {
	out := make([][]float64, len(zz))
	for i, row := range zz {
		out[i] = ExaggerateSlice(row, factor)
	}
	return out
}
