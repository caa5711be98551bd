package algo

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"topo-system/model"
)

// InterpolateSurface 把散乱地形样本插值到规则网格上，返回与网格同形的高程阵列
// 两遍算法:
//  1. 平滑遍: 在 Delaunay 三角网上做分片三次插值，样本凸包外的节点先记为 NaN
//  2. 回退遍: 对仍是 NaN 的节点取平面距离最近样本的高程
// 第二遍保证输出网格完全饱和 (没有一个 NaN)，代价是凸包外牺牲平滑性
// 样本恰好落在网格节点上时输出等于样本高程
func InterpolateSurface(samples []model.SurveyPoint, grid *Grid) ([][]float64, error) {
	if len(samples) == 0 {
		return nil, ErrNoSurveyPoints
	}

	pts := make([]TriPoint, len(samples))
	for i, s := range samples {
		pts[i] = TriPoint{X: s.Northing, Y: s.Easting, Z: s.Elevation}
	}
	tri := Triangulate(pts)
	grads := estimateGradients(tri)

	res := grid.Resolution
	z := make([][]float64, res)
	for i := range z {
		z[i] = make([]float64, res)
		for j := range z[i] {
			z[i][j] = math.NaN()
		}
	}

	// 第一遍: 三角网覆盖到的节点做三次插值
	// 样本不足三个或全部共线时三角网为空，这一遍什么都不做
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			if k, w := tri.Locate(grid.X[i][j], grid.Y[i][j]); k >= 0 {
				z[i][j] = tri.evalCubic(k, w, grads)
			}
		}
	}

	// 第二遍: 补洞
	fillNearest(samples, grid, z)
	return z, nil
}

// estimateGradients 估计每个顶点处曲面的平面梯度 (dz/dx, dz/dy)
// 对顶点的三角网邻域做一次过顶点的最小二乘平面拟合:
//   dz_j = gx*(x_j-x_i) + gy*(y_j-y_i)
// 邻居不足两个或邻域退化 (共线) 时梯度按零处理，局部退化成线性插值
func estimateGradients(t *Triangulation) [][2]float64 {
	grads := make([][2]float64, len(t.Points))
	for i, nbs := range t.Neighbors() {
		if len(nbs) < 2 {
			continue
		}
		p := t.Points[i]
		a := mat.NewDense(len(nbs), 2, nil)
		rhs := mat.NewDense(len(nbs), 1, nil)
		for r, j := range nbs {
			q := t.Points[j]
			a.Set(r, 0, q.X-p.X)
			a.Set(r, 1, q.Y-p.Y)
			rhs.Set(r, 0, q.Z-p.Z)
		}
		var sol mat.Dense
		if err := sol.Solve(a, rhs); err != nil {
			continue
		}
		grads[i] = [2]float64{sol.At(0, 0), sol.At(1, 0)}
	}
	return grads
}

// 重心坐标非常接近某个顶点时直接取样本高程，保证采样点处零误差
const snapEps = 1e-12

// evalCubic 在第 k 个三角形内按重心坐标 w 求三次 Bezier 三角曲面的值
// 控制纵标由顶点高程和顶点梯度决定:
// 角点取样本高程，边上的控制点沿顶点切平面外推三分之一边长，
// 中心控制点按二次提升规则抬高，保证曲面在顶点处既过样本又贴合梯度
func (t *Triangulation) evalCubic(k int, w [3]float64, grads [][2]float64) float64 {
	tri := t.Triangles[k]
	p0, p1, p2 := t.Points[tri[0]], t.Points[tri[1]], t.Points[tri[2]]
	g0, g1, g2 := grads[tri[0]], grads[tri[1]], grads[tri[2]]

	if w[0] >= 1-snapEps {
		return p0.Z
	}
	if w[1] >= 1-snapEps {
		return p1.Z
	}
	if w[2] >= 1-snapEps {
		return p2.Z
	}

	// 沿切平面外推: b = z + (g·(q-p))/3
	ext := func(z float64, g [2]float64, px, py, qx, qy float64) float64 {
		return z + (g[0]*(qx-px)+g[1]*(qy-py))/3
	}
	b300 := p0.Z
	b030 := p1.Z
	b003 := p2.Z
	b210 := ext(p0.Z, g0, p0.X, p0.Y, p1.X, p1.Y)
	b120 := ext(p1.Z, g1, p1.X, p1.Y, p0.X, p0.Y)
	b021 := ext(p1.Z, g1, p1.X, p1.Y, p2.X, p2.Y)
	b012 := ext(p2.Z, g2, p2.X, p2.Y, p1.X, p1.Y)
	b102 := ext(p2.Z, g2, p2.X, p2.Y, p0.X, p0.Y)
	b201 := ext(p0.Z, g0, p0.X, p0.Y, p2.X, p2.Y)

	// 中心纵标: E 为六个边纵标的均值，V 为三个角纵标的均值
	e := (b210 + b120 + b021 + b012 + b102 + b201) / 6
	v := (b300 + b030 + b003) / 3
	b111 := e + (e-v)/2

	u0, u1, u2 := w[0], w[1], w[2]
	return u0*u0*u0*b300 + u1*u1*u1*b030 + u2*u2*u2*b003 +
		3*u0*u0*u1*b210 + 3*u0*u1*u1*b120 +
		3*u1*u1*u2*b021 + 3*u1*u2*u2*b012 +
		3*u0*u2*u2*b102 + 3*u0*u0*u2*b201 +
		6*u0*u1*u2*b111
}

// fillNearest 把仍未定义的网格节点填成平面距离最近样本的高程
// 距离相同的平局保留输入顺序靠前的样本 (严格小于比较)
func fillNearest(samples []model.SurveyPoint, grid *Grid, z [][]float64) {
	for i := range z {
		for j := range z[i] {
			if !math.IsNaN(z[i][j]) {
				continue
			}
			gx, gy := grid.X[i][j], grid.Y[i][j]
			best, bestD := 0, math.Inf(1)
			for k, s := range samples {
				dx, dy := s.Northing-gx, s.Easting-gy
				if d := dx*dx + dy*dy; d < bestD {
					bestD, best = d, k
				}
			}
			z[i][j] = samples[best].Elevation
		}
	}
}
