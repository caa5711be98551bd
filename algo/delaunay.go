package algo

import "math"

// TriPoint 参与三角剖分的一个样本点 (平面坐标 + 高程)
type TriPoint struct {
	X float64 // northing (米)
	Y float64 // easting (米)
	Z float64 // 高程 (米)
}

// Triangulation 平面 Delaunay 三角网 (TIN)
// Triangles 中保存的是顶点在 Points 里的下标
type Triangulation struct {
	Points    []TriPoint
	Triangles [][3]int
}

// workTri 内部工作三角形，缓存外接圆参数避免重复计算
type workTri struct {
	a, b, c  int
	ccX, ccY float64 // 外接圆圆心
	rr       float64 // 外接圆半径的平方
}

// Triangulate 对样本点做 Delaunay 三角剖分 (Bowyer-Watson 逐点插入法)
// 平面位置重复的点只保留首次出现的那一个
// 去重后不足三个点、或全部共线时返回空三角网，调用方应整体退化到最近邻回退
func Triangulate(points []TriPoint) *Triangulation {
	// 1. 平面位置去重，保留先出现的样本
	seen := make(map[[2]float64]bool, len(points))
	pts := make([]TriPoint, 0, len(points))
	for _, p := range points {
		key := [2]float64{p.X, p.Y}
		if seen[key] {
			continue
		}
		seen[key] = true
		pts = append(pts, p)
	}

	t := &Triangulation{Points: pts}
	n := len(pts)
	if n < 3 {
		return t
	}

	// 2. 构造一个远大于包围盒的超级三角形，把全部样本包进去
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	// 余量要盖得住狭长点列的巨大外接圆，不能只按包围盒尺度取
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	big := span * 1e4
	work := make([]TriPoint, 0, n+3)
	work = append(work, pts...)
	work = append(work,
		TriPoint{X: cx - big, Y: cy - big},
		TriPoint{X: cx + big, Y: cy - big},
		TriPoint{X: cx, Y: cy + big},
	)

	var tris []workTri
	if wt, ok := makeWorkTri(work, n, n+1, n+2); ok {
		tris = append(tris, wt)
	}

	// 3. 逐点插入
	for i := 0; i < n; i++ {
		tris = insertVertex(work, tris, i)
	}

	// 4. 去掉所有引用超级三角形顶点的三角形，剩下的就是样本的三角网
	for _, wt := range tris {
		if wt.a >= n || wt.b >= n || wt.c >= n {
			continue
		}
		t.Triangles = append(t.Triangles, [3]int{wt.a, wt.b, wt.c})
	}
	return t
}

// insertVertex Bowyer-Watson 的一步: 插入下标为 vi 的点
// 先挖掉外接圆覆盖该点的全部三角形 (空腔)，再把空腔边界和新点重新连边
func insertVertex(pts []TriPoint, tris []workTri, vi int) []workTri {
	p := pts[vi]

	// 1. 按空圆性质筛出"坏"三角形
	var bad []workTri
	keep := tris[:0]
	for _, wt := range tris {
		dx, dy := p.X-wt.ccX, p.Y-wt.ccY
		if dx*dx+dy*dy < wt.rr {
			bad = append(bad, wt)
		} else {
			keep = append(keep, wt)
		}
	}

	// 2. 空腔的边界边 = 只被一个坏三角形使用的边
	type edge struct{ u, v int }
	norm := func(u, v int) edge {
		if u > v {
			u, v = v, u
		}
		return edge{u, v}
	}
	count := make(map[edge]int, 3*len(bad))
	for _, wt := range bad {
		count[norm(wt.a, wt.b)]++
		count[norm(wt.b, wt.c)]++
		count[norm(wt.c, wt.a)]++
	}

	// 3. 边界边与新点连成新三角形 (按坏三角形的顺序遍历，结果确定)
	for _, wt := range bad {
		for _, e := range [3]edge{norm(wt.a, wt.b), norm(wt.b, wt.c), norm(wt.c, wt.a)} {
			if count[e] != 1 {
				continue
			}
			if nt, ok := makeWorkTri(pts, e.u, e.v, vi); ok {
				keep = append(keep, nt)
			}
		}
	}
	return keep
}

// makeWorkTri 构造带外接圆缓存的三角形，三点共线时丢弃
func makeWorkTri(pts []TriPoint, a, b, c int) (workTri, bool) {
	cx, cy, rr, ok := circumcircle(pts[a], pts[b], pts[c])
	if !ok {
		return workTri{}, false
	}
	return workTri{a: a, b: b, c: c, ccX: cx, ccY: cy, rr: rr}, true
}

// circumcircle 计算三点外接圆的圆心和半径平方，三点共线时 ok 为 false
func circumcircle(p1, p2, p3 TriPoint) (cx, cy, rr float64, ok bool) {
	d := 2 * (p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y))
	if d == 0 {
		return 0, 0, 0, false
	}
	s1 := p1.X*p1.X + p1.Y*p1.Y
	s2 := p2.X*p2.X + p2.Y*p2.Y
	s3 := p3.X*p3.X + p3.Y*p3.Y
	cx = (s1*(p2.Y-p3.Y) + s2*(p3.Y-p1.Y) + s3*(p1.Y-p2.Y)) / d
	cy = (s1*(p3.X-p2.X) + s2*(p1.X-p3.X) + s3*(p2.X-p1.X)) / d
	dx, dy := p1.X-cx, p1.Y-cy
	return cx, cy, dx*dx + dy*dy, true
}

// 重心坐标判定的容差 (重心坐标无量纲，容差不随坐标尺度变化)
const locateEps = 1e-9

// Locate 返回包含平面点 (x, y) 的三角形下标及该点的重心坐标
// 点落在边或顶点上时算作包含，保证凸包边界不会掉进最近邻回退
// 不在任何三角形内时返回 -1
func (t *Triangulation) Locate(x, y float64) (int, [3]float64) {
	for k, tri := range t.Triangles {
		p1, p2, p3 := t.Points[tri[0]], t.Points[tri[1]], t.Points[tri[2]]
		den := (p2.Y-p3.Y)*(p1.X-p3.X) + (p3.X-p2.X)*(p1.Y-p3.Y)
		if math.Abs(den) < 1e-10 {
			continue
		}
		w0 := ((p2.Y-p3.Y)*(x-p3.X) + (p3.X-p2.X)*(y-p3.Y)) / den
		w1 := ((p3.Y-p1.Y)*(x-p3.X) + (p1.X-p3.X)*(y-p3.Y)) / den
		w2 := 1 - w0 - w1
		if w0 >= -locateEps && w1 >= -locateEps && w2 >= -locateEps {
			return k, [3]float64{w0, w1, w2}
		}
	}
	return -1, [3]float64{}
}

// Neighbors 返回每个顶点在三角网中的邻接顶点表 (用于梯度估计)
func (t *Triangulation) Neighbors() [][]int {
	adj := make([][]int, len(t.Points))
	seen := make(map[[2]int]bool)
	add := func(u, v int) {
		key := [2]int{u, v}
		if u > v {
			key = [2]int{v, u}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}
	for _, tri := range t.Triangles {
		add(tri[0], tri[1])
		add(tri[1], tri[2])
		add(tri[2], tri[0])
	}
	return adj
}
