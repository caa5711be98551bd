package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"topo-system/algo"
	"topo-system/model"

	"github.com/gin-gonic/gin"
)

// 当前激活的点集和结果缓存
// 启动时由 main 设置，上传/切换数据集后热替换，不用重启服务
var (
	dataMu    sync.RWMutex
	activeSet *model.PointSet
	activeVer string
	cache     = algo.NewResultCache()
)

// SetActiveData 替换当前激活的点集，并把结果缓存切换到新版本
// 切换后仍拿着旧版本号的慢请求写不进缓存
func SetActiveData(ps *model.PointSet, version string) {
	dataMu.Lock()
	activeSet, activeVer = ps, version
	dataMu.Unlock()
	cache.Activate(version)
}

// activeData 读取当前激活的点集，未加载时 ok 为 false
func activeData() (*model.PointSet, string, bool) {
	dataMu.RLock()
	defer dataMu.RUnlock()
	return activeSet, activeVer, activeSet != nil
}

// intQuery 解析整数查询参数并限定范围，缺省时返回默认值
func intQuery(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("参数 %s 不是整数: %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("参数 %s 超出范围 [%d, %d]", name, lo, hi)
	}
	return v, nil
}

// floatQuery 解析浮点查询参数并限定范围，缺省时返回默认值
func floatQuery(c *gin.Context, name string, def, lo, hi float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("参数 %s 不是数字: %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("参数 %s 超出范围 [%g, %g]", name, lo, hi)
	}
	return v, nil
}

// MeshBounds 网格的平面包围盒
type MeshBounds struct {
	MinNorthing float64 `json:"min_northing"`
	MaxNorthing float64 `json:"max_northing"`
	MinEasting  float64 `json:"min_easting"`
	MaxEasting  float64 `json:"max_easting"`
}

// MeshResponse 地形网格响应
// GridZ 是已应用垂直夸张后的高程，GridX/GridY 不受夸张影响
type MeshResponse struct {
	Resolution   int         `json:"resolution"`
	Exaggeration float64     `json:"exaggeration"`
	Bounds       MeshBounds  `json:"bounds"`
	GridX        [][]float64 `json:"grid_x"`
	GridY        [][]float64 `json:"grid_y"`
	GridZ        [][]float64 `json:"grid_z"`
}

// GetTerrainMesh 处理地形网格请求
// GET /api/terrain/mesh?resolution=50&exaggeration=1.0
func GetTerrainMesh(c *gin.Context) {
	ps, ver, ok := activeData()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "测量数据未加载"})
		return
	}

	resolution, err := intQuery(c, "resolution", algo.DefaultResolution, 2, 200)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exaggeration, err := floatQuery(c, "exaggeration", 1.0, 0, 30)
	if err == nil && exaggeration <= 0 {
		err = fmt.Errorf("参数 exaggeration 必须大于 0")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 先查缓存，未命中再重建 (夸张只是展示系数，不进缓存键)
	key := algo.MeshKey{Version: ver, Resolution: resolution}
	mesh, hit := cache.Mesh(key)
	if !hit {
		mesh, err = algo.BuildTerrainMesh(ps.Samples, resolution)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		cache.PutMesh(key, mesh)
	}

	c.JSON(http.StatusOK, MeshResponse{
		Resolution:   mesh.Resolution,
		Exaggeration: exaggeration,
		Bounds: MeshBounds{
			MinNorthing: mesh.MinN,
			MaxNorthing: mesh.MaxN,
			MinEasting:  mesh.MinE,
			MaxEasting:  mesh.MaxE,
		},
		GridX: mesh.X,
		GridY: mesh.Y,
		GridZ: algo.ExaggerateGrid(mesh.Z, exaggeration),
	})
}

// AlignmentResponse 管线纵断面响应
// 站点缺失或不合法时 available 为 false 并附带原因，HTTP 状态仍是 200:
// 管线输出缺席不算错误，地形接口也完全不受影响
type AlignmentResponse struct {
	Available    bool      `json:"available"`
	Reason       string    `json:"reason,omitempty"`
	Distance     float64   `json:"distance,omitempty"`
	SlopePercent float64   `json:"slope_percent,omitempty"`
	Exaggeration float64   `json:"exaggeration,omitempty"`
	PathX        []float64 `json:"path_x,omitempty"`
	PathY        []float64 `json:"path_y,omitempty"`
	PathZ        []float64 `json:"path_z,omitempty"`
}

// GetAlignmentProfile 处理管线纵断面请求
// GET /api/alignment/profile?sag=1.0&samples=50&exaggeration=1.0
func GetAlignmentProfile(c *gin.Context) {
	ps, ver, ok := activeData()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "测量数据未加载"})
		return
	}

	sag, err := floatQuery(c, "sag", algo.DefaultSag, 0, 1000)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	samples, err := intQuery(c, "samples", algo.DefaultCurveSamples, 2, 500)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exaggeration, err := floatQuery(c, "exaggeration", 1.0, 0, 30)
	if err == nil && exaggeration <= 0 {
		err = fmt.Errorf("参数 exaggeration 必须大于 0")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, b, ok := ps.Stations()
	if !ok {
		c.JSON(http.StatusOK, AlignmentResponse{
			Available: false,
			Reason:    "缺少成对的供水站点 (需要恰好两个，标签分别为 A 和 B)",
		})
		return
	}

	key := algo.ProfileKey{Version: ver, Sag: sag, Samples: samples}
	profile, hit := cache.Profile(key)
	if !hit {
		profile, err = algo.BuildAlignmentProfile(a, b, sag, samples)
		if errors.Is(err, algo.ErrStationsCoincide) {
			// 站点重合按"管线不可用"吸收，不作为请求错误
			c.JSON(http.StatusOK, AlignmentResponse{Available: false, Reason: err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cache.PutProfile(key, profile)
	}

	c.JSON(http.StatusOK, AlignmentResponse{
		Available:    true,
		Distance:     profile.Distance,
		SlopePercent: profile.SlopePercent,
		Exaggeration: exaggeration,
		PathX:        profile.PathX,
		PathY:        profile.PathY,
		PathZ:        algo.ExaggerateSlice(profile.PathZ, exaggeration),
	})
}

// GetPoints 返回激活数据集的全部原始测量点
// GET /api/points
func GetPoints(c *gin.Context) {
	ps, _, ok := activeData()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "测量数据未加载"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"points": ps.All,
		"count":  len(ps.All),
	})
}

// StatsResponse 统计面板数据 (全部从原始点现算，不信任文件自带的 metadata)
type StatsResponse struct {
	SurveyPoints int     `json:"survey_points"`
	ElevationMin float64 `json:"elevation_min"`
	ElevationMax float64 `json:"elevation_max"`
	Relief       float64 `json:"relief"` // 高程范围 max - min
	HasAlignment bool    `json:"has_alignment"`
	Distance     float64 `json:"distance,omitempty"`
	SlopePercent float64 `json:"slope_percent,omitempty"`
}

// GetStats 返回激活数据集的统计信息
// GET /api/stats
func GetStats(c *gin.Context) {
	ps, _, ok := activeData()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "测量数据未加载"})
		return
	}

	resp := StatsResponse{SurveyPoints: len(ps.Samples)}
	if min, max, ok := ps.ElevationRange(); ok {
		resp.ElevationMin = min
		resp.ElevationMax = max
		resp.Relief = max - min
	}
	if a, b, ok := ps.Stations(); ok {
		if dist, slope, err := algo.StationMetrics(a, b); err == nil {
			resp.HasAlignment = true
			resp.Distance = dist
			resp.SlopePercent = slope
		}
	}
	c.JSON(http.StatusOK, resp)
}
