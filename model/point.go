package model

// 数据来源标签 (对应 JSON 中的 source 字段)
const (
	SourceTopoSurvey = "topo_survey" // 地形测量点
	SourceWaterDist  = "water_dist"  // 供水管线站点
)

// 站点标签 (对应 JSON 中的 station 字段，仅 water_dist 点携带)
const (
	StationA = "A" // 起点: 三通接头
	StationB = "B" // 终点: 水库
)

// PointXY 代表投影平面坐标系中的一个点
type PointXY struct {
	X float64 // 东向坐标 easting (米)
	Y float64 // 北向坐标 northing (米)
}

// SurveyPoint 对应一条原始测量记录 (地形点或管线站点)
// 坐标为局部投影坐标，单位全部是米
type SurveyPoint struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	DatasetID   uint    `json:"-" gorm:"index"`
	Northing    float64 `json:"northing"`            // 北向坐标 (米)
	Easting     float64 `json:"easting"`             // 东向坐标 (米)
	Elevation   float64 `json:"elevation"`           // 高程 (米)
	Source      string  `json:"source" gorm:"index"` // "topo_survey" 或 "water_dist"
	Station     string  `json:"station,omitempty"`   // 站点标签 "A"/"B"
	Description string  `json:"description,omitempty"`
}

// PlanePos 返回点的平面位置 (丢掉高程)
func (p SurveyPoint) PlanePos() PointXY {
	return PointXY{X: p.Easting, Y: p.Northing}
}

// Range 数值范围
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bounds 三个坐标轴各自的范围
type Bounds struct {
	Northing  Range `json:"northing"`
	Easting   Range `json:"easting"`
	Elevation Range `json:"elevation"`
}

// Metadata 数据文件自带的汇总信息
// 只用于展示和交叉核对，核心计算一律从原始点重新推导
type Metadata struct {
	SurveyPoints int    `json:"survey_points"` // 地形测量点数量
	Bounds       Bounds `json:"bounds"`
}

// TopoData 用于解析整个测量数据 JSON 文件
type TopoData struct {
	Points   []SurveyPoint `json:"points"`
	Metadata Metadata      `json:"metadata"`
}
