package model

import (
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Dataset 一次导入的测量数据集
// 同一时间只有一个数据集处于激活状态，所有地形/管线接口都基于激活数据集计算
type Dataset struct {
	gorm.Model
	Name       string         `json:"name" gorm:"index"`
	Origin     string         `json:"origin"`                  // 数据来源说明
	Tags       pq.StringArray `json:"tags" gorm:"type:text[]"` // 标签，如 ["campus", "2024"]
	Active     bool           `json:"active" gorm:"index"`     // 是否为当前激活数据集
	PointCount int            `json:"point_count"`             // 导入时的记录数 (含站点)
}

// Version 数据集版本标识，用作结果缓存键的一部分
// 数据集被替换或重新激活时 UpdatedAt 变化，旧缓存条目随之失效
func (d *Dataset) Version() string {
	return fmt.Sprintf("%d@%d", d.ID, d.UpdatedAt.UnixNano())
}
