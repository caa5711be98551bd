package handler

import (
	"net/http"
	"strconv"
	"topo-system/db"
	"topo-system/model"

	"github.com/gin-gonic/gin"
)

// UploadRequest 数据集上传请求: 原始测量数据外加数据集描述
type UploadRequest struct {
	Name   string         `json:"name" binding:"required"`
	Origin string         `json:"origin"`
	Tags   []string       `json:"tags"`
	Data   model.TopoData `json:"data" binding:"required"`
}

// UploadDataset 上传并激活一个新数据集 (需要认证)
// POST /api/datasets
func UploadDataset(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	dataset, err := db.ImportDataset(req.Data, req.Name, req.Origin, req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := refreshActiveData(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "数据集导入成功",
		"dataset_id": dataset.ID,
		"points":     dataset.PointCount,
	})
}

// ListDatasets 返回全部数据集
// GET /api/datasets
func ListDatasets(c *gin.Context) {
	datasets, err := db.ListDatasets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"datasets": datasets,
		"count":    len(datasets),
	})
}

// ActivateDataset 切换激活数据集 (需要认证)
// PUT /api/datasets/:id/activate
func ActivateDataset(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "数据集 ID 不合法"})
		return
	}

	dataset, err := db.ActivateDataset(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := refreshActiveData(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "数据集已激活",
		"dataset_id": dataset.ID,
	})
}

// refreshActiveData 从数据库重新加载激活数据集并热替换内存点集
func refreshActiveData() error {
	dataset, points, err := db.LoadActivePoints()
	if err != nil {
		return err
	}
	SetActiveData(model.BuildPointSet(points), dataset.Version())
	return nil
}
