package db

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
	"topo-system/model"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	// 从环境变量读取配置 (为了 Docker 部署方便)
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "topouser")
	password := getEnvOrDefault("DB_PASSWORD", "topopassword")
	dbname := getEnvOrDefault("DB_NAME", "topoanalysis")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		host, user, password, dbname, port,
	)

	// 带重试的数据库连接 (Docker 启动时数据库可能还没准备好)
	var err error
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("等待数据库就绪... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 自动迁移模式 (自动创建表结构)
	err = DB.AutoMigrate(&model.User{}, &model.Dataset{}, &model.SurveyPoint{})
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 检查是否需要导入初始数据
	var datasetCount int64
	DB.Model(&model.Dataset{}).Count(&datasetCount)
	if datasetCount == 0 {
		log.Println("检测到数据库为空，正在导入 topographic_data.json...")
		if err := importTopoData("topographic_data.json"); err != nil {
			log.Printf("警告: 导入测量数据失败: %v", err)
		} else {
			log.Println("测量数据导入成功!")
		}
	}

	log.Println("数据库连接并初始化成功！")
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// importTopoData 从 JSON 文件导入初始测量数据集
func importTopoData(filepath string) error {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	var data model.TopoData
	if err := json.Unmarshal(file, &data); err != nil {
		return fmt.Errorf("解析 JSON 失败: %w", err)
	}

	_, err = ImportDataset(data, "初始地形测量数据", filepath, []string{"seed"})
	return err
}

// ImportDataset 校验并入库一个数据集，成功后自动设为激活数据集
// 文件自带的 metadata 只做交叉核对: 和原始点重新统计的结果不一致时
// 打印警告并以重新统计为准，不阻断导入
func ImportDataset(data model.TopoData, name, origin string, tags []string) (*model.Dataset, error) {
	if len(data.Points) == 0 {
		return nil, fmt.Errorf("数据集中没有任何测量点")
	}
	if err := model.ValidateStations(data.Points); err != nil {
		return nil, fmt.Errorf("站点校验失败: %w", err)
	}

	crossCheckMetadata(data)

	dataset := model.Dataset{
		Name:       name,
		Origin:     origin,
		Tags:       pq.StringArray(tags),
		Active:     true,
		PointCount: len(data.Points),
	}

	// 旧数据集退位、新数据集入库、测量点批量插入，放在一个事务里
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Dataset{}).Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("停用旧数据集失败: %w", err)
		}
		if err := tx.Create(&dataset).Error; err != nil {
			return fmt.Errorf("创建数据集失败: %w", err)
		}
		points := make([]model.SurveyPoint, len(data.Points))
		copy(points, data.Points)
		for i := range points {
			points[i].ID = 0
			points[i].DatasetID = dataset.ID
		}
		if err := tx.CreateInBatches(points, 100).Error; err != nil {
			return fmt.Errorf("插入测量点失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("导入了数据集 %q: %d 个测量点", dataset.Name, dataset.PointCount)
	return &dataset, nil
}

// crossCheckMetadata 用原始点重新统计，对照文件自带的 metadata
// 所有派生量 (点数、高程范围) 一律以重新统计为准
func crossCheckMetadata(data model.TopoData) {
	ps := model.BuildPointSet(data.Points)
	meta := data.Metadata

	if meta.SurveyPoints != 0 && meta.SurveyPoints != len(ps.Samples) {
		log.Printf("警告: metadata.survey_points=%d 与实际地形点数 %d 不一致，以实际点为准",
			meta.SurveyPoints, len(ps.Samples))
	}
	if min, max, ok := ps.ElevationRange(); ok {
		declared := meta.Bounds.Elevation
		if declared.Min != 0 || declared.Max != 0 {
			if declared.Min != min || declared.Max != max {
				log.Printf("警告: metadata 声明的高程范围 [%.3f, %.3f] 与实际 [%.3f, %.3f] 不一致，以实际为准",
					declared.Min, declared.Max, min, max)
			}
		}
	}
}

// LoadActivePoints 加载当前激活数据集及其全部测量点 (按插入顺序)
// 最近邻回退的"先到先得"平局规则依赖这里的稳定顺序
func LoadActivePoints() (*model.Dataset, []model.SurveyPoint, error) {
	var dataset model.Dataset
	if err := DB.Where("active = ?", true).First(&dataset).Error; err != nil {
		return nil, nil, fmt.Errorf("没有激活的数据集: %w", err)
	}
	var points []model.SurveyPoint
	if err := DB.Where("dataset_id = ?", dataset.ID).Order("id").Find(&points).Error; err != nil {
		return nil, nil, fmt.Errorf("加载测量点失败: %w", err)
	}
	return &dataset, points, nil
}

// ListDatasets 返回全部数据集 (新的在前)
func ListDatasets() ([]model.Dataset, error) {
	var datasets []model.Dataset
	if err := DB.Order("created_at desc").Find(&datasets).Error; err != nil {
		return nil, fmt.Errorf("查询数据集失败: %w", err)
	}
	return datasets, nil
}

// ActivateDataset 把指定数据集切换为激活数据集
func ActivateDataset(id uint) (*model.Dataset, error) {
	var dataset model.Dataset
	if err := DB.First(&dataset, id).Error; err != nil {
		return nil, fmt.Errorf("数据集不存在: %w", err)
	}
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Dataset{}).Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&dataset).Update("active", true).Error
	})
	if err != nil {
		return nil, fmt.Errorf("切换数据集失败: %w", err)
	}
	return &dataset, nil
}
