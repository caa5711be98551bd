package main

import (
	"fmt"
	"log"
	"os"
	"topo-system/db"
	"topo-system/handler"
	"topo-system/model"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("=== 欢迎使用 3D 地形分析系统 - 供水管线选线平台 ===")

	// 1. 初始化数据库
	// 连接 PostgreSQL，自动迁移表结构
	// 如果是第一次运行，会自动将 topographic_data.json 导入数据库
	db.InitDB()

	// 2. 装配点集 (从数据库加载激活数据集)
	fmt.Println("正在从数据库装配点集...")
	dataset, points, err := db.LoadActivePoints()
	if err != nil {
		// 没有数据也允许启动，等管理员通过 API 上传数据集
		log.Printf("警告: 加载测量数据失败: %v", err)
	} else {
		ps := model.BuildPointSet(points)
		handler.SetActiveData(ps, dataset.Version())
		fmt.Printf("点集装配完成! 地形样本数: %d, 管线站点对: %v\n",
			len(ps.Samples), ps.HasAlignment())
	}

	// 3. 初始化 Gin 引擎
	r := gin.Default()

	// 4. 配置路由
	setupRoutes(r)

	// 5. 启动服务器 (端口可通过环境变量 PORT 覆盖)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("\n服务器启动中...")
	fmt.Printf("访问地址: http://localhost:%s\n", port)
	fmt.Printf("前端页面: http://localhost:%s/static/\n", port)
	fmt.Println("API 文档:")
	fmt.Println("  - POST   /api/login                   - 用户登录")
	fmt.Println("  - POST   /api/register                - 用户注册")
	fmt.Println("  - GET    /api/terrain/mesh            - 地形网格 (resolution, exaggeration)")
	fmt.Println("  - GET    /api/alignment/profile       - 管线纵断面 (sag, samples, exaggeration)")
	fmt.Println("  - GET    /api/points                  - 原始测量点")
	fmt.Println("  - GET    /api/stats                   - 统计信息")
	fmt.Println("  - GET    /api/datasets                - 数据集列表")
	fmt.Println("  - POST   /api/datasets                - 上传数据集 (需认证)")
	fmt.Println("  - PUT    /api/datasets/:id/activate   - 切换激活数据集 (需认证)")
	fmt.Println("\n按 Ctrl+C 退出")

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

// setupRoutes 配置路由
func setupRoutes(r *gin.Engine) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 静态文件服务 - 提供前端页面
	r.Static("/static", "./static")

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	// 根路径重定向到前端页面
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/static/index.html")
	})

	// API 路由组
	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", handler.Login)
		api.POST("/register", handler.Register)

		// 地形与管线接口
		api.GET("/terrain/mesh", handler.GetTerrainMesh)
		api.GET("/alignment/profile", handler.GetAlignmentProfile)
		api.GET("/points", handler.GetPoints)
		api.GET("/stats", handler.GetStats)
		api.GET("/datasets", handler.ListDatasets)

		// 数据集写操作需要认证
		authorized := api.Group("/")
		authorized.Use(handler.AuthMiddleware())
		{
			authorized.POST("/datasets", handler.UploadDataset)
			authorized.PUT("/datasets/:id/activate", handler.ActivateDataset)
		}
	}
}
