package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/api"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/config"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/importer"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/kpi"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/parser"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	sqliteStore, err := store.New(dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	policy := parser.CoercionPolicy(cfg.Processing.CoercionPolicy)
	coordinator := importer.NewCoordinator(sqliteStore, policy)
	kpiGen := kpi.NewGenerator(time.Duration(cfg.KPI.BudgetMillis) * time.Millisecond)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    api.NewHandler(sqliteStore, coordinator, kpiGen),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "chemtracker",
			"status":  "ok",
		})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no route: %s", c.Request.URL.Path)})
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
