package api

import (
	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/exporter"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/importer"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/kpi"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	coordinator *importer.Coordinator
	exporter    *exporter.Exporter
	kpiGen      *kpi.Generator
	downloads   *exportDownloadStore
}

// NewHandler 创建 API 处理器
func NewHandler(s *store.Store, c *importer.Coordinator, g *kpi.Generator) *Handler {
	return &Handler{
		store:       s,
		coordinator: c,
		exporter:    exporter.NewExporter(),
		kpiGen:      g,
		downloads:   newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据上传
	router.POST("/upload", h.Upload)

	// 报表管理
	router.GET("/reports", h.ListReports)
	router.GET("/reports/:id", h.GetReport)
	router.DELETE("/reports/:id", h.DeleteReport)

	// 看板查询
	router.GET("/reports/:id/records", h.GetRecords)
	router.GET("/reports/:id/summary", h.GetSummary)
	router.GET("/reports/:id/kpis", h.GetKPIs)

	// 数据导出
	router.POST("/reports/:id/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
