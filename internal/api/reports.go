package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/store"
)

// ListReports 列出全部报表
// GET /api/reports
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.store.ListReports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询报表失败"})
		return
	}
	if reports == nil {
		reports = []model.ReportMeta{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetReport 查询单个报表元数据
// GET /api/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	meta, ok := h.reportFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, meta)
}

// DeleteReport 删除报表（行与数据文件一并清除）
// DELETE /api/reports/:id
func (h *Handler) DeleteReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的报表 ID"})
		return
	}
	if err := h.store.DeleteReport(id); err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "报表不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除报表失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// reportFromParam 解析 :id 并取报表元数据，失败时直接写响应
func (h *Handler) reportFromParam(c *gin.Context) (*model.ReportMeta, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的报表 ID"})
		return nil, false
	}
	meta, err := h.store.GetReport(id)
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "报表不存在"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询报表失败"})
		return nil, false
	}
	return meta, true
}
