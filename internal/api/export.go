package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/analysis"
)

// ExportRequest 导出请求
type ExportRequest struct {
	Format string `json:"format"` // xlsx / csv，默认 xlsx
}

// Export 导出报表，生成临时文件并返回下载令牌
// POST /api/reports/:id/export
func (h *Handler) Export(c *gin.Context) {
	meta, ok := h.reportFromParam(c)
	if !ok {
		return
	}

	var req ExportRequest
	_ = c.ShouldBindJSON(&req)
	if req.Format == "" {
		req.Format = "xlsx"
	}

	var filePath, filename string
	switch req.Format {
	case "xlsx":
		records, err := h.store.LoadRecords(meta)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "载入报表数据失败"})
			return
		}
		f, err := h.exporter.ExportExcel(meta.Name, records, analysis.Summarize(records))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 Excel 失败"})
			return
		}
		filename = fmt.Sprintf("%s_export.xlsx", meta.Name)
		filePath = filepath.Join(os.TempDir(), fmt.Sprintf("chemtracker_export_%d_%s", time.Now().UnixNano(), filename))
		if err := f.SaveAs(filePath); err != nil {
			f.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存导出文件失败"})
			return
		}
		f.Close()
	case "csv":
		table, err := h.store.LoadTable(meta)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "载入报表数据失败"})
			return
		}
		data, err := h.exporter.ExportCSV(table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 CSV 失败"})
			return
		}
		filename = fmt.Sprintf("%s_export.csv", meta.Name)
		filePath = filepath.Join(os.TempDir(), fmt.Sprintf("chemtracker_export_%d_%s", time.Now().UnixNano(), filename))
		if err := os.WriteFile(filePath, data, 0644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "保存导出文件失败"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("不支持的导出格式: %s", req.Format)})
		return
	}

	token := h.downloads.put(filePath, filename, 10*time.Minute)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 按令牌下载导出文件，令牌一次性有效
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接不存在或已过期"})
		return
	}
	h.downloads.delete(token)

	defer os.Remove(item.filePath)
	c.FileAttachment(item.filePath, item.filename)
}
