package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`    // 是否已有数据
	ReportCount    int    `json:"reportCount"`    // 报表数
	RecordCount    int    `json:"recordCount"`    // 记录总数
	LastUploadTime string `json:"lastUploadTime"` // 最后上传时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	reports, err := h.store.ListReports()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	total := 0
	lastUpload := ""
	for _, m := range reports {
		total += m.RecordCount
	}
	if len(reports) > 0 {
		lastUpload = reports[0].UploadedAt.Format("2006-01-02 15:04:05")
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    len(reports) > 0,
		ReportCount:    len(reports),
		RecordCount:    total,
		LastUploadTime: lastUpload,
	})
}
