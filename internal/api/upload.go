package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/importer"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// Upload 上传报表文件 (SSE 流式响应)
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	uploadedFile := files[0]

	src, err := uploadedFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}

	// 可选参数：报表名、描述、指定格式
	reportName := c.PostForm("name")
	description := c.PostForm("description")
	forceType := model.ReportType(c.PostForm("reportType"))
	if forceType != "" && !forceType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("未知报表类型: %s", forceType)})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progressChan := h.coordinator.Import(importer.ImportOptions{
		Filename:    uploadedFile.Filename,
		Data:        data,
		ReportName:  reportName,
		Description: description,
		ForceType:   forceType,
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}
		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
