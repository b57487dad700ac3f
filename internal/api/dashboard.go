package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/analysis"
)

// filterFromQuery 从查询参数组装过滤条件
// from/to 为 2006-01-02 格式；维度参数可重复出现
func filterFromQuery(c *gin.Context) (analysis.Filter, error) {
	var f analysis.Filter
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, err
		}
		// 结束日含当天
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	f.Facilities = c.QueryArray("facility")
	f.Chemicals = c.QueryArray("chemical")
	f.Suppliers = c.QueryArray("supplier")
	f.Regions = c.QueryArray("region")
	f.POTypes = c.QueryArray("poType")
	f.Categories = c.QueryArray("category")
	return f, nil
}

// GetRecords 查询报表记录（支持过滤与分页）
// GET /api/reports/:id/records
func (h *Handler) GetRecords(c *gin.Context) {
	meta, ok := h.reportFromParam(c)
	if !ok {
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日期参数"})
		return
	}

	records, err := h.store.LoadRecords(meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "载入报表数据失败"})
		return
	}
	records = filter.Apply(records)
	total := len(records)

	// 分页，默认每页 200
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"offset":  offset,
		"limit":   limit,
		"records": records[offset:end],
	})
}

// GetSummary 查询报表汇总（支持过滤）
// GET /api/reports/:id/summary
func (h *Handler) GetSummary(c *gin.Context) {
	meta, ok := h.reportFromParam(c)
	if !ok {
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的日期参数"})
		return
	}

	records, err := h.store.LoadRecords(meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "载入报表数据失败"})
		return
	}
	c.JSON(http.StatusOK, analysis.Summarize(filter.Apply(records)))
}

// GetKPIs 自动生成报表指标
// GET /api/reports/:id/kpis
func (h *Handler) GetKPIs(c *gin.Context) {
	meta, ok := h.reportFromParam(c)
	if !ok {
		return
	}
	table, err := h.store.LoadTable(meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "载入报表数据失败"})
		return
	}
	c.JSON(http.StatusOK, h.kpiGen.Generate(table))
}
