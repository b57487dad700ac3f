package importer

import (
	"fmt"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/parser"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/reader"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/store"
)

// Coordinator 上传处理协调器：读取 → 识别 → 标准化 → 校验 → 入库
type Coordinator struct {
	store  *store.Store
	policy parser.CoercionPolicy
}

// NewCoordinator 创建协调器
func NewCoordinator(s *store.Store, policy parser.CoercionPolicy) *Coordinator {
	if !policy.Valid() {
		policy = parser.PolicyLenient
	}
	return &Coordinator{store: s, policy: policy}
}

// ImportOptions 导入选项
type ImportOptions struct {
	Filename    string // 上传的原始文件名
	Data        []byte // 文件内容
	ReportName  string // 入库报表名，空则取文件名
	Description string
	ForceType   model.ReportType // 指定格式时跳过自动识别
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/step/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ImportResult 导入完成后的结果
type ImportResult struct {
	Meta        *model.ReportMeta      `json:"meta"`
	ReportType  model.ReportType       `json:"reportType"`
	Detection   parser.DetectionResult `json:"detection"`
	RecordCount int                    `json:"recordCount"`
	CreditCount int                    `json:"creditCount"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// Import 执行导入，返回进度通道；done 事件携带 ImportResult
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

// Run 同步执行导入，供 CLI 与测试使用
func (c *Coordinator) Run(opts ImportOptions) (*ImportResult, error) {
	var result *ImportResult
	var failure error
	for event := range c.Import(opts) {
		switch event.Type {
		case "done":
			if r, ok := event.Data.(*ImportResult); ok {
				result = r
			}
		case "error":
			failure = fmt.Errorf("%s", event.Message)
		}
	}
	if failure != nil {
		return nil, failure
	}
	if result == nil {
		return nil, fmt.Errorf("import finished without result")
	}
	return result, nil
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   "开始处理上传文件",
		Data:      map[string]string{"filename": opts.Filename},
		Timestamp: time.Now(),
	})

	table, err := reader.ReadFile(opts.Filename, opts.Data)
	if err != nil {
		c.fail(progressChan, fmt.Sprintf("读取文件失败: %v", err))
		return
	}
	c.sendProgress(progressChan, ProgressEvent{
		Type:    "step",
		Message: fmt.Sprintf("读取完成: %d 行 %d 列", table.RowCount(), len(table.Columns())),
		Data: map[string]int{
			"rows":    table.RowCount(),
			"columns": len(table.Columns()),
		},
		Timestamp: time.Now(),
	})

	var detection parser.DetectionResult
	if opts.ForceType.Valid() {
		detection = parser.DetectionResult{ReportType: opts.ForceType}
	} else {
		detection = parser.DetectReportType(opts.Filename, table.Columns())
	}
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "step",
		Message:   fmt.Sprintf("识别为: %s", detection.ReportType.DisplayName()),
		Data:      detection,
		Timestamp: time.Now(),
	})

	res := parser.Standardize(table, detection.ReportType, time.Now())
	c.sendProgress(progressChan, ProgressEvent{
		Type:      "step",
		Message:   fmt.Sprintf("标准化完成: %d 条记录", len(res.Records)),
		Timestamp: time.Now(),
	})

	vr := parser.Validate(res, c.policy, time.Now())
	for _, w := range vr.Warnings {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   w,
			Timestamp: time.Now(),
		})
	}
	if !vr.Valid {
		c.fail(progressChan, fmt.Sprintf("校验未通过: %v", vr.Errors))
		return
	}

	name := opts.ReportName
	if name == "" {
		name = opts.Filename
	}
	meta, err := c.store.SaveReport(name, opts.Filename, detection.ReportType, opts.Description, res.Table, res.Records)
	if err != nil {
		c.fail(progressChan, fmt.Sprintf("入库失败: %v", err))
		return
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:    "done",
		Message: fmt.Sprintf("导入完成: %s (%d 条记录)", meta.Name, meta.RecordCount),
		Data: &ImportResult{
			Meta:        meta,
			ReportType:  detection.ReportType,
			Detection:   detection,
			RecordCount: len(res.Records),
			CreditCount: res.CreditCount,
			Warnings:    vr.Warnings,
		},
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) fail(ch chan ProgressEvent, message string) {
	c.sendProgress(ch, ProgressEvent{
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
