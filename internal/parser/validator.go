package parser

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// ValidationResult 校验结论
// Valid 为 false 时 Errors 给出拒绝原因；Warnings 不阻断入库
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate 校验标准化结果
// lenient 策略下只有四种硬失败：空表、缺 Date 列、缺 Total_Cost 列、
// 超过半数 Total_Cost 无法解析；其余问题一律降级为警告。
// strict 策略把所有纠偏点升级为错误。
func Validate(res *StandardizeResult, policy CoercionPolicy, now time.Time) ValidationResult {
	vr := ValidationResult{Valid: true}
	t := res.Table

	if t == nil || t.RowCount() == 0 {
		vr.Valid = false
		vr.Errors = append(vr.Errors, "报表内容为空")
		return vr
	}
	if !t.HasColumn(model.ColDate) {
		vr.Valid = false
		vr.Errors = append(vr.Errors, "缺少日期列")
	}
	if !t.HasColumn(model.ColTotalCost) {
		vr.Valid = false
		vr.Errors = append(vr.Errors, "缺少金额列")
	}
	if !vr.Valid {
		return vr
	}

	costs := t.Column(model.ColTotalCost)
	unparseable := 0
	for _, raw := range costs {
		if _, _, ok := ParseCurrency(raw); !ok {
			unparseable++
		}
	}
	if unparseable*2 > len(costs) {
		vr.Valid = false
		vr.Errors = append(vr.Errors,
			fmt.Sprintf("金额列无法解析的比例过高: %d/%d", unparseable, len(costs)))
		return vr
	}

	vr.Warnings = append(vr.Warnings, res.Warnings...)
	checkRecords(res.Records, now, &vr)

	if policy == PolicyStrict {
		if res.CoercedCount > 0 {
			vr.Errors = append(vr.Errors,
				fmt.Sprintf("%d 行金额经过强转", res.CoercedCount))
		}
		vr.Errors = append(vr.Errors, vr.Warnings...)
		vr.Warnings = nil
		if len(vr.Errors) > 0 {
			vr.Valid = false
		}
	}
	return vr
}

// checkRecords 逐行质量检查，只产警告
// 负数金额可能是合法贷项，未来日期可能是预约发票，离群值可能是大宗采购
func checkRecords(records []model.Record, now time.Time, vr *ValidationResult) {
	negatives := 0
	future := 0
	blankFacility := 0
	for _, rec := range records {
		if rec.TotalCost < 0 {
			negatives++
		}
		if rec.Date.After(now.AddDate(0, 0, 1)) {
			future++
		}
		if strings.TrimSpace(rec.Facility) == "" {
			blankFacility++
		}
	}
	if negatives > 0 {
		vr.Warnings = append(vr.Warnings, fmt.Sprintf("%d 行为负数金额（贷项）", negatives))
	}
	if future > 0 {
		vr.Warnings = append(vr.Warnings, fmt.Sprintf("%d 行日期在未来", future))
	}
	if blankFacility > 0 {
		vr.Warnings = append(vr.Warnings, fmt.Sprintf("%d 行缺少设施名", blankFacility))
	}

	if outliers := countOutliers(records); outliers > 0 {
		vr.Warnings = append(vr.Warnings, fmt.Sprintf("%d 行金额超出 3 倍标准差", outliers))
	}
}

// countOutliers 金额偏离均值超过 3 倍标准差的行数
func countOutliers(records []model.Record) int {
	if len(records) < 3 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.TotalCost
	}
	mean := sum / float64(len(records))
	var variance float64
	for _, rec := range records {
		d := rec.TotalCost - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(records)))
	if stddev == 0 {
		return 0
	}
	count := 0
	for _, rec := range records {
		if math.Abs(rec.TotalCost-mean) > 3*stddev {
			count++
		}
	}
	return count
}
