package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/analysis"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// Exporter 报表导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportExcel 导出记录到 Excel：明细表 + 汇总表
func (e *Exporter) ExportExcel(name string, records []model.Record, summary analysis.Summary) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "采购明细"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"日期", "设施", "供应商", "药剂", "类别",
		"订单号", "金额", "单价", "数量", "单位", "区域", "采购类型",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, rec := range records {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), rec.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), rec.Facility)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), rec.Supplier)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), rec.Chemical)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), rec.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), rec.OrderID)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), rec.TotalCost)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), rec.UnitPrice)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), rec.Quantity)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), rec.Unit)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), rec.Region)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), rec.POType)
	}

	summarySheet := "汇总"
	f.NewSheet(summarySheet)

	summaryData := [][]interface{}{
		{"指标", "数值"},
		{"报表名", name},
		{"记录数", summary.RecordCount},
		{"总支出", summary.TotalSpend},
		{"贷项笔数", summary.CreditCount},
		{"贷项金额", summary.CreditTotal},
		{"平均单价", summary.AvgUnitPrice},
		{"设施数", summary.FacilityCount},
		{"供应商数", summary.SupplierCount},
		{"药剂数", summary.ChemicalCount},
	}
	summaryData = append(summaryData, []interface{}{"", ""})
	summaryData = append(summaryData, []interface{}{"按区域支出", ""})
	for _, item := range summary.ByRegion {
		summaryData = append(summaryData, []interface{}{item.Name, item.Amount})
	}
	summaryData = append(summaryData, []interface{}{"", ""})
	summaryData = append(summaryData, []interface{}{"按月支出", ""})
	for _, item := range summary.ByMonth {
		summaryData = append(summaryData, []interface{}{item.Name, item.Amount})
	}

	for i, row := range summaryData {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(summarySheet, cell, val)
		}
	}
	f.SetRowStyle(summarySheet, 1, 1, headerStyle)

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "F", 24)
	f.SetColWidth(sheetName, "G", "L", 14)
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 18)

	return f, nil
}

// ExportCSV 导出标准化表格为 CSV
func (e *Exporter) ExportCSV(t *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range t.Rows() {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
