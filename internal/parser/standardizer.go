package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// columnMapping 单个标准列的来源定义
// primary 按报表类型取首选源列，alternates 为通用备选，按序第一个命中生效
type columnMapping struct {
	target     string
	primary    map[model.ReportType]string
	alternates []string
}

// 标准列映射表，来源列优先级：类型专属首选列 > 通用备选列
var standardMappings = []columnMapping{
	{
		target: model.ColDate,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Purchase Order: Confirmation Date",
			model.ReportTypeNonPOInvoice: "Invoice: Created Date",
		},
		alternates: []string{"Date", "Date Created", "Date Due", "Transaction Date"},
	},
	{
		target: model.ColFacility,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Purchase Order: Supplier",
			model.ReportTypeNonPOInvoice: "Dimension5 Description",
		},
		alternates: []string{"Facility", "Vendor", "Department: Name", "Department", "Location", "Supplier: Name"},
	},
	{
		target: model.ColChemical,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Item Description",
			model.ReportTypeNonPOInvoice: "Dimension3 Description",
		},
		alternates: []string{"Chemical", "Description", "Item: Category", "Memo"},
	},
	{
		target: model.ColOrderID,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Order Identifier",
			model.ReportTypeNonPOInvoice: "Invoice: Number",
		},
		alternates: []string{"Order_ID", "Bill # (Supplier Invoice #)", "Document Number"},
	},
	{
		target: model.ColTotalCost,
		primary: map[model.ReportType]string{
			model.ReportTypeNonPOInvoice: "Net Amount",
		},
		alternates: []string{"Total_Cost", "Total", "Amount"},
	},
	{
		target: model.ColSupplier,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Purchase Order: Supplier",
			model.ReportTypeNonPOInvoice: "Supplier: Name",
		},
		alternates: []string{"Supplier", "Vendor", "Vendor Name"},
	},
	{
		target: model.ColPOType,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Type",
			model.ReportTypeNonPOInvoice: "Invoice: Type",
		},
		alternates: []string{"Type: Purchase Order", "Transaction Type"},
	},
	{
		target: model.ColRegion,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Purchase Requisition: Our Reference",
			model.ReportTypeNonPOInvoice: "Dimension4 Description",
		},
		alternates: []string{"Region", "Project Region"},
	},
	{
		target: model.ColQuantity,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Connected",
			model.ReportTypeNonPOInvoice: "QTY",
		},
		alternates: []string{"Quantity", "Connected Quantity", "Confirmed Quantity"},
	},
	{
		target: model.ColUnitPrice,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Confirmed Unit Price",
		},
		alternates: []string{"Unit_Price", "Unit Price", "Rate"},
	},
	{
		target: model.ColUnit,
		primary: map[model.ReportType]string{
			model.ReportTypePOLineDetail: "Unit",
		},
		alternates: []string{"Units", "UOM", "Unit of Measure"},
	},
}

// NetSuite 导出的 Chemical Spend 报表先做一轮列名直改
// Date 来源优先 Bill Date，Date Created 兜底；两者并存时后者丢弃
var netsuiteRenames = [][2]string{
	{"Vendor Name", model.ColSupplier},
	{"Vendor", model.ColSupplier},
	{"Bill Date", model.ColDate},
	{"Bill # (Supplier Invoice #)", model.ColOrderID},
	{"Rate", model.ColUnitPrice},
	{"Amount", model.ColTotalCost},
	{"Memo/Description", model.ColChemical},
	{"Department: Name", model.ColFacility},
	{"Project Region", model.ColRegion},
	{"Date Created", model.ColDate},
}

// Standardize 把原始表格标准化为统一的列结构并提取逐行记录
// 输出表是输入表的严格超集：只追加标准列，原始列一律保留
func Standardize(t *model.Table, reportType model.ReportType, now time.Time) *StandardizeResult {
	result := &StandardizeResult{Table: t}

	t.DropBlankColumns()

	if reportType == model.ReportTypeChemicalSpend {
		applyNetSuiteRenames(t)
	}

	for _, m := range standardMappings {
		if t.HasColumn(m.target) {
			continue
		}
		source, found := resolveSource(t, m, reportType)
		if !found {
			t.FillColumn(m.target, defaultValueFor(m.target))
			if m.target != model.ColUnit && m.target != model.ColUnitPrice {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("column %s has no source, filled with default", m.target))
			}
			continue
		}
		t.SetColumn(m.target, t.Column(source))
	}

	// PO Line Detail 没有总价列，按 单价 × 数量 现算
	if reportType == model.ReportTypePOLineDetail && columnAllBlank(t, model.ColTotalCost) {
		computeLineTotals(t)
	}

	// Non-PO 发票没有计量单位
	if reportType == model.ReportTypeNonPOInvoice {
		t.FillColumn(model.ColUnit, "")
	}

	_, credits, _ := NormalizeCurrencyColumn(t, model.ColTotalCost)
	NormalizeCurrencyColumn(t, model.ColUnitPrice)
	result.CreditCount = credits

	standardizeRegion(t)
	standardizeChemical(t, reportType)
	standardizePOType(t, reportType)

	result.Records = extractRecords(t, reportType, now, result)
	return result
}

func applyNetSuiteRenames(t *model.Table) {
	for _, r := range netsuiteRenames {
		if source, found := t.FindColumn(r[0]); found {
			t.RenameColumn(source, r[1])
		}
	}
	// Bill Date 已占用 Date 时多余的 Date Created 不再保留
	if col, found := t.FindColumn("Date Created"); found {
		t.DropColumn(col)
	}
}

func resolveSource(t *model.Table, m columnMapping, reportType model.ReportType) (string, bool) {
	if primary, ok := m.primary[reportType]; ok && primary != "" {
		if col, found := t.FindColumn(primary); found {
			return col, true
		}
	}
	for _, alt := range m.alternates {
		if col, found := t.FindColumn(alt); found {
			return col, true
		}
	}
	return "", false
}

func defaultValueFor(target string) string {
	switch target {
	case model.ColOrderID, model.ColChemical:
		return "Unknown"
	case model.ColFacility:
		return "Unknown Supplier"
	case model.ColQuantity:
		return "1"
	case model.ColUnit:
		return "unit"
	case model.ColTotalCost, model.ColUnitPrice:
		return "0"
	default:
		return ""
	}
}

func columnAllBlank(t *model.Table, name string) bool {
	for _, v := range t.Column(name) {
		if strings.TrimSpace(v) != "" && strings.TrimSpace(v) != "0" {
			return false
		}
	}
	return true
}

// computeLineTotals 总价 = 单价 × 数量
// 数量优先取 Connected，其次 Confirmed Quantity，都缺时总价记零
func computeLineTotals(t *model.Table) {
	n := t.RowCount()
	totals := make([]string, n)
	for i := 0; i < n; i++ {
		price, _, okP := ParseCurrency(t.Cell(model.ColUnitPrice, i))
		qty, okQ := lineQuantity(t, i)
		if okP && okQ {
			totals[i] = FormatAmount(price * qty)
		} else {
			totals[i] = "0.00"
		}
	}
	t.SetColumn(model.ColTotalCost, totals)
}

func lineQuantity(t *model.Table, row int) (float64, bool) {
	if col, found := t.FindColumn("Connected"); found {
		if v, ok := ParseQuantity(t.Cell(col, row)); ok {
			return v, true
		}
	}
	if col, found := t.FindColumn("Confirmed Quantity"); found {
		if v, ok := ParseQuantity(t.Cell(col, row)); ok {
			return v, true
		}
	}
	if v, ok := ParseQuantity(t.Cell(model.ColQuantity, row)); ok {
		return v, true
	}
	return 0, false
}

func standardizeRegion(t *model.Table) {
	values := t.Column(model.ColRegion)
	out := make([]string, len(values))
	for i, raw := range values {
		region := ConsolidateRegion(raw)
		if region == "Unknown" {
			region = AssignRegionFromFacility(t.Cell(model.ColFacility, i))
		}
		out[i] = region
	}
	t.SetColumn(model.ColRegion, out)
}

func standardizeChemical(t *model.Table, reportType model.ReportType) {
	values := t.Column(model.ColChemical)
	chems := make([]string, len(values))
	cats := make([]string, len(values))
	for i, raw := range values {
		if strings.TrimSpace(raw) == "" {
			chems[i] = "Unknown"
			cats[i] = "Uncategorized"
			continue
		}
		if reportType == model.ReportTypeChemicalSpend {
			chems[i] = ExtractChemicalName(raw)
		} else {
			chems[i] = strings.TrimSpace(raw)
		}
		cats[i] = CategorizeChemical(chems[i])
	}
	t.SetColumn(model.ColChemical, chems)
	t.SetColumn(model.ColCategory, cats)
}

func standardizePOType(t *model.Table, reportType model.ReportType) {
	values := t.Column(model.ColPOType)
	out := make([]string, len(values))
	for i, raw := range values {
		out[i] = DeterminePOType(raw, reportType)
	}
	t.SetColumn(model.ColPOType, out)
}

func extractRecords(t *model.Table, reportType model.ReportType, now time.Time, result *StandardizeResult) []model.Record {
	n := t.RowCount()
	records := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := model.Record{
			Facility: strings.TrimSpace(t.Cell(model.ColFacility, i)),
			Supplier: strings.TrimSpace(t.Cell(model.ColSupplier, i)),
			Chemical: t.Cell(model.ColChemical, i),
			Category: t.Cell(model.ColCategory, i),
			OrderID:  strings.TrimSpace(t.Cell(model.ColOrderID, i)),
			Unit:     strings.TrimSpace(t.Cell(model.ColUnit, i)),
			Region:   t.Cell(model.ColRegion, i),
			POType:   t.Cell(model.ColPOType, i),
		}
		if rec.OrderID == "" {
			rec.OrderID = "Unknown"
		}
		rec.Date = ParseDate(t.Cell(model.ColDate, i), now)
		if cost, _, ok := ParseCurrency(t.Cell(model.ColTotalCost, i)); ok {
			rec.TotalCost = cost
		} else {
			result.CoercedCount++
		}
		if price, _, ok := ParseCurrency(t.Cell(model.ColUnitPrice, i)); ok {
			rec.UnitPrice = price
		}
		if qty, ok := ParseQuantity(t.Cell(model.ColQuantity, i)); ok {
			rec.Quantity = qty
		}
		records = append(records, rec)
	}
	return records
}
