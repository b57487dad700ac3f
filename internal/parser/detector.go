package parser

import (
	"strings"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

// PO Line Detail 报表的特征列
var poLineSignature = []string{
	"Order Identifier",
	"Purchase Order: Confirmation Date",
	"Purchase Order: Supplier",
	"Item Description",
	"Confirmed Unit Price",
	"Connected",
	"Purchase Requisition: Our Reference",
}

// Non-PO Invoice 报表的特征列
var nonPOSignature = []string{
	"Invoice: Number",
	"Invoice: Created Date",
	"Invoice: Type",
	"Dimension3 Description",
	"Dimension4 Description",
	"Dimension5 Description",
	"Net Amount",
}

// Chemical Spend 报表的特征关键词，列名子串匹配
var chemicalKeywords = []string{
	"chemical",
	"vendor",
	"supplier",
	"bill",
	"description",
}

// 文件名里出现即视为 Chemical Spend 报表
var chemicalFilenameHints = []string{
	"chemical_spend",
	"chemical spend",
	"chem_spend",
	"chemsupplier",
	"chemical-supplier",
	"spend by supplier",
}

// DetectReportType 根据文件名和列名判定报表格式
// 判定确定性：同一输入永远得到同一结果
//   - 文件名命中 Chemical Spend 线索即判为 chemical_spend_by_supplier
//   - 列名特征关键词命中数达到 3 个判为 chemical_spend_by_supplier
//   - 否则比较 PO / Non-PO 特征列命中数，Non-PO 须严格多于 PO 才胜出
func DetectReportType(filename string, columns []string) DetectionResult {
	result := DetectionResult{ReportType: model.ReportTypePOLineDetail}

	lowerName := strings.ToLower(filename)
	for _, hint := range chemicalFilenameHints {
		if strings.Contains(lowerName, hint) {
			result.ReportType = model.ReportTypeChemicalSpend
			result.ByFilename = true
			return result
		}
	}

	for _, col := range poLineSignature {
		if columnPresent(columns, col) {
			result.POLineMatches++
		}
	}
	for _, col := range nonPOSignature {
		if columnPresent(columns, col) {
			result.NonPOMatches++
		}
	}
	for _, kw := range chemicalKeywords {
		if HasAnyColumn(columns, kw) {
			result.ChemicalMatches++
		}
	}

	// 关键词类别命中达到 3 个即判 Chemical Spend，不看特征列计数
	if result.ChemicalMatches >= 3 {
		result.ReportType = model.ReportTypeChemicalSpend
		return result
	}
	if result.NonPOMatches > result.POLineMatches {
		result.ReportType = model.ReportTypeNonPOInvoice
	}
	return result
}

func columnPresent(columns []string, name string) bool {
	target := NormalizeColumnName(name)
	for _, col := range columns {
		if NormalizeColumnName(col) == target {
			return true
		}
	}
	return false
}
