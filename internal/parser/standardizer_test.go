package parser

import (
	"testing"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

var testNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestStandardize_NonPOInvoice(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Invoice: Type", "Dimension3 Description", "Dimension4 Description", "Dimension5 Description", "Net Amount", "Supplier: Name"},
		[][]string{
			{"INV-1001", "2025-03-19", "Invoice", "Chemical", "South Region", "Hawkins Inc", "$1,892.50", "Hawkins Inc"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	if len(res.Records) != 1 {
		t.Fatalf("want 1 record got %d", len(res.Records))
	}
	rec := res.Records[0]
	if !rec.Date.Equal(time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date got %v", rec.Date)
	}
	if rec.Facility != "Hawkins Inc" {
		t.Fatalf("facility got %q", rec.Facility)
	}
	if rec.TotalCost != 1892.50 {
		t.Fatalf("total cost got %v", rec.TotalCost)
	}
	if rec.Chemical != "Chemical" {
		t.Fatalf("chemical got %q", rec.Chemical)
	}
	if rec.Region != "South" {
		t.Fatalf("region got %q", rec.Region)
	}
	if rec.POType != model.POTypeNonPO {
		t.Fatalf("po type got %q", rec.POType)
	}
}

// 缺 Dimension5 Description 时设施名回退到 Supplier: Name
func TestStandardize_FacilityFallsBackToSupplierName(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Created Date", "Supplier: Name", "Net Amount", "Dimension3 Description", "Dimension4 Description"},
		[][]string{
			{"2025-03-19", "Hawkins Inc", "1892.50", "Chemical", "South : Georgia : Sinclair"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	rec := res.Records[0]
	if rec.Facility != "Hawkins Inc" {
		t.Fatalf("facility got %q", rec.Facility)
	}
	if rec.TotalCost != 1892.50 {
		t.Fatalf("total cost got %v", rec.TotalCost)
	}
	if rec.Region != "South" {
		t.Fatalf("region got %q", rec.Region)
	}
	if rec.POType != model.POTypeNonPO {
		t.Fatalf("po type got %q", rec.POType)
	}
}

// 供应商相关列全缺时设施名填 Unknown Supplier
func TestStandardize_FacilityDefaultsToUnknownSupplier(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Net Amount"},
		[][]string{
			{"INV-5", "2025-04-02", "25.00"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	if got := res.Records[0].Facility; got != "Unknown Supplier" {
		t.Fatalf("facility default got %q", got)
	}
}

// PO Line Detail 没有总价列，总价 = 单价 × Connected 数量
func TestStandardize_POLineComputedTotal(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Order Identifier", "Purchase Order: Confirmation Date", "Purchase Order: Supplier", "Item Description", "Confirmed Unit Price", "Connected", "Purchase Requisition: Our Reference", "Type"},
		[][]string{
			{"PO-2001", "2025-02-10", "Brenntag", "Sodium Hypochlorite 12.5%", "2.75", "200", "Southwest: Ops", "Catalog"},
		},
	)
	res := Standardize(tbl, model.ReportTypePOLineDetail, testNow)
	rec := res.Records[0]
	if rec.TotalCost != 550.0 {
		t.Fatalf("want 550 got %v", rec.TotalCost)
	}
	if rec.Quantity != 200 {
		t.Fatalf("quantity got %v", rec.Quantity)
	}
	if rec.UnitPrice != 2.75 {
		t.Fatalf("unit price got %v", rec.UnitPrice)
	}
	if rec.Region != "Southwest" {
		t.Fatalf("region got %q", rec.Region)
	}
	if rec.Category != "Disinfectant" {
		t.Fatalf("category got %q", rec.Category)
	}
}

func TestStandardize_CreditParentheses(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Invoice: Type", "Dimension3 Description", "Dimension4 Description", "Dimension5 Description", "Net Amount", "Supplier: Name"},
		[][]string{
			{"INV-2", "2025-01-05", "Credit", "Polymer", "West", "Plant A", "$(500.00)", "Univar"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	rec := res.Records[0]
	if rec.TotalCost != -500.0 {
		t.Fatalf("want -500 got %v", rec.TotalCost)
	}
	if !rec.IsCredit() {
		t.Fatalf("expected credit record")
	}
	if res.CreditCount != 1 {
		t.Fatalf("credit count got %d", res.CreditCount)
	}
}

// 输出表必须是输入表的严格超集：原始列一律保留
func TestStandardize_PreservesOriginalColumns(t *testing.T) {
	t.Parallel()

	original := []string{"Invoice: Number", "Invoice: Created Date", "Net Amount", "Extra Column"}
	tbl := model.NewTable(original, [][]string{
		{"INV-9", "2025-04-01", "10.00", "keep me"},
	})
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	for _, col := range original {
		if !res.Table.HasColumn(col) {
			t.Fatalf("original column %q dropped", col)
		}
	}
	if got := res.Table.Cell("Extra Column", 0); got != "keep me" {
		t.Fatalf("original cell mutated: %q", got)
	}
	for _, col := range []string{model.ColDate, model.ColFacility, model.ColChemical, model.ColOrderID, model.ColTotalCost, model.ColRegion, model.ColPOType, model.ColCategory} {
		if !res.Table.HasColumn(col) {
			t.Fatalf("standard column %q missing", col)
		}
	}
}

func TestStandardize_NetSuiteRenames(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Vendor", "Date Created", "Bill # (Supplier Invoice #)", "Amount", "Memo/Description", "Department: Name"},
		[][]string{
			{"Hawkins Inc", "3/19/2025", "BILL-77", "450.00", "Chemical - Ferric Chloride", "Tampa Plant"},
		},
	)
	res := Standardize(tbl, model.ReportTypeChemicalSpend, testNow)
	rec := res.Records[0]
	if rec.Supplier != "Hawkins Inc" {
		t.Fatalf("supplier got %q", rec.Supplier)
	}
	if rec.OrderID != "BILL-77" {
		t.Fatalf("order id got %q", rec.OrderID)
	}
	if rec.Chemical != "Ferric Chloride" {
		t.Fatalf("chemical got %q", rec.Chemical)
	}
	if rec.Category != "Coagulant" {
		t.Fatalf("category got %q", rec.Category)
	}
	if rec.POType != model.POTypeNonPO {
		t.Fatalf("po type got %q", rec.POType)
	}
	if rec.Region != "South" {
		t.Fatalf("region got %q", rec.Region)
	}
}

// Bill Date 优先作为日期来源，多余的 Date Created 丢弃
func TestStandardize_NetSuiteBillDatePriority(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Vendor Name", "Bill Date", "Date Created", "Amount", "Rate"},
		[][]string{
			{"Univar", "2025-02-01", "2025-01-15", "90.00", "4.50"},
		},
	)
	res := Standardize(tbl, model.ReportTypeChemicalSpend, testNow)
	rec := res.Records[0]
	if !rec.Date.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date got %v", rec.Date)
	}
	if rec.UnitPrice != 4.50 {
		t.Fatalf("unit price got %v", rec.UnitPrice)
	}
	if res.Table.HasColumn("Date Created") {
		t.Fatalf("Date Created should be dropped")
	}
}

// 缺少 Order_ID 来源时填 Unknown
func TestStandardize_MissingOrderID(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Created Date", "Net Amount"},
		[][]string{
			{"2025-05-02", "33.00"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	if got := res.Records[0].OrderID; got != "Unknown" {
		t.Fatalf("want Unknown got %q", got)
	}
}

// 无法解析的日期取处理当日
func TestStandardize_BadDateFallsBack(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Net Amount"},
		[][]string{
			{"INV-3", "not a date", "5.00"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	if !res.Records[0].Date.Equal(testNow) {
		t.Fatalf("want fallback %v got %v", testNow, res.Records[0].Date)
	}
}
