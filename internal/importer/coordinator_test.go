package importer

import (
	"testing"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/parser"
	"github.com/InframarkPro/InfraChemTracker-sub000/internal/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Store) {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewCoordinator(s, parser.PolicyLenient), s
}

var nonPOCSV = []byte("Invoice: Number,Invoice: Created Date,Invoice: Type,Dimension3 Description,Dimension4 Description,Dimension5 Description,Net Amount,Supplier: Name\n" +
	"INV-1,2025-03-19,Invoice,Chemical,South Region,Hawkins Inc,\"$1,892.50\",Hawkins Inc\n" +
	"INV-2,2025-03-20,Credit,Polymer,West,Plant A,($500.00),Univar\n")

func TestImport_EndToEnd(t *testing.T) {
	t.Parallel()
	c, s := newTestCoordinator(t)

	result, err := c.Run(ImportOptions{
		Filename:   "march_invoices.csv",
		Data:       nonPOCSV,
		ReportName: "march",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ReportType != model.ReportTypeNonPOInvoice {
		t.Fatalf("want non_po_invoice got %s", result.ReportType)
	}
	if result.RecordCount != 2 {
		t.Fatalf("want 2 records got %d", result.RecordCount)
	}
	if result.CreditCount != 1 {
		t.Fatalf("want 1 credit got %d", result.CreditCount)
	}

	records, err := s.LoadRecords(result.Meta)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if records[0].TotalCost != 1892.50 || records[1].TotalCost != -500 {
		t.Fatalf("unexpected costs: %v %v", records[0].TotalCost, records[1].TotalCost)
	}
	if records[0].Region != "South" {
		t.Fatalf("region got %q", records[0].Region)
	}
}

func TestImport_ProgressEvents(t *testing.T) {
	t.Parallel()
	c, _ := newTestCoordinator(t)

	seen := map[string]bool{}
	for event := range c.Import(ImportOptions{Filename: "x.csv", Data: nonPOCSV}) {
		seen[event.Type] = true
	}
	for _, typ := range []string{"start", "step", "done"} {
		if !seen[typ] {
			t.Fatalf("missing %s event", typ)
		}
	}
	if seen["error"] {
		t.Fatalf("unexpected error event")
	}
}

func TestImport_UnreadableFile(t *testing.T) {
	t.Parallel()
	c, _ := newTestCoordinator(t)

	if _, err := c.Run(ImportOptions{Filename: "junk.csv", Data: []byte("no separators here\n")}); err == nil {
		t.Fatalf("expected error")
	}
}

// 同名报表重复导入按替换处理
func TestImport_ReplaceSemantics(t *testing.T) {
	t.Parallel()
	c, s := newTestCoordinator(t)

	if _, err := c.Run(ImportOptions{Filename: "a.csv", Data: nonPOCSV, ReportName: "same"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := c.Run(ImportOptions{Filename: "b.csv", Data: nonPOCSV, ReportName: "same"}); err != nil {
		t.Fatalf("second: %v", err)
	}
	list, err := s.ListReports()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want 1 report got %d", len(list))
	}
	if list[0].OriginalFilename != "b.csv" {
		t.Fatalf("survivor got %q", list[0].OriginalFilename)
	}
}

func TestImport_ForcedType(t *testing.T) {
	t.Parallel()
	c, _ := newTestCoordinator(t)

	result, err := c.Run(ImportOptions{
		Filename:  "data.csv",
		Data:      nonPOCSV,
		ForceType: model.ReportTypeChemicalSpend,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ReportType != model.ReportTypeChemicalSpend {
		t.Fatalf("want forced type got %s", result.ReportType)
	}
}
