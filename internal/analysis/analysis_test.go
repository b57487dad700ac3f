package analysis

import (
	"testing"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

var sampleRecords = []model.Record{
	{Date: day(1), Facility: "Plant A", Supplier: "Hawkins", Chemical: "Chlorine", Category: "Disinfectant", Region: "South", POType: model.POTypeCatalog, TotalCost: 100, UnitPrice: 2, Quantity: 50},
	{Date: day(5), Facility: "Plant A", Supplier: "Univar", Chemical: "Polymer", Category: "Coagulant", Region: "South", POType: model.POTypeNonPO, TotalCost: 300, UnitPrice: 6, Quantity: 50},
	{Date: day(20), Facility: "Plant B", Supplier: "Hawkins", Chemical: "Chlorine", Category: "Disinfectant", Region: "West", POType: model.POTypeCatalog, TotalCost: -50, Quantity: 10},
	{Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Facility: "Plant B", Supplier: "Brenntag", Chemical: "Alum", Category: "Coagulant", Region: "West", POType: model.POTypeFreeText, TotalCost: 200, UnitPrice: 4, Quantity: 50},
}

func TestFilter_Empty(t *testing.T) {
	t.Parallel()

	got := Filter{}.Apply(sampleRecords)
	if len(got) != len(sampleRecords) {
		t.Fatalf("empty filter must pass everything, got %d", len(got))
	}
}

func TestFilter_DateRange(t *testing.T) {
	t.Parallel()

	f := Filter{From: day(2), To: day(31)}
	got := f.Apply(sampleRecords)
	if len(got) != 2 {
		t.Fatalf("want 2 got %d", len(got))
	}
}

func TestFilter_Combined(t *testing.T) {
	t.Parallel()

	f := Filter{
		Facilities: []string{"plant a"},
		POTypes:    []string{model.POTypeCatalog},
	}
	got := f.Apply(sampleRecords)
	if len(got) != 1 {
		t.Fatalf("want 1 got %d", len(got))
	}
	if got[0].Chemical != "Chlorine" || got[0].TotalCost != 100 {
		t.Fatalf("unexpected record: %+v", got[0])
	}
}

func TestFilter_Region(t *testing.T) {
	t.Parallel()

	got := Filter{Regions: []string{"West"}}.Apply(sampleRecords)
	if len(got) != 2 {
		t.Fatalf("want 2 got %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleRecords)
	if s.RecordCount != 4 {
		t.Fatalf("record count got %d", s.RecordCount)
	}
	if s.TotalSpend != 550 {
		t.Fatalf("total spend got %v", s.TotalSpend)
	}
	if s.CreditCount != 1 || s.CreditTotal != -50 {
		t.Fatalf("credits got %d %v", s.CreditCount, s.CreditTotal)
	}
	if s.AvgUnitPrice != 4 {
		t.Fatalf("avg unit price got %v", s.AvgUnitPrice)
	}
	if s.FacilityCount != 2 || s.SupplierCount != 3 || s.ChemicalCount != 3 {
		t.Fatalf("counts got %d %d %d", s.FacilityCount, s.SupplierCount, s.ChemicalCount)
	}
}

func TestSummarize_Ordering(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleRecords)
	if s.ByFacility[0].Name != "Plant A" || s.ByFacility[0].Amount != 400 {
		t.Fatalf("facility ordering: %+v", s.ByFacility)
	}
	if len(s.ByMonth) != 2 || s.ByMonth[0].Name != "2025-03" || s.ByMonth[1].Name != "2025-04" {
		t.Fatalf("month ordering: %+v", s.ByMonth)
	}
	if s.ByMonth[0].Amount != 350 {
		t.Fatalf("march total got %v", s.ByMonth[0].Amount)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	if s.RecordCount != 0 || s.TotalSpend != 0 || s.AvgUnitPrice != 0 {
		t.Fatalf("unexpected: %+v", s)
	}
}
