package kpi

import (
	"testing"
	"time"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

func sampleTable() *model.Table {
	return model.NewTable(
		[]string{"Order_ID", "Date", "Total_Cost", "Region"},
		[][]string{
			{"A-1", "2025-01-01", "100.00", "South"},
			{"A-2", "2025-01-11", "200.00", "South"},
			{"A-3", "2025-01-21", "300.00", "West"},
		},
	)
}

func findKPI(t *testing.T, res Result, name, column string) KPI {
	t.Helper()
	for _, k := range res.KPIs {
		if k.Name == name && k.Column == column {
			return k
		}
	}
	t.Fatalf("kpi %s/%s not found in %+v", name, column, res.KPIs)
	return KPI{}
}

func TestGenerate_FullSet(t *testing.T) {
	t.Parallel()

	g := NewGenerator(time.Minute)
	res := g.Generate(sampleTable())
	if res.Degraded {
		t.Fatalf("should not degrade under a minute budget")
	}
	if got := findKPI(t, res, "record_count", "").Value; got != 3 {
		t.Fatalf("record count got %v", got)
	}
	if got := findKPI(t, res, "sum", "Total_Cost").Value; got != 600 {
		t.Fatalf("sum got %v", got)
	}
	if got := findKPI(t, res, "average", "Total_Cost").Value; got != 200 {
		t.Fatalf("average got %v", got)
	}
	if got := findKPI(t, res, "date_span_days", "Date").Value; got != 20 {
		t.Fatalf("span got %v", got)
	}
	if got := findKPI(t, res, "distinct", "Region").Value; got != 2 {
		t.Fatalf("distinct got %v", got)
	}
}

func TestGenerate_ColumnKinds(t *testing.T) {
	t.Parallel()

	g := NewGenerator(time.Minute)
	res := g.Generate(sampleTable())
	want := map[string]ColumnKind{
		"Order_ID":   KindID,
		"Date":       KindDate,
		"Total_Cost": KindNumeric,
		"Region":     KindCategorical,
	}
	for col, kind := range want {
		if got := res.ColumnKind[col]; got != kind {
			t.Fatalf("%s want %s got %s", col, kind, got)
		}
	}
}

// 时钟走到预算 40% 之后跳过高开销指标
func TestGenerate_DegradesPastBudget(t *testing.T) {
	t.Parallel()

	g := NewGenerator(100 * time.Millisecond)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	g.now = func() time.Time {
		calls++
		// 每次取时刻前进 25ms，第三次查看预算时已超过 40%
		return clock.Add(time.Duration(calls) * 25 * time.Millisecond)
	}

	res := g.Generate(sampleTable())
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	for _, k := range res.KPIs {
		if k.Name == "distinct" || k.Name == "top_share" {
			t.Fatalf("expensive kpi %s should be skipped", k.Name)
		}
	}
}

// 超过 80% 预算时只保留基础计数
func TestGenerate_HeavyDegrade(t *testing.T) {
	t.Parallel()

	g := NewGenerator(10 * time.Millisecond)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	g.now = func() time.Time {
		calls++
		return clock.Add(time.Duration(calls) * 20 * time.Millisecond)
	}

	res := g.Generate(sampleTable())
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	for _, k := range res.KPIs {
		if k.Name != "record_count" && k.Name != "column_count" {
			t.Fatalf("unexpected kpi in heavy degrade: %s", k.Name)
		}
	}
}
