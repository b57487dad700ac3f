package parser

import (
	"strings"
	"testing"

	"github.com/InframarkPro/InfraChemTracker-sub000/internal/model"
)

func standardizeRows(t *testing.T, rows [][]string) *StandardizeResult {
	t.Helper()
	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Net Amount", "Dimension5 Description"},
		rows,
	)
	return Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
}

func TestValidate_EmptyTable(t *testing.T) {
	t.Parallel()

	res := &StandardizeResult{Table: model.EmptyTable([]string{"A"})}
	vr := Validate(res, PolicyLenient, testNow)
	if vr.Valid {
		t.Fatalf("empty table must be rejected")
	}
}

func TestValidate_MissingRequiredColumns(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable([]string{"A"}, [][]string{{"x"}})
	vr := Validate(&StandardizeResult{Table: tbl}, PolicyLenient, testNow)
	if vr.Valid {
		t.Fatalf("missing Date/Total_Cost must be rejected")
	}
	if len(vr.Errors) != 2 {
		t.Fatalf("want 2 errors got %v", vr.Errors)
	}
}

func TestValidate_MostlyUnparseableCost(t *testing.T) {
	t.Parallel()

	res := standardizeRows(t, [][]string{
		{"I1", "2025-01-01", "abc", "P"},
		{"I2", "2025-01-02", "def", "P"},
		{"I3", "2025-01-03", "10.00", "P"},
	})
	vr := Validate(res, PolicyLenient, testNow)
	if vr.Valid {
		t.Fatalf("over half unparseable must be rejected")
	}
}

// 缺数量列、个别负数金额这类问题只告警不拒绝
func TestValidate_LenientAcceptsWithWarnings(t *testing.T) {
	t.Parallel()

	res := standardizeRows(t, [][]string{
		{"I1", "2025-01-01", "100.00", "Plant A"},
		{"I2", "2025-01-02", "(50.00)", "Plant A"},
		{"I3", "2099-12-31", "75.00", "Plant B"},
	})
	vr := Validate(res, PolicyLenient, testNow)
	if !vr.Valid {
		t.Fatalf("lenient should accept, errors: %v", vr.Errors)
	}
	if len(vr.Warnings) == 0 {
		t.Fatalf("expected warnings")
	}
	joined := strings.Join(vr.Warnings, "; ")
	if !strings.Contains(joined, "负数") {
		t.Fatalf("expected negative amount warning, got %q", joined)
	}
	if !strings.Contains(joined, "未来") {
		t.Fatalf("expected future date warning, got %q", joined)
	}
}

func TestValidate_StrictRejectsWarnings(t *testing.T) {
	t.Parallel()

	res := standardizeRows(t, [][]string{
		{"I1", "2025-01-01", "100.00", "Plant A"},
		{"I2", "2025-01-02", "(50.00)", "Plant A"},
	})
	vr := Validate(res, PolicyStrict, testNow)
	if vr.Valid {
		t.Fatalf("strict should reject coerced input")
	}
	if len(vr.Warnings) != 0 {
		t.Fatalf("strict promotes warnings to errors, got %v", vr.Warnings)
	}
}

func TestValidate_CleanStrictPasses(t *testing.T) {
	t.Parallel()

	tbl := model.NewTable(
		[]string{"Invoice: Number", "Invoice: Created Date", "Invoice: Type", "Dimension3 Description", "Dimension4 Description", "Dimension5 Description", "Net Amount", "Supplier: Name", "QTY"},
		[][]string{
			{"I1", "2025-01-01", "Invoice", "Polymer", "South", "Plant A", "100.00", "Hawkins", "5"},
			{"I2", "2025-01-02", "Invoice", "Polymer", "South", "Plant A", "110.00", "Hawkins", "6"},
		},
	)
	res := Standardize(tbl, model.ReportTypeNonPOInvoice, testNow)
	vr := Validate(res, PolicyStrict, testNow)
	if !vr.Valid {
		t.Fatalf("clean input should pass strict, errors: %v", vr.Errors)
	}
}
