package parser

import "testing"

func TestConsolidateRegion_Prefixes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"South Region":          "South",
		"Southwest Operations":  "Southwest",
		"Northwest: John Smith": "Northwest",
		"Northeast":             "Northeast",
		"Central Division":      "Central",
		"West Coast":            "West",
		"Mid-Atlantic Ops":      "Mid-Atlantic",
		"MidAtlantic":           "Mid-Atlantic",
	}
	for input, want := range cases {
		if got := ConsolidateRegion(input); got != want {
			t.Fatalf("%q want %q got %q", input, want, got)
		}
	}
}

func TestConsolidateRegion_SouthwestBeforeSouth(t *testing.T) {
	t.Parallel()

	if got := ConsolidateRegion("Southwest"); got != "Southwest" {
		t.Fatalf("want Southwest got %q", got)
	}
}

func TestConsolidateRegion_EmptyAndUnrecognized(t *testing.T) {
	t.Parallel()

	if got := ConsolidateRegion(""); got != "Unknown" {
		t.Fatalf("empty want Unknown got %q", got)
	}
	if got := ConsolidateRegion("Project Phoenix"); got != "South" {
		t.Fatalf("unrecognized want South got %q", got)
	}
}

func TestConsolidateRegion_StripsEmail(t *testing.T) {
	t.Parallel()

	if got := ConsolidateRegion("jdoe@example.com Southwest"); got != "Southwest" {
		t.Fatalf("want Southwest got %q", got)
	}
}

// 归并结果再次归并必须不变
func TestConsolidateRegion_Idempotent(t *testing.T) {
	t.Parallel()

	for _, region := range CanonicalRegions {
		if got := ConsolidateRegion(region); got != region {
			t.Fatalf("%q not idempotent, got %q", region, got)
		}
	}
}

func TestAssignRegionFromFacility(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Houston Water Treatment":  "Southwest",
		"Seattle North Plant":      "Northwest",
		"Boston Harbor Facility":   "Northeast",
		"Chicago Filtration":       "Central",
		"Los Angeles Reclamation":  "West",
		"Atlanta Wastewater":       "South",
		"Richmond Virginia Plant":  "Mid-Atlantic",
		"Generic Treatment Plant":  "South",
		"":                         "Unknown",
	}
	for input, want := range cases {
		if got := AssignRegionFromFacility(input); got != want {
			t.Fatalf("%q want %q got %q", input, want, got)
		}
	}
}

// 两字母州缩写只做整词匹配，不能被单词内部的子串误触发
func TestAssignRegionFromFacility_NoSubstringAbbrev(t *testing.T) {
	t.Parallel()

	if got := AssignRegionFromFacility("Injection Plant One"); got != "South" {
		t.Fatalf("want South got %q", got)
	}
}
