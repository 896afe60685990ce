package model

import "testing"

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"critical": SeverityCritical,
		"high":     SeverityHigh,
		"medium":   SeverityMedium,
		"low":      SeverityLow,
		"":         SeverityLow,
		"bogus":    SeverityLow,
	}
	for in, want := range cases {
		if got := ParseSeverity(in); got != want {
			t.Errorf("ParseSeverity(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if SeverityRank(ordered[i]) <= SeverityRank(ordered[i-1]) {
			t.Fatalf("%s should rank above %s", ordered[i], ordered[i-1])
		}
	}
	if !SeverityGTE(SeverityHigh, SeverityHigh) {
		t.Error("GTE must be reflexive")
	}
	if SeverityGTE(SeverityMedium, SeverityHigh) {
		t.Error("medium is not >= high")
	}
}
