package model

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func SeverityRank(s Severity) int {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[s]
}

func SeverityGTE(a, b Severity) bool {
	return SeverityRank(a) >= SeverityRank(b)
}

type RuleMeta struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Severity   Severity `json:"severity"`
	CWE        string   `json:"cwe,omitempty"`
	References []string `json:"references,omitempty"`
}

type Finding struct {
	RuleID      string   `json:"ruleId"`
	Severity    Severity `json:"severity"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	API         string   `json:"api"`
	Message     string   `json:"message"`
	Snippet     string   `json:"snippet,omitempty"`
	Fingerprint string   `json:"fingerprint"`
}

// WarnKind classifies non-fatal parse problems. A warning never aborts
// processing of the current or subsequent files.
type WarnKind string

const (
	WarnUnterminatedComment WarnKind = "unterminated-comment"
	WarnUnbalancedParens    WarnKind = "unbalanced-parens"
	WarnBadEscape           WarnKind = "bad-escape"
)

type Warning struct {
	Kind   WarnKind `json:"kind"`
	Line   int      `json:"line"`
	Detail string   `json:"detail,omitempty"`
}

// FileResult is the per-file output of the pipeline. A file that could not
// be decoded carries an Error note and an empty finding set; it is never
// silently dropped.
type FileResult struct {
	File     string    `json:"file"`
	Findings []Finding `json:"findings"`
	Warnings []Warning `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type ScanRequest struct {
	Path       string
	ConfigPath string
	Workers    int
	Baseline   string
}

type ScanResult struct {
	RunID    string        `json:"runId"`
	Files    []FileResult  `json:"files"`
	Findings []Finding     `json:"findings"`
	Elapsed  time.Duration `json:"elapsed"`
}
