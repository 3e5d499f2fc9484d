package config

import (
	"strings"
	"testing"
)

func validSession() Session {
	s := Session{
		Job:      "sales_agg_bench",
		Variants: []Variant{{Name: "go", Command: []string{"./bin/transform"}}},
	}
	s.fillDefaults()
	return s
}

func issuePaths(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, iss := range issues {
		out[i] = iss.Path
	}
	return out
}

func hasIssueAt(issues []Issue, path string) bool {
	for _, iss := range issues {
		if iss.Path == path {
			return true
		}
	}
	return false
}

func TestValidateCleanSession(t *testing.T) {
	if issues := Validate(validSession()); len(issues) != 0 {
		t.Fatalf("issues = %v", issuePaths(issues))
	}
}

func TestValidateEmptyJob(t *testing.T) {
	s := validSession()
	s.Job = "  "
	issues := Validate(s)
	if !hasIssueAt(issues, "job") || !HasErrors(issues) {
		t.Fatalf("issues = %v", issuePaths(issues))
	}
}

func TestValidateVariants(t *testing.T) {
	s := validSession()
	s.Variants = nil
	if issues := Validate(s); !hasIssueAt(issues, "variants") {
		t.Fatalf("issues = %v", issuePaths(issues))
	}

	s = validSession()
	s.Variants = []Variant{
		{Name: "go", Command: []string{"a"}},
		{Name: "go", Command: []string{"b"}},
	}
	if issues := Validate(s); !hasIssueAt(issues, "variants[1].name") {
		t.Fatalf("duplicate name not flagged: %v", issuePaths(issues))
	}

	s = validSession()
	s.Variants = []Variant{{Name: "go"}}
	if issues := Validate(s); !hasIssueAt(issues, "variants[0].command") {
		t.Fatalf("empty command not flagged: %v", issuePaths(issues))
	}
}

func TestValidateLoadSection(t *testing.T) {
	s := validSession()
	// Kind empty: load disabled, no issues expected from the section.
	if issues := Validate(s); len(issues) != 0 {
		t.Fatalf("issues = %v", issuePaths(issues))
	}

	s.Load = Load{Kind: "sqlite", BatchSize: DefaultBatchSize}
	issues := Validate(s)
	if !hasIssueAt(issues, "load.dsn") || !hasIssueAt(issues, "load.table_prefix") {
		t.Fatalf("missing dsn/table_prefix not flagged: %v", issuePaths(issues))
	}

	s.Load = Load{Kind: "oracle", DSN: "x", TablePrefix: "t", BatchSize: 1}
	issues = Validate(s)
	if HasErrors(issues) {
		t.Fatalf("unknown kind should be a warning only: %v", issuePaths(issues))
	}
	if !hasIssueAt(issues, "load.kind") {
		t.Fatalf("unknown kind not flagged: %v", issuePaths(issues))
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "rows", Message: "must be > 0"}
	if got := iss.Error(); !strings.Contains(got, "rows") || !strings.Contains(got, "error") {
		t.Fatalf("Error() = %q", got)
	}
}

func TestValidateSingleRunWarning(t *testing.T) {
	s := validSession()
	s.Runs = 1
	issues := Validate(s)
	if HasErrors(issues) {
		t.Fatalf("runs=1 should not be an error: %v", issuePaths(issues))
	}
	if !hasIssueAt(issues, "runs") {
		t.Fatalf("runs=1 warning missing: %v", issuePaths(issues))
	}
}
