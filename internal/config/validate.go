package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Session.
//
// Path is a dotted path into the config (e.g. "load.kind", "variants[1].name").
// Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is of error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Session. It does not mutate the
// session; callers decide whether warnings are fatal.
func Validate(s Session) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it names report files and metric labels",
		})
	}
	if s.Rows <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "rows",
			Message:  fmt.Sprintf("rows must be > 0, got %d", s.Rows),
		})
	}
	if s.Runs <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "runs",
			Message:  fmt.Sprintf("runs must be > 0, got %d", s.Runs),
		})
	}
	if s.NumProducts <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "num_products",
			Message:  fmt.Sprintf("num_products must be > 0, got %d", s.NumProducts),
		})
	}
	if s.Runs == 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "runs",
			Message:  "a single run gives no variance signal; 3 or more is typical",
		})
	}

	issues = append(issues, validateVariants(s.Variants)...)
	issues = append(issues, validateLoad(s.Load)...)
	return issues
}

func validateVariants(vs []Variant) []Issue {
	var issues []Issue
	if len(vs) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "variants",
			Message:  "at least one variant is required",
		})
		return issues
	}

	seen := map[string]struct{}{}
	for i, v := range vs {
		path := fmt.Sprintf("variants[%d]", i)
		if strings.TrimSpace(v.Name) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  "variant name must not be empty",
			})
		} else if _, dup := seen[v.Name]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  fmt.Sprintf("duplicate variant name %q", v.Name),
			})
		} else {
			seen[v.Name] = struct{}{}
		}
		if len(v.Command) == 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".command",
				Message:  "variant command must not be empty",
			})
		}
	}
	return issues
}

func validateLoad(l Load) []Issue {
	var issues []Issue
	if l.Kind == "" {
		return issues // loading disabled
	}

	known := map[string]struct{}{"sqlite": {}, "postgres": {}, "mysql": {}}
	if _, ok := known[l.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "load.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", l.Kind),
		})
	}
	if strings.TrimSpace(l.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.dsn",
			Message:  "load requires a non-empty dsn",
		})
	}
	if strings.TrimSpace(l.TablePrefix) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.table_prefix",
			Message:  "load requires a non-empty table_prefix",
		})
	}
	if l.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "load.batch_size",
			Message:  fmt.Sprintf("batch_size must be >= 0, got %d", l.BatchSize),
		})
	}
	return issues
}
