// =============================================================================
// SC Allocation List - Validation Reporting
// =============================================================================
//
// This module collects row-level problems into a report. Two kinds of problem
// are tracked:
//   - transform : the row could not be turned into a record (missing account
//                 identifier, bad balance, bad date). The row is skipped.
//   - rule      : the record was built but breaks a business rule. Rule
//                 violations are data, not errors; they never block export.
//
// ERROR HANDLING:
//   - Problems are collected, not thrown
//   - Each problem carries the 1-based source row number
//   - Display is capped; the remainder is summarised as a count
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Kind classifies an Issue.
type Kind string

const (
	// KindTransform marks a row that could not be transformed.
	KindTransform Kind = "transform"

	// KindRule marks a business-rule violation on a transformed record.
	KindRule Kind = "rule"
)

// Issue is a single row-level problem.
type Issue struct {
	// Row is the 1-based row number in the source file.
	Row int

	// Kind is the issue category.
	Kind Kind

	// Message is the human-readable description.
	Message string
}

// String renders the issue as "Row N: message".
func (i Issue) String() string {
	if i.Kind == KindTransform {
		return fmt.Sprintf("Row %d: Failed to transform - %s", i.Row, i.Message)
	}
	return fmt.Sprintf("Row %d: %s", i.Row, i.Message)
}

// TransformIssue records a row that failed transformation.
func TransformIssue(row int, err error) Issue {
	return Issue{Row: row, Kind: KindTransform, Message: err.Error()}
}

// RuleIssues converts the violations of one record into issues.
func RuleIssues(row int, record domain.AllocationRecord) []Issue {
	violations := record.Validate()
	if len(violations) == 0 {
		return nil
	}
	issues := make([]Issue, len(violations))
	for i, v := range violations {
		issues[i] = Issue{Row: row, Kind: KindRule, Message: v}
	}
	return issues
}

// =============================================================================
// VALIDATION REPORT
// =============================================================================

// Report is the result of validating every row of a spreadsheet.
type Report struct {
	// Total is the number of data rows examined.
	Total int

	// ValidCount is the number of rows that transformed and passed every rule.
	ValidCount int

	// Issues holds every problem found, in row order.
	Issues []Issue
}

// IsValid reports whether no issue was found.
func (r *Report) IsValid() bool {
	return len(r.Issues) == 0
}

// Add appends issues to the report.
func (r *Report) Add(issues ...Issue) {
	r.Issues = append(r.Issues, issues...)
}

// Count returns the number of issues of the given kind.
func (r *Report) Count(kind Kind) int {
	n := 0
	for _, i := range r.Issues {
		if i.Kind == kind {
			n++
		}
	}
	return n
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatIssues renders at most limit issues, one per line, followed by a
// "... and N more errors" line when the list was truncated. A limit of zero or
// less shows everything.
func FormatIssues(issues []Issue, limit int) string {
	if len(issues) == 0 {
		return ""
	}

	shown := issues
	if limit > 0 && len(issues) > limit {
		shown = issues[:limit]
	}

	var builder strings.Builder
	for _, issue := range shown {
		builder.WriteString(issue.String())
		builder.WriteString("\n")
	}
	if rest := len(issues) - len(shown); rest > 0 {
		fmt.Fprintf(&builder, "... and %d more errors\n", rest)
	}

	return builder.String()
}
