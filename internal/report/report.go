// Package report renders a comparison result as a markdown migration report
// and derives the gating exit code.
//
// Rendering is a pure function of the result, the labels and the supplied
// generation time: building the text touches no clock and no filesystem, so
// identical inputs render byte-identically. Writing the report to a file is
// the only side effect, and only when the caller asks for it.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"apicompat/internal/diff"
)

// Report holds everything needed to render one comparison.
type Report struct {
	OldLabel    string
	NewLabel    string
	GeneratedAt time.Time
	Result      diff.Result
}

// Generate builds a report for res comparing oldLabel to newLabel. The
// caller supplies the generation time; the CLI passes time.Now(), tests pass
// a fixed instant.
func Generate(res diff.Result, oldLabel, newLabel string, at time.Time) *Report {
	return &Report{
		OldLabel:    oldLabel,
		NewLabel:    newLabel,
		GeneratedAt: at,
		Result:      res,
	}
}

// ExitCode returns the gating signal for the calling process: 1 if any
// CRITICAL finding exists, 0 otherwise.
func (r *Report) ExitCode() int {
	if r.Result.HasCritical() {
		return 1
	}
	return 0
}

// Recommendation summarizes the verdict in one line.
func (r *Report) Recommendation() string {
	counts := r.Result.CountBySeverity()
	switch {
	case counts[diff.Critical] > 0:
		return "block: critical breaking changes detected, do not release"
	case counts[diff.High] > 0:
		return "review: high-severity changes detected, consider a major version bump"
	default:
		return "safe to release: no breaking changes detected"
	}
}

// Render builds the markdown report: header, summary counts, itemized
// findings in descending severity order, recommendation.
func (r *Report) Render() string {
	var b strings.Builder
	counts := r.Result.CountBySeverity()

	b.WriteString("# API Migration Report\n\n")
	b.WriteString(fmt.Sprintf("- **From**: %s\n", r.OldLabel))
	b.WriteString(fmt.Sprintf("- **To**: %s\n", r.NewLabel))
	b.WriteString(fmt.Sprintf("- **Generated**: %s\n\n", r.GeneratedAt.UTC().Format(time.RFC3339)))

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("Total breaking changes: %d\n\n", len(r.Result.Changes)))
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, sev := range diff.Severities {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", sev, counts[sev]))
	}
	b.WriteString("\n")

	for _, sev := range diff.Severities {
		if counts[sev] == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("## %s\n\n", sev))
		for _, c := range r.Result.Changes {
			if c.Severity != sev {
				continue
			}
			b.WriteString(fmt.Sprintf("- %s (`%s`)\n", c.Description, c.Path))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendation\n\n")
	b.WriteString(r.Recommendation() + "\n")
	return b.String()
}

// WriteFile writes the rendered report to path.
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
