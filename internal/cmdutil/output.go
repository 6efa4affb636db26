package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opmodel/tplmigrate/internal/config"
	"github.com/opmodel/tplmigrate/internal/migrate"
	"github.com/opmodel/tplmigrate/internal/output"
)

// PrintReport writes the run report to w. Machine-readable formats carry
// the full report; the text format carries a summary, a failure table and
// the operator's next steps.
func PrintReport(w io.Writer, report *migrate.Report, format output.OutputFormat, nextSteps []string) error {
	if format != output.FormatText {
		return output.Encode(w, format, report)
	}

	var b strings.Builder

	if report.Discovered == 0 {
		b.WriteString(output.FormatCheckmark("No template files found to convert"))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	summary := fmt.Sprintf("Converted %d of %d template files", report.ConvertedCount(), report.Discovered)
	if report.HasFailures() || report.Interrupted {
		b.WriteString(output.FormatCross(output.StyleSummary.Render(summary)))
	} else {
		b.WriteString(output.FormatCheckmark(output.StyleSummary.Render(summary)))
	}
	b.WriteString("\n")

	if n := report.UpdatedFiles(); n > 0 {
		fmt.Fprintf(&b, "  Updated imports in %s\n", plural(n, "file"))
	}
	if report.Interrupted {
		b.WriteString("  Run interrupted; remaining templates were not processed\n")
	}
	for _, c := range report.Stranded {
		fmt.Fprintf(&b, "  %s written but %s could not be deleted\n",
			output.StyleNoun.Render(c.Module), output.StyleNoun.Render(c.Template))
	}

	if entries := treeEntries(report); len(entries) > 0 {
		b.WriteString("\n")
		b.WriteString(output.RenderResultTree(report.Root, entries))
	}

	if rows := failureRows(report); len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(output.RenderFailureTable(rows))
		b.WriteString("\n")
	}

	if report.ConvertedCount() > 0 && len(nextSteps) > 0 {
		b.WriteString("\nNext steps:\n")
		for i, step := range nextSteps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// treeEntries lists generated modules and failed templates.
func treeEntries(report *migrate.Report) []output.TreeEntry {
	imports := make(map[string]int)
	for _, u := range report.Updated {
		imports[u.Template] += u.Count
	}

	entries := make([]output.TreeEntry, 0, len(report.Converted)+len(report.Failures))
	for _, c := range report.Converted {
		e := output.TreeEntry{Path: c.Module, Status: output.StatusConverted}
		if n := imports[c.Template]; n > 0 {
			e.Note = plural(n, "import") + " updated"
		}
		entries = append(entries, e)
	}
	for _, f := range report.Failures {
		entries = append(entries, output.TreeEntry{Path: f.Path, Status: output.StatusFailed, Note: string(f.Stage)})
	}
	return entries
}

func failureRows(report *migrate.Report) []output.FailureRow {
	rows := make([]output.FailureRow, 0, len(report.Failures)+len(report.Warnings))
	for _, f := range report.Failures {
		rows = append(rows, output.FailureRow{Path: f.Path, Stage: string(f.Stage), Error: f.Message})
	}
	for _, w := range report.Warnings {
		rows = append(rows, output.FailureRow{Path: w.Path, Stage: string(w.Stage) + " (warning)", Error: w.Message})
	}
	return rows
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// PrintValidationError prints a config validation error in a user-friendly
// format: a short summary line, then one line per invalid field.
func PrintValidationError(msg string, err error) {
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		output.Error(fmt.Sprintf("%s: %s", msg, plural(len(verrs), "error")))
		var b strings.Builder
		for i := range verrs {
			b.WriteString("  ")
			if verrs[i].Field != "" {
				b.WriteString(output.StyleNoun.Render(verrs[i].Field))
				b.WriteString(": ")
			}
			b.WriteString(verrs[i].Message)
			b.WriteString("\n")
		}
		output.Details(b.String())
		return
	}
	output.Error(msg, "error", err)
}
