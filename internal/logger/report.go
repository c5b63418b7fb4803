package logger

import (
	"fmt"
	"time"

	"avifbatch/internal/batch"
	"avifbatch/internal/convert"
)

// Reporter renders per-file progress lines and the final batch summary. It
// is wired to the runner's outcome callback and never touches the runner's
// state.
type Reporter struct {
	console *Console
	total   int
	quiet   bool
}

// NewReporter returns a reporter for a batch of total files. With quiet set,
// per-file lines are suppressed and only the summary is rendered.
func NewReporter(console *Console, total int, quiet bool) *Reporter {
	return &Reporter{console: console, total: total, quiet: quiet}
}

// Outcome prints one progress line: `[i/total] ✓|✗ name[ - message]`.
// It is invoked synchronously by the runner as each outcome is recorded.
func (r *Reporter) Outcome(completed int, o convert.Outcome) {
	if r.quiet {
		return
	}
	if o.OK {
		r.console.Pass("[%d/%d] ✓ %s", completed, r.total, o.Filename())
		return
	}
	r.console.Fail("[%d/%d] ✗ %s - %s", completed, r.total, o.Filename(), o.Message)
}

// Summary renders the final conversion summary table, the compression
// statistics, and a recap of any failed files.
func (r *Reporter) Summary(s batch.Summary, elapsed time.Duration) {
	var sourceBytes, writtenBytes int64
	for _, o := range s.Outcomes {
		if o.OK {
			sourceBytes += o.SourceBytes
			writtenBytes += o.BytesWritten
		}
	}

	r.console.Info("Conversion summary:")

	table := r.console.NewTable([]string{"Metric", "Value"})
	table.AddRow("Total files", fmt.Sprintf("%d", s.Total))
	table.AddRow("Successful", fmt.Sprintf("%d", s.Succeeded))
	table.AddRow("Failed", fmt.Sprintf("%d", s.Failed))
	table.AddRow("Success rate", fmt.Sprintf("%.1f%%", s.SuccessRate()))
	if sourceBytes > 0 {
		table.AddRow("Original size", FormatBytes(sourceBytes))
		table.AddRow("Converted size", FormatBytes(writtenBytes))
		table.AddRow("Ratio", fmt.Sprintf("%.1f%%", float64(writtenBytes)/float64(sourceBytes)*100))
		if saved := sourceBytes - writtenBytes; saved > 0 {
			table.AddRow("Space saved", FormatBytes(saved))
		}
	}
	table.AddRow("Duration", elapsed.Round(time.Millisecond).String())
	table.Print()

	if s.Failed > 0 {
		r.console.Warn("Failed conversions:")
		for _, o := range s.Outcomes {
			if !o.OK {
				r.console.Warn("  - %s: %s", o.Filename(), o.Message)
			}
		}
	}
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
