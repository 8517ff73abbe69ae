package statistics

import (
	"fmt"
	"strings"

	"github.com/eurekaffeine/PokedexImages/internal/converter"
)

// Summary aggregates the outcomes of a single conversion run.
type Summary struct {
	TotalFound int
	Converted  int
	Skipped    int
	Errors     int

	BytesIn  int64
	BytesOut int64

	Failures []Failure
}

// Failure records one file that could not be converted.
type Failure struct {
	Path   string
	Stage  string
	Reason string
}

// Summarize folds a sequence of per-file results into a Summary. It holds
// no state of its own; calling it twice on the same slice yields the same
// value.
func Summarize(results []converter.Result) Summary {
	s := Summary{TotalFound: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case converter.OutcomeConverted:
			s.Converted++
			s.BytesIn += r.OriginalSize
			s.BytesOut += r.ConvertedSize
		case converter.OutcomeSkipped:
			s.Skipped++
		case converter.OutcomeFailed:
			s.Errors++
			reason := r.Message
			if r.Error != nil {
				reason = r.Error.Error()
			}
			s.Failures = append(s.Failures, Failure{
				Path:   r.InputPath,
				Stage:  r.Stage,
				Reason: reason,
			})
		}
	}
	return s
}

// Format returns the end-of-run report.
func (s Summary) Format() string {
	line := strings.Repeat("=", 50)
	var b strings.Builder
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "CONVERSION SUMMARY")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Total PNG files found: %d\n", s.TotalFound)
	fmt.Fprintf(&b, "Successfully converted: %d\n", s.Converted)
	fmt.Fprintf(&b, "Skipped (WebP exists): %d\n", s.Skipped)
	fmt.Fprintf(&b, "Errors: %d\n", s.Errors)
	if s.BytesIn > 0 && s.BytesOut > 0 {
		saved := float64(s.BytesIn-s.BytesOut) * 100 / float64(s.BytesIn)
		fmt.Fprintf(&b, "Space saved: %s -> %s (%.1f%%)\n",
			formatBytes(s.BytesIn), formatBytes(s.BytesOut), saved)
	}
	b.WriteString(line)
	return b.String()
}

// FormatErrors returns a breakdown of failed files, at most ten entries.
func (s Summary) FormatErrors() string {
	if len(s.Failures) == 0 {
		return "No errors occurred during conversion"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Errors (%d total):\n", len(s.Failures))
	for i, f := range s.Failures {
		if i >= 10 {
			fmt.Fprintf(&b, "  ... and %d more errors\n", len(s.Failures)-10)
			break
		}
		fmt.Fprintf(&b, "  [%s] %s - %s\n", f.Stage, f.Path, f.Reason)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatBytes returns a human-readable string for a byte count.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
