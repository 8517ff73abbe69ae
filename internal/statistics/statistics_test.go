package statistics

import (
	"errors"
	"strings"
	"testing"

	"github.com/eurekaffeine/PokedexImages/internal/converter"
)

func sampleResults() []converter.Result {
	return []converter.Result{
		{InputPath: "a.png", OutputPath: "a.webp", Outcome: converter.OutcomeConverted, OriginalSize: 1000, ConvertedSize: 400},
		{InputPath: "b.png", OutputPath: "b.webp", Outcome: converter.OutcomeConverted, OriginalSize: 2000, ConvertedSize: 600},
		{InputPath: "c.png", OutputPath: "c.webp", Outcome: converter.OutcomeSkipped},
		{InputPath: "d.png", Outcome: converter.OutcomeFailed, Stage: converter.StageDecode, Error: errors.New("bad header")},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults())

	if s.TotalFound != 4 {
		t.Errorf("TotalFound = %d, want 4", s.TotalFound)
	}
	if s.Converted != 2 || s.Skipped != 1 || s.Errors != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", s.Converted, s.Skipped, s.Errors)
	}
	if s.Converted+s.Skipped+s.Errors != s.TotalFound {
		t.Error("counts do not add up to total")
	}
	if s.BytesIn != 3000 || s.BytesOut != 1000 {
		t.Errorf("bytes = %d/%d, want 3000/1000", s.BytesIn, s.BytesOut)
	}
	if len(s.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(s.Failures))
	}
	if f := s.Failures[0]; f.Path != "d.png" || f.Stage != converter.StageDecode || f.Reason != "bad header" {
		t.Errorf("unexpected failure record: %+v", f)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalFound != 0 || s.Converted != 0 || s.Skipped != 0 || s.Errors != 0 {
		t.Errorf("empty input should yield all-zero summary, got %+v", s)
	}
}

func TestSummarizeIsPure(t *testing.T) {
	results := sampleResults()
	first := Summarize(results)
	second := Summarize(results)
	if first.TotalFound != second.TotalFound || first.Converted != second.Converted ||
		first.Skipped != second.Skipped || first.Errors != second.Errors {
		t.Error("Summarize should be deterministic over the same input")
	}
}

func TestFormat(t *testing.T) {
	out := Summarize(sampleResults()).Format()

	for _, want := range []string{
		"CONVERSION SUMMARY",
		"Total PNG files found: 4",
		"Successfully converted: 2",
		"Skipped (WebP exists): 1",
		"Errors: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatErrors(t *testing.T) {
	s := Summarize(sampleResults())
	out := s.FormatErrors()
	if !strings.Contains(out, "d.png") || !strings.Contains(out, "bad header") {
		t.Errorf("error summary missing failure details:\n%s", out)
	}

	if got := Summarize(nil).FormatErrors(); !strings.Contains(got, "No errors") {
		t.Errorf("expected no-errors message, got %q", got)
	}
}
