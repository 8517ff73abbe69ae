package converter

import (
	"context"
	"errors"
)

// Options defines parameters for the PNG to WebP conversion process.
type Options struct {
	// Quality is the WebP quality (0-100). It is ignored when Lossless is
	// set, but only for images whose transparency is actually in use.
	Quality int
	// Lossless selects lossless WebP encoding for images that use
	// transparency.
	Lossless bool
	// MaxWidth, when positive, downscales wider images to this width before
	// encoding. Zero disables downscaling.
	MaxWidth int
	// DryRun reports what would happen without writing any output files.
	DryRun bool
}

// Outcome classifies the result of processing a single file.
type Outcome int

const (
	OutcomeConverted Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stages at which a per-file failure can occur.
const (
	StageDecode = "decode"
	StageEncode = "encode"
	StageWrite  = "write"
)

// Result describes the outcome of processing a single PNG file.
type Result struct {
	InputPath     string
	OutputPath    string
	Outcome       Outcome
	Stage         string
	Message       string
	AlphaKept     bool
	OriginalSize  int64
	ConvertedSize int64
	Error         error
}

// Converter defines the interface for batch PNG to WebP conversion.
type Converter interface {
	// Convert processes every PNG file directly inside sourceDir and returns
	// one Result per file. Directory-level problems fail the whole call
	// before any file is touched; per-file problems are recorded in the
	// corresponding Result and do not abort the batch.
	Convert(ctx context.Context, sourceDir string, opts Options) ([]Result, error)
}

// Directory-level errors returned by Convert before any file I/O happens.
var (
	ErrDirectoryNotFound = errors.New("directory does not exist")
	ErrNotADirectory     = errors.New("not a directory")
)
