package converter

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG decoding
	"os"
	"path/filepath"
	"strings"

	"github.com/eurekaffeine/PokedexImages/internal/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

// DefaultConverter is the default implementation of the Converter interface.
type DefaultConverter struct {
	logger *logrus.Logger
}

// NewDefaultConverter creates a new DefaultConverter instance.
func NewDefaultConverter(logger *logrus.Logger) *DefaultConverter {
	if logger == nil {
		logger = logrus.New()
	}
	return &DefaultConverter{logger: logger}
}

// Convert processes every PNG file directly inside sourceDir, one at a
// time, and returns one Result per file.
func (c *DefaultConverter) Convert(ctx context.Context, sourceDir string, opts Options) ([]Result, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, sourceDir)
		}
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, sourceDir)
	}

	files, err := collectPNGFiles(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	if len(files) == 0 {
		c.logger.Infof("No PNG files found in %s", sourceDir)
		return nil, nil
	}

	c.logger.Infof("Found %d PNG files in %s", len(files), sourceDir)

	results := make([]Result, 0, len(files))
	for _, path := range files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		res := c.convertOne(path, opts)
		c.logResult(res)
		results = append(results, res)
	}
	return results, nil
}

// collectPNGFiles lists the PNG files that are immediate children of dir.
// Subdirectories are not entered.
func collectPNGFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// convertOne converts a single file and returns a Result.
func (c *DefaultConverter) convertOne(inputPath string, opts Options) Result {
	res := Result{
		InputPath:  inputPath,
		OutputPath: replaceExt(inputPath, ".webp"),
	}
	if info, err := os.Stat(inputPath); err == nil {
		res.OriginalSize = info.Size()
	}

	// Re-running the converter leaves previously converted files untouched.
	if _, err := os.Stat(res.OutputPath); err == nil {
		res.Outcome = OutcomeSkipped
		res.Message = fmt.Sprintf("%s already exists", filepath.Base(res.OutputPath))
		return res
	}

	img, err := decodeImage(inputPath)
	if err != nil {
		return failed(res, StageDecode, err)
	}

	mode := DecideMode(img)
	res.AlphaKept = mode == ModeKeepAlpha

	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	if opts.DryRun {
		res.Outcome = OutcomeConverted
		res.Message = fmt.Sprintf("would convert (%s)", mode)
		return res
	}

	data, err := encodeWebP(img, mode, opts)
	if err != nil {
		return failed(res, StageEncode, err)
	}

	if err := writeNewFile(res.OutputPath, data); err != nil {
		return failed(res, StageWrite, err)
	}

	res.Outcome = OutcomeConverted
	res.ConvertedSize = int64(len(data))
	return res
}

// decodeImage decodes a single image file, preserving its native color
// model. The file handle is closed before returning.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// encodeWebP encodes the image according to the decided mode. Quality is
// honored unconditionally on the opaque path, even when lossless encoding
// was requested; only the transparency-preserving path honors Lossless.
func encodeWebP(img image.Image, mode Mode, opts Options) ([]byte, error) {
	if mode == ModeKeepAlpha {
		if opts.Lossless {
			return webp.EncodeLosslessRGBA(img)
		}
		return webp.EncodeRGBA(img, float32(opts.Quality))
	}
	return webp.EncodeRGB(img, float32(opts.Quality))
}

// writeNewFile writes data to path, refusing to overwrite an existing file.
// A partially written file is removed on error.
func writeNewFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// failed marks a result as failed at the given stage.
func failed(res Result, stage string, err error) Result {
	res.Outcome = OutcomeFailed
	res.Stage = stage
	res.Error = err
	res.Message = fmt.Sprintf("%s error: %v", stage, err)
	return res
}

// logResult emits the per-file progress line for a result.
func (c *DefaultConverter) logResult(res Result) {
	in := filepath.Base(res.InputPath)
	out := filepath.Base(res.OutputPath)
	entry := logger.WithFile(c.logger, res.InputPath)
	switch res.Outcome {
	case OutcomeSkipped:
		entry.Infof("Skipping %s - %s already exists", in, out)
	case OutcomeConverted:
		if res.Message != "" {
			entry.Infof("%s: %s", in, res.Message)
		} else if res.AlphaKept {
			entry.Infof("Converted: %s -> %s (alpha kept)", in, out)
		} else {
			entry.Infof("Converted: %s -> %s", in, out)
		}
	case OutcomeFailed:
		entry.Errorf("Error converting %s: %v", in, res.Error)
	}
}

// replaceExt swaps the extension of path for newExt, preserving directory
// and base name.
func replaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
