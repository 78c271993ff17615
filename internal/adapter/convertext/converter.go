package convertext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ekamil/links-to-epub/internal/domain"
)

// Converter renders Markdown into EPUB by invoking the external
// convertext binary: `convertext -i <input> -o <output>`.
type Converter struct {
	bin     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewConverter builds the exec-based EPUB converter.
func NewConverter(bin string, timeout time.Duration, logger *slog.Logger) *Converter {
	return &Converter{bin: bin, timeout: timeout, logger: logger}
}

var _ domain.EpubConverter = (*Converter)(nil)

// Convert runs the tool with an enforced timeout. A non-zero exit, a
// timeout, or a missing output file all yield *domain.EpubConversionError
// with the captured stderr attached.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, "-i", inputPath, "-o", outputPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &domain.EpubConversionError{Output: outputPath, Stderr: stderrText(stderr), Err: ctxErr}
	}
	if err != nil {
		return &domain.EpubConversionError{Output: outputPath, Stderr: stderrText(stderr), Err: err}
	}

	if _, err := os.Stat(outputPath); err != nil {
		return &domain.EpubConversionError{
			Output: outputPath,
			Stderr: stderrText(stderr),
			Err:    fmt.Errorf("converter exited cleanly but produced no output: %w", err),
		}
	}

	c.logger.Info("epub rendered", "output", outputPath, "duration", time.Since(start))
	return nil
}

func stderrText(buf bytes.Buffer) string {
	return strings.TrimSpace(buf.String())
}
