// Package export renders a priced quote to a document file.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/pkg/logger"
)

const (
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
)

var errEmptyQuote = errors.New("quote has no lines")

// Exporter writes q to path. On failure the error is an *apperror.ExportError
// and no file is left at path.
type Exporter interface {
	Export(ctx context.Context, q *Quote, path string) error
	Extension() string
}

type Options struct {
	ChromePath string
	Timeout    time.Duration
	Logger     logger.ZapLogger
}

func New(format string, lh Letterhead, opts Options) (Exporter, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatDOCX:
		return NewDocxExporter(lh, opts.Logger), nil
	case FormatPDF:
		return NewPDFExporter(lh, opts), nil
	}
	return nil, apperror.Validation("format", fmt.Sprintf("unsupported export format %q", format))
}

// writeFileAtomic streams into a temp file next to path and renames it into
// place once write succeeds.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
