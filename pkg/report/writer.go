package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"github.com/santaclaude2025/ccretro/pkg/config"
)

// RawSubdir holds compressed raw model responses
const RawSubdir = "raw"

// Paths lists the files written by Writer.Write
type Paths struct {
	Report string
	Latest string
	Raw    string // empty when no raw response was archived
}

// Writer persists reports under Dir
type Writer struct {
	Fs  afero.Fs
	Dir string
}

// NewWriter returns a Writer for dir on fs
func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{Fs: fs, Dir: dir}
}

// Write stores the report as <dir>/YYYY-MM-DD.md and <dir>/latest.md,
// overwriting both. A non-empty raw response is archived zstd-compressed
// under <dir>/raw.
func (w *Writer) Write(report, raw string, date time.Time) (Paths, error) {
	if err := w.Fs.MkdirAll(w.Dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	day := date.Format("2006-01-02")
	paths := Paths{
		Report: filepath.Join(w.Dir, day+".md"),
		Latest: filepath.Join(w.Dir, config.LatestReportName),
	}

	for _, p := range []string{paths.Report, paths.Latest} {
		if err := w.writeAtomic(p, func(dst io.Writer) error {
			_, err := io.WriteString(dst, report)
			return err
		}); err != nil {
			return Paths{}, err
		}
	}

	if raw != "" {
		rawDir := filepath.Join(w.Dir, RawSubdir)
		if err := w.Fs.MkdirAll(rawDir, 0755); err != nil {
			return paths, fmt.Errorf("failed to create raw directory: %w", err)
		}
		rawPath := filepath.Join(rawDir, day+".txt.zst")
		if err := w.writeAtomic(rawPath, func(dst io.Writer) error {
			return compress(dst, raw)
		}); err != nil {
			return paths, err
		}
		paths.Raw = rawPath
	}

	return paths, nil
}

// writeAtomic writes through a temp file in the target directory and
// renames it over path
func (w *Writer) writeAtomic(path string, fill func(io.Writer) error) error {
	tmp, err := afero.TempFile(w.Fs, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		tmp.Close()
		w.Fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		w.Fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := w.Fs.Rename(tmpName, path); err != nil {
		// some filesystems refuse to rename over an existing file
		if rmErr := w.Fs.Remove(path); rmErr == nil {
			err = w.Fs.Rename(tmpName, path)
		}
		if err == nil {
			return nil
		}
		w.Fs.Remove(tmpName)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}

func compress(dst io.Writer, text string) error {
	encoder, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	if _, err := io.WriteString(encoder, text); err != nil {
		encoder.Close()
		return fmt.Errorf("failed to compress: %w", err)
	}
	return encoder.Close()
}

// ReadRaw decompresses an archived raw response
func ReadRaw(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	decoder, err := zstd.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	return string(data), nil
}
