// Package chemio reads and writes the chemistry file formats the scene
// loads: XYZ (single- and multi-frame) and Gaussian cube. Paths ending
// in .gz are compressed transparently.
package chemio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Format identifies a supported file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatXYZ
	FormatCube
)

// DetectFormat maps a file path to its format by extension, looking
// through a trailing .gz.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".xyz":
		return FormatXYZ
	case ".cube", ".cub":
		return FormatCube
	default:
		return FormatUnknown
	}
}

// Stem returns the file name without directory, .gz suffix, or format
// extension. Scene objects created from files are named after it.
func Stem(path string) string {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// openReader opens path for reading, decompressing .gz transparently.
// The returned closer closes both layers.
func openReader(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return f, f.Close, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	close := func() error {
		zerr := zr.Close()
		ferr := f.Close()
		if zerr != nil {
			return zerr
		}
		return ferr
	}
	return zr, close, nil
}

// createWriter opens path for writing, compressing .gz transparently.
func createWriter(path string) (io.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".gz") {
		return f, f.Close, nil
	}
	zw := gzip.NewWriter(f)
	close := func() error {
		zerr := zw.Close()
		ferr := f.Close()
		if zerr != nil {
			return zerr
		}
		return ferr
	}
	return zw, close, nil
}
