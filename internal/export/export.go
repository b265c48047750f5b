// Package export writes simulation tables to files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/powertrain/internal/dynamo"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	XLSX Format = "xlsx"
	SVG  Format = "svg"
	PNG  Format = "png"
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case CSV, JSON, XLSX, SVG, PNG:
		return f, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Write encodes t to w. PNG writes the speed chart only; use WritePNGs for
// the full set.
func Write(w io.Writer, t *dynamo.Table, format Format) error {
	switch format {
	case CSV:
		return WriteCSV(w, t, true)
	case JSON:
		return WriteJSON(w, t)
	case XLSX:
		return WriteXLSX(w, t, true)
	case SVG:
		return WriteSpeedSVG(w, t)
	case PNG:
		return Charts(t)[0].WritePNG(w, t)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

func WriteFile(path string, t *dynamo.Table, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, t, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
