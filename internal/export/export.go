// Package export serializes the currently visible graph to JSON, SVG,
// or PNG artifacts. Export errors are returned to the caller for
// notification; nothing here is fatal.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lanternlab/lantern/pkg/logger"
	"github.com/lanternlab/lantern/pkg/view"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatSVG, FormatPNG:
		return true
	}
	return false
}

// Filename builds a sortable, filesystem-safe artifact name: the
// RFC 3339 timestamp with ':' replaced so it is valid on every
// platform. The nanosecond part keeps rapid successive exports from
// overwriting each other.
func Filename(format Format, at time.Time) string {
	stamp := at.UTC().Format("2006-01-02T15-04-05.000000000Z")
	return fmt.Sprintf("graph-%s.%s", stamp, format)
}

// Exporter writes artifacts into a target directory.
type Exporter struct {
	dir string
	now func() time.Time
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Export renders the view in the requested format and returns the
// written file path.
func (e *Exporter) Export(v view.View, format Format) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("unknown export format %q", format)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(e.dir, Filename(format, e.now()))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		err = WriteJSON(file, v)
	case FormatSVG:
		err = WriteSVG(file, v)
	case FormatPNG:
		err = WritePNG(file, v)
	}
	if err != nil {
		return "", fmt.Errorf("writing %s export: %w", format, err)
	}

	logger.Info("[Export] Wrote artifact", "format", format, "path", path, "nodes", len(v.Nodes))
	return path, nil
}
