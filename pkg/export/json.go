package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"stitchgrid/pkg/chart"
)

const (
	FileVersion = "1.0.0"
	AppName     = "stitchgrid"
	// legacyAppName is accepted on import; older files carry it.
	legacyAppName = "stitchfizzle"
	FileSuffix    = ".stitchgrid.json"
)

var ErrNotProject = errors.New("export: not a project file")

// File is the wrapper written around an exported project.
type File struct {
	Version    string         `json:"version"`
	App        string         `json:"app"`
	ExportedAt time.Time      `json:"exportedAt"`
	Project    *chart.Project `json:"project"`
}

// JSON writes p wrapped in a File, indented by two spaces.
func JSON(w io.Writer, p *chart.Project, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(File{Version: FileVersion, App: AppName, ExportedAt: now.UTC(), Project: p}); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// ParseJSON reads either an exported File or a bare project.
func ParseJSON(data []byte) (*chart.Project, error) {
	var probe struct {
		App     string          `json:"app"`
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("export: parse json: %w", err)
	}

	raw := data
	if (probe.App == AppName || probe.App == legacyAppName) && len(probe.Project) > 0 {
		raw = probe.Project
	}

	p := &chart.Project{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("export: parse project: %w", err)
	}
	if p.ID == "" || p.Name == "" || p.ChartType == "" {
		return nil, ErrNotProject
	}
	if !p.ChartType.Valid() {
		return nil, fmt.Errorf("export: unknown chart type %q", p.ChartType)
	}
	p.Normalize()
	return p, nil
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// FileName is the suggested file name for an export of p with the given
// extension, e.g. ".png".
func FileName(p *chart.Project, ext string) string {
	if ext == ".json" {
		ext = FileSuffix
	}
	return unsafeName.ReplaceAllString(p.Name, "_") + ext
}
