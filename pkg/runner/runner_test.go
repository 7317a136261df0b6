package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	fcolor "github.com/fatih/color"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/config"
	"stitchgrid/pkg/export"
	"stitchgrid/pkg/importer"
	"stitchgrid/pkg/store"
)

func init() {
	fcolor.NoColor = true
}

type baseDir string

func (d baseDir) BasePath() string { return string(d) }

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(baseDir(t.TempDir()), quiet)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func newChart(t *testing.T, st *store.Store, name string, chartType chart.ChartType, w, h int) *chart.Project {
	t.Helper()
	n := &New{Store: st, Name: name, Type: chartType, Width: w, Height: h, Log: quiet, Out: io.Discard}
	if err := n.Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	return n.Created
}

func TestNewUsesStoredDefaults(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	app := store.DefaultAppSettings()
	app.DefaultGridWidth, app.DefaultGridHeight = 12, 7
	if err := st.SaveSettings(ctx, app); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	n := &New{Store: st, Name: "Scarf", Log: quiet, Out: &out}
	if err := n.Do(ctx); err != nil {
		t.Fatal(err)
	}
	saved, err := st.Load(ctx, n.Created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Width() != 12 || saved.Height() != 7 || saved.ChartType != chart.Colorwork {
		t.Errorf("saved = %dx%d %s", saved.Width(), saved.Height(), saved.ChartType)
	}
	if !strings.Contains(out.String(), "Created Scarf (Colorwork, 12x7)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	n := &New{Store: openStore(t), Name: "Huge", Width: chart.MaxDimension + 1, Out: io.Discard}
	if err := n.Do(context.Background()); err == nil {
		t.Fatal("expected a size error")
	}
}

func TestNewWithoutStore(t *testing.T) {
	err := (&New{Name: "x"}).Do(context.Background())
	if !errors.Is(err, errNoStore) {
		t.Errorf("err = %v", err)
	}
}

func TestListTableAndJSON(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	newChart(t, st, "Blanket", chart.C2C, 20, 20)
	newChart(t, st, "Doily", chart.FreeformChart, 10, 10)

	var out bytes.Buffer
	if err := (&List{Store: st, Out: &out}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"NAME", "Blanket", "Corner to Corner (C2C)", "20x20", "Doily"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := (&List{Store: st, Query: "bla", JSON: true, Out: &out}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	var rows []Summary
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Name != "Blanket" || rows[0].Width != 20 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestListEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := (&List{Store: openStore(t), Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "none") {
		t.Errorf("output = %q", out.String())
	}
}

func TestFoldersCreateMoveListDelete(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p := newChart(t, st, "Hat", chart.Colorwork, 5, 5)

	if err := (&FolderCreate{Store: st, Name: "Winter", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&FolderCreate{Store: st, Name: "Hats", Parent: "winter", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&FolderCreate{Store: st, Name: "Orphan", Parent: "missing", Out: io.Discard}).Do(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing parent err = %v", err)
	}

	if err := (&Move{Store: st, Ref: "Hat", Folder: "Hats", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&Move{Store: st, Ref: "Hat", Folder: "Hats", Out: io.Discard}).Do(ctx); err == nil {
		t.Error("moving to the same folder should fail")
	}

	var out bytes.Buffer
	if err := (&FolderList{Store: st, Out: &out}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Winter/Hats") {
		t.Errorf("folder list missing nested path:\n%s", out.String())
	}

	out.Reset()
	if err := (&List{Store: st, Folder: "Hats", Out: &out}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Hat") || !strings.Contains(out.String(), "Winter/Hats") {
		t.Errorf("folder listing:\n%s", out.String())
	}

	if err := (&FolderDelete{Store: st, Ref: "Winter", Out: io.Discard}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.Folders(ctx)); n != 0 {
		t.Errorf("folders left = %d", n)
	}
	saved, err := st.Load(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.FolderID != "" {
		t.Error("chart should move to the root when its folder is deleted")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p := newChart(t, st, "Bag", chart.Mosaic, 4, 4)

	var out bytes.Buffer
	if err := (&Delete{Store: st, Ref: p.ID[:8], Out: &out}).Do(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("load after delete err = %v", err)
	}
	if err := (&Delete{Store: st, Ref: "Bag", Out: &out}).Do(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestExportFormats(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p := newChart(t, st, "Pillow Top", chart.Colorwork, 3, 2)
	p.Grid.Paint(0, 0, p.Palette.First())
	if err := st.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			e := &Export{Store: st, Ref: "pillow top", Format: f, Output: filepath.Join(dir, "out", "chart"+f.ext()), Out: io.Discard}
			if err := e.Do(ctx); err != nil {
				t.Fatal(err)
			}
			info, err := os.Stat(e.Path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Error("export is empty")
			}
		})
	}
}

func TestExportJSONToStdoutRoundTrips(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p := newChart(t, st, "Coaster", chart.Filet, 6, 6)

	var out bytes.Buffer
	e := &Export{Store: st, Ref: p.ID, Format: FormatJSON, Output: "-", Out: &out,
		Now: func() time.Time { return time.Unix(1700000000, 0) }}
	if err := e.Do(ctx); err != nil {
		t.Fatal(err)
	}
	back, err := export.ParseJSON(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if back.ID != p.ID || back.Width() != 6 {
		t.Errorf("round trip = %s %dx%d", back.ID, back.Width(), back.Height())
	}
}

func TestExportInstructionsNeedsGrid(t *testing.T) {
	st := openStore(t)
	newChart(t, st, "Doily", chart.FreeformChart, 10, 10)
	e := &Export{Store: st, Ref: "Doily", Format: FormatInstructions, Output: "-", Out: io.Discard}
	if err := e.Do(context.Background()); err == nil {
		t.Fatal("expected an error for a freeform chart")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, "png": FormatPNG, "text": FormatText, "pattern": FormatInstructions} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestImportJSONGetsFreshIDOnCollision(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p := newChart(t, st, "Tote", chart.Tunisian, 4, 3)

	path := filepath.Join(t.TempDir(), "tote.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := export.JSON(f, p, time.Unix(0, 0)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	im := &Import{Store: st, Path: path, Name: "Tote copy", Out: io.Discard}
	if err := im.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if im.Imported.ID == p.ID {
		t.Error("import should not overwrite the existing chart")
	}
	if got := len(st.List(ctx)); got != 2 {
		t.Errorf("charts = %d, want 2", got)
	}
	saved, err := st.Load(ctx, im.Imported.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Name != "Tote copy" || saved.ChartType != chart.Tunisian {
		t.Errorf("saved = %s %s", saved.Name, saved.ChartType)
	}
}

func TestImportImage(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 2 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "stripes.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	var out bytes.Buffer
	im := &Import{Store: st, Path: path, Type: chart.Colorwork, Log: quiet, Out: &out,
		Options: importer.Options{Width: 4, Height: 4, MaxColors: 2}}
	if err := im.Do(ctx); err != nil {
		t.Fatal(err)
	}
	p := im.Imported
	if p.Name != "stripes" || p.Width() != 4 || p.Height() != 4 {
		t.Errorf("imported = %s %dx%d", p.Name, p.Width(), p.Height())
	}
	if len(p.Palette) != 2 {
		t.Errorf("palette = %d colours, want 2", len(p.Palette))
	}
	if !strings.Contains(out.String(), "2 colours") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSettingsPatch(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	dark := false
	w := 30
	units := "imperial"

	var out bytes.Buffer
	s := &Settings{Store: st, Patch: SettingsPatch{DarkMode: &dark, Width: &w, Units: &units}, Out: &out}
	if err := s.Do(ctx); err != nil {
		t.Fatal(err)
	}
	app, err := st.Settings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if app.DarkMode || app.DefaultGridWidth != 30 || app.Units != store.Imperial {
		t.Errorf("app = %+v", app)
	}
	if !strings.Contains(out.String(), "30x50") {
		t.Errorf("output = %q", out.String())
	}

	bad := "sideways"
	s = &Settings{Store: st, Patch: SettingsPatch{Handedness: &bad}, Out: io.Discard}
	if err := s.Do(ctx); err == nil {
		t.Error("bad handedness should fail")
	}
}

func TestInfo(t *testing.T) {
	st := openStore(t)
	newChart(t, st, "One", chart.Colorwork, 2, 2)
	cfg := &config.Config{Path: st.BasePath(), Autosave: time.Minute, StartMenu: true}

	var out bytes.Buffer
	if err := (&Info{Config: cfg, Store: st, Out: &out}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{st.BasePath(), "1m0s", "none (defaults)", "Charts"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("info missing %q:\n%s", want, out.String())
		}
	}
}

func TestWatchReprintsOnChange(t *testing.T) {
	st := openStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out safeBuffer
	w := &Watch{List: List{Store: st, Out: &out}}
	done := make(chan error, 1)
	go func() { done <- w.Do(ctx) }()

	deadline := time.After(4 * time.Second)
	created := false
	for !strings.Contains(out.String(), "Late") {
		select {
		case <-deadline:
			t.Fatalf("watch never printed the new chart:\n%s", out.String())
		case <-time.After(50 * time.Millisecond):
		}
		if !created && strings.Contains(out.String(), "none") {
			newChart(t, st, "Late", chart.Colorwork, 2, 2)
			created = true
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("watch returned %v", err)
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
