package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"stitchgrid/pkg/runner"
)

func init() {
	color.NoColor = true
}

// run executes the command line against a store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STITCHGRID_CONFIG_PATH", t.TempDir())
	t.Setenv("STITCHGRID_LOG_LEVEL", "error")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--path="+dir))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestNewThenList(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "new", "Granny", "Square", "--type", "c2c", "--width", "10", "--height", "12")
	if !strings.Contains(out, "Created Granny Square (Corner to Corner (C2C), 10x12)") {
		t.Errorf("new output = %q", out)
	}

	out = mustRun(t, dir, "list")
	for _, want := range []string{"NAME", "Granny Square", "10x12"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestListJSON(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Scarf", "--width", "4", "--height", "30")

	out := mustRun(t, dir, "list", "--json")
	var got []runner.Summary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("list --json is not JSON: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Name != "Scarf" || got[0].Width != 4 || got[0].Height != 30 {
		t.Errorf("list --json = %+v", got)
	}
}

func TestListJSONReportsErrors(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Scarf")

	out, err := run(t, dir, "list", "--json", "--folder", "Nowhere")
	if err != nil {
		t.Fatalf("list --json returned %v; want the error in the output", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil || got["error"] == "" {
		t.Errorf("list --json error output = %q", out)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"new", "Lace", "--type", "lace"}},
		{"too wide", []string{"new", "Huge", "--width", "1001"}},
		{"no name", []string{"new"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, dir, tt.args...); err == nil {
				t.Errorf("%v succeeded", tt.args)
			}
		})
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Blanket", "--width", "6", "--height", "5")

	outDir := t.TempDir()
	for _, format := range []string{"json", "png", "txt", "instructions"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(outDir, "blanket."+format)
			out := mustRun(t, dir, "export", "Blanket", format, "-o", path)
			if !strings.Contains(out, "Saved to") {
				t.Errorf("export output = %q", out)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", path)
			}
		})
	}

	if _, err := run(t, dir, "export", "Blanket", "svg"); err == nil {
		t.Error("export svg succeeded")
	}
	if _, err := run(t, dir, "export", "Nothing", "json"); err == nil {
		t.Error("export of a missing chart succeeded")
	}
}

func TestExportJSONToStdoutImportsBack(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Pillow", "--width", "3", "--height", "3")

	out := mustRun(t, dir, "export", "Pillow", "json", "-o", "-")
	file := filepath.Join(t.TempDir(), "pillow.json")
	if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
		t.Fatal(err)
	}

	other := t.TempDir()
	got := mustRun(t, other, "import", file)
	if !strings.Contains(got, "Imported Pillow") {
		t.Errorf("import output = %q", got)
	}
	if list := mustRun(t, other, "list"); !strings.Contains(list, "Pillow") {
		t.Errorf("imported chart not listed:\n%s", list)
	}
}

func TestFoldersAndMove(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Blanket")
	mustRun(t, dir, "new", "Hat")

	if out := mustRun(t, dir, "folders", "create", "Gifts"); !strings.Contains(out, "Created folder Gifts") {
		t.Errorf("folders create output = %q", out)
	}
	mustRun(t, dir, "folders", "create", "Baby", "--parent", "Gifts")

	if out := mustRun(t, dir, "move", "Blanket", "Baby"); !strings.Contains(out, "Moved Blanket to") {
		t.Errorf("move output = %q", out)
	}

	out := mustRun(t, dir, "list", "--folder", "Baby")
	if !strings.Contains(out, "Blanket") || strings.Contains(out, "Hat") {
		t.Errorf("list --folder Baby:\n%s", out)
	}

	out = mustRun(t, dir, "folders", "ls")
	if !strings.Contains(out, "Gifts/Baby") {
		t.Errorf("folders ls:\n%s", out)
	}

	mustRun(t, dir, "folders", "delete", "Gifts")
	out = mustRun(t, dir, "folders", "ls")
	if strings.Contains(out, "Gifts") {
		t.Errorf("folders ls after delete:\n%s", out)
	}
	if out := mustRun(t, dir, "list"); !strings.Contains(out, "Blanket") {
		t.Errorf("chart in a deleted folder was not kept:\n%s", out)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Old", "Swatch")

	if out := mustRun(t, dir, "rm", "old swatch"); !strings.Contains(out, "Deleted Old Swatch") {
		t.Errorf("delete output = %q", out)
	}
	if out := mustRun(t, dir, "list"); !strings.Contains(out, "none") {
		t.Errorf("list after delete:\n%s", out)
	}
	if _, err := run(t, dir, "delete", "Old Swatch"); err == nil {
		t.Error("second delete succeeded")
	}
}

func TestSettings(t *testing.T) {
	dir := t.TempDir()

	out := mustRun(t, dir, "settings", "--width", "40", "--height", "60", "--light", "--units", "imperial")
	for _, want := range []string{"40x60", "imperial", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings output missing %q:\n%s", want, out)
		}
	}

	if out := mustRun(t, dir, "new", "Throw"); !strings.Contains(out, "40x60") {
		t.Errorf("new did not use the stored default size: %q", out)
	}

	if _, err := run(t, dir, "settings", "--units", "cubits"); err == nil {
		t.Error("settings --units cubits succeeded")
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "new", "Blanket")

	out := mustRun(t, dir, "info")
	for _, want := range []string{"STITCHGRID_CONFIG_PATH found on env", "Store", dir, "Charts"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	if !strings.Contains(out, "dev") {
		t.Errorf("version output = %q", out)
	}
}
