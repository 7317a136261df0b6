// Package runner holds the work behind each stitchgrid command. A runner is
// a struct of inputs with a Do method; the commands package only parses
// flags into one.
package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

var errNoStore = errors.New("no store")

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint, color.Italic)
	success = color.New(color.FgGreen)
	idColor = color.New(color.FgHiYellow, color.Faint)
)

func output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFile creates path, parents included, and fills it with write. A
// failed write leaves no partial file behind.
func writeFile(path string, write func(w io.Writer) error) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
