package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"

	"stitchgrid/pkg/chart"
	"stitchgrid/pkg/store"
)

// List prints the saved projects, newest first.
type List struct {
	Store *store.Store
	// Folder narrows the list to one folder, by id or name.
	Folder string
	// Query keeps projects whose name contains it.
	Query  string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

// Summary is one row of the JSON listing.
type Summary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ChartType chart.ChartType `json:"chartType"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Folder    string          `json:"folder,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (l *List) Do(ctx context.Context) error {
	if l.Store == nil {
		return fmt.Errorf("can not list: %w", errNoStore)
	}
	projects, err := l.projects(ctx)
	if err != nil {
		return err
	}
	names := folderNames(ctx, l.Store)

	if l.JSON {
		rows := make([]Summary, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, Summary{
				ID:        p.ID,
				Name:      p.Name,
				ChartType: p.ChartType,
				Width:     p.Width(),
				Height:    p.Height(),
				Folder:    names[p.FolderID],
				UpdatedAt: p.UpdatedAt,
			})
		}
		return writeJSON(output(l.Out), rows)
	}

	out := output(l.Out)
	if len(projects) == 0 {
		_, _ = faint.Fprintln(out, " none")
		return nil
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := []any{bold.Sprint("NAME"), bold.Sprint("TYPE"), bold.Sprint("SIZE"), bold.Sprint("FOLDER"), bold.Sprint("UPDATED")}
	if l.ShowID {
		header = append([]any{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, p := range projects {
		row := []any{
			p.Name,
			p.ChartType.Label(),
			fmt.Sprintf("%dx%d", p.Width(), p.Height()),
			names[p.FolderID],
			p.UpdatedAt.Local().Format("2006-01-02 15:04"),
		}
		if l.ShowID {
			row = append([]any{idColor.Sprint(p.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

func (l *List) projects(ctx context.Context) ([]*chart.Project, error) {
	var projects []*chart.Project
	if l.Query != "" {
		projects = l.Store.Search(ctx, l.Query)
	} else {
		projects = l.Store.List(ctx)
	}
	if l.Folder == "" {
		return projects, nil
	}
	f, err := resolveFolder(ctx, l.Store, l.Folder)
	if err != nil {
		return nil, err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.FolderID == f.ID {
			kept = append(kept, p)
		}
	}
	return kept, nil
}

// Watch prints the list, then prints it again whenever a project or folder
// changes on disk, until ctx is cancelled.
type Watch struct {
	List
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Store == nil {
		return fmt.Errorf("can not watch: %w", errNoStore)
	}
	events, err := w.Store.Watch(ctx)
	if err != nil {
		return err
	}
	if err := w.List.Do(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Bucket == "settings" {
				continue
			}
			_, _ = faint.Fprintf(output(w.Out), "\n%s changed\n", describe(ev))
			if err := w.List.Do(ctx); err != nil {
				return err
			}
		}
	}
}

func describe(ev store.Event) string {
	switch {
	case ev.Bucket == "":
		return "store"
	case ev.ID == "":
		return ev.Bucket
	}
	return fmt.Sprintf("%s/%s", ev.Bucket, ev.ID)
}
