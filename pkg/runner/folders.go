package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"

	"stitchgrid/pkg/store"
)

// resolveFolder finds a folder by id or by case-insensitive name.
func resolveFolder(ctx context.Context, st *store.Store, ref string) (*store.Folder, error) {
	if f, err := st.Folder(ctx, ref); err == nil {
		return f, nil
	}
	var matches []*store.Folder
	for _, f := range st.Folders(ctx) {
		if strings.EqualFold(f.Name, ref) || strings.HasPrefix(f.ID, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("folder %q: %w", ref, store.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("folder %q is ambiguous (%d matches)", ref, len(matches))
}

// folderNames maps folder ids to their slash-joined path.
func folderNames(ctx context.Context, st *store.Store) map[string]string {
	folders := st.Folders(ctx)
	byID := make(map[string]*store.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}
	names := make(map[string]string, len(folders))
	for _, f := range folders {
		parts := []string{f.Name}
		seen := map[string]bool{f.ID: true}
		for parent := byID[f.ParentID]; parent != nil && !seen[parent.ID]; parent = byID[parent.ParentID] {
			seen[parent.ID] = true
			parts = append([]string{parent.Name}, parts...)
		}
		names[f.ID] = strings.Join(parts, "/")
	}
	return names
}

type FolderCreate struct {
	Store  *store.Store
	Name   string
	Parent string
	Out    io.Writer
}

func (c *FolderCreate) Do(ctx context.Context) error {
	if c.Store == nil {
		return fmt.Errorf("can not create folder: %w", errNoStore)
	}
	parentID := ""
	if c.Parent != "" {
		parent, err := resolveFolder(ctx, c.Store, c.Parent)
		if err != nil {
			return err
		}
		parentID = parent.ID
	}
	f, err := c.Store.CreateFolder(ctx, c.Name, parentID)
	if err != nil {
		return err
	}
	_, _ = success.Fprintf(output(c.Out), "Created folder %s ", f.Name)
	_, _ = idColor.Fprintln(output(c.Out), f.ID)
	return nil
}

type FolderList struct {
	Store  *store.Store
	ShowID bool
	Out    io.Writer
}

func (l *FolderList) Do(ctx context.Context) error {
	if l.Store == nil {
		return fmt.Errorf("can not list folders: %w", errNoStore)
	}
	out := output(l.Out)
	folders := l.Store.Folders(ctx)
	if len(folders) == 0 {
		_, _ = faint.Fprintln(out, " none")
		return nil
	}
	names := folderNames(ctx, l.Store)
	counts := map[string]int{}
	for _, p := range l.Store.List(ctx) {
		counts[p.FolderID]++
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []any{bold.Sprint("FOLDER"), bold.Sprint("CHARTS")}
	if l.ShowID {
		header = append([]any{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, f := range folders {
		row := []any{names[f.ID], counts[f.ID]}
		if l.ShowID {
			row = append([]any{idColor.Sprint(f.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(len(header) - 1)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

type FolderDelete struct {
	Store *store.Store
	Ref   string
	Out   io.Writer
}

// Do removes the folder and its subfolders. Their charts move to the root.
func (d *FolderDelete) Do(ctx context.Context) error {
	if d.Store == nil {
		return fmt.Errorf("can not delete folder: %w", errNoStore)
	}
	f, err := resolveFolder(ctx, d.Store, d.Ref)
	if err != nil {
		return err
	}
	if err := d.Store.DeleteFolder(ctx, f.ID); err != nil {
		return err
	}
	_, _ = success.Fprintf(output(d.Out), "Deleted folder %s\n", f.Name)
	return nil
}

// Move files a chart under a folder. An empty Folder moves it to the root.
type Move struct {
	Store  *store.Store
	Ref    string
	Folder string
	Out    io.Writer
}

func (m *Move) Do(ctx context.Context) error {
	if m.Store == nil {
		return fmt.Errorf("can not move: %w", errNoStore)
	}
	p, err := m.Store.Find(ctx, m.Ref)
	if err != nil {
		return err
	}
	folderID, folderName := "", "the top level"
	if m.Folder != "" {
		f, err := resolveFolder(ctx, m.Store, m.Folder)
		if err != nil {
			return err
		}
		folderID, folderName = f.ID, f.Name
	}
	if p.FolderID == folderID {
		return errors.New(p.Name + " is already there")
	}
	if err := m.Store.MoveToFolder(ctx, p.ID, folderID); err != nil {
		return err
	}
	_, _ = success.Fprintf(output(m.Out), "Moved %s to %s\n", p.Name, folderName)
	return nil
}
