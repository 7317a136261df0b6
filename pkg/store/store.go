package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"stitchgrid/pkg/chart"
)

const (
	projectBucket  = "projects"
	folderBucket   = "folders"
	settingsBucket = "settings"
	settingsID     = "app-settings"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrInvalidID = errors.New("store: invalid id")
)

// Config points the store at a directory.
type Config interface {
	BasePath() string
}

// Store keeps projects, folders and app settings as JSON files on disk.
type Store struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
	log      *slog.Logger
}

// Open creates a Store rooted at cfg.BasePath().
func Open(cfg Config, log *slog.Logger) (*Store, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path unknown")
	}
	if log == nil {
		log = slog.Default()
	}
	basePath := cfg.BasePath()
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, now: time.Now, log: log}, nil
}

func (s *Store) BasePath() string {
	return s.basePath
}

// Load reads the project with the given id.
func (s *Store) Load(ctx context.Context, id string) (*chart.Project, error) {
	key, err := toKey(projectBucket, id)
	if err != nil {
		return nil, err
	}
	p := &chart.Project{}
	if err := s.read(key, p); err != nil {
		return nil, fmt.Errorf("store: load project %s: %w", id, err)
	}
	p.Normalize()
	return p, nil
}

// Save writes p and stamps its UpdatedAt.
func (s *Store) Save(ctx context.Context, p *chart.Project) error {
	if p == nil {
		return errors.New("store: nil project")
	}
	key, err := toKey(projectBucket, p.ID)
	if err != nil {
		return err
	}
	p.UpdatedAt = s.now()
	if err := s.write(key, p); err != nil {
		return fmt.Errorf("store: save project %s: %w", p.ID, err)
	}
	s.log.Debug("project saved", "project", p.ID)
	return nil
}

// Delete removes a project. Removing an unknown id reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	key, err := toKey(projectBucket, id)
	if err != nil {
		return err
	}
	if !s.d.Has(key) {
		return fmt.Errorf("store: delete project %s: %w", id, ErrNotFound)
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("store: delete project %s: %w", id, err)
	}
	return nil
}

// List returns every project, most recently updated first. Unreadable
// files are logged and skipped.
func (s *Store) List(ctx context.Context) []*chart.Project {
	all := make([]*chart.Project, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if bucketOf(key) != projectBucket {
			continue
		}
		p := &chart.Project{}
		if err := s.read(key, p); err != nil {
			s.log.Warn("skipping unreadable project", "key", key, "err", err)
			continue
		}
		p.Normalize()
		all = append(all, p)
	}
	sortProjects(all)
	return all
}

// InFolder lists the projects filed under folderID. An empty id selects
// projects at the root.
func (s *Store) InFolder(ctx context.Context, folderID string) []*chart.Project {
	var out []*chart.Project
	for _, p := range s.List(ctx) {
		if p.FolderID == folderID {
			out = append(out, p)
		}
	}
	return out
}

// Search matches projects whose name contains query, ignoring case.
func (s *Store) Search(ctx context.Context, query string) []*chart.Project {
	q := strings.ToLower(query)
	var out []*chart.Project
	for _, p := range s.List(ctx) {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

// Find resolves a project by exact id, then by a unique id prefix, then by
// a unique case-insensitive name.
func (s *Store) Find(ctx context.Context, ref string) (*chart.Project, error) {
	if validID(ref) == nil {
		if p, err := s.Load(ctx, ref); err == nil {
			return p, nil
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	var matches []*chart.Project
	for _, p := range s.List(ctx) {
		if strings.HasPrefix(p.ID, ref) || strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("store: project %q: %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("store: project %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// MoveToFolder files a project under folderID, or at the root when it is empty.
func (s *Store) MoveToFolder(ctx context.Context, id, folderID string) error {
	if folderID != "" {
		if _, err := s.Folder(ctx, folderID); err != nil {
			return err
		}
	}
	p, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	p.FolderID = folderID
	return s.Save(ctx, p)
}

func (s *Store) read(key string, v any) error {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(val, v)
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

func sortProjects(all []*chart.Project) {
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		}
		return all[i].ID < all[j].ID
	})
}

// toKey makes `bucket-id`.
func toKey(bucket, id string) (string, error) {
	if err := validID(id); err != nil {
		return "", err
	}
	return bucket + "-" + id, nil
}

func validID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func bucketOf(key string) string {
	bucket, _, _ := strings.Cut(key, "-")
	return bucket
}

// keyToPathTransform stores `bucket-id` as bucket/id.json. Only the first
// dash separates, so uuids keep theirs.
func keyToPathTransform(s string) *diskv.PathKey {
	bucket, id, ok := strings.Cut(s, "-")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{bucket},
		FileName: id + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) == 0 {
		return name
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), name)
}
