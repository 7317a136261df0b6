package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Folder groups projects. Folders nest through ParentID.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateFolder adds a folder under parentID, or at the root when it is empty.
func (s *Store) CreateFolder(ctx context.Context, name, parentID string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("store: folder name is empty")
	}
	if parentID != "" {
		if _, err := s.Folder(ctx, parentID); err != nil {
			return nil, err
		}
	}
	f := &Folder{
		ID:        uuid.New().String(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: s.now(),
	}
	if err := s.SaveFolder(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) SaveFolder(ctx context.Context, f *Folder) error {
	key, err := toKey(folderBucket, f.ID)
	if err != nil {
		return err
	}
	if err := s.write(key, f); err != nil {
		return fmt.Errorf("store: save folder %s: %w", f.ID, err)
	}
	return nil
}

func (s *Store) Folder(ctx context.Context, id string) (*Folder, error) {
	key, err := toKey(folderBucket, id)
	if err != nil {
		return nil, err
	}
	f := &Folder{}
	if err := s.read(key, f); err != nil {
		return nil, fmt.Errorf("store: load folder %s: %w", id, err)
	}
	return f, nil
}

// Folders returns every folder sorted by name.
func (s *Store) Folders(ctx context.Context) []*Folder {
	all := make([]*Folder, 0)
	for key := range s.d.Keys(ctx.Done()) {
		if bucketOf(key) != folderBucket {
			continue
		}
		f := &Folder{}
		if err := s.read(key, f); err != nil {
			s.log.Warn("skipping unreadable folder", "key", key, "err", err)
			continue
		}
		all = append(all, f)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all
}

// DeleteFolder removes a folder and, recursively, its children. Projects
// filed under any removed folder move to the root.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	if _, err := s.Folder(ctx, id); err != nil {
		return err
	}
	for _, p := range s.InFolder(ctx, id) {
		p.FolderID = ""
		if err := s.Save(ctx, p); err != nil {
			return err
		}
	}
	for _, child := range s.Folders(ctx) {
		if child.ParentID == id {
			if err := s.DeleteFolder(ctx, child.ID); err != nil {
				return err
			}
		}
	}
	key, _ := toKey(folderBucket, id)
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("store: delete folder %s: %w", id, err)
	}
	return nil
}
