package memory

import (
	"context"
	"fmt"
	"slices"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// FolderRepository implements repositories.FolderRepository
type FolderRepository struct {
	store *Store
}

func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return r.store.run(ctx, func(d *dataset) error {
		if _, ok := d.workspaces[folder.WorkspaceID]; !ok {
			return fmt.Errorf("workspace %s: %w", folder.WorkspaceID, domain.ErrNotFound)
		}
		if folder.ParentID != nil {
			if _, ok := d.folders[*folder.ParentID]; !ok {
				return fmt.Errorf("parent folder %s: %w", *folder.ParentID, domain.ErrNotFound)
			}
		}
		d.folders[folder.ID] = *folder
		return nil
	})
}

func (r *FolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	err := r.store.run(ctx, func(d *dataset) error {
		f, ok := d.folders[id]
		if !ok {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		folder = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *FolderRepository) ExistsInWorkspace(ctx context.Context, id, workspaceID string) (bool, error) {
	var exists bool
	err := r.store.run(ctx, func(d *dataset) error {
		f, ok := d.folders[id]
		exists = ok && f.WorkspaceID == workspaceID
		return nil
	})
	return exists, err
}

func (r *FolderRepository) IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error) {
	var found bool
	err := r.store.run(ctx, func(d *dataset) error {
		seen := make(map[string]bool)
		current, ok := d.folders[candidateID]
		for ok && current.ParentID != nil && !seen[current.ID] {
			seen[current.ID] = true
			if *current.ParentID == ancestorID {
				found = true
				return nil
			}
			current, ok = d.folders[*current.ParentID]
		}
		return nil
	})
	return found, err
}

func (r *FolderRepository) ListByWorkspaces(ctx context.Context, workspaceIDs []string) ([]models.Folder, error) {
	folders := []models.Folder{}
	err := r.store.run(ctx, func(d *dataset) error {
		for _, f := range d.folders {
			if slices.Contains(workspaceIDs, f.WorkspaceID) {
				folders = append(folders, f)
			}
		}
		return nil
	})
	slices.SortFunc(folders, compareFolders)
	return folders, err
}

func (r *FolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	return r.store.run(ctx, func(d *dataset) error {
		existing, ok := d.folders[folder.ID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		if folder.ParentID != nil {
			if _, ok := d.folders[*folder.ParentID]; !ok {
				return fmt.Errorf("parent folder %s: %w", *folder.ParentID, domain.ErrNotFound)
			}
		}
		existing.Name = folder.Name
		existing.ParentID = folder.ParentID
		existing.UpdatedAt = folder.UpdatedAt
		d.folders[folder.ID] = existing
		return nil
	})
}

func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	return r.store.run(ctx, func(d *dataset) error {
		if _, ok := d.folders[id]; !ok {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}

		subtree := map[string]bool{id: true}
		queue := []string{id}
		for len(queue) > 0 {
			parent := queue[0]
			queue = queue[1:]
			for fid, f := range d.folders {
				if f.ParentID != nil && *f.ParentID == parent && !subtree[fid] {
					subtree[fid] = true
					queue = append(queue, fid)
				}
			}
		}

		for nid, n := range d.notes {
			if n.FolderID != nil && subtree[*n.FolderID] {
				delete(d.notes, nid)
			}
		}
		for fid := range subtree {
			delete(d.folders, fid)
		}
		return nil
	})
}
