package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// WorkspaceRepository implements repositories.WorkspaceRepository
type WorkspaceRepository struct {
	store *Store
}

func workspaceConflict(w models.Workspace) error {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("workspace '%s' already exists", w.Name),
		ResourceType: "workspace",
		ResourceID:   w.ID,
	}
}

func (r *WorkspaceRepository) Create(ctx context.Context, workspace *models.Workspace) error {
	return r.store.run(ctx, func(d *dataset) error {
		for _, w := range d.workspaces {
			if w.UserID == workspace.UserID && w.Name == workspace.Name {
				return workspaceConflict(w)
			}
		}
		d.workspaces[workspace.ID] = *workspace
		return nil
	})
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id, userID string) (*models.Workspace, error) {
	var workspace models.Workspace
	err := r.store.run(ctx, func(d *dataset) error {
		w, ok := d.workspaces[id]
		if !ok || w.UserID != userID {
			return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		workspace = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) GetByName(ctx context.Context, userID, name string) (*models.Workspace, error) {
	var workspace *models.Workspace
	err := r.store.run(ctx, func(d *dataset) error {
		for _, w := range d.workspaces {
			if w.UserID == userID && w.Name == name {
				workspace = &w
				return nil
			}
		}
		return fmt.Errorf("workspace '%s': %w", name, domain.ErrNotFound)
	})
	return workspace, err
}

func (r *WorkspaceRepository) List(ctx context.Context, userID string, page models.PageRequest) ([]models.Workspace, error) {
	var owned []models.Workspace
	err := r.store.run(ctx, func(d *dataset) error {
		for _, w := range d.workspaces {
			if w.UserID == userID {
				owned = append(owned, w)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paginate(owned, page, func(w models.Workspace) sortFields {
		return sortFields{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
	}), nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, workspace *models.Workspace) error {
	return r.store.run(ctx, func(d *dataset) error {
		existing, ok := d.workspaces[workspace.ID]
		if !ok || existing.UserID != workspace.UserID {
			return fmt.Errorf("workspace %s: %w", workspace.ID, domain.ErrNotFound)
		}
		for _, w := range d.workspaces {
			if w.ID != workspace.ID && w.UserID == workspace.UserID && w.Name == workspace.Name {
				return workspaceConflict(w)
			}
		}
		existing.Name = workspace.Name
		existing.Image = workspace.Image
		existing.UpdatedAt = workspace.UpdatedAt
		d.workspaces[workspace.ID] = existing
		return nil
	})
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id, userID string) error {
	return r.store.run(ctx, func(d *dataset) error {
		w, ok := d.workspaces[id]
		if !ok || w.UserID != userID {
			return fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
		}
		for fid, f := range d.folders {
			if f.WorkspaceID == id {
				delete(d.folders, fid)
			}
		}
		for nid, n := range d.notes {
			if n.WorkspaceID == id {
				delete(d.notes, nid)
			}
		}
		delete(d.workspaces, id)
		return nil
	})
}

// TreeRows walks the folder forest breadth first from the roots, emitting
// the same rows and order as the recursive SQL query. Unfiled notes come
// first with depth -1.
func (r *WorkspaceRepository) TreeRows(ctx context.Context, workspaceID string) ([]models.TreeRow, error) {
	var rows []models.TreeRow
	err := r.store.run(ctx, func(d *dataset) error {
		children := make(map[string][]models.Folder)
		notes := make(map[string][]models.Note)
		var roots []models.Folder
		var unfiled []models.Note

		for _, f := range d.folders {
			if f.WorkspaceID != workspaceID {
				continue
			}
			if f.ParentID == nil {
				roots = append(roots, f)
			} else {
				children[*f.ParentID] = append(children[*f.ParentID], f)
			}
		}
		for _, n := range d.notes {
			if n.WorkspaceID != workspaceID {
				continue
			}
			if n.FolderID == nil {
				unfiled = append(unfiled, n)
			} else {
				notes[*n.FolderID] = append(notes[*n.FolderID], n)
			}
		}

		slices.SortFunc(unfiled, compareNotes)
		for _, n := range unfiled {
			rows = append(rows, models.TreeRow{Depth: -1, NoteID: &n.ID, NoteName: &n.Name})
		}

		level := roots
		visited := make(map[string]bool)
		for depth := 0; len(level) > 0; depth++ {
			slices.SortFunc(level, compareFolders)
			var next []models.Folder
			for _, f := range level {
				if visited[f.ID] {
					continue
				}
				visited[f.ID] = true

				folderNotes := notes[f.ID]
				slices.SortFunc(folderNotes, compareNotes)
				if len(folderNotes) == 0 {
					rows = append(rows, folderRow(f, depth))
				}
				for _, n := range folderNotes {
					row := folderRow(f, depth)
					row.NoteID = &n.ID
					row.NoteName = &n.Name
					rows = append(rows, row)
				}
				next = append(next, children[f.ID]...)
			}
			level = next
		}
		return nil
	})
	return rows, err
}

func folderRow(f models.Folder, depth int) models.TreeRow {
	return models.TreeRow{
		FolderID:   f.ID,
		FolderName: f.Name,
		ParentID:   f.ParentID,
		Depth:      depth,
	}
}

func compareFolders(a, b models.Folder) int {
	return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
}

func compareNotes(a, b models.Note) int {
	return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID, b.ID))
}
