package memory

import (
	"context"
	"fmt"
	"slices"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

// NoteRepository implements repositories.NoteRepository
type NoteRepository struct {
	store *Store
}

func checkNoteRefs(d *dataset, note *models.Note) error {
	if _, ok := d.workspaces[note.WorkspaceID]; !ok {
		return fmt.Errorf("workspace %s: %w", note.WorkspaceID, domain.ErrNotFound)
	}
	if note.FolderID != nil {
		if _, ok := d.folders[*note.FolderID]; !ok {
			return fmt.Errorf("folder %s: %w", *note.FolderID, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.store.run(ctx, func(d *dataset) error {
		if err := checkNoteRefs(d, note); err != nil {
			return err
		}
		d.notes[note.ID] = *note
		return nil
	})
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	err := r.store.run(ctx, func(d *dataset) error {
		n, ok := d.notes[id]
		if !ok {
			return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) ExistsInWorkspace(ctx context.Context, id, workspaceID string) (bool, error) {
	var exists bool
	err := r.store.run(ctx, func(d *dataset) error {
		n, ok := d.notes[id]
		exists = ok && n.WorkspaceID == workspaceID
		return nil
	})
	return exists, err
}

func (r *NoteRepository) ListByWorkspaces(ctx context.Context, workspaceIDs []string) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.store.run(ctx, func(d *dataset) error {
		for _, n := range d.notes {
			if slices.Contains(workspaceIDs, n.WorkspaceID) {
				notes = append(notes, n)
			}
		}
		return nil
	})
	slices.SortFunc(notes, compareNotes)
	return notes, err
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.store.run(ctx, func(d *dataset) error {
		existing, ok := d.notes[note.ID]
		if !ok {
			return fmt.Errorf("note %s: %w", note.ID, domain.ErrNotFound)
		}
		if err := checkNoteRefs(d, note); err != nil {
			return err
		}
		existing.Name = note.Name
		existing.FolderID = note.FolderID
		existing.UpdatedAt = note.UpdatedAt
		d.notes[note.ID] = existing
		return nil
	})
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	return r.store.run(ctx, func(d *dataset) error {
		if _, ok := d.notes[id]; !ok {
			return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
		}
		delete(d.notes, id)
		return nil
	})
}
