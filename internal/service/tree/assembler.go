// Package tree rebuilds a workspace's folder forest from the flat rows of the
// recursive folder query and projects it for API responses.
package tree

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sori/internal/domain/models"
)

// Assembler turns flat tree rows into a sorted folder forest.
// Sibling folders and notes are ordered by name using the collation rules of
// the configured language, ties broken by id.
type Assembler struct {
	tag language.Tag
}

// NewAssembler creates an assembler sorting names with the collation of tag
func NewAssembler(tag language.Tag) *Assembler {
	return &Assembler{tag: tag}
}

// Assemble builds the forest in four passes: folder nodes, notes, nesting,
// then a depth-first sort. Rows with an empty FolderID only contribute to the
// flat note list. A folder whose parent is absent from rows becomes a root.
func (a *Assembler) Assemble(rows []models.TreeRow) *models.WorkspaceTree {
	folderMap := make(map[string]*models.FolderNode)
	var order []string

	// First pass: one node per distinct folder id, in row order
	for _, row := range rows {
		if row.FolderID == "" {
			continue
		}
		if _, exists := folderMap[row.FolderID]; exists {
			continue
		}
		folderMap[row.FolderID] = &models.FolderNode{
			ID:       row.FolderID,
			Name:     row.FolderName,
			ParentID: row.ParentID,
			Notes:    []models.NoteNode{},
			Children: []*models.FolderNode{},
		}
		order = append(order, row.FolderID)
	}

	// Second pass: attach notes to their folders and collect the flat list
	notes := make([]models.NoteNode, 0)
	seenNotes := make(map[string]bool)
	for _, row := range rows {
		if row.NoteID == nil || seenNotes[*row.NoteID] {
			continue
		}
		seenNotes[*row.NoteID] = true

		note := models.NoteNode{ID: *row.NoteID}
		if row.NoteName != nil {
			note.Name = *row.NoteName
		}
		notes = append(notes, note)

		if node, exists := folderMap[row.FolderID]; exists {
			node.Notes = append(node.Notes, note)
		}
	}

	// Third pass: nest children under parents
	roots := make([]*models.FolderNode, 0)
	for _, id := range order {
		node := folderMap[id]
		if node.ParentID != nil {
			if parent, exists := folderMap[*node.ParentID]; exists && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	// collators keep per-comparison buffers, so each assembly gets its own
	s := &sorter{col: collate.New(a.tag)}
	s.folders(roots)
	s.notes(notes)

	return &models.WorkspaceTree{Folders: roots, Notes: notes}
}

type sorter struct {
	col *collate.Collator
}

func (s *sorter) compare(aName, aID, bName, bID string) int {
	if c := s.col.CompareString(aName, bName); c != 0 {
		return c
	}
	return strings.Compare(aID, bID)
}

func (s *sorter) folders(nodes []*models.FolderNode) {
	slices.SortFunc(nodes, func(a, b *models.FolderNode) int {
		return s.compare(a.Name, a.ID, b.Name, b.ID)
	})
	for _, node := range nodes {
		s.notes(node.Notes)
		s.folders(node.Children)
	}
}

func (s *sorter) notes(notes []models.NoteNode) {
	slices.SortFunc(notes, func(a, b models.NoteNode) int {
		return s.compare(a.Name, a.ID, b.Name, b.ID)
	})
}
