package tree

import "sori/internal/domain/models"

// ToPublicFolders projects assembled folders for API responses.
// Nodes missing their notes or children (for example the flat folders of the
// shallow workspace shape) get empty lists rather than nulls; nil nodes are
// skipped.
func ToPublicFolders(nodes []*models.FolderNode) []models.PublicFolder {
	out := make([]models.PublicFolder, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		out = append(out, toPublicFolder(node))
	}
	return out
}

func toPublicFolder(node *models.FolderNode) models.PublicFolder {
	folder := models.PublicFolder{
		ID:       node.ID,
		Name:     node.Name,
		Notes:    ToPublicNotes(node.Notes),
		Children: ToPublicFolders(node.Children),
	}
	return folder
}

// ToPublicNotes projects note nodes, never returning nil
func ToPublicNotes(notes []models.NoteNode) []models.PublicNote {
	out := make([]models.PublicNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, models.PublicNote{ID: n.ID, Name: n.Name})
	}
	return out
}

// FlatFolders wraps plain folder records as childless nodes, the shape used
// when a workspace is fetched without its tree
func FlatFolders(folders []models.Folder) []*models.FolderNode {
	out := make([]*models.FolderNode, 0, len(folders))
	for _, f := range folders {
		out = append(out, &models.FolderNode{ID: f.ID, Name: f.Name, ParentID: f.ParentID})
	}
	return out
}
