package models

import "time"

// Note is a leaf of a workspace. FolderID nil means unfiled.
// The owner of a note is its workspace; the folder only places it.
type Note struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	FolderID    *string    `json:"folderId"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// PublicNote is the representation returned to clients.
type PublicNote struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToPublic projects a note for API responses.
func (n *Note) ToPublic() PublicNote {
	return PublicNote{ID: n.ID, Name: n.Name}
}
