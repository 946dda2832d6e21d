package models

import "time"

// Workspace is a user-owned container of folders and notes.
// Name is unique per owner.
type Workspace struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Image     *string    `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// WorkspaceContents is a workspace together with its folders and notes.
// In the detailed shape Folders is the assembled forest; in the shallow shape
// it is the flat list of folders owned by the workspace with nothing nested.
type WorkspaceContents struct {
	Workspace
	Folders []*FolderNode
	Notes   []NoteNode
}

// PublicWorkspace is the representation returned to clients.
type PublicWorkspace struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Image   *string        `json:"image"`
	Notes   []PublicNote   `json:"notes"`
	Folders []PublicFolder `json:"folders"`
}
