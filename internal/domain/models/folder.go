package models

import "time"

// Folder is a node of a workspace's folder tree. ParentID nil means root.
type Folder struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	ParentID    *string    `json:"parentId"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// PublicFolder is the nested representation returned to clients.
type PublicFolder struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Notes    []PublicNote   `json:"notes"`
	Children []PublicFolder `json:"children"`
}
