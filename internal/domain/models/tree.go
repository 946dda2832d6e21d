package models

// TreeRow is one row of the flat recursive workspace query: a folder with its
// depth from a root and at most one attached note. A folder with several
// notes appears once per note; a folder without notes appears once with a
// nil note. Rows with an empty FolderID carry unfiled notes.
type TreeRow struct {
	FolderID   string
	FolderName string
	ParentID   *string
	Depth      int
	NoteID     *string
	NoteName   *string
}

// FolderNode is an assembled folder with its notes and child folders.
// Nil Notes or Children means the contents were never loaded.
type FolderNode struct {
	ID       string
	Name     string
	ParentID *string
	Notes    []NoteNode
	Children []*FolderNode
}

// NoteNode is a note attached to a FolderNode.
type NoteNode struct {
	ID   string
	Name string
}

// WorkspaceTree is the output of tree assembly.
type WorkspaceTree struct {
	// Folders is the forest of root folders.
	Folders []*FolderNode
	// Notes lists every note seen in the rows, sorted like sibling notes.
	Notes []NoteNode
}
