package service

import (
	"context"
	"testing"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/httputil"
)

func TestCreateWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.workspaces.CreateWorkspace(ctx, "alice", &services.CreateWorkspaceRequest{Name: "Research"})
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.ID == "" || res.Value.UserID != "alice" || res.Value.CreatedAt.IsZero() {
		t.Errorf("created workspace = %+v", res.Value)
	}

	t.Run("duplicate name for the same owner", func(t *testing.T) {
		res, err := f.workspaces.CreateWorkspace(ctx, "alice", &services.CreateWorkspaceRequest{Name: "Research"})
		wantOutcome(t, res, err, domain.OutcomeAlreadyExists)
	})

	t.Run("same name for another owner", func(t *testing.T) {
		res, err := f.workspaces.CreateWorkspace(ctx, "bob", &services.CreateWorkspaceRequest{Name: "Research"})
		wantOutcome(t, res, err, domain.OutcomeOK)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			req   services.CreateWorkspaceRequest
			field string
		}{
			{"empty name", services.CreateWorkspaceRequest{Name: ""}, "name"},
			{"name too long", services.CreateWorkspaceRequest{Name: "123456789012345678901234567890123456789012345678901"}, "name"},
			{"image not a url", services.CreateWorkspaceRequest{Name: "ok", Image: strPtr("not a url")}, "image"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.workspaces.CreateWorkspace(ctx, "alice", &tt.req)
				wantValidation(t, err, tt.field)
			})
		}
	})

	t.Run("fifty korean characters fit", func(t *testing.T) {
		name := ""
		for range 50 {
			name += "가"
		}
		res, err := f.workspaces.CreateWorkspace(ctx, "alice", &services.CreateWorkspaceRequest{Name: name})
		wantOutcome(t, res, err, domain.OutcomeOK)
	})
}

func TestGetWorkspaceDetailed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ws := f.createWorkspace(t, "alice", "Notes")
	b := f.createFolder(t, "alice", ws.ID, "b", nil)
	a := f.createFolder(t, "alice", ws.ID, "a", nil)
	child := f.createFolder(t, "alice", ws.ID, "child", &a.ID)
	f.createNote(t, "alice", ws.ID, "deep", &child.ID)
	f.createNote(t, "alice", ws.ID, "in b", &b.ID)
	f.createNote(t, "alice", ws.ID, "loose", nil)

	res, err := f.workspaces.GetWorkspace(ctx, "alice", ws.ID, true)
	wantOutcome(t, res, err, domain.OutcomeOK)

	roots := res.Value.Folders
	if len(roots) != 2 || roots[0].Name != "a" || roots[1].Name != "b" {
		t.Fatalf("roots = %v, want [a b]", folderNames(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != child.ID {
		t.Fatalf("a children = %v", folderNames(roots[0].Children))
	}
	if notes := roots[0].Children[0].Notes; len(notes) != 1 || notes[0].Name != "deep" {
		t.Errorf("child notes = %v", notes)
	}

	var names []string
	for _, n := range res.Value.Notes {
		names = append(names, n.Name)
	}
	if len(names) != 3 || names[0] != "deep" || names[1] != "in b" || names[2] != "loose" {
		t.Errorf("flat notes = %v, want [deep in b loose]", names)
	}

	t.Run("foreign and missing workspaces are not found", func(t *testing.T) {
		res, err := f.workspaces.GetWorkspace(ctx, "bob", ws.ID, true)
		wantOutcome(t, res, err, domain.OutcomeNotFound)

		res, err = f.workspaces.GetWorkspace(ctx, "alice", "7b0e1d4c-0000-4000-8000-000000000000", true)
		wantOutcome(t, res, err, domain.OutcomeNotFound)
	})
}

func TestGetWorkspaceEmpty(t *testing.T) {
	f := newFixture(t)
	ws := f.createWorkspace(t, "alice", "Empty")

	res, err := f.workspaces.GetWorkspace(context.Background(), "alice", ws.ID, true)
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.Folders == nil || len(res.Value.Folders) != 0 {
		t.Errorf("folders = %#v, want empty non-nil", res.Value.Folders)
	}
	if res.Value.Notes == nil || len(res.Value.Notes) != 0 {
		t.Errorf("notes = %#v, want empty non-nil", res.Value.Notes)
	}
}

func TestGetWorkspaceShallow(t *testing.T) {
	f := newFixture(t)
	ws := f.createWorkspace(t, "alice", "Notes")
	parent := f.createFolder(t, "alice", ws.ID, "parent", nil)
	f.createFolder(t, "alice", ws.ID, "child", &parent.ID)
	f.createNote(t, "alice", ws.ID, "n", &parent.ID)

	res, err := f.workspaces.GetWorkspace(context.Background(), "alice", ws.ID, false)
	wantOutcome(t, res, err, domain.OutcomeOK)

	if len(res.Value.Folders) != 2 {
		t.Fatalf("flat folders = %v, want both folders", folderNames(res.Value.Folders))
	}
	for _, node := range res.Value.Folders {
		if len(node.Children) != 0 || len(node.Notes) != 0 {
			t.Errorf("shallow folder %q has nested contents", node.Name)
		}
	}
	if len(res.Value.Notes) != 1 {
		t.Errorf("notes = %v", res.Value.Notes)
	}
}

func TestListWorkspaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"c", "a", "b"} {
		ws := f.createWorkspace(t, "alice", name)
		f.createNote(t, "alice", ws.ID, "note of "+name, nil)
	}
	f.createWorkspace(t, "bob", "foreign")

	first, err := f.workspaces.ListWorkspaces(ctx, "alice", models.PageRequest{Limit: 2, SortBy: models.SortByName, OrderBy: models.OrderAsc})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Items) != 2 || first.Items[0].Name != "a" || first.Items[1].Name != "b" {
		t.Fatalf("first page = %v", workspaceNames(first.Items))
	}
	if first.Next == nil || *first.Next != first.Items[1].ID {
		t.Fatalf("next = %v, want id of b", first.Next)
	}
	if len(first.Items[0].Notes) != 1 || first.Items[0].Notes[0].Name != "note of a" {
		t.Errorf("contents of a = %v", first.Items[0].Notes)
	}

	second, err := f.workspaces.ListWorkspaces(ctx, "alice", models.PageRequest{Cursor: first.Next, Limit: 2, SortBy: models.SortByName, OrderBy: models.OrderAsc})
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Items) != 1 || second.Items[0].Name != "c" {
		t.Fatalf("second page = %v", workspaceNames(second.Items))
	}
	if second.Next != nil {
		t.Errorf("next = %v on the last page", *second.Next)
	}
}

func TestUpdateWorkspace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.createWorkspace(t, "alice", "Old")
	f.createWorkspace(t, "alice", "Taken")

	tests := []struct {
		name   string
		userID string
		req    services.UpdateWorkspaceRequest
		want   domain.Outcome
	}{
		{"foreign owner", "bob", services.UpdateWorkspaceRequest{Name: strPtr("New")}, domain.OutcomeNotFound},
		{"taken name", "alice", services.UpdateWorkspaceRequest{Name: strPtr("Taken")}, domain.OutcomeAlreadyExists},
		{"same name", "alice", services.UpdateWorkspaceRequest{Name: strPtr("Old")}, domain.OutcomeOK},
		{"set image", "alice", services.UpdateWorkspaceRequest{Image: httputil.Set("https://img.test/a.png")}, domain.OutcomeOK},
		{"rename", "alice", services.UpdateWorkspaceRequest{Name: strPtr("New")}, domain.OutcomeOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.workspaces.UpdateWorkspace(ctx, tt.userID, ws.ID, &tt.req)
			wantOutcome(t, res, err, tt.want)
		})
	}

	res, err := f.workspaces.GetWorkspace(ctx, "alice", ws.ID, false)
	wantOutcome(t, res, err, domain.OutcomeOK)
	if res.Value.Name != "New" || res.Value.Image == nil || res.Value.UpdatedAt == nil {
		t.Errorf("workspace after updates = %+v", res.Value.Workspace)
	}

	clear, err := f.workspaces.UpdateWorkspace(ctx, "alice", ws.ID, &services.UpdateWorkspaceRequest{Image: httputil.Null()})
	wantOutcome(t, clear, err, domain.OutcomeOK)
	if clear.Value.Image != nil {
		t.Errorf("image = %v after null", *clear.Value.Image)
	}

	_, err = f.workspaces.UpdateWorkspace(ctx, "alice", ws.ID, &services.UpdateWorkspaceRequest{Name: strPtr("")})
	wantValidation(t, err, "name")
}

func TestDeleteWorkspaceCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ws := f.createWorkspace(t, "alice", "Doomed")
	folder := f.createFolder(t, "alice", ws.ID, "f", nil)
	note := f.createNote(t, "alice", ws.ID, "n", &folder.ID)

	res, err := f.workspaces.DeleteWorkspace(ctx, "bob", ws.ID)
	wantOutcome(t, res, err, domain.OutcomeNotFound)

	res, err = f.workspaces.DeleteWorkspace(ctx, "alice", ws.ID)
	wantOutcome(t, res, err, domain.OutcomeOK)

	if _, err := f.repos.Folders.GetByID(ctx, folder.ID); err == nil {
		t.Error("folder survived workspace deletion")
	}
	if _, err := f.repos.Notes.GetByID(ctx, note.ID); err == nil {
		t.Error("note survived workspace deletion")
	}

	res, err = f.workspaces.DeleteWorkspace(ctx, "alice", ws.ID)
	wantOutcome(t, res, err, domain.OutcomeNotFound)
}

func folderNames(nodes []*models.FolderNode) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
	}
	return names
}

func workspaceNames(items []*models.WorkspaceContents) []string {
	names := make([]string, 0, len(items))
	for _, w := range items {
		names = append(names, w.Name)
	}
	return names
}
