package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	"sori/internal/domain"
	"sori/internal/domain/models"
	"sori/internal/domain/services"
	"sori/internal/repository/memory"
	permissions "sori/internal/service/auth"
	"sori/internal/service/tree"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// fakeProber records probed urls and fails those listed in down
type fakeProber struct {
	probed []string
	down   map[string]bool
}

func (p *fakeProber) Probe(_ context.Context, baseURL string) error {
	p.probed = append(p.probed, baseURL)
	if p.down[baseURL] {
		return services.ErrServerUnreachable
	}
	return nil
}

type fixture struct {
	repos      *memory.Repositories
	prober     *fakeProber
	users      services.UserService
	workspaces services.WorkspaceService
	folders    services.FolderService
	notes      services.NoteService
	servers    services.ServerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	logger := discardLogger()
	checker := permissions.NewPermissionChecker(repos.Workspaces, repos.Folders, repos.Notes)
	prober := &fakeProber{down: map[string]bool{}}

	return &fixture{
		repos:      repos,
		prober:     prober,
		users:      NewUserService(repos.Users, repos.TxManager, logger),
		workspaces: NewWorkspaceService(repos.Workspaces, repos.Folders, repos.Notes, repos.TxManager, tree.NewAssembler(language.English), logger),
		folders:    NewFolderService(repos.Folders, repos.TxManager, checker, logger),
		notes:      NewNoteService(repos.Notes, repos.TxManager, checker, logger),
		servers:    NewServerService(repos.Servers, repos.TxManager, prober, logger),
	}
}

func (f *fixture) createWorkspace(t *testing.T, userID, name string) *models.Workspace {
	t.Helper()
	res, err := f.workspaces.CreateWorkspace(context.Background(), userID, &services.CreateWorkspaceRequest{Name: name})
	if err != nil || !res.IsOK() {
		t.Fatalf("CreateWorkspace(%q) = %v, %v", name, res.Outcome, err)
	}
	return res.Value
}

func (f *fixture) createFolder(t *testing.T, userID, workspaceID, name string, parentID *string) *models.Folder {
	t.Helper()
	res, err := f.folders.CreateFolder(context.Background(), userID, workspaceID, &services.CreateFolderRequest{Name: name, ParentID: parentID})
	if err != nil || !res.IsOK() {
		t.Fatalf("CreateFolder(%q) = %v, %v", name, res.Outcome, err)
	}
	return res.Value
}

func (f *fixture) createNote(t *testing.T, userID, workspaceID, name string, folderID *string) *models.Note {
	t.Helper()
	res, err := f.notes.CreateNote(context.Background(), userID, workspaceID, &services.CreateNoteRequest{Name: name, FolderID: folderID})
	if err != nil || !res.IsOK() {
		t.Fatalf("CreateNote(%q) = %v, %v", name, res.Outcome, err)
	}
	return res.Value
}

func wantOutcome[T any](t *testing.T, res domain.Result[T], err error, want domain.Outcome) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != want {
		t.Fatalf("outcome = %v, want %v", res.Outcome, want)
	}
}

func wantValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	issues, ok := verr.Issues.(validation.Errors)
	if !ok {
		t.Fatalf("issues = %T, want validation.Errors", verr.Issues)
	}
	if _, ok := issues[field]; !ok {
		t.Errorf("issues %v do not mention %q", issues, field)
	}
}
