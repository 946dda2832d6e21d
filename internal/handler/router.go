package handler

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"sori/internal/domain/services"
	"sori/internal/httputil"
	"sori/internal/middleware"
)

// Handlers bundles the resource handlers served by the router
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Workspace *WorkspaceHandler
	Folder    *FolderHandler
	Note      *NoteHandler
	Server    *ServerHandler
}

// NewRouter registers every route and wraps the mux in the common
// middleware. CORS is applied by the caller.
func NewRouter(h Handlers, tokens services.TokenService, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	protect := middleware.RequireAccessToken(tokens, logger)
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protect(fn))
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Auth
	mux.HandleFunc("GET /api/v1/auth/{provider}", h.Auth.Login)
	mux.HandleFunc("GET /api/v1/auth/{provider}/callback", h.Auth.Callback)
	mux.Handle("POST /api/v1/auth/refresh", middleware.BearerToken(http.HandlerFunc(h.Auth.Refresh)))
	mux.HandleFunc("GET /api/v1/auth/refresh", methodNotAllowed(http.MethodPost))

	// User
	private("GET /api/v1/user", h.User.GetUser)
	private("PATCH /api/v1/user", h.User.UpdateUser)

	// Workspaces
	private("GET /api/v1/workspace", h.Workspace.ListWorkspaces)
	private("POST /api/v1/workspace", h.Workspace.CreateWorkspace)
	private("GET /api/v1/workspace/{id}", h.Workspace.GetWorkspace)
	private("PATCH /api/v1/workspace/{id}", h.Workspace.UpdateWorkspace)
	private("DELETE /api/v1/workspace/{id}", h.Workspace.DeleteWorkspace)

	// Folders
	private("POST /api/v1/workspace/{workspaceId}/folder", h.Folder.CreateFolder)
	private("PATCH /api/v1/workspace/{workspaceId}/folder/{folderId}", h.Folder.UpdateFolder)
	private("DELETE /api/v1/workspace/{workspaceId}/folder/{folderId}", h.Folder.DeleteFolder)

	// Notes
	private("POST /api/v1/workspace/{workspaceId}/note", h.Note.CreateNote)
	private("PATCH /api/v1/workspace/{workspaceId}/note/{noteId}", h.Note.UpdateNote)
	private("DELETE /api/v1/workspace/{workspaceId}/note/{noteId}", h.Note.DeleteNote)

	// Servers
	private("GET /api/v1/server", h.Server.ListServers)
	private("POST /api/v1/server", h.Server.CreateServer)
	private("GET /api/v1/server/{id}", h.Server.GetServer)
	private("PATCH /api/v1/server/{id}", h.Server.UpdateServer)
	private("DELETE /api/v1/server/{id}", h.Server.DeleteServer)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, r, http.StatusNotFound, "route_not_found")
	})

	// Order: RequestID → Logger → Recovery → headers → routes
	var handler http.Handler = mux
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestLogger(logger)(handler)
	handler = chimw.RequestID(handler)
	return handler
}

func methodNotAllowed(allow ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, m := range allow {
			w.Header().Add("Allow", m)
		}
		httputil.RespondError(w, r, http.StatusMethodNotAllowed, "method_not_allowed")
	}
}
