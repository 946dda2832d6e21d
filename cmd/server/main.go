package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/text/language"

	"sori/internal/auth"
	"sori/internal/config"
	"sori/internal/domain/repositories"
	"sori/internal/handler"
	"sori/internal/repository/memory"
	"sori/internal/repository/postgres"
	"sori/internal/service"
	permissions "sori/internal/service/auth"
	"sori/internal/service/tree"
)

// storage is the repository set selected at startup
type storage struct {
	users      repositories.UserRepository
	workspaces repositories.WorkspaceRepository
	folders    repositories.FolderRepository
	notes      repositories.NoteRepository
	servers    repositories.ServerRepository
	txManager  repositories.TransactionManager
	close      func()
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.close()

	// OAuth providers: a provider without a client id is not registered
	definitions, err := auth.LoadProviderDefinitions()
	if err != nil {
		log.Fatalf("Failed to load provider definitions: %v", err)
	}
	registry := auth.NewRegistry()
	for _, def := range definitions {
		client := cfg.OAuthClient(def.Name)
		if client.ClientID == "" {
			logger.Warn("oauth provider disabled, no client id", "provider", def.Name)
			continue
		}
		provider, err := auth.NewOIDCProvider(ctx, def, client, logger)
		if err != nil {
			log.Fatalf("Failed to set up provider %s: %v", def.Name, err)
		}
		registry.Register(provider)
	}
	logger.Info("oauth providers registered", "providers", registry.Names())

	// Services
	tokens := auth.NewTokenService(cfg.AppURL, cfg.JWTSecret, logger)
	checker := permissions.NewPermissionChecker(store.workspaces, store.folders, store.notes)
	prober := service.NewHealthProber(&http.Client{Timeout: 10 * time.Second}, logger)

	userService := service.NewUserService(store.users, store.txManager, logger)
	authService := service.NewAuthService(registry, userService, tokens, logger)
	workspaceService := service.NewWorkspaceService(store.workspaces, store.folders, store.notes, store.txManager, tree.NewAssembler(language.Und), logger)
	folderService := service.NewFolderService(store.folders, store.txManager, checker, logger)
	noteService := service.NewNoteService(store.notes, store.txManager, checker, logger)
	serverService := service.NewServerService(store.servers, store.txManager, prober, logger)

	logger.Info("services initialized")

	router := handler.NewRouter(handler.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.AuthHandlerConfig{
			SecureCookies:   cfg.IsProduction(),
			RedirectOrigins: cfg.AllowedOrigins(),
		}, logger),
		User:      handler.NewUserHandler(userService, logger),
		Workspace: handler.NewWorkspaceHandler(workspaceService, logger),
		Folder:    handler.NewFolderHandler(folderService, logger),
		Note:      handler.NewNoteHandler(noteService, logger),
		Server:    handler.NewServerHandler(serverService, logger),
	}, tokens, logger)

	// CORS - outermost so pre-flight requests never reach auth
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// openStorage connects to Postgres when DATABASE_URL is set, otherwise it
// falls back to the in-memory store
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		repos := memory.NewRepositories(memory.NewStore())
		return &storage{
			users:      repos.Users,
			workspaces: repos.Workspaces,
			folders:    repos.Folders,
			notes:      repos.Notes,
			servers:    repos.Servers,
			txManager:  repos.TxManager,
			close:      func() {},
		}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database connected", "max_conns", pool.Config().MaxConns)

	repos := postgres.NewRepositories(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})
	return &storage{
		users:      repos.Users,
		workspaces: repos.Workspaces,
		folders:    repos.Folders,
		notes:      repos.Notes,
		servers:    repos.Servers,
		txManager:  repos.TxManager,
		close:      pool.Close,
	}, nil
}
