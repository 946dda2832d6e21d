// Package memory is an in-process implementation of the repository
// interfaces. It backs local development when no database is configured and
// the service and handler tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"sori/internal/domain/models"
	"sori/internal/domain/repositories"
)

type dataset struct {
	users      map[string]models.User
	accounts   map[string]models.Account
	workspaces map[string]models.Workspace
	folders    map[string]models.Folder
	notes      map[string]models.Note
	servers    map[string]models.Server
}

func newDataset() *dataset {
	return &dataset{
		users:      make(map[string]models.User),
		accounts:   make(map[string]models.Account),
		workspaces: make(map[string]models.Workspace),
		folders:    make(map[string]models.Folder),
		notes:      make(map[string]models.Note),
		servers:    make(map[string]models.Server),
	}
}

// clone copies every table. Records are stored by value and replaced, never
// mutated in place, so a shallow map copy is a full snapshot.
func (d *dataset) clone() *dataset {
	return &dataset{
		users:      maps.Clone(d.users),
		accounts:   maps.Clone(d.accounts),
		workspaces: maps.Clone(d.workspaces),
		folders:    maps.Clone(d.folders),
		notes:      maps.Clone(d.notes),
		servers:    maps.Clone(d.servers),
	}
}

// Store holds all tables behind one lock. A transaction holds the lock for
// its whole duration, so transactions are serialized.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: newDataset()}
}

type txContextKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txContextKey{}).(*Store)
	return owner == s
}

// run executes fn against the tables, joining the transaction carried by ctx
// if there is one
func (s *Store) run(ctx context.Context, fn func(d *dataset) error) error {
	if s.inTx(ctx) {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// TransactionManager implements repositories.TransactionManager with
// snapshot and rollback
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager for the store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx runs fn atomically. Any error from fn restores the snapshot taken
// when the transaction began. Nested calls join the outer transaction.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s := tm.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
		s.mu.Unlock()
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

// Repositories bundles every repository backed by one store
type Repositories struct {
	Users      repositories.UserRepository
	Workspaces repositories.WorkspaceRepository
	Folders    repositories.FolderRepository
	Notes      repositories.NoteRepository
	Servers    repositories.ServerRepository
	TxManager  repositories.TransactionManager
}

// NewRepositories creates all repositories over store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Users:      &UserRepository{store: store},
		Workspaces: &WorkspaceRepository{store: store},
		Folders:    &FolderRepository{store: store},
		Notes:      &NoteRepository{store: store},
		Servers:    &ServerRepository{store: store},
		TxManager:  NewTransactionManager(store),
	}
}
