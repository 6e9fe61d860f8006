package library

import (
	"fmt"
	"io"
	"log/slog"
)

// LibraryManager owns one library: its store, catalog and user directory.
// Each instance is independent, so tests can build as many as they like.
type LibraryManager struct {
	store   Store
	Catalog *Catalog
	Users   *UserDirectory
}

// NewLibraryManager opens a store of the given kind and seeds the catalog.
func NewLibraryManager(kind StoreKind, logger *slog.Logger) (*LibraryManager, error) {
	store, err := OpenStore(kind)
	if err != nil {
		return nil, err
	}
	mgr := NewLibraryManagerWithStore(store, logger)
	if err := mgr.Catalog.Seed(); err != nil {
		store.Close()
		return nil, err
	}
	orDiscard(logger).Debug("library ready", "store", string(kind), "books", len(seedBooks))
	return mgr, nil
}

// NewLibraryManagerWithStore wires an unseeded library around store.
func NewLibraryManagerWithStore(store Store, logger *slog.Logger) *LibraryManager {
	return &LibraryManager{
		store:   store,
		Catalog: NewCatalog(store, logger),
		Users:   NewUserDirectory(store, logger),
	}
}

// Close releases the underlying store.
func (lm *LibraryManager) Close() error { return lm.store.Close() }

// ------------------ Utilities ------------------

// PrettyBook formats a book the way listings print it.
func PrettyBook(b *Book) string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s", b.ID, b.Title, b.Author)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
