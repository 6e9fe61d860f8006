package library

import (
	"fmt"
	"strings"
)

// Store keeps book and user records for the lifetime of the process.
// Neither implementation writes anything to disk.
type Store interface {
	// AddBook assigns id = current count + 1 and stores the book as available.
	AddBook(title, author string) (*Book, error)
	GetBook(id int64) (*Book, error)
	// GetAllBooks returns every book in id order.
	GetAllBooks() ([]*Book, error)
	// SearchBooks matches keyword case-insensitively against title or author.
	SearchBooks(keyword string) ([]*Book, error)
	// CheckoutBook flips an available book to unavailable.
	CheckoutBook(id int64) (*Book, error)
	// ReturnBook flips an unavailable book back to available.
	ReturnBook(id int64) (*Book, error)

	PutUser(u User) error
	GetUser(registrationNumber string) (*User, error)

	Close() error
}

// StoreKind names a Store implementation.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreSQLite StoreKind = "sqlite"
)

// OpenStore builds the Store for kind.
func OpenStore(kind StoreKind) (Store, error) {
	switch kind {
	case StoreMemory, "":
		return NewMemoryStore(), nil
	case StoreSQLite:
		return NewDatabase()
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

// MemoryStore holds books in insertion order and users in a map.
// Lookups are linear scans; the catalog is a handful of records.
type MemoryStore struct {
	books []*Book
	users map[string]User
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) AddBook(title, author string) (*Book, error) {
	b := &Book{
		ID:        int64(len(m.books)) + 1,
		Title:     title,
		Author:    author,
		Available: true,
	}
	m.books = append(m.books, b)
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) find(id int64) *Book {
	for _, b := range m.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (m *MemoryStore) GetBook(id int64) (*Book, error) {
	b := m.find(id)
	if b == nil {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) GetAllBooks() ([]*Book, error) {
	books := make([]*Book, 0, len(m.books))
	for _, b := range m.books {
		cp := *b
		books = append(books, &cp)
	}
	return books, nil
}

func (m *MemoryStore) SearchBooks(keyword string) ([]*Book, error) {
	kw := strings.ToLower(keyword)
	results := []*Book{}
	for _, b := range m.books {
		if strings.Contains(strings.ToLower(b.Title), kw) || strings.Contains(strings.ToLower(b.Author), kw) {
			cp := *b
			results = append(results, &cp)
		}
	}
	return results, nil
}

func (m *MemoryStore) CheckoutBook(id int64) (*Book, error) {
	b := m.find(id)
	if b == nil {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	if !b.Available {
		return nil, fmt.Errorf("book %d already checked out: %w", id, ErrNotAvailable)
	}
	b.Available = false
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) ReturnBook(id int64) (*Book, error) {
	b := m.find(id)
	if b == nil {
		return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
	}
	if b.Available {
		return nil, fmt.Errorf("book %d is not checked out: %w", id, ErrAlreadyAvailable)
	}
	b.Available = true
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) PutUser(u User) error {
	m.users[u.RegistrationNumber] = u
	return nil
}

func (m *MemoryStore) GetUser(registrationNumber string) (*User, error) {
	u, ok := m.users[registrationNumber]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", registrationNumber, ErrUserNotFound)
	}
	return &u, nil
}
