package library

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	msgBorrowFailed = "Book not available for borrowing or invalid book ID."
	msgReturnFailed = "Invalid book ID or book is already available."
)

// Catalog owns the books of a library and the circulation rules around them.
type Catalog struct {
	store  Store
	logger *slog.Logger
}

// NewCatalog wraps store. The catalog is empty until Seed is called.
func NewCatalog(store Store, logger *slog.Logger) *Catalog {
	return &Catalog{store: store, logger: orDiscard(logger).With("component", "catalog")}
}

// Seed adds the ten starter books, ids 1 through 10.
func (c *Catalog) Seed() error {
	for _, s := range seedBooks {
		if _, err := c.AddBook(s[0], s[1]); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return nil
}

// AddBook appends an available book with id = current count + 1.
func (c *Catalog) AddBook(title, author string) (*Book, error) {
	b, err := c.store.AddBook(title, author)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("book added", "book_id", b.ID, "title", b.Title)
	return b, nil
}

func (c *Catalog) FindBookByID(id int64) (*Book, error) {
	return c.store.GetBook(id)
}

// Books lists the whole catalog in insertion order.
func (c *Catalog) Books() ([]*Book, error) {
	return c.store.GetAllBooks()
}

// AvailableBooks lists the books that are not currently borrowed.
func (c *Catalog) AvailableBooks() ([]*Book, error) {
	books, err := c.store.GetAllBooks()
	if err != nil {
		return nil, err
	}
	available := make([]*Book, 0, len(books))
	for _, b := range books {
		if b.Available {
			available = append(available, b)
		}
	}
	return available, nil
}

// SearchBooks returns books whose title or author contains keyword, ignoring
// case. No match yields an empty slice.
func (c *Catalog) SearchBooks(keyword string) ([]*Book, error) {
	return c.store.SearchBooks(keyword)
}

// BorrowBook marks the book unavailable. A missing or already borrowed book
// fails with ErrNotAvailable and a populated Result.
func (c *Catalog) BorrowBook(bookID int64, borrower string) (Result, error) {
	b, err := c.store.CheckoutBook(bookID)
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrNotAvailable):
		c.logger.Debug("borrow refused", "book_id", bookID, "reason", err.Error())
		return Result{Message: msgBorrowFailed}, fmt.Errorf("borrow book %d: %w", bookID, ErrNotAvailable)
	case err != nil:
		return Result{}, fmt.Errorf("borrow book %d: %w", bookID, err)
	}
	c.logger.Info("book borrowed", "book_id", b.ID, "borrower", borrower)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Book '%s' borrowed successfully by user %s", b.Title, borrower),
	}, nil
}

// ReturnBook marks the book available again. It fails with ErrBookNotFound or
// ErrAlreadyAvailable, both reported with the same message.
func (c *Catalog) ReturnBook(bookID int64) (Result, error) {
	b, err := c.store.ReturnBook(bookID)
	switch {
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAlreadyAvailable):
		c.logger.Debug("return refused", "book_id", bookID, "reason", err.Error())
		return Result{Message: msgReturnFailed}, err
	case err != nil:
		return Result{}, fmt.Errorf("return book %d: %w", bookID, err)
	}
	c.logger.Info("book returned", "book_id", b.ID)
	return Result{
		Success: true,
		Message: fmt.Sprintf("Book '%s' returned successfully.", b.Title),
	}, nil
}
