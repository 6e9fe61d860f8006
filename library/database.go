package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const (
	dialectSQLite = "sqlite3"

	// driverName is go-sqlite3 with a fold(text) function registered on every
	// connection. fold is strings.ToLower, so search folds case the same way
	// MemoryStore does, including non-ASCII letters that SQLite's lower() skips.
	driverName = "sqlite3_fold"
	foldFunc   = "fold"

	// memoryDSN opens a private in-memory database. Every connection to it is a
	// fresh, empty database, so the pool is pinned to a single connection.
	memoryDSN = "file::memory:?_foreign_keys=1"

	tableBooks = "books"
	tableUsers = "users"

	colID                 = "id"
	colTitle              = "title"
	colAuthor             = "author"
	colAvailable          = "available"
	colRegistrationNumber = "registration_number"
	colPassword           = "password"
)

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(foldFunc, strings.ToLower, true)
		},
	})
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// Database is a Store backed by an in-memory SQLite database. Its contents
// vanish when the process exits, exactly like MemoryStore.
type Database struct {
	db      *sqlx.DB
	builder goqu.DialectWrapper
}

// NewDatabase opens the in-memory SQLite database and creates the schema.
func NewDatabase() (*Database, error) {
	db, err := sqlx.Open(driverName, memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Database{db: db, builder: goqu.Dialect(dialectSQLite)}, nil
}

// Close closes the DB and discards its contents.
func (d *Database) Close() error { return d.db.Close() }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applySchema(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            available BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            registration_number TEXT PRIMARY KEY,
            password TEXT NOT NULL
        );`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func (d *Database) selectBooks() *goqu.SelectDataset {
	return d.builder.
		From(tableBooks).
		Select(colID, colTitle, colAuthor, colAvailable).
		Order(goqu.I(colID).Asc())
}

// AddBook counts and inserts in one transaction so the new id is count + 1.
func (d *Database) AddBook(title, author string) (*Book, error) {
	tx, err := d.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	countSQL, args, err := d.builder.From(tableBooks).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var count int64
	if err := tx.Get(&count, countSQL, args...); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	b := &Book{ID: count + 1, Title: title, Author: author, Available: true}
	insertSQL, args, err := d.builder.Insert(tableBooks).Rows(goqu.Record{
		colID:        b.ID,
		colTitle:     b.Title,
		colAuthor:    b.Author,
		colAvailable: b.Available,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}
	if _, err := tx.Exec(insertSQL, args...); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return b, tx.Commit()
}

func (d *Database) GetBook(id int64) (*Book, error) {
	return d.getBook(d.db, id)
}

func (d *Database) getBook(q sqlx.Queryer, id int64) (*Book, error) {
	query, args, err := d.selectBooks().Where(goqu.C(colID).Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var b Book
	if err := sqlx.Get(q, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %d: %w", id, ErrBookNotFound)
		}
		return nil, err
	}
	return &b, nil
}

// GetAllBooks returns every book ordered by id.
func (d *Database) GetAllBooks() ([]*Book, error) {
	query, args, err := d.selectBooks().Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	books := []*Book{}
	if err := d.db.Select(&books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// SearchBooks uses instr over fold() so the keyword is matched as a plain
// substring; LIKE would treat % and _ in it as wildcards.
func (d *Database) SearchBooks(keyword string) ([]*Book, error) {
	query, args, err := d.selectBooks().Where(goqu.Or(
		goqu.L("instr(fold(title), fold(?)) > 0", keyword),
		goqu.L("instr(fold(author), fold(?)) > 0", keyword),
	)).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}
	results := []*Book{}
	if err := d.db.Select(&results, query, args...); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckoutBook checks and updates availability in one transaction.
func (d *Database) CheckoutBook(id int64) (*Book, error) {
	return d.setAvailable(id, false)
}

// ReturnBook checks and updates availability in one transaction.
func (d *Database) ReturnBook(id int64) (*Book, error) {
	return d.setAvailable(id, true)
}

func (d *Database) setAvailable(id int64, available bool) (*Book, error) {
	tx, err := d.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	b, err := d.getBook(tx, id)
	if err != nil {
		return nil, err
	}
	if b.Available == available {
		if available {
			return nil, fmt.Errorf("book %d is not checked out: %w", id, ErrAlreadyAvailable)
		}
		return nil, fmt.Errorf("book %d already checked out: %w", id, ErrNotAvailable)
	}

	query, args, err := d.builder.Update(tableBooks).
		Set(goqu.Record{colAvailable: available}).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	b.Available = available
	return b, tx.Commit()
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// PutUser replaces any user stored under the same registration number.
func (d *Database) PutUser(u User) error {
	query, args, err := d.builder.Insert(tableUsers).Rows(goqu.Record{
		colRegistrationNumber: u.RegistrationNumber,
		colPassword:           u.Password,
	}).OnConflict(goqu.DoUpdate(colRegistrationNumber, goqu.Record{
		colPassword: u.Password,
	})).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := d.db.Exec(query, args...); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (d *Database) GetUser(registrationNumber string) (*User, error) {
	query, args, err := d.builder.From(tableUsers).
		Select(colRegistrationNumber, colPassword).
		Where(goqu.C(colRegistrationNumber).Eq(registrationNumber)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	var u User
	if err := d.db.Get(&u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", registrationNumber, ErrUserNotFound)
		}
		return nil, err
	}
	return &u, nil
}
