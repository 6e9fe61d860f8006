package library

import "errors"

var (
	// ErrBookNotFound means no book has the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrNotAvailable means the book cannot be borrowed: it is missing or already out.
	ErrNotAvailable = errors.New("book not available")
	// ErrAlreadyAvailable means a return was attempted on a book that is not borrowed.
	ErrAlreadyAvailable = errors.New("book is already available")
	// ErrUserNotFound means no user has the requested registration number.
	ErrUserNotFound = errors.New("user not found")

	// ErrInputClosed is returned by the console when its input ends before Exit.
	ErrInputClosed = errors.New("input closed")
)
