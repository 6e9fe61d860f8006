package library

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// State is the position of the console in its two-level menu.
type State int

const (
	TopMenu State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case TopMenu:
		return "top_menu"
	case LoggedIn:
		return "logged_in"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Top menu choices.
const (
	choiceRegister = 1
	choiceLogin    = 2
	choiceExit     = 3
)

// Session menu choices.
const (
	choiceListAvailable = 1
	choiceBorrow        = 2
	choiceReturn        = 3
	choiceSearch        = 4
	choiceAdd           = 5
	choiceLogout        = 6
)

// placeholderBorrower is the identity every borrow is recorded under. The
// console does not remember who logged in.
const placeholderBorrower = "current"

const msgInvalidChoice = "Invalid choice. Please try again."

// Console drives the interactive menu over an input and an output stream.
type Console struct {
	mgr          *LibraryManager
	in           *bufio.Scanner
	out          io.Writer
	logger       *slog.Logger
	readPassword PasswordReader

	state   State
	session uuid.UUID
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithLogger sets the logger for menu transitions.
func WithLogger(logger *slog.Logger) ConsoleOption {
	return func(c *Console) { c.logger = logger }
}

// WithPasswordReader replaces the line-based password prompt, e.g. with a
// TerminalPasswordReader.
func WithPasswordReader(r PasswordReader) ConsoleOption {
	return func(c *Console) { c.readPassword = r }
}

// NewConsole builds a Console at TopMenu reading from in and writing to out.
func NewConsole(mgr *LibraryManager, in io.Reader, out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		mgr:   mgr,
		in:    bufio.NewScanner(in),
		out:   out,
		state: TopMenu,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = orDiscard(c.logger).With("component", "console")
	if c.readPassword == nil {
		c.readPassword = c.prompt
	}
	return c
}

// State returns the current menu state.
func (c *Console) State() State { return c.state }

// Run loops until the user picks Exit, which returns nil. When the input ends
// first, Run returns ErrInputClosed.
func (c *Console) Run() error {
	c.println("Welcome to Library Management System")
	for {
		var (
			exit bool
			err  error
		)
		switch c.state {
		case TopMenu:
			exit, err = c.topMenu()
		case LoggedIn:
			err = c.sessionMenu()
		}
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}

func (c *Console) topMenu() (bool, error) {
	c.println("1. Register")
	c.println("2. Login")
	c.println("3. Exit")
	choice, err := c.readChoice()
	if err != nil {
		return false, err
	}

	switch choice {
	case choiceRegister:
		return false, c.handleRegister()
	case choiceLogin:
		return false, c.handleLogin()
	case choiceExit:
		c.println("Exiting...")
		c.logger.Debug("exit requested")
		return true, nil
	default:
		c.println(msgInvalidChoice)
		return false, nil
	}
}

func (c *Console) sessionMenu() error {
	c.println("Library Options:")
	c.println("1. Display available books")
	c.println("2. Borrow a book")
	c.println("3. Return a book")
	c.println("4. Search for a book")
	c.println("5. Add a book")
	c.println("6. Logout")
	choice, err := c.readChoice()
	if err != nil {
		return err
	}

	switch choice {
	case choiceListAvailable:
		c.handleListAvailable()
	case choiceBorrow:
		return c.handleBorrow()
	case choiceReturn:
		return c.handleReturn()
	case choiceSearch:
		return c.handleSearch()
	case choiceAdd:
		return c.handleAddBook()
	case choiceLogout:
		c.println("Logging out.")
		c.logger.Info("session closed", "session_id", c.session.String())
		c.session = uuid.Nil
		c.transition(TopMenu)
	default:
		c.println(msgInvalidChoice)
	}
	return nil
}

func (c *Console) transition(next State) {
	c.logger.Debug("state change", "from", c.state.String(), "to", next.String())
	c.state = next
}

// ------------------ Top menu handlers ------------------

func (c *Console) readCredentials() (string, string, error) {
	regNo, err := c.prompt("Enter registration number: ")
	if err != nil {
		return "", "", err
	}
	password, err := c.readPassword("Enter password: ")
	if err != nil {
		return "", "", err
	}
	return regNo, password, nil
}

// handleRegister treats credentials that already authenticate as an existing
// registration. A known number with a different password is re-registered.
func (c *Console) handleRegister() error {
	regNo, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	ok, err := c.mgr.Users.Authenticate(regNo, password)
	if err != nil {
		c.reportError("authenticate", err)
		return nil
	}
	if ok {
		c.println("User already registered. Please login.")
		return nil
	}

	if err := c.mgr.Users.Register(regNo, password); err != nil {
		c.reportError("register", err)
		return nil
	}
	c.println("Registration successful. You can now login.")
	return nil
}

func (c *Console) handleLogin() error {
	regNo, password, err := c.readCredentials()
	if err != nil {
		return err
	}

	ok, err := c.mgr.Users.Authenticate(regNo, password)
	if err != nil {
		c.reportError("authenticate", err)
		return nil
	}
	if !ok {
		c.println("Invalid credentials. Please try again.")
		c.logger.Debug("login failed", "registration_number", regNo)
		return nil
	}

	c.println("Login successful!")
	c.session = uuid.New()
	c.logger.Info("session opened", "session_id", c.session.String(), "registration_number", regNo)
	c.transition(LoggedIn)
	return nil
}

// ------------------ Session handlers ------------------

func (c *Console) handleListAvailable() {
	books, err := c.mgr.Catalog.AvailableBooks()
	if err != nil {
		c.reportError("list books", err)
		return
	}
	c.println("Available Books:")
	for i, b := range books {
		c.printf("%d. %s\n", i+1, PrettyBook(b))
	}
}

func (c *Console) handleBorrow() error {
	bookID, ok, err := c.readBookID("Enter the ID of the book to borrow: ")
	if err != nil || !ok {
		return err
	}
	res, err := c.mgr.Catalog.BorrowBook(bookID, placeholderBorrower)
	c.reportResult("borrow", res, err)
	return nil
}

func (c *Console) handleReturn() error {
	bookID, ok, err := c.readBookID("Enter the ID of the book to return: ")
	if err != nil || !ok {
		return err
	}
	res, err := c.mgr.Catalog.ReturnBook(bookID)
	c.reportResult("return", res, err)
	return nil
}

func (c *Console) handleSearch() error {
	keyword, err := c.prompt("Enter keyword to search for books: ")
	if err != nil {
		return err
	}
	books, err := c.mgr.Catalog.SearchBooks(keyword)
	if err != nil {
		c.reportError("search", err)
		return nil
	}
	if len(books) == 0 {
		c.println("No books found matching the search criteria.")
		return nil
	}
	c.println("Search Results:")
	for _, b := range books {
		c.println(PrettyBook(b))
	}
	return nil
}

func (c *Console) handleAddBook() error {
	title, err := c.prompt("Enter title of the book: ")
	if err != nil {
		return err
	}
	author, err := c.prompt("Enter author of the book: ")
	if err != nil {
		return err
	}
	b, err := c.mgr.Catalog.AddBook(title, author)
	if err != nil {
		c.reportError("add book", err)
		return nil
	}
	c.printf("Book added successfully with ID: %d\n", b.ID)
	return nil
}

// ------------------ I/O helpers ------------------

func (c *Console) println(s string) { fmt.Fprintln(c.out, s) }

func (c *Console) printf(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }

// readLine returns the next input line without its line ending.
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}

func (c *Console) prompt(p string) (string, error) {
	fmt.Fprint(c.out, p)
	return c.readLine()
}

// readChoice returns -1 for input that is not a number, which every menu
// then rejects as an invalid choice.
func (c *Console) readChoice() (int, error) {
	line, err := c.prompt("Enter your choice: ")
	if err != nil {
		return 0, err
	}
	choice, convErr := strconv.Atoi(strings.TrimSpace(line))
	if convErr != nil {
		return -1, nil
	}
	return choice, nil
}

// readBookID reports false when the line is not a number; the message has
// already been printed.
func (c *Console) readBookID(p string) (int64, bool, error) {
	line, err := c.prompt(p)
	if err != nil {
		return 0, false, err
	}
	raw := strings.TrimSpace(line)
	id, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil {
		c.printf("Invalid book ID: %s\n", raw)
		return 0, false, nil
	}
	return id, true, nil
}

// reportResult prints the operation's message. Only faults without a message
// (store errors) are logged as errors.
func (c *Console) reportResult(op string, res Result, err error) {
	if res.Message == "" && err != nil {
		c.reportError(op, err)
		return
	}
	c.println(res.Message)
	if err != nil {
		c.logger.Debug(op+" failed", "session_id", c.session.String(), "error", err.Error())
	}
}

func (c *Console) reportError(op string, err error) {
	c.logger.Error(op+" failed", "session_id", c.session.String(), "error", err.Error())
	c.printf("Error: %v\n", err)
}

// IsInputClosed reports whether err only means the input ran out.
func IsInputClosed(err error) bool { return errors.Is(err, ErrInputClosed) }
