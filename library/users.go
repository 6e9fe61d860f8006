package library

import (
	"errors"
	"log/slog"
)

// UserDirectory holds registered users keyed by registration number.
type UserDirectory struct {
	store  Store
	logger *slog.Logger
}

func NewUserDirectory(store Store, logger *slog.Logger) *UserDirectory {
	return &UserDirectory{store: store, logger: orDiscard(logger).With("component", "users")}
}

// Register stores the user unconditionally, replacing any earlier password
// under the same registration number. Callers decide whether to check first.
func (d *UserDirectory) Register(registrationNumber, password string) error {
	if err := d.store.PutUser(User{RegistrationNumber: registrationNumber, Password: password}); err != nil {
		return err
	}
	d.logger.Debug("user registered", "registration_number", registrationNumber)
	return nil
}

// Authenticate reports whether a user exists with exactly this password.
// An unknown user is not an error.
func (d *UserDirectory) Authenticate(registrationNumber, password string) (bool, error) {
	u, err := d.store.GetUser(registrationNumber)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Password == password, nil
}
