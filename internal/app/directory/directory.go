/*
Package directory contains the fixed two-party identity table.

Exactly two accounts are configured at startup and never change for the process
lifetime. The directory answers two questions: do these credentials belong to a
configured account, and who is the other party for a given sender.
*/
package directory

import (
	"errors"

	"dealchat/internal/configs"
)

// ErrInvalidCredentials is returned when a username/password pair matches
// neither configured account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User represents one of the two configured chat participants.
type User struct {
	Username string `json:"username"`

	// password is compared by exact string equality. No hashing is applied;
	// this mirrors the deployment's documented trust model and is a known
	// limitation, not something to mask here.
	password string
}

// Directory is the static mapping from the two configured usernames to their accounts.
type Directory struct {
	users map[string]User
}

// New constructs a Directory from the two configured accounts.
// It is passed explicitly to its consumers rather than living as a process-wide global.
func New(cfg *configs.AppConfig) *Directory {
	users := make(map[string]User, 2)

	if cfg.User1Username != "" {
		users[cfg.User1Username] = User{Username: cfg.User1Username, password: cfg.User1Password}
	}
	if cfg.User2Username != "" {
		users[cfg.User2Username] = User{Username: cfg.User2Username, password: cfg.User2Password}
	}

	return &Directory{users: users}
}

// Authenticate verifies the given credentials against the configured accounts.
// It returns the matching User, or ErrInvalidCredentials when the username is
// unknown or the password does not match exactly.
func (d *Directory) Authenticate(username, password string) (User, error) {
	user, ok := d.users[username]
	if !ok || user.password != password {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// ResolveOther returns the sole other configured identity for the given sender.
// The second return value is false when the sender is not a configured account
// or the directory holds fewer than two entries.
func (d *Directory) ResolveOther(username string) (string, bool) {
	if _, ok := d.users[username]; !ok {
		return "", false
	}

	for name := range d.users {
		if name != username {
			return name, true
		}
	}

	return "", false
}
