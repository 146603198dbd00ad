package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pharmadmin/internal/cryptox"
	"github.com/google/uuid"
)

// Account is a user that can sign in to the API.
type Account struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Role       string
	Credential cryptox.Credential
}

// Identity is the public part of an account.
func (a Account) Identity() Record {
	id := Record{"_id": a.ID, "name": a.Name, "email": a.Email, "role": a.Role}
	if a.Phone != "" {
		id["phone"] = a.Phone
	}
	return id
}

// AddAccount registers an account with a password. Emails are unique and
// compared case-insensitively.
func (m *Memory) AddAccount(ctx context.Context, name, email, role string, password []byte) (Account, error) {
	cred, err := cryptox.NewCredential(password)
	if err != nil {
		return Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := m.accounts[key]; ok {
		return Account{}, fmt.Errorf("%s: %w", email, ErrDuplicateAccount)
	}
	a := Account{ID: uuid.NewString(), Name: name, Email: email, Role: role, Credential: cred}
	m.accounts[key] = a
	return a, nil
}

// Account looks an account up by id.
func (m *Memory) Account(ctx context.Context, id string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
}

// AccountByEmail looks an account up by email.
func (m *Memory) AccountByEmail(ctx context.Context, email string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return Account{}, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	return a, nil
}
