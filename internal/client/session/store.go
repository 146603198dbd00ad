package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pharmadmin/internal/dbx"
)

// Keys under which the session is persisted.
const (
	KeyToken    = "token"
	KeyIdentity = "identity-json"
)

// Persister keeps the session across restarts of the client.
type Persister interface {
	Load(ctx context.Context) (string, *models.Identity, error)
	Save(ctx context.Context, token string, identity models.Identity) error
	Clear(ctx context.Context) error
}

// SQLiteStore persists the session in the local client_state table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load returns the stored token and identity. An empty token means nothing
// was stored; a corrupt identity record is reported as an error.
func (s *SQLiteStore) Load(ctx context.Context) (string, *models.Identity, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return "", nil, err
	}
	if len(token) == 0 {
		return "", nil, nil
	}

	raw, err := repo.Get(ctx, KeyIdentity)
	if err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return string(token), nil, nil
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return "", nil, fmt.Errorf("decode %s: %w", KeyIdentity, err)
	}
	return string(token), &identity, nil
}

// Save writes token and identity in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, token string, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyIdentity, err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyIdentity, raw)
	})
}

// Clear removes the session keys, leaving any other keys in place.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyToken, KeyIdentity)
}
