package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/dmitrijs2005/pharmadmin/internal/common"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

const RoleAdmin = "admin"

var ErrNotAdmin = errors.New("account is not an administrator")

// AuthService defines authentication operations for the REPL.
//
// Contract:
//   - Login: authenticate, require the admin role and persist the session.
//   - Logout: drop the session and its persisted copy.
//   - Restore: reload a persisted session and confirm it with the server.
//   - WhoAmI: ask the server who the current token belongs to.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.Identity, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.Identity, bool, error)
	WhoAmI(ctx context.Context) (models.Identity, error)
}

type authService struct {
	client  client.Client
	session *session.Session
	logger  logging.Logger
}

func NewAuthService(c client.Client, sess *session.Session, logger logging.Logger) AuthService {
	return &authService{client: c, session: sess, logger: logger}
}

// Login wipes password once the request is sent.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Identity, error) {
	defer common.WipeByteArray(password)

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("login error: %w", err)
	}
	if res.User.Role != RoleAdmin {
		return models.Identity{}, ErrNotAdmin
	}
	if err := a.session.Set(ctx, res.Token, res.User); err != nil {
		return models.Identity{}, fmt.Errorf("session saving error: %w", err)
	}
	a.logger.Info(ctx, "signed in", "email", res.User.Email)
	return res.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

// Restore returns ok=false when there is no usable persisted session. When
// the server cannot be reached the stored identity is trusted as is.
func (a *authService) Restore(ctx context.Context) (models.Identity, bool, error) {
	if err := a.session.Restore(ctx); err != nil {
		return models.Identity{}, false, fmt.Errorf("session restore error: %w", err)
	}
	if a.session.Token() == "" {
		return models.Identity{}, false, nil
	}
	if !a.session.Authenticated() {
		if err := a.session.Clear(ctx); err != nil {
			return models.Identity{}, false, fmt.Errorf("session restore error: %w", err)
		}
		return models.Identity{}, false, nil
	}

	me, err := a.client.Me(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.session.Invalidate(ctx)
		return models.Identity{}, false, nil
	case err != nil:
		a.logger.Warn(ctx, "could not confirm restored session", "error", err)
		id, ok := a.session.Identity()
		return id, ok, nil
	}

	if err := a.session.Set(ctx, a.session.Token(), *me); err != nil {
		return models.Identity{}, false, fmt.Errorf("session saving error: %w", err)
	}
	return *me, true, nil
}

func (a *authService) WhoAmI(ctx context.Context) (models.Identity, error) {
	me, err := a.client.Me(ctx)
	if err != nil {
		return models.Identity{}, fmt.Errorf("whoami error: %w", err)
	}
	return *me, nil
}
