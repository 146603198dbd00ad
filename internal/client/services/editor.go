package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/form"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/save"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

var ErrNotEditable = errors.New("resource has no edit form")

// EditorService opens edit sessions. Each returned orchestrator owns its
// draft, snapshot and pending assets.
type EditorService interface {
	Open(ctx context.Context, r models.Resource, id string) (*save.Orchestrator, error)
	New(r models.Resource) (*save.Orchestrator, error)
}

type editorService struct {
	client  client.Client
	session *session.Session
	logger  logging.Logger
}

func NewEditorService(c client.Client, sess *session.Session, logger logging.Logger) EditorService {
	return &editorService{client: c, session: sess, logger: logger}
}

// Open fetches the record and seeds a draft from it.
func (e *editorService) Open(ctx context.Context, r models.Resource, id string) (*save.Orchestrator, error) {
	schema, ok := form.SchemaFor(r)
	if !ok {
		return nil, fmt.Errorf("%s: %w", r, ErrNotEditable)
	}

	var rec map[string]any
	if err := e.client.Get(ctx, r, id, &rec); err != nil {
		return nil, fmt.Errorf("load %s error: %w", r, err)
	}
	if rec == nil {
		rec = map[string]any{"_id": id}
	}
	draft, snap := form.Load(schema, rec)
	return save.New(e.client, e.session, draft, snap, save.WithLogger(e.logger)), nil
}

// New starts a blank record that is created on first save.
func (e *editorService) New(r models.Resource) (*save.Orchestrator, error) {
	schema, ok := form.SchemaFor(r)
	if !ok {
		return nil, fmt.Errorf("%s: %w", r, ErrNotEditable)
	}
	draft, snap := form.Blank(schema)
	return save.New(e.client, e.session, draft, snap, save.WithLogger(e.logger)), nil
}
