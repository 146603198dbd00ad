package save

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/pharmadmin/internal/client/changes"
	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/form"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Confirmer asks the user to approve a change record.
type Confirmer interface {
	Confirm(ctx context.Context, r changes.Record) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, r changes.Record) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, r changes.Record) (bool, error) {
	return f(ctx, r)
}

// Outcome reports how a Save ended.
type Outcome struct {
	State   State
	Changes changes.Record
	// ID of the saved record when State is Done.
	ID string
}

// Orchestrator owns one edit session: the draft, its snapshot and the
// pending assets. Only one Save runs at a time.
type Orchestrator struct {
	client        client.Client
	session       *session.Session
	logger        logging.Logger
	uploadWorkers int

	mu        sync.Mutex
	state     State
	running   bool
	abandoned bool
	draft     *form.Draft
	snapshot  *form.Snapshot
	assets    *form.Assets
}

type Option func(*Orchestrator)

func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithUploadWorkers bounds concurrent uploads; n < 1 means unbounded.
func WithUploadWorkers(n int) Option {
	return func(o *Orchestrator) { o.uploadWorkers = n }
}

func New(c client.Client, sess *session.Session, draft *form.Draft, snapshot *form.Snapshot, opts ...Option) *Orchestrator {
	if sess == nil {
		sess = session.New(nil)
	}
	o := &Orchestrator{
		client:        c,
		session:       sess,
		logger:        logging.Nop(),
		uploadWorkers: 4,
		draft:         draft,
		snapshot:      snapshot,
		assets:        form.NewAssets(draft.Schema()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Draft returns the editable draft. It is replaced after a successful save.
func (o *Orchestrator) Draft() *form.Draft {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.draft
}

func (o *Orchestrator) Snapshot() *form.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot
}

func (o *Orchestrator) Assets() *form.Assets {
	return o.assets
}

// Changes computes the current change record without saving.
func (o *Orchestrator) Changes() changes.Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	return changes.Diff(o.snapshot, o.draft, o.assets.List())
}

// Discard resets the draft to the snapshot and drops pending assets.
func (o *Orchestrator) Discard() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return ErrInProgress
	}
	o.draft = o.snapshot.Draft()
	o.assets.Clear()
	o.state = Idle
	return nil
}

// Abandon ends the edit session. A save completing afterwards changes
// nothing.
func (o *Orchestrator) Abandon() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.abandoned = true
}

func (o *Orchestrator) transition(ctx context.Context, to State) {
	o.mu.Lock()
	from := o.state
	o.state = to
	o.mu.Unlock()
	o.logger.Debug(ctx, "save state", "from", from, "to", to)
}

// Save runs the whole protocol. It returns ErrNoChanges when there is nothing
// to save and ErrInProgress when another Save has not finished. A declined
// confirmation returns an Idle outcome and a nil error.
func (o *Orchestrator) Save(ctx context.Context, confirmer Confirmer) (Outcome, error) {
	o.mu.Lock()
	if o.abandoned || o.running {
		st, err := o.state, ErrInProgress
		if o.abandoned {
			err = ErrAbandoned
		}
		o.mu.Unlock()
		return Outcome{State: st}, err
	}
	o.running = true
	draft, snapshot := o.draft, o.snapshot
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	o.transition(ctx, Diffing)
	pending := o.assets.List()
	record := changes.Diff(snapshot, draft, pending)
	if record.Empty() {
		o.transition(ctx, Rejected)
		return Outcome{State: Rejected}, ErrNoChanges
	}

	// Parse errors are caught before anything is uploaded.
	if _, err := draft.Body(); err != nil {
		o.transition(ctx, Failed)
		return Outcome{State: Failed, Changes: record}, err
	}

	o.transition(ctx, AwaitingConfirmation)
	ok, err := confirmer.Confirm(ctx, record)
	if err != nil || !ok {
		o.transition(ctx, Idle)
		return Outcome{State: Idle, Changes: record}, err
	}

	release := o.session.Hold()
	defer release()

	o.transition(ctx, Uploading)
	urls, err := o.upload(ctx, pending)
	o.assets.Clear()
	if err != nil {
		o.logger.Warn(ctx, "asset upload failed", "resource", draft.Schema().Resource, "error", err)
		o.transition(ctx, Failed)
		return Outcome{State: Failed, Changes: record}, err
	}

	merged := draft.Clone()
	for slot, u := range urls {
		if err := merged.SetSlot(slot, u); err != nil {
			o.transition(ctx, Failed)
			return Outcome{State: Failed, Changes: record}, err
		}
	}
	body, err := merged.Body()
	if err != nil {
		o.transition(ctx, Failed)
		return Outcome{State: Failed, Changes: record}, err
	}

	o.transition(ctx, Submitting)
	resource := draft.Schema().Resource
	var saved map[string]any
	if id := draft.ID(); id != "" {
		err = o.client.Update(ctx, resource, id, body, &saved)
	} else {
		err = o.client.Create(ctx, resource, body, &saved)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.abandoned {
		return Outcome{State: o.state, Changes: record}, ErrAbandoned
	}
	if err != nil {
		o.state = Failed
		o.logger.Warn(ctx, "record submit failed", "resource", resource, "id", draft.ID(), "error", err)
		return Outcome{State: Failed, Changes: record}, err
	}

	if saved == nil {
		saved = body
	}
	if _, ok := saved["_id"]; !ok && draft.ID() != "" {
		saved["_id"] = draft.ID()
	}
	o.draft, o.snapshot = form.Load(draft.Schema(), saved)
	o.state = Done
	o.logger.Info(ctx, "record saved", "resource", resource, "id", o.draft.ID(), "changes", len(record))
	return Outcome{State: Done, Changes: record, ID: o.draft.ID()}, nil
}

// upload sends every pending asset concurrently and returns the URL for each
// slot. The first failure cancels the rest.
func (o *Orchestrator) upload(ctx context.Context, pending []form.PendingAsset) (map[form.Slot]string, error) {
	urls := make([]string, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	if o.uploadWorkers > 0 {
		g.SetLimit(o.uploadWorkers)
	}
	for i, p := range pending {
		g.Go(func() error {
			u, err := o.client.Upload(gctx, p.Name, p.Content)
			if err != nil {
				return fmt.Errorf("upload %s: %w", p.Slot, err)
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[form.Slot]string, len(pending))
	for i, p := range pending {
		out[p.Slot] = urls[i]
	}
	return out, nil
}
