package save

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/pharmadmin/internal/client/changes"
	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/form"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	mu sync.Mutex

	UploadURLs map[string]string
	UploadErrs map[string]error
	SubmitErr  error
	SubmitRet  map[string]any
	// OnSubmit runs inside Create/Update before it returns.
	OnSubmit func()

	uploads     atomic.Int32
	updates     atomic.Int32
	creates     atomic.Int32
	LastID      string
	LastBody    map[string]any
	LastUploads []string
}

func (f *fakeClient) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	f.uploads.Add(1)
	f.mu.Lock()
	f.LastUploads = append(f.LastUploads, filename)
	f.mu.Unlock()
	if err := f.UploadErrs[filename]; err != nil {
		return "", err
	}
	return f.UploadURLs[filename], nil
}

func (f *fakeClient) submit(id string, body any, out any) error {
	f.LastID = id
	f.LastBody, _ = body.(map[string]any)
	if f.OnSubmit != nil {
		f.OnSubmit()
	}
	if f.SubmitErr != nil {
		return f.SubmitErr
	}
	ret := f.SubmitRet
	if ret == nil {
		ret = f.LastBody
	}
	data, _ := json.Marshal(ret)
	return json.Unmarshal(data, out)
}

func (f *fakeClient) Update(ctx context.Context, resource models.Resource, id string, body any, out any) error {
	f.updates.Add(1)
	return f.submit(id, body, out)
}

func (f *fakeClient) Create(ctx context.Context, resource models.Resource, body any, out any) error {
	f.creates.Add(1)
	return f.submit("", body, out)
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	return nil, errors.New("not used")
}
func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) { return nil, errors.New("not used") }
func (f *fakeClient) Stats(ctx context.Context) (*models.DashboardStats, error) {
	return nil, errors.New("not used")
}
func (f *fakeClient) List(ctx context.Context, resource models.Resource, query url.Values, out any) (*models.Pagination, error) {
	return nil, errors.New("not used")
}
func (f *fakeClient) Get(ctx context.Context, resource models.Resource, id string, out any) error {
	return errors.New("not used")
}
func (f *fakeClient) Delete(ctx context.Context, resource models.Resource, id string) error {
	return errors.New("not used")
}

// ---- helpers ----

func always(ok bool) ConfirmFunc {
	return func(ctx context.Context, r changes.Record) (bool, error) { return ok, nil }
}

func newProduct(t *testing.T, fc *fakeClient) (*Orchestrator, *session.Session) {
	t.Helper()
	d, s := form.Load(form.ProductSchema, map[string]any{
		"_id":       "p1",
		"name":      "Vitamin C",
		"price":     float64(10),
		"mainImage": "/uploads/old.png",
		"images":    []any{"/uploads/i0.png"},
	})
	sess := session.New(nil)
	require.NoError(t, sess.Set(context.Background(), "tkn", models.Identity{Name: "A"}))
	return New(fc, sess, d, s), sess
}

// ---- tests ----

func TestSave_NoChangesIsRejectedWithoutNetwork(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)

	out, err := o.Save(context.Background(), always(true))
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, Rejected, out.State)
	assert.Equal(t, Rejected, o.State())
	assert.Zero(t, fc.uploads.Load())
	assert.Zero(t, fc.updates.Load())
	assert.Zero(t, fc.creates.Load())
}

func TestSave_DeclinedConfirmationChangesNothing(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("price", "15"))

	var shown changes.Record
	out, err := o.Save(context.Background(), ConfirmFunc(func(ctx context.Context, r changes.Record) (bool, error) {
		shown = r
		return false, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, Idle, out.State)
	assert.Equal(t, changes.Record{"Price to ₹15"}, shown)
	assert.Zero(t, fc.updates.Load())
	assert.Equal(t, "15", o.Draft().Value("price"))
	assert.Equal(t, "10", o.Snapshot().Value("price"))
}

func TestSave_UpdateSuccessReloadsSnapshot(t *testing.T) {
	fc := &fakeClient{UploadURLs: map[string]string{"new.png": "/uploads/new.png"}}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("price", "15"))
	_, err := o.Draft().AppendListItem("tags")
	require.NoError(t, err)
	_, err = o.Assets().Attach(o.Draft(), form.MainSlot("mainImage"), "new.png", []byte("png"))
	require.NoError(t, err)

	out, err := o.Save(context.Background(), always(true))
	require.NoError(t, err)
	assert.Equal(t, Done, out.State)
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, changes.Record{"Price to ₹15", "Main Image will be updated"}, out.Changes)

	assert.EqualValues(t, 1, fc.updates.Load())
	assert.Equal(t, "p1", fc.LastID)
	assert.Equal(t, "/uploads/new.png", fc.LastBody["mainImage"])
	assert.Equal(t, 15.0, fc.LastBody["price"])
	assert.Equal(t, []string{}, fc.LastBody["tags"])

	assert.Equal(t, "/uploads/new.png", o.Snapshot().Value("mainImage"))
	assert.Equal(t, "15", o.Snapshot().Value("price"))
	assert.Zero(t, o.Assets().Len())
	assert.Empty(t, o.Changes())
}

func TestSave_CreateWhenNoID(t *testing.T) {
	fc := &fakeClient{SubmitRet: map[string]any{"_id": "b9", "title": "Sale", "isActive": true}}
	d, s := form.Blank(form.BannerSchema)
	o := New(fc, nil, d, s)
	require.NoError(t, o.Draft().SetField("title", "Sale"))
	require.NoError(t, o.Draft().SetBool("isActive", true))

	out, err := o.Save(context.Background(), always(true))
	require.NoError(t, err)
	assert.Equal(t, "b9", out.ID)
	assert.EqualValues(t, 1, fc.creates.Load())
	assert.Zero(t, fc.updates.Load())
	assert.Equal(t, "b9", o.Draft().ID())
}

func TestSave_UploadFailureNeverSubmits(t *testing.T) {
	fc := &fakeClient{
		UploadURLs: map[string]string{"main.png": "/uploads/a.png"},
		UploadErrs: map[string]error{"img0.png": &client.APIError{Kind: client.ErrUnavailable, Message: "unable to reach the server"}},
	}
	o, _ := newProduct(t, fc)
	before := o.Draft()
	_, err := o.Assets().Attach(before, form.MainSlot("mainImage"), "main.png", []byte("a"))
	require.NoError(t, err)
	_, err = o.Assets().Attach(before, form.Slot{Field: "images", Index: 0}, "img0.png", []byte("b"))
	require.NoError(t, err)

	out, err := o.Save(context.Background(), always(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, Failed, out.State)
	assert.Equal(t, Failed, o.State())

	assert.Zero(t, fc.updates.Load())
	assert.Zero(t, fc.creates.Load())
	assert.Same(t, before, o.Draft())
	assert.Equal(t, "/uploads/old.png", o.Draft().Value("mainImage"))
	assert.Equal(t, []string{"/uploads/i0.png"}, o.Draft().List("images"))
	assert.Zero(t, o.Assets().Len())
}

func TestSave_SubmitFailureKeepsDraftAndSurfacesMessage(t *testing.T) {
	fc := &fakeClient{
		UploadURLs: map[string]string{"n.png": "/uploads/n.png"},
		SubmitErr:  &client.APIError{Kind: client.ErrValidation, Status: 400, Message: "Price must be positive"},
	}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("price", "-1"))
	_, err := o.Assets().Attach(o.Draft(), form.MainSlot("mainImage"), "n.png", nil)
	require.NoError(t, err)

	out, err := o.Save(context.Background(), always(true))
	assert.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, "Price must be positive", client.Message(err))
	assert.Equal(t, Failed, out.State)

	assert.Equal(t, "-1", o.Draft().Value("price"))
	assert.Equal(t, "/uploads/old.png", o.Draft().Value("mainImage"))
	assert.Equal(t, "10", o.Snapshot().Value("price"))

	fc.SubmitErr = nil
	out, err = o.Save(context.Background(), always(true))
	require.NoError(t, err)
	assert.Equal(t, Done, out.State)
}

func TestSave_InvalidNumberFailsBeforeConfirmation(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("stock", "many"))

	asked := false
	out, err := o.Save(context.Background(), ConfirmFunc(func(ctx context.Context, r changes.Record) (bool, error) {
		asked = true
		return true, nil
	}))
	assert.ErrorIs(t, err, form.ErrInvalidNumber)
	assert.Equal(t, Failed, out.State)
	assert.False(t, asked)
}

func TestSave_SecondSaveWhileRunning(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	fc := &fakeClient{OnSubmit: func() {
		close(entered)
		<-unblock
	}}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("name", "Zinc"))

	done := make(chan error, 1)
	go func() {
		_, err := o.Save(context.Background(), always(true))
		done <- err
	}()
	<-entered

	assert.Equal(t, Submitting, o.State())
	_, err := o.Save(context.Background(), always(true))
	assert.ErrorIs(t, err, ErrInProgress)
	assert.ErrorIs(t, o.Discard(), ErrInProgress)

	close(unblock)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, fc.updates.Load())
}

func TestSave_SessionHeldDuringSubmit(t *testing.T) {
	fc := &fakeClient{}
	o, sess := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("name", "Zinc"))

	var setErr, clearErr error
	fc.OnSubmit = func() {
		setErr = sess.Set(context.Background(), "other", models.Identity{})
		clearErr = sess.Clear(context.Background())
	}

	_, err := o.Save(context.Background(), always(true))
	require.NoError(t, err)
	assert.ErrorIs(t, setErr, session.ErrBusy)
	assert.ErrorIs(t, clearErr, session.ErrBusy)
	assert.Equal(t, "tkn", sess.Token())

	require.NoError(t, sess.Clear(context.Background()))
}

func TestSave_AbandonedCompletionIsNoop(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("name", "Zinc"))
	fc.OnSubmit = o.Abandon

	_, err := o.Save(context.Background(), always(true))
	assert.ErrorIs(t, err, ErrAbandoned)
	assert.Equal(t, "Vitamin C", o.Snapshot().Value("name"))
	assert.NotEqual(t, Done, o.State())

	_, err = o.Save(context.Background(), always(true))
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestSave_ConfirmerError(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("name", "Zinc"))

	boom := errors.New("stdin closed")
	out, err := o.Save(context.Background(), ConfirmFunc(func(ctx context.Context, r changes.Record) (bool, error) {
		return false, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Idle, out.State)
	assert.Zero(t, fc.updates.Load())
}

func TestDiscard(t *testing.T) {
	fc := &fakeClient{}
	o, _ := newProduct(t, fc)
	require.NoError(t, o.Draft().SetField("name", "Zinc"))
	_, err := o.Assets().Attach(o.Draft(), form.MainSlot("mainImage"), "x.png", nil)
	require.NoError(t, err)
	require.Len(t, o.Changes(), 2)

	require.NoError(t, o.Discard())
	assert.Empty(t, o.Changes())
	assert.Equal(t, "Vitamin C", o.Draft().Value("name"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "awaiting-confirmation", AwaitingConfirmation.String())
	assert.Equal(t, "unknown", State(99).String())
}
