package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/devapi/auth"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/blob"
	"github.com/dmitrijs2005/pharmadmin/internal/devapi/store"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testEmail    = "admin@test"
	testPassword = "pw"
)

type testAPI struct {
	srv     *httptest.Server
	store   *store.Memory
	handler *Handler
	media   string
	token   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	ctx := context.Background()

	var h http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	s := store.NewMemory()
	_, err := s.AddAccount(ctx, "Admin", testEmail, RoleAdmin, []byte(testPassword))
	require.NoError(t, err)

	disk, err := blob.NewDisk(t.TempDir(), srv.URL+"/media/")
	require.NoError(t, err)

	handler := NewHandler(s, disk, testSecret, time.Hour, logging.Nop())
	h = NewRouter(handler, disk.Root())

	api := &testAPI{srv: srv, store: s, handler: handler, media: disk.Root()}
	api.token = api.login(t, testEmail, testPassword)
	return api
}

type response struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
	Message    string          `json:"message"`
	status     int
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.send(t, req)
}

func (a *testAPI) send(t *testing.T, req *http.Request) response {
	t.Helper()
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	out.status = resp.StatusCode
	return out
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, res.status, res.Message)
	var data struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &data))
	require.Equal(t, "admin", data.User["role"])
	return data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestLogin_Failures(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email or password", res.Message)

	res = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail})
	assert.Equal(t, http.StatusBadRequest, res.status)

	req, _ := http.NewRequest(http.MethodPost, api.srv.URL+"/api/auth/login", bytes.NewReader([]byte("{")))
	assert.Equal(t, http.StatusBadRequest, api.send(t, req).status)
}

func TestAuthMiddleware(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Not authorized, no token", res.Message)

	res = api.do(t, http.MethodGet, "/api/products", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)

	expired, err := auth.GenerateToken("x", RoleAdmin, []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	res = api.do(t, http.MethodGet, "/api/products", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "Session expired, please sign in again", res.Message)

	_, err = api.store.AddAccount(context.Background(), "Shopper", "shopper@test", "customer", []byte("pw"))
	require.NoError(t, err)
	customer := api.signIn(t, "shopper@test", "pw")
	res = api.do(t, http.MethodGet, "/api/products", customer, nil)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Equal(t, "Admin access required", res.Message)

	res = api.do(t, http.MethodGet, "/api/auth/me", customer, nil)
	assert.Equal(t, http.StatusOK, res.status)
}

// signIn signs in without asserting the admin role.
func (a *testAPI) signIn(t *testing.T, email, password string) string {
	t.Helper()
	res := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, res.status)
	return decode[struct {
		Token string `json:"token"`
	}](t, res.Data).Token
}

func TestMeAndStats(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodGet, "/api/auth/me", api.token, nil)
	require.Equal(t, http.StatusOK, res.status)
	me := decode[map[string]any](t, res.Data)
	assert.Equal(t, testEmail, me["email"])

	require.NoError(t, store.Seed(context.Background(), api.store))
	res = api.do(t, http.MethodGet, "/api/dashboard/stats", api.token, nil)
	require.Equal(t, http.StatusOK, res.status)
	st := decode[store.Stats](t, res.Data)
	assert.Equal(t, 3, st.TotalProducts)
}

func TestCRUD(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodPost, "/api/categories", api.token, map[string]any{"name": "Cold & Flu"})
	require.Equal(t, http.StatusCreated, res.status, res.Message)
	created := decode[map[string]any](t, res.Data)
	id := created["_id"].(string)
	assert.Equal(t, "cold-flu", created["slug"])

	res = api.do(t, http.MethodGet, "/api/categories/"+id, api.token, nil)
	require.Equal(t, http.StatusOK, res.status)

	res = api.do(t, http.MethodPut, "/api/categories/"+id, api.token, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, false, decode[map[string]any](t, res.Data)["isActive"])

	res = api.do(t, http.MethodPut, "/api/categories/"+id, api.token, map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Name is required", res.Message)

	res = api.do(t, http.MethodDelete, "/api/categories/"+id, api.token, nil)
	require.Equal(t, http.StatusOK, res.status)
	assert.True(t, res.Success)

	res = api.do(t, http.MethodGet, "/api/categories/"+id, api.token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Record not found", res.Message)

	res = api.do(t, http.MethodGet, "/api/widgets", api.token, nil)
	assert.Equal(t, http.StatusNotFound, res.status)
}

func TestList_QueryParameters(t *testing.T) {
	api := newTestAPI(t)
	for i, name := range []string{"Zinc", "Aspirin", "Magnesium"} {
		res := api.do(t, http.MethodPost, "/api/products", api.token, map[string]any{"name": name, "price": float64(10 * (i + 1)), "brand": "Acme"})
		require.Equal(t, http.StatusCreated, res.status, res.Message)
	}

	res := api.do(t, http.MethodGet, "/api/products?page=2&limit=2&sortBy=name&sortOrder=asc&brand=acme", api.token, nil)
	require.Equal(t, http.StatusOK, res.status)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, pagination{Page: 2, Limit: 2, Total: 3, Pages: 2}, *res.Pagination)
	items := decode[[]map[string]any](t, res.Data)
	require.Len(t, items, 1)
	assert.Equal(t, "Zinc", items[0]["name"])

	res = api.do(t, http.MethodGet, "/api/products?search=mag", api.token, nil)
	assert.Len(t, decode[[]map[string]any](t, res.Data), 1)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (a *testAPI) upload(t *testing.T, field, filename string, content []byte) response {
	t.Helper()
	body, ctype := multipartBody(t, field, filename, content)
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+"/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", ctype)
	req.Header.Set("Authorization", "Bearer "+a.token)
	return a.send(t, req)
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload(t *testing.T) {
	api := newTestAPI(t)

	res := api.upload(t, "file", "pill.png", pngBytes)
	require.Equal(t, http.StatusCreated, res.status, res.Message)
	data := decode[map[string]string](t, res.Data)
	assert.Regexp(t, `^`+api.srv.URL+`/media/uploads/.+\.png$`, data["url"])

	get, err := api.srv.Client().Get(data["url"])
	require.NoError(t, err)
	defer get.Body.Close()
	served, _ := io.ReadAll(get.Body)
	assert.Equal(t, http.StatusOK, get.StatusCode)
	assert.Equal(t, pngBytes, served)

	// no extension: sniffed from content
	res = api.upload(t, "file", "blob", pngBytes)
	assert.Equal(t, http.StatusCreated, res.status)

	res = api.upload(t, "file", "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Only image uploads are allowed", res.Message)

	res = api.upload(t, "image", "pill.png", pngBytes)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "No file uploaded", res.Message)

	api.handler.maxUpload = 4
	res = api.upload(t, "file", "pill.png", pngBytes)
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.status)
}

type failingBlobs struct{}

func (failingBlobs) Put(context.Context, string, string, []byte) (string, error) {
	return "", io.ErrUnexpectedEOF
}

func TestUpload_StorageFailure(t *testing.T) {
	api := newTestAPI(t)
	api.handler.blobs = failingBlobs{}

	res := api.upload(t, "file", "pill.png", pngBytes)
	assert.Equal(t, http.StatusBadGateway, res.status)
	assert.Equal(t, "Upload storage unavailable", res.Message)
}

func TestRouting_Fallbacks(t *testing.T) {
	api := newTestAPI(t)

	res := api.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, "Route not found", res.Message)

	res = api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, res.status)
}
