package services

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	LoginRet *models.LoginResult
	LoginErr error
	MeRet    *models.Identity
	MeErr    error
	StatsRet *models.DashboardStats
	StatsErr error

	// ListRet is encoded into the List out argument.
	ListRet  any
	ListPage *models.Pagination
	ListErr  error
	GetRet   map[string]any
	GetErr   error
	// UpdateRet is encoded into the Update out argument.
	UpdateRet any
	UpdateErr error
	DeleteErr error

	LastLoginEmail    string
	LastLoginPassword []byte
	LastResource      models.Resource
	LastQuery         url.Values
	LastID            string
	LastBody          any
	Calls             int
}

func decodeInto(v any, out any) error {
	if v == nil || out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	f.Calls++
	f.LastLoginEmail = email
	f.LastLoginPassword = append([]byte(nil), password...)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Me(ctx context.Context) (*models.Identity, error) {
	f.Calls++
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Stats(ctx context.Context) (*models.DashboardStats, error) {
	f.Calls++
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) List(ctx context.Context, r models.Resource, q url.Values, out any) (*models.Pagination, error) {
	f.Calls++
	f.LastResource, f.LastQuery = r, q
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.ListPage, decodeInto(f.ListRet, out)
}

func (f *fakeClient) Get(ctx context.Context, r models.Resource, id string, out any) error {
	f.Calls++
	f.LastResource, f.LastID = r, id
	if f.GetErr != nil {
		return f.GetErr
	}
	return decodeInto(f.GetRet, out)
}

func (f *fakeClient) Create(ctx context.Context, r models.Resource, body any, out any) error {
	f.Calls++
	f.LastResource, f.LastBody = r, body
	return decodeInto(body, out)
}

func (f *fakeClient) Update(ctx context.Context, r models.Resource, id string, body any, out any) error {
	f.Calls++
	f.LastResource, f.LastID, f.LastBody = r, id, body
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	return decodeInto(f.UpdateRet, out)
}

func (f *fakeClient) Delete(ctx context.Context, r models.Resource, id string) error {
	f.Calls++
	f.LastResource, f.LastID = r, id
	return f.DeleteErr
}

func (f *fakeClient) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	f.Calls++
	return "/uploads/" + filename, nil
}
