package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// Uploader stores one binary asset and returns the URL the API assigned it.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (string, error)
}

// Client is the transport-agnostic contract of the pharmacy API.
//
// out arguments receive the decoded "data" member of the response and may be
// nil when the caller does not need it.
type Client interface {
	Uploader

	Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error)
	Me(ctx context.Context) (*models.Identity, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)

	List(ctx context.Context, resource models.Resource, query url.Values, out any) (*models.Pagination, error)
	Get(ctx context.Context, resource models.Resource, id string, out any) error
	Create(ctx context.Context, resource models.Resource, body any, out any) error
	Update(ctx context.Context, resource models.Resource, id string, body any, out any) error
	Delete(ctx context.Context, resource models.Resource, id string) error
}
