package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

// Collection is a typed view of one API collection.
type Collection[T any] struct {
	client   Client
	resource models.Resource
}

func NewCollection[T any](c Client, resource models.Resource) *Collection[T] {
	return &Collection[T]{client: c, resource: resource}
}

func (c *Collection[T]) Resource() models.Resource { return c.resource }

// List fetches one page. A response without a pagination block is treated as
// a single page holding every item.
func (c *Collection[T]) List(ctx context.Context, query url.Values) (models.Page[T], error) {
	var items []T
	p, err := c.client.List(ctx, c.resource, query, &items)
	if err != nil {
		return models.Page[T]{}, err
	}
	page := models.Page[T]{Items: items}
	if p != nil {
		page.Pagination = *p
	} else {
		page.Pagination = models.Pagination{Page: 1, Limit: len(items), Total: len(items), Pages: 1}
	}
	return page, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := c.client.Get(ctx, c.resource, id, &out)
	return out, err
}

func (c *Collection[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := c.client.Create(ctx, c.resource, body, &out)
	return out, err
}

func (c *Collection[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var out T
	err := c.client.Update(ctx, c.resource, id, body, &out)
	return out, err
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.client.Delete(ctx, c.resource, id)
}
