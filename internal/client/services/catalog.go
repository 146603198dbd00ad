package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
)

var ErrInvalidStatus = errors.New("invalid status")

// CatalogService lists collections and applies the small direct updates that
// bypass the edit form.
type CatalogService interface {
	Products(ctx context.Context, q url.Values) (models.Page[models.Product], error)
	Categories(ctx context.Context, q url.Values) (models.Page[models.Category], error)
	Orders(ctx context.Context, q url.Values) (models.Page[models.Order], error)
	Customers(ctx context.Context, q url.Values) (models.Page[models.Customer], error)
	Banners(ctx context.Context, q url.Values) (models.Page[models.Banner], error)

	Delete(ctx context.Context, r models.Resource, id string) error
	UpdateOrderStatus(ctx context.Context, id string, upd models.StatusUpdate) (models.Order, error)
	SetCustomerActive(ctx context.Context, id string, active bool) (models.Customer, error)
}

type catalogService struct {
	products   *client.Collection[models.Product]
	categories *client.Collection[models.Category]
	orders     *client.Collection[models.Order]
	customers  *client.Collection[models.Customer]
	banners    *client.Collection[models.Banner]
	client     client.Client
}

func NewCatalogService(c client.Client) CatalogService {
	return &catalogService{
		products:   client.NewCollection[models.Product](c, models.ResourceProducts),
		categories: client.NewCollection[models.Category](c, models.ResourceCategories),
		orders:     client.NewCollection[models.Order](c, models.ResourceOrders),
		customers:  client.NewCollection[models.Customer](c, models.ResourceCustomers),
		banners:    client.NewCollection[models.Banner](c, models.ResourceBanners),
		client:     c,
	}
}

func list[T any](ctx context.Context, c *client.Collection[T], q url.Values) (models.Page[T], error) {
	p, err := c.List(ctx, q)
	if err != nil {
		return p, fmt.Errorf("list %s error: %w", c.Resource(), err)
	}
	return p, nil
}

func (s *catalogService) Products(ctx context.Context, q url.Values) (models.Page[models.Product], error) {
	return list(ctx, s.products, q)
}

func (s *catalogService) Categories(ctx context.Context, q url.Values) (models.Page[models.Category], error) {
	return list(ctx, s.categories, q)
}

func (s *catalogService) Orders(ctx context.Context, q url.Values) (models.Page[models.Order], error) {
	return list(ctx, s.orders, q)
}

func (s *catalogService) Customers(ctx context.Context, q url.Values) (models.Page[models.Customer], error) {
	return list(ctx, s.customers, q)
}

func (s *catalogService) Banners(ctx context.Context, q url.Values) (models.Page[models.Banner], error) {
	return list(ctx, s.banners, q)
}

func (s *catalogService) Delete(ctx context.Context, r models.Resource, id string) error {
	if err := s.client.Delete(ctx, r, id); err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	return nil
}

func (s *catalogService) UpdateOrderStatus(ctx context.Context, id string, upd models.StatusUpdate) (models.Order, error) {
	if upd.Status == "" && upd.PaymentStatus == "" {
		return models.Order{}, fmt.Errorf("nothing to update: %w", ErrInvalidStatus)
	}
	if upd.Status != "" && !models.ValidOrderStatus(upd.Status) {
		return models.Order{}, fmt.Errorf("order status %q: %w", upd.Status, ErrInvalidStatus)
	}
	if upd.PaymentStatus != "" && !models.ValidPaymentStatus(upd.PaymentStatus) {
		return models.Order{}, fmt.Errorf("payment status %q: %w", upd.PaymentStatus, ErrInvalidStatus)
	}

	o, err := s.orders.Update(ctx, id, upd)
	if err != nil {
		return models.Order{}, fmt.Errorf("order status error: %w", err)
	}
	return o, nil
}

func (s *catalogService) SetCustomerActive(ctx context.Context, id string, active bool) (models.Customer, error) {
	c, err := s.customers.Update(ctx, id, map[string]bool{"isActive": active})
	if err != nil {
		return models.Customer{}, fmt.Errorf("customer update error: %w", err)
	}
	return c, nil
}
