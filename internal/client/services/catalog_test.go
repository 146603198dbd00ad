package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Products(t *testing.T) {
	fc := &fakeClient{
		ListRet:  []models.Product{{ID: "p1", Name: "Zinc", Price: 99}},
		ListPage: &models.Pagination{Page: 1, Limit: 10, Total: 1, Pages: 1},
	}
	svc := NewCatalogService(fc)

	q := url.Values{"search": {"zi"}}
	page, err := svc.Products(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Zinc", page.Items[0].Name)
	assert.Equal(t, 1, page.Pagination.Pages)
	assert.Equal(t, models.ResourceProducts, fc.LastResource)
	assert.Equal(t, q, fc.LastQuery)
}

func TestCatalog_ListErrorWrapped(t *testing.T) {
	fc := &fakeClient{ListErr: &client.APIError{Kind: client.ErrUnavailable, Message: "down"}}
	_, err := NewCatalogService(fc).Orders(context.Background(), nil)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, err.Error(), "list orders error")
}

func TestCatalog_UpdateOrderStatus(t *testing.T) {
	fc := &fakeClient{UpdateRet: models.Order{ID: "o1", Status: models.OrderShipped}}
	svc := NewCatalogService(fc)

	o, err := svc.UpdateOrderStatus(context.Background(), "o1", models.StatusUpdate{Status: models.OrderShipped})
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, o.Status)
	assert.Equal(t, models.ResourceOrders, fc.LastResource)
	assert.Equal(t, models.StatusUpdate{Status: models.OrderShipped}, fc.LastBody)
}

func TestCatalog_UpdateOrderStatusValidates(t *testing.T) {
	fc := &fakeClient{}
	svc := NewCatalogService(fc)

	_, err := svc.UpdateOrderStatus(context.Background(), "o1", models.StatusUpdate{Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.UpdateOrderStatus(context.Background(), "o1", models.StatusUpdate{PaymentStatus: "maybe"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = svc.UpdateOrderStatus(context.Background(), "o1", models.StatusUpdate{})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, fc.Calls)
}

func TestCatalog_SetCustomerActive(t *testing.T) {
	fc := &fakeClient{UpdateRet: models.Customer{ID: "c1", IsActive: false}}
	c, err := NewCatalogService(fc).SetCustomerActive(context.Background(), "c1", false)
	require.NoError(t, err)
	assert.False(t, c.IsActive)
	assert.Equal(t, map[string]bool{"isActive": false}, fc.LastBody)
}

func TestCatalog_Delete(t *testing.T) {
	fc := &fakeClient{DeleteErr: &client.APIError{Kind: client.ErrNotFound, Message: "gone"}}
	err := NewCatalogService(fc).Delete(context.Background(), models.ResourceBanners, "b1")
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "b1", fc.LastID)
}
