package services

import (
	"testing"

	"storefront-service/clients"
	"storefront-service/common/errors"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHome_LoadsBothConcurrently(t *testing.T) {
	api := new(mockAPI)
	api.On("GetProducts", mock.Anything, 1, 10).
		Return(&models.ProductList{Data: []models.Product{{ID: "p1"}}}, nil)
	api.On("GetCategories", mock.Anything).
		Return(&models.CategoryList{Data: []models.Category{{ID: "c1"}}}, nil)

	page, err := NewCatalogService(api, 10).Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p1", page.Products[0].ID)
	assert.Equal(t, "c1", page.Categories[0].ID)
}

func TestHome_FailsWhenEitherFails(t *testing.T) {
	api := new(mockAPI)
	api.On("GetProducts", mock.Anything, 1, 10).
		Return(&models.ProductList{}, nil)
	api.On("GetCategories", mock.Anything).
		Return(nil, &clients.UpstreamError{Status: 503, Message: "maintenance"})

	_, err := NewCatalogService(api, 10).Home(ctx)
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.Code)
}

func TestProducts_DefaultsPaging(t *testing.T) {
	api := new(mockAPI)
	api.On("GetProducts", ctx, 1, 12).
		Return(&models.ProductList{Metadata: models.Metadata{CurrentPage: 1, NumberOfPages: 4}}, nil)

	page, err := NewCatalogService(api, 12).Products(ctx, ProductQuery{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Metadata.NumberOfPages)
	api.AssertExpectations(t)
}

func TestProducts_CapsLimit(t *testing.T) {
	api := new(mockAPI)
	api.On("GetProducts", ctx, 2, MaxPageSize).Return(&models.ProductList{}, nil)

	_, err := NewCatalogService(api, 12).Products(ctx, ProductQuery{Page: 2, Limit: 5000})
	require.NoError(t, err)
	api.AssertExpectations(t)
}
