package services

import (
	"context"
	"fmt"

	"storefront-service/models"

	"golang.org/x/sync/errgroup"
)

// ProductQuery selects one page of the product listing.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Brand    string
}

type HomePage struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
}

type ProductsPage struct {
	Products []models.Product `json:"products"`
	Metadata models.Metadata  `json:"metadata"`
	Category string           `json:"category,omitempty"`
	Brand    string           `json:"brand,omitempty"`
}

type CategoryPage struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

type BrandPage struct {
	Brand    models.Brand     `json:"brand"`
	Products []models.Product `json:"products"`
}

// CatalogService assembles the read-only catalog pages.
type CatalogService struct {
	api      CommerceAPI
	pageSize int
}

func NewCatalogService(api CommerceAPI, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CatalogService{api: api, pageSize: pageSize}
}

// Home loads products and categories concurrently.
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	type productsResult struct {
		list *models.ProductList
		err  error
	}
	type categoriesResult struct {
		list *models.CategoryList
		err  error
	}

	productsCh := make(chan productsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	go func() {
		list, err := s.api.GetProducts(ctx, 1, s.pageSize)
		productsCh <- productsResult{list: list, err: err}
	}()

	go func() {
		list, err := s.api.GetCategories(ctx)
		categoriesCh <- categoriesResult{list: list, err: err}
	}()

	products := <-productsCh
	categories := <-categoriesCh

	if products.err != nil {
		return nil, upstreamError(fmt.Errorf("load home products: %w", products.err))
	}
	if categories.err != nil {
		return nil, upstreamError(fmt.Errorf("load home categories: %w", categories.err))
	}

	return &HomePage{Products: products.list.Data, Categories: categories.list.Data}, nil
}

// MaxPageSize caps the listing page size a visitor may ask for.
const MaxPageSize = 50

// Products returns one listing page, optionally narrowed to a category or a brand.
func (s *CatalogService) Products(ctx context.Context, q ProductQuery) (*ProductsPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = s.pageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}

	var (
		list *models.ProductList
		err  error
	)
	switch {
	case q.Category != "":
		list, err = s.api.GetCategoryProducts(ctx, q.Category)
	case q.Brand != "":
		list, err = s.api.GetBrandProducts(ctx, q.Brand)
	default:
		list, err = s.api.GetProducts(ctx, q.Page, q.Limit)
	}
	if err != nil {
		return nil, upstreamError(err)
	}

	return &ProductsPage{
		Products: list.Data,
		Metadata: list.Metadata,
		Category: q.Category,
		Brand:    q.Brand,
	}, nil
}

func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, upstreamError(err)
	}
	return p, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	list, err := s.api.GetCategories(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return list.Data, nil
}

func (s *CatalogService) Brands(ctx context.Context) ([]models.Brand, error) {
	list, err := s.api.GetBrands(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return list.Data, nil
}

// Category loads a category and its products together.
func (s *CatalogService) Category(ctx context.Context, id string) (*CategoryPage, error) {
	page := &CategoryPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.api.GetCategory(gctx, id)
		if err != nil {
			return err
		}
		page.Category = *c
		return nil
	})
	g.Go(func() error {
		list, err := s.api.GetCategoryProducts(gctx, id)
		if err != nil {
			return err
		}
		page.Products = list.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError(err)
	}
	return page, nil
}

// Brand loads a brand and its products together.
func (s *CatalogService) Brand(ctx context.Context, id string) (*BrandPage, error) {
	page := &BrandPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.api.GetBrand(gctx, id)
		if err != nil {
			return err
		}
		page.Brand = *b
		return nil
	})
	g.Go(func() error {
		list, err := s.api.GetBrandProducts(gctx, id)
		if err != nil {
			return err
		}
		page.Products = list.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError(err)
	}
	return page, nil
}
