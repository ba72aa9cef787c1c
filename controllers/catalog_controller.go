package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// ProductGrid is the shared model of every product listing.
type ProductGrid struct {
	Products   []models.Product `json:"products"`
	Wishlisted map[string]bool  `json:"wishlisted,omitempty"`
	View       string           `json:"view"`
}

type homeView struct {
	ProductGrid
	Categories []models.Category `json:"categories"`
}

type productsView struct {
	ProductGrid
	Metadata models.Metadata `json:"metadata"`
	Category string          `json:"category,omitempty"`
	Brand    string          `json:"brand,omitempty"`
}

type productView struct {
	Product    *models.Product `json:"product"`
	InWishlist bool            `json:"inWishlist"`
}

type categoriesView struct {
	Categories []models.Category `json:"categories"`
}

type categoryView struct {
	ProductGrid
	Category models.Category `json:"category"`
}

type brandsView struct {
	Brands []models.Brand `json:"brands"`
}

type brandView struct {
	ProductGrid
	Brand models.Brand `json:"brand"`
}

type CatalogController struct {
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Wishlist *services.WishlistService
}

func NewCatalogController(catalog *services.CatalogService, carts *services.CartService, wishlist *services.WishlistService) *CatalogController {
	return &CatalogController{Catalog: catalog, Carts: carts, Wishlist: wishlist}
}

func (cc *CatalogController) grid(c *gin.Context, products []models.Product) ProductGrid {
	view := c.DefaultQuery("view", "grid")
	if view != "list" {
		view = "grid"
	}
	return ProductGrid{
		Products:   products,
		Wishlisted: cc.Wishlist.IDs(c.Request.Context(), middleware.UserFrom(c)),
		View:       view,
	}
}

// resumePending finishes an add-to-cart that was interrupted by the login redirect.
func (cc *CatalogController) resumePending(c *gin.Context) {
	cc.Carts.ResumePending(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c))
}

func (cc *CatalogController) Home(c *gin.Context) {
	page, err := cc.Catalog.Home(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "home.html", "Home", homeView{
		ProductGrid: cc.grid(c, page.Products),
		Categories:  page.Categories,
	})
}

// Products lists products, one page at a time. ?category= or ?brand= narrow the listing.
func (cc *CatalogController) Products(c *gin.Context) {
	cc.resumePending(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := cc.Catalog.Products(c.Request.Context(), services.ProductQuery{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
	})
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "products.html", "Products", productsView{
		ProductGrid: cc.grid(c, result.Products),
		Metadata:    result.Metadata,
		Category:    result.Category,
		Brand:       result.Brand,
	})
}

func (cc *CatalogController) Product(c *gin.Context) {
	cc.resumePending(c)

	id := c.Param("id")
	product, err := cc.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	marks := cc.Wishlist.IDs(c.Request.Context(), middleware.UserFrom(c))
	render(c, http.StatusOK, "product.html", product.Title, productView{Product: product, InWishlist: marks[product.ID]})
}

func (cc *CatalogController) Categories(c *gin.Context) {
	categories, err := cc.Catalog.Categories(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "categories.html", "Categories", categoriesView{Categories: categories})
}

func (cc *CatalogController) Category(c *gin.Context) {
	page, err := cc.Catalog.Category(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "category.html", page.Category.Name, categoryView{
		ProductGrid: cc.grid(c, page.Products),
		Category:    page.Category,
	})
}

func (cc *CatalogController) Brands(c *gin.Context) {
	brands, err := cc.Catalog.Brands(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "brands.html", "Brands", brandsView{Brands: brands})
}

func (cc *CatalogController) Brand(c *gin.Context) {
	page, err := cc.Catalog.Brand(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "brand.html", page.Brand.Name, brandView{
		ProductGrid: cc.grid(c, page.Products),
		Brand:       page.Brand,
	})
}
