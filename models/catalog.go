package models

import "time"

type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Subcategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Category string `json:"category,omitempty"`
}

type Brand struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	ID                 string        `json:"_id"`
	Title              string        `json:"title"`
	Slug               string        `json:"slug"`
	Description        string        `json:"description,omitempty"`
	Quantity           int           `json:"quantity"`
	Sold               int           `json:"sold,omitempty"`
	Price              float64       `json:"price"`
	PriceAfterDiscount *float64      `json:"priceAfterDiscount,omitempty"`
	ImageCover         string        `json:"imageCover"`
	Images             []string      `json:"images,omitempty"`
	Category           Category      `json:"category"`
	Subcategory        []Subcategory `json:"subcategory,omitempty"`
	Brand              Brand         `json:"brand"`
	RatingsAverage     float64       `json:"ratingsAverage"`
	RatingsQuantity    int           `json:"ratingsQuantity,omitempty"`
	CreatedAt          *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time    `json:"updatedAt,omitempty"`
}

// EffectivePrice is the discounted price when the API reports one.
func (p Product) EffectivePrice() float64 {
	if p.PriceAfterDiscount != nil && *p.PriceAfterDiscount > 0 {
		return *p.PriceAfterDiscount
	}
	return p.Price
}

// InStock reports whether the API lists remaining quantity.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

type Metadata struct {
	CurrentPage   int `json:"currentPage"`
	NumberOfPages int `json:"numberOfPages"`
	Limit         int `json:"limit"`
	NextPage      int `json:"nextPage,omitempty"`
	PrevPage      int `json:"prevPage,omitempty"`
}

// ListResponse is the API's paginated list envelope.
type ListResponse[T any] struct {
	Results  int      `json:"results"`
	Metadata Metadata `json:"metadata"`
	Data     []T      `json:"data"`
}

// SingleResponse is the API's single-resource envelope.
type SingleResponse[T any] struct {
	Data T `json:"data"`
}

type (
	ProductList  = ListResponse[Product]
	CategoryList = ListResponse[Category]
	BrandList    = ListResponse[Brand]
)
