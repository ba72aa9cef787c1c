package models

// CartProduct is one line of the remote cart. T is a product id after a mutation and an
// expanded product on reads.
type CartProduct[T any] struct {
	Count   int     `json:"count"`
	ID      string  `json:"_id"`
	Product T       `json:"product"`
	Price   float64 `json:"price"`
}

type CartData[T any] struct {
	ID             string           `json:"_id"`
	CartOwner      string           `json:"cartOwner"`
	Products       []CartProduct[T] `json:"products"`
	TotalCartPrice float64          `json:"totalCartPrice"`
	CreatedAt      string           `json:"createdAt,omitempty"`
	UpdatedAt      string           `json:"updatedAt,omitempty"`
}

type CartProductItem struct {
	ID             string        `json:"_id"`
	Title          string        `json:"title"`
	Quantity       int           `json:"quantity"`
	ImageCover     string        `json:"imageCover"`
	Category       Category      `json:"category"`
	Subcategory    []Subcategory `json:"subcategory,omitempty"`
	Brand          Brand         `json:"brand"`
	RatingsAverage float64       `json:"ratingsAverage"`
}

type AddToCartResponse struct {
	Status         string           `json:"status"`
	Message        string           `json:"message"`
	NumOfCartItems int              `json:"numOfCartItems"`
	CartID         string           `json:"cartId"`
	Data           CartData[string] `json:"data"`
}

type CartResponse struct {
	Status         string                     `json:"status"`
	Message        string                     `json:"message,omitempty"`
	NumOfCartItems int                        `json:"numOfCartItems"`
	CartID         string                     `json:"cartId"`
	Data           *CartData[CartProductItem] `json:"data"`
}

// Lines returns the cart lines, empty when the API sent no cart body.
func (r *CartResponse) Lines() []CartProduct[CartProductItem] {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.Products
}

// ItemCount sums line counts; NumOfCartItems counts distinct products.
func (r *CartResponse) ItemCount() int {
	total := 0
	for _, l := range r.Lines() {
		total += l.Count
	}
	return total
}

func (r *CartResponse) Owner() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return r.Data.CartOwner
}

type MessageResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

type UpdateCartItemRequest struct {
	Count int `json:"count"`
}
