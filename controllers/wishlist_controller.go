package controllers

import (
	stderrors "errors"
	"net/http"

	"storefront-service/common/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type wishlistView struct {
	Products []models.Product `json:"products"`
}

type WishlistController struct {
	Wishlist *services.WishlistService
	Carts    *services.CartService
}

func NewWishlistController(wishlist *services.WishlistService, carts *services.CartService) *WishlistController {
	return &WishlistController{Wishlist: wishlist, Carts: carts}
}

func (wc *WishlistController) GetWishlist(c *gin.Context) {
	v := middleware.VisitorFrom(c)
	user := middleware.UserFrom(c)
	wc.Carts.ResumePending(c.Request.Context(), v, user)

	products, err := wc.Wishlist.List(c.Request.Context(), v, user)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "wishlist.html", "Wishlist", wishlistView{Products: products})
}

// Toggle flips the product's wishlist membership from a product card.
func (wc *WishlistController) Toggle(c *gin.Context) {
	back := returnPath(c, "/products/"+c.Param("id"))
	in, err := wc.Wishlist.Toggle(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id"))
	if stderrors.Is(err, errors.ErrLoginRequired) {
		actionFailed(c, err, services.LoginURL(back))
		return
	}
	if err != nil {
		actionFailed(c, err, back)
		return
	}
	respond(c, http.StatusOK, back, gin.H{"inWishlist": in})
}

func (wc *WishlistController) Remove(c *gin.Context) {
	if err := wc.Wishlist.Remove(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id")); err != nil {
		actionFailed(c, err, "/wishlist")
		return
	}
	respond(c, http.StatusOK, "/wishlist", nil)
}
