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

type cartView struct {
	Lines     []models.CartProduct[models.CartProductItem] `json:"lines"`
	ItemCount int                                          `json:"itemCount"`
	Total     float64                                      `json:"total"`
}

func newCartView(cart *models.CartResponse) cartView {
	view := cartView{Lines: cart.Lines(), ItemCount: cart.ItemCount()}
	if cart.Data != nil {
		view.Total = cart.Data.TotalCartPrice
	}
	return view
}

// CartController serves the cart page and every cart mutation.
type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GetCart renders the cart, reconciling count and owner with the remote cart.
func (cc *CartController) GetCart(c *gin.Context) {
	v := middleware.VisitorFrom(c)
	cc.Carts.ResumePending(c.Request.Context(), v, middleware.UserFrom(c))

	cart, err := cc.Carts.View(c.Request.Context(), v, middleware.UserFrom(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "cart.html", "Cart", newCartView(cart))
}

// AddItem adds the product in the path. Anonymous visitors are sent to sign in and the
// product is added once they come back.
func (cc *CartController) AddItem(c *gin.Context) {
	back := returnPath(c, "/products/"+c.Param("id"))
	redirect, err := cc.Carts.Add(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id"), back)
	if err != nil {
		if redirect == "" {
			redirect = back
		}
		actionFailed(c, err, redirect)
		return
	}
	respond(c, http.StatusOK, back, nil)
}

// UpdateQuantity sets a line's count. Rapid clicks on the same line collapse into one API
// call; superseded requests answer 202 without touching the page.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var form QuantityForm
	if err := c.ShouldBind(&form); err != nil {
		actionFailed(c, errors.Wrap(errors.ErrInvalidQuantity, err), "/cart")
		return
	}

	v := middleware.VisitorFrom(c)
	cart, err := cc.Carts.UpdateQuantity(c.Request.Context(), middleware.VisitorIDFrom(c), v, middleware.UserFrom(c), c.Param("id"), form.Count)
	switch {
	case stderrors.Is(err, errors.ErrSuperseded):
		if middleware.WantsJSON(c) {
			c.JSON(http.StatusAccepted, gin.H{"superseded": true})
			return
		}
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	case err != nil:
		actionFailed(c, err, "/cart")
		return
	}
	respond(c, http.StatusOK, "/cart", newCartView(cart))
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	cart, err := cc.Carts.Remove(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id"))
	if err != nil {
		actionFailed(c, err, "/cart")
		return
	}
	respond(c, http.StatusOK, "/cart", newCartView(cart))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.Carts.Clear(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c)); err != nil {
		actionFailed(c, err, "/cart")
		return
	}
	respond(c, http.StatusOK, "/cart", cartView{})
}
