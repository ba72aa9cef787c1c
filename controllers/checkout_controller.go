package controllers

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"

	"storefront-service/common/errors"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type checkoutView struct {
	*services.CheckoutPage
	Error string `json:"error,omitempty"`
}

type CheckoutController struct {
	Checkout *services.CheckoutService
	Accounts *services.AccountService
}

func NewCheckoutController(checkout *services.CheckoutService, accounts *services.AccountService) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Accounts: accounts}
}

// cameFrom reports whether the request was referred by a same-host page under one of prefixes.
func cameFrom(c *gin.Context, prefixes ...string) bool {
	ref := c.Request.Referer()
	if ref == "" {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return false
	}
	for _, p := range prefixes {
		if u.Path == p || strings.HasPrefix(u.Path, p+"/") {
			return true
		}
	}
	return false
}

// Page shows the checkout form. It is only reachable from the cart.
func (cc *CheckoutController) Page(c *gin.Context) {
	if !cameFrom(c, "/cart", "/checkout") {
		respond(c, http.StatusConflict, "/cart", nil)
		return
	}
	page, err := cc.Checkout.Page(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c))
	if stderrors.Is(err, errors.ErrEmptyCart) {
		respond(c, http.StatusConflict, "/cart", nil)
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "checkout.html", "Checkout", checkoutView{CheckoutPage: page})
}

// shippingAddress resolves the posted address: a typed address wins over a saved one.
func (cc *CheckoutController) shippingAddress(c *gin.Context, form ShippingForm) (models.ShippingAddress, bool) {
	typed := models.ShippingAddress{
		Details: strings.TrimSpace(form.Details),
		Phone:   strings.TrimSpace(form.Phone),
		City:    strings.TrimSpace(form.City),
	}
	if typed.Details != "" && typed.Phone != "" && typed.City != "" {
		return typed, true
	}
	if form.AddressID == "" {
		return models.ShippingAddress{}, false
	}
	addresses, err := cc.Accounts.Addresses(c.Request.Context(), middleware.UserFrom(c))
	if err != nil {
		return models.ShippingAddress{}, false
	}
	for _, a := range addresses {
		if a.ID == form.AddressID {
			return a.Shipping(), true
		}
	}
	return models.ShippingAddress{}, false
}

// CreateSession opens a payment session and sends the browser to it.
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	var form ShippingForm
	_ = c.ShouldBind(&form)

	v := middleware.VisitorFrom(c)
	addr, ok := cc.shippingAddress(c, form)
	if !ok {
		v.AddFlash(services.FlashError, "Please provide a shipping address")
		actionFailed(c, errors.ErrValidation, "/checkout")
		return
	}

	paymentURL, err := cc.Checkout.CreateSession(c.Request.Context(), v, middleware.UserFrom(c), addr)
	if stderrors.Is(err, errors.ErrEmptyCart) {
		actionFailed(c, err, "/cart")
		return
	}
	if err != nil {
		actionFailed(c, err, "/checkout")
		return
	}
	respond(c, http.StatusOK, paymentURL, nil)
}
