package controllers

import (
	stderrors "errors"
	"net/http"

	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type profileView struct {
	Addresses   []models.Address `json:"addresses"`
	LatestOrder *models.Order    `json:"latestOrder,omitempty"`
	OrdersError string           `json:"ordersError,omitempty"`
}

type ordersView struct {
	Orders []models.Order `json:"orders"`
	Error  string         `json:"error,omitempty"`
}

// AccountController serves the profile page, addresses and order history.
type AccountController struct {
	Accounts *services.AccountService
	Carts    *services.CartService
	Sessions *session.Manager
}

func NewAccountController(accounts *services.AccountService, carts *services.CartService, sessions *session.Manager) *AccountController {
	return &AccountController{Accounts: accounts, Carts: carts, Sessions: sessions}
}

// orders loads the order history. Without a known cart owner the cart is refreshed first,
// since the owner id only comes from the cart API.
func (ac *AccountController) orders(c *gin.Context) ([]models.Order, error) {
	ctx := c.Request.Context()
	v := middleware.VisitorFrom(c)
	user := middleware.UserFrom(c)
	if v.CartOwner == "" {
		if _, err := ac.Carts.Refresh(ctx, v, user); err != nil {
			logger.Warn(ctx, "cart owner lookup failed", zap.Error(err))
		}
	}
	return ac.Accounts.Orders(ctx, v, user)
}

func ordersMessage(err error) string {
	if stderrors.Is(err, errors.ErrMissingCartOwner) {
		return errors.ErrMissingCartOwner.Message
	}
	return services.MsgOrdersFailed
}

// Profile shows the account, saved addresses and the latest order.
func (ac *AccountController) Profile(c *gin.Context) {
	var (
		view      profileView
		orders    []models.Order
		ordersErr error
	)

	user := middleware.UserFrom(c)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		addresses, err := ac.Accounts.Addresses(gctx, user)
		view.Addresses = addresses
		return err
	})
	g.Go(func() error {
		orders, ordersErr = ac.orders(c)
		return nil
	})
	if err := g.Wait(); err != nil {
		renderError(c, err)
		return
	}

	if ordersErr != nil {
		view.OrdersError = ordersMessage(ordersErr)
	} else if len(orders) > 0 {
		view.LatestOrder = &orders[len(orders)-1]
	}
	render(c, http.StatusOK, "profile.html", "Profile", view)
}

// endSession signs the user out after a credential change and sends them to sign in again.
func (ac *AccountController) endSession(c *gin.Context) {
	ac.Sessions.Clear(c)
	middleware.SetUser(c, nil)
	respond(c, http.StatusOK, "/auth/login", nil)
}

func (ac *AccountController) UpdateProfile(c *gin.Context) {
	v := middleware.VisitorFrom(c)
	var form ProfileForm
	_ = c.ShouldBind(&form)
	if err := validate.Struct(form); err != nil {
		for _, msg := range validationMessages(err) {
			v.AddFlash(services.FlashError, msg)
		}
		actionFailed(c, errors.Wrap(errors.ErrValidation, err), "/profile")
		return
	}

	if err := ac.Accounts.UpdateProfile(c.Request.Context(), v, middleware.UserFrom(c), form.Name, form.Email); err != nil {
		actionFailed(c, err, "/profile")
		return
	}
	ac.endSession(c)
}

func (ac *AccountController) ChangePassword(c *gin.Context) {
	var form ChangePasswordForm
	_ = c.ShouldBind(&form)

	err := ac.Accounts.ChangePassword(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c),
		form.CurrentPassword, form.Password, form.RePassword)
	if err != nil {
		actionFailed(c, err, "/profile")
		return
	}
	ac.endSession(c)
}

func (ac *AccountController) bindAddress(c *gin.Context) (models.AddressForm, bool) {
	var form AddressForm
	_ = c.ShouldBind(&form)
	if err := validate.Struct(form); err != nil {
		v := middleware.VisitorFrom(c)
		for _, msg := range validationMessages(err) {
			v.AddFlash(services.FlashError, msg)
		}
		actionFailed(c, errors.Wrap(errors.ErrValidation, err), "/profile")
		return models.AddressForm{}, false
	}
	return models.AddressForm{Name: form.Name, Details: form.Details, Phone: form.Phone, City: form.City}, true
}

func (ac *AccountController) AddAddress(c *gin.Context) {
	form, ok := ac.bindAddress(c)
	if !ok {
		return
	}
	if err := ac.Accounts.AddAddress(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), form); err != nil {
		actionFailed(c, err, "/profile")
		return
	}
	respond(c, http.StatusCreated, "/profile", nil)
}

func (ac *AccountController) UpdateAddress(c *gin.Context) {
	form, ok := ac.bindAddress(c)
	if !ok {
		return
	}
	if err := ac.Accounts.UpdateAddress(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id"), form); err != nil {
		actionFailed(c, err, "/profile")
		return
	}
	respond(c, http.StatusOK, "/profile", nil)
}

func (ac *AccountController) RemoveAddress(c *gin.Context) {
	if err := ac.Accounts.RemoveAddress(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c), c.Param("id")); err != nil {
		actionFailed(c, err, "/profile")
		return
	}
	respond(c, http.StatusOK, "/profile", nil)
}

// AllOrders is where the payment provider returns the shopper. The paid cart is gone, so
// the count is refreshed.
func (ac *AccountController) AllOrders(c *gin.Context) {
	if _, err := ac.Carts.Refresh(c.Request.Context(), middleware.VisitorFrom(c), middleware.UserFrom(c)); err != nil {
		logger.Warn(c.Request.Context(), "cart refresh after payment failed", zap.Error(err))
	}
	render(c, http.StatusOK, "allorders.html", "Order placed", nil)
}

func (ac *AccountController) ViewOrders(c *gin.Context) {
	orders, err := ac.orders(c)
	if err != nil {
		_ = c.Error(err)
		status := http.StatusBadGateway
		if appErr, ok := errors.As(err); ok {
			status = appErr.Code
		}
		render(c, status, "view_orders.html", "My orders", ordersView{Error: ordersMessage(err)})
		return
	}
	render(c, http.StatusOK, "view_orders.html", "My orders", ordersView{Orders: orders})
}
