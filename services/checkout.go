package services

import (
	"context"
	"time"

	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const MsgCheckoutFailed = "Failed to create checkout session"

type CheckoutPage struct {
	Cart      *models.CartResponse `json:"cart"`
	Addresses []models.Address     `json:"addresses"`
	Selected  *models.Address      `json:"selected,omitempty"`
}

// CheckoutService turns the remote cart into a hosted payment session.
type CheckoutService struct {
	api       CommerceAPI
	returnURL string
	metrics   Metrics
}

// NewCheckoutService builds the service. returnURL is where the payment provider sends the
// shopper back.
func NewCheckoutService(api CommerceAPI, returnURL string, metrics Metrics) *CheckoutService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CheckoutService{api: api, returnURL: returnURL, metrics: metrics}
}

// Page loads the cart and the saved addresses together. The first address is preselected.
func (s *CheckoutService) Page(ctx context.Context, v *models.VisitorState, user *models.SessionUser) (*CheckoutPage, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	page := &CheckoutPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cart, err := s.api.GetCart(gctx, user.Token)
		page.Cart = cart
		return err
	})
	g.Go(func() error {
		resp, err := s.api.GetAddresses(gctx, user.Token)
		if err != nil {
			// checkout still works with a typed address
			logger.Warn(gctx, "addresses unavailable for checkout", zap.Error(err))
			return nil
		}
		page.Addresses = resp.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, upstreamError(err)
	}

	v.SetCartCount(page.Cart.NumOfCartItems)
	if page.Cart.NumOfCartItems == 0 {
		return nil, errors.ErrEmptyCart
	}
	if len(page.Addresses) > 0 {
		page.Selected = &page.Addresses[0]
	}
	return page, nil
}

// CreateSession opens a payment session for the visitor's cart and returns its URL.
func (s *CheckoutService) CreateSession(ctx context.Context, v *models.VisitorState, user *models.SessionUser, addr models.ShippingAddress) (string, error) {
	if err := requireUser(user); err != nil {
		return "", err
	}

	cart, err := s.api.GetCart(ctx, user.Token)
	if err != nil {
		v.AddFlash(FlashError, MsgCheckoutFailed)
		return "", upstreamError(err)
	}
	if cart.CartID == "" || cart.NumOfCartItems == 0 {
		v.SetCartCount(0)
		return "", errors.ErrEmptyCart
	}

	resp, err := s.api.CreateCheckoutSession(ctx, user.Token, cart.CartID, addr, s.returnURL)
	if err == nil && (resp.Status != messageSuccess || resp.Session.URL == "") {
		err = errors.New(errors.ErrBadGateway.Code, MsgCheckoutFailed, nil)
	}
	if err != nil {
		logger.Error(ctx, "checkout session failed", err, zap.String("cart_id", cart.CartID))
		v.AddFlash(FlashError, MsgCheckoutFailed)
		return "", upstreamError(err)
	}

	logger.Info(ctx, "checkout session created", zap.String("cart_id", cart.CartID))
	go func() {
		mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.metrics.RecordCount(mctx, awspkg.MetricCheckoutSessions, map[string]string{"Service": "storefront"})
	}()
	return resp.Session.URL, nil
}
