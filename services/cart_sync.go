package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"storefront-service/clients"
	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"

	"go.uber.org/zap"
)

// Toasts shown for cart actions.
const (
	MsgLoginToOrder       = "Please login to continue order"
	MsgAddFailed          = "Failed to add product to cart"
	MsgPendingAdded       = "Product added to cart: "
	MsgPendingFailed      = "Failed to add product to cart after login"
	MsgQuantityFailed     = "Failed to update quantity, please try again"
	MsgItemRemoved        = "Item removed from cart"
	MsgRemoveFailed       = "Failed to remove, please try again"
	MsgCartCleared        = "Cart cleared successfully"
	MsgClearFailed        = "Failed to clear cart, please try again"
	MsgDefaultAddedToCart = "Product added successfully to your cart"
)

const messageSuccess = "success"

// CartService keeps the visitor's cart count and cart owner in line with the remote cart.
// Every method mutates the visitor state it is given; persisting it is the caller's job.
type CartService struct {
	api       CommerceAPI
	debouncer *Debouncer
	metrics   Metrics
}

func NewCartService(api CommerceAPI, debounce time.Duration, metrics Metrics) *CartService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CartService{api: api, debouncer: NewDebouncer(debounce), metrics: metrics}
}

// NeedsRefresh reports whether the stored identity differs from the session's.
func NeedsRefresh(v *models.VisitorState, user *models.SessionUser) bool {
	return user != nil && v.Email != user.Email
}

// Refresh reloads the remote cart and reconciles count and owner. On failure the visitor
// state is left untouched.
func (s *CartService) Refresh(ctx context.Context, v *models.VisitorState, user *models.SessionUser) (*models.CartResponse, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	cart, err := s.api.GetCart(ctx, user.Token)
	if err != nil {
		logger.Error(ctx, "cart refresh failed", err)
		return nil, upstreamError(err)
	}

	v.SetCartCount(cart.NumOfCartItems)
	if v.Email != user.Email {
		logger.Info(ctx, "cart identity switched", zap.String("previous", v.Email), zap.String("current", user.Email))
		v.CartOwner = ""
		v.Email = user.Email
	}
	if owner := cart.Owner(); owner != "" {
		v.CartOwner = owner
	}
	return cart, nil
}

// View returns the cart page model, refreshing count and owner on the way.
func (s *CartService) View(ctx context.Context, v *models.VisitorState, user *models.SessionUser) (*models.CartResponse, error) {
	return s.Refresh(ctx, v, user)
}

// Add puts productID in the remote cart. Anonymous visitors get the product parked as the
// pending cart item and a login redirect that returns to returnTo.
func (s *CartService) Add(ctx context.Context, v *models.VisitorState, user *models.SessionUser, productID, returnTo string) (redirect string, err error) {
	if productID == "" {
		return "", errors.ErrInvalidInput
	}
	if user == nil {
		v.PendingCartItem = productID
		v.AddFlash(FlashError, MsgLoginToOrder)
		return LoginURL(returnTo), errors.ErrLoginRequired
	}

	resp, err := s.api.AddToCart(ctx, user.Token, productID)
	if err != nil || resp.Status != messageSuccess {
		if err == nil {
			err = errors.New(http.StatusBadGateway, resp.Message, nil)
		}
		logger.Error(ctx, "add to cart failed", err, zap.String("product_id", productID))
		v.AddFlash(FlashError, MsgAddFailed)
		return "", upstreamError(err)
	}

	s.applyAdd(v, user, resp)
	v.AddFlash(FlashSuccess, addedMessage(resp))
	s.record(ctx, awspkg.MetricCartAdds)
	return "", nil
}

// ResumePending adds the pending cart item parked before login. It reports whether an
// add was attempted.
func (s *CartService) ResumePending(ctx context.Context, v *models.VisitorState, user *models.SessionUser) bool {
	if user == nil || v.PendingCartItem == "" {
		return false
	}
	productID := v.PendingCartItem

	resp, err := s.api.AddToCart(ctx, user.Token, productID)
	if err != nil || resp.Status != messageSuccess {
		logger.Warn(ctx, "pending cart item not added", zap.String("product_id", productID), zap.Error(err))
		v.AddFlash(FlashError, MsgPendingFailed)
		// a rejected product will never succeed; transport failures may
		if err == nil || clients.IsClientError(err) {
			v.PendingCartItem = ""
		}
		return true
	}

	v.PendingCartItem = ""
	s.applyAdd(v, user, resp)
	v.AddFlash(FlashSuccess, MsgPendingAdded+addedMessage(resp))
	s.record(ctx, awspkg.MetricPendingCartAdds)
	return true
}

func (s *CartService) applyAdd(v *models.VisitorState, user *models.SessionUser, resp *models.AddToCartResponse) {
	v.SetCartCount(resp.NumOfCartItems)
	if v.Email != user.Email {
		v.Email = user.Email
		v.CartOwner = ""
	}
	if resp.Data.CartOwner != "" {
		v.CartOwner = resp.Data.CartOwner
	}
}

// UpdateQuantity sets the count of a cart line. Bursts for the same visitor and line are
// debounced: only the newest request reaches the API, older ones get ErrSuperseded.
func (s *CartService) UpdateQuantity(ctx context.Context, visitorID string, v *models.VisitorState, user *models.SessionUser, itemID string, count int) (*models.CartResponse, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, errors.ErrInvalidQuantity
	}
	if itemID == "" {
		return nil, errors.ErrInvalidInput
	}

	var cart *models.CartResponse
	err := s.debouncer.Do(ctx, visitorID+":"+itemID, func(ctx context.Context) error {
		resp, err := s.api.UpdateCartItem(ctx, user.Token, itemID, count)
		if err != nil {
			return err
		}
		if resp.Status != messageSuccess {
			return errors.New(http.StatusBadGateway, "unexpected update answer: "+resp.Status, nil)
		}
		cart = resp
		return nil
	})
	if stderrors.Is(err, errors.ErrSuperseded) {
		s.record(ctx, awspkg.MetricSupersededUpdates)
		return nil, err
	}
	if err != nil {
		logger.Error(ctx, "quantity update failed", err, zap.String("item_id", itemID), zap.Int("count", count))
		v.AddFlash(FlashError, MsgQuantityFailed)
		return nil, upstreamError(err)
	}

	v.SetCartCount(cart.NumOfCartItems)
	if owner := cart.Owner(); owner != "" {
		v.CartOwner = owner
	}
	return cart, nil
}

// Remove drops one cart line.
func (s *CartService) Remove(ctx context.Context, v *models.VisitorState, user *models.SessionUser, itemID string) (*models.CartResponse, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	cart, err := s.api.RemoveCartItem(ctx, user.Token, itemID)
	if err == nil && cart.Status != messageSuccess {
		err = errors.New(http.StatusBadGateway, "unexpected remove answer: "+cart.Status, nil)
	}
	if err != nil {
		logger.Error(ctx, "remove cart item failed", err, zap.String("item_id", itemID))
		v.AddFlash(FlashError, MsgRemoveFailed)
		return nil, upstreamError(err)
	}

	v.SetCartCount(cart.NumOfCartItems)
	v.AddFlash(FlashSuccess, MsgItemRemoved)
	return cart, nil
}

// Clear empties the remote cart. The API signals success with message "success".
func (s *CartService) Clear(ctx context.Context, v *models.VisitorState, user *models.SessionUser) error {
	if err := requireUser(user); err != nil {
		return err
	}

	resp, err := s.api.ClearCart(ctx, user.Token)
	if err == nil && resp.Message != messageSuccess {
		err = errors.New(http.StatusBadGateway, "unexpected clear cart answer: "+resp.Message, nil)
	}
	if err != nil {
		logger.Error(ctx, "clear cart failed", err)
		v.AddFlash(FlashError, MsgClearFailed)
		return upstreamError(err)
	}

	v.SetCartCount(0)
	v.AddFlash(FlashSuccess, MsgCartCleared)
	return nil
}

// record ships a counter without holding up the request.
func (s *CartService) record(ctx context.Context, metric string) {
	requestID := logger.WithRequestID(context.Background(), logger.RequestIDFrom(ctx))
	go func() {
		mctx, cancel := context.WithTimeout(requestID, 5*time.Second)
		defer cancel()
		if err := s.metrics.RecordCount(mctx, metric, map[string]string{"Service": "storefront"}); err != nil {
			logger.Warn(mctx, "metric not recorded", zap.String("metric", metric), zap.Error(err))
		}
	}()
}

func addedMessage(resp *models.AddToCartResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	return MsgDefaultAddedToCart
}
