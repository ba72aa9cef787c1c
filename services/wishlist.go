package services

import (
	"context"

	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/models"

	"go.uber.org/zap"
)

const (
	MsgWishlistLogin         = "Please login to manage your wishlist"
	MsgWishlistAdded         = "Added to wishlist"
	MsgWishlistRemoved       = "Removed from wishlist"
	MsgWishlistAddFailed     = "Failed to add to wishlist"
	MsgWishlistRemoveFailed  = "Failed to remove from wishlist"
	MsgWishlistLoadingFailed = "Failed to load wishlist"
)

type WishlistService struct {
	api CommerceAPI
}

func NewWishlistService(api CommerceAPI) *WishlistService {
	return &WishlistService{api: api}
}

func (s *WishlistService) List(ctx context.Context, v *models.VisitorState, user *models.SessionUser) ([]models.Product, error) {
	if err := requireUser(user); err != nil {
		v.AddFlash(FlashError, MsgWishlistLogin)
		return nil, err
	}
	w, err := s.api.GetWishlist(ctx, user.Token)
	if err != nil {
		logger.Error(ctx, "wishlist load failed", err)
		v.AddFlash(FlashError, MsgWishlistLoadingFailed)
		return nil, upstreamError(err)
	}
	return w.Data, nil
}

// IDs returns the wishlisted product ids as a set. Anonymous visitors and API failures
// yield an empty set: the marks are decoration.
func (s *WishlistService) IDs(ctx context.Context, user *models.SessionUser) map[string]bool {
	ids := map[string]bool{}
	if user == nil {
		return ids
	}
	w, err := s.api.GetWishlist(ctx, user.Token)
	if err != nil {
		logger.Warn(ctx, "wishlist ids unavailable", zap.Error(err))
		return ids
	}
	for _, id := range w.IDs() {
		ids[id] = true
	}
	return ids
}

func (s *WishlistService) Add(ctx context.Context, v *models.VisitorState, user *models.SessionUser, productID string) error {
	if err := requireUser(user); err != nil {
		v.AddFlash(FlashError, MsgWishlistLogin)
		return err
	}
	if productID == "" {
		return errors.ErrInvalidInput
	}
	if _, err := s.api.AddToWishlist(ctx, user.Token, productID); err != nil {
		logger.Error(ctx, "wishlist add failed", err, zap.String("product_id", productID))
		v.AddFlash(FlashError, MsgWishlistAddFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgWishlistAdded)
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, v *models.VisitorState, user *models.SessionUser, productID string) error {
	if err := requireUser(user); err != nil {
		v.AddFlash(FlashError, MsgWishlistLogin)
		return err
	}
	if _, err := s.api.RemoveFromWishlist(ctx, user.Token, productID); err != nil {
		logger.Error(ctx, "wishlist remove failed", err, zap.String("product_id", productID))
		v.AddFlash(FlashError, MsgWishlistRemoveFailed)
		return upstreamError(err)
	}
	v.AddFlash(FlashSuccess, MsgWishlistRemoved)
	return nil
}

// Toggle adds productID unless it is already wishlisted. It reports the resulting membership.
func (s *WishlistService) Toggle(ctx context.Context, v *models.VisitorState, user *models.SessionUser, productID string) (bool, error) {
	if err := requireUser(user); err != nil {
		v.AddFlash(FlashError, MsgWishlistLogin)
		return false, err
	}
	if s.IDs(ctx, user)[productID] {
		return false, s.Remove(ctx, v, user, productID)
	}
	if err := s.Add(ctx, v, user, productID); err != nil {
		return false, err
	}
	return true, nil
}
