package services

import (
	"context"
	stderrors "errors"

	"storefront-service/clients"
	"storefront-service/common/errors"
	"storefront-service/models"
)

// CommerceAPI is the commerce API surface the services depend on. *clients.CommerceClient
// satisfies it.
type CommerceAPI interface {
	GetProducts(ctx context.Context, page, limit int) (*models.ProductList, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetCategoryProducts(ctx context.Context, categoryID string) (*models.ProductList, error)
	GetBrandProducts(ctx context.Context, brandID string) (*models.ProductList, error)
	GetCategories(ctx context.Context) (*models.CategoryList, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetBrands(ctx context.Context) (*models.BrandList, error)
	GetBrand(ctx context.Context, id string) (*models.Brand, error)

	AddToCart(ctx context.Context, token, productID string) (*models.AddToCartResponse, error)
	GetCart(ctx context.Context, token string) (*models.CartResponse, error)
	UpdateCartItem(ctx context.Context, token, itemID string, count int) (*models.CartResponse, error)
	RemoveCartItem(ctx context.Context, token, itemID string) (*models.CartResponse, error)
	ClearCart(ctx context.Context, token string) (*models.MessageResponse, error)

	AddToWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error)
	GetWishlist(ctx context.Context, token string) (*models.WishlistResponse, error)
	RemoveFromWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error)

	SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error)
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*models.StatusResponse, error)
	VerifyResetCode(ctx context.Context, code string) (*models.StatusResponse, error)
	ResetPassword(ctx context.Context, email, newPassword string) (*models.ResetPasswordResponse, error)

	UpdateMe(ctx context.Context, token string, req models.UpdateUserRequest) (*models.UpdateUserResponse, error)
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (*models.ChangePasswordResponse, error)

	CreateCheckoutSession(ctx context.Context, token, cartID string, addr models.ShippingAddress, returnURL string) (*models.CheckoutSessionResponse, error)
	GetUserOrders(ctx context.Context, token, owner string) ([]models.Order, error)

	AddAddress(ctx context.Context, token string, addr models.AddressForm) (*models.AddressResponse, error)
	RemoveAddress(ctx context.Context, token, id string) (*models.AddressResponse, error)
	GetAddresses(ctx context.Context, token string) (*models.AddressResponse, error)
}

var _ CommerceAPI = (*clients.CommerceClient)(nil)

// Metrics records business counters. *aws.MetricsClient satisfies it.
type Metrics interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

type noopMetrics struct{}

func (noopMetrics) RecordCount(context.Context, string, map[string]string) error { return nil }

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// upstreamError maps a client failure onto an application error: API rejections keep the
// API's status and message, transport failures become 502.
func upstreamError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	var ue *clients.UpstreamError
	if stderrors.As(err, &ue) {
		return errors.New(ue.Status, ue.Message, err)
	}
	return errors.Wrap(errors.ErrBadGateway, err)
}

// requireUser rejects anonymous callers.
func requireUser(user *models.SessionUser) error {
	if user == nil || user.Token == "" {
		return errors.ErrLoginRequired
	}
	return nil
}
