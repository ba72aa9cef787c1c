package services

import (
	"context"

	"storefront-service/models"

	"github.com/stretchr/testify/mock"
)

// mockAPI mocks the calls the service tests exercise. Anything else panics through the
// nil embedded interface.
type mockAPI struct {
	mock.Mock
	CommerceAPI
}

func (m *mockAPI) GetCart(ctx context.Context, token string) (*models.CartResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *mockAPI) AddToCart(ctx context.Context, token, productID string) (*models.AddToCartResponse, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddToCartResponse), args.Error(1)
}

func (m *mockAPI) UpdateCartItem(ctx context.Context, token, itemID string, count int) (*models.CartResponse, error) {
	args := m.Called(ctx, token, itemID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *mockAPI) RemoveCartItem(ctx context.Context, token, itemID string) (*models.CartResponse, error) {
	args := m.Called(ctx, token, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartResponse), args.Error(1)
}

func (m *mockAPI) ClearCart(ctx context.Context, token string) (*models.MessageResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageResponse), args.Error(1)
}

func (m *mockAPI) GetWishlist(ctx context.Context, token string) (*models.WishlistResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WishlistResponse), args.Error(1)
}

func (m *mockAPI) AddToWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WishlistMutation), args.Error(1)
}

func (m *mockAPI) RemoveFromWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WishlistMutation), args.Error(1)
}

func (m *mockAPI) SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *mockAPI) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *mockAPI) UpdateMe(ctx context.Context, token string, req models.UpdateUserRequest) (*models.UpdateUserResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpdateUserResponse), args.Error(1)
}

func (m *mockAPI) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (*models.ChangePasswordResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChangePasswordResponse), args.Error(1)
}

func (m *mockAPI) GetUserOrders(ctx context.Context, token, owner string) ([]models.Order, error) {
	args := m.Called(ctx, token, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockAPI) GetAddresses(ctx context.Context, token string) (*models.AddressResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressResponse), args.Error(1)
}

func (m *mockAPI) CreateCheckoutSession(ctx context.Context, token, cartID string, addr models.ShippingAddress, returnURL string) (*models.CheckoutSessionResponse, error) {
	args := m.Called(ctx, token, cartID, addr, returnURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSessionResponse), args.Error(1)
}

func (m *mockAPI) GetProducts(ctx context.Context, page, limit int) (*models.ProductList, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductList), args.Error(1)
}

func (m *mockAPI) GetCategories(ctx context.Context) (*models.CategoryList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryList), args.Error(1)
}

func (m *mockAPI) AddAddress(ctx context.Context, token string, addr models.AddressForm) (*models.AddressResponse, error) {
	args := m.Called(ctx, token, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressResponse), args.Error(1)
}

func (m *mockAPI) RemoveAddress(ctx context.Context, token, id string) (*models.AddressResponse, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddressResponse), args.Error(1)
}

func (m *mockAPI) ForgotPassword(ctx context.Context, email string) (*models.StatusResponse, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusResponse), args.Error(1)
}

func (m *mockAPI) VerifyResetCode(ctx context.Context, code string) (*models.StatusResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusResponse), args.Error(1)
}

func (m *mockAPI) ResetPassword(ctx context.Context, email, newPassword string) (*models.ResetPasswordResponse, error) {
	args := m.Called(ctx, email, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResetPasswordResponse), args.Error(1)
}
