package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"storefront-service/common/logger"
	"storefront-service/models"

	"go.uber.org/zap"
)

// CommerceClient is the typed surface of the commerce API.
type CommerceClient struct {
	api   *APIClient
	cache Cache
}

// NewCommerceClient wraps api. cache may be nil, catalog reads then always hit the API.
func NewCommerceClient(api *APIClient, cache Cache) *CommerceClient {
	return &CommerceClient{api: api, cache: cache}
}

func (c *CommerceClient) send(ctx context.Context, method, path string, query url.Values, token string, body any) (*http.Response, time.Time, error) {
	start := time.Now()
	resp, err := c.api.Do(ctx, method, path, query, token, body)
	if err != nil {
		return nil, start, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, start, nil
}

func logCall(ctx context.Context, method, path string, status int, start time.Time) {
	logger.Debug(ctx, "upstream call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
}

// raw returns the body as is, for callers that keep the bytes.
func (c *CommerceClient) raw(ctx context.Context, method, path string, query url.Values, token string, body any) ([]byte, error) {
	resp, start, err := c.send(ctx, method, path, query, token, body)
	if err != nil {
		return nil, err
	}
	b, err := ReadBody(resp)
	logCall(ctx, method, path, resp.StatusCode, start)
	return b, err
}

func (c *CommerceClient) call(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	resp, start, err := c.send(ctx, method, path, query, token, body)
	if err != nil {
		return err
	}
	err = DecodeJSON(resp, out)
	logCall(ctx, method, path, resp.StatusCode, start)
	return err
}

// catalogGet serves anonymous catalog reads, through the cache when one is configured.
func (c *CommerceClient) catalogGet(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if c.cache != nil {
		if b, ok := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(b, out); err == nil {
				return nil
			}
		}
	}

	b, err := c.raw(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode GET %s: %w", path, err)
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, b)
	}
	return nil
}

// Catalog

func (c *CommerceClient) GetProducts(ctx context.Context, page, limit int) (*models.ProductList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var out models.ProductList
	return &out, c.catalogGet(ctx, "/products", q, &out)
}

func (c *CommerceClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.SingleResponse[models.Product]
	if err := c.catalogGet(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *CommerceClient) GetCategoryProducts(ctx context.Context, categoryID string) (*models.ProductList, error) {
	var out models.ProductList
	return &out, c.catalogGet(ctx, "/products", url.Values{"category": {categoryID}}, &out)
}

func (c *CommerceClient) GetBrandProducts(ctx context.Context, brandID string) (*models.ProductList, error) {
	var out models.ProductList
	return &out, c.catalogGet(ctx, "/products", url.Values{"brand": {brandID}}, &out)
}

func (c *CommerceClient) GetCategories(ctx context.Context) (*models.CategoryList, error) {
	var out models.CategoryList
	return &out, c.catalogGet(ctx, "/categories", nil, &out)
}

func (c *CommerceClient) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var out models.SingleResponse[models.Category]
	if err := c.catalogGet(ctx, "/categories/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *CommerceClient) GetBrands(ctx context.Context) (*models.BrandList, error) {
	var out models.BrandList
	return &out, c.catalogGet(ctx, "/brands", nil, &out)
}

func (c *CommerceClient) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	var out models.SingleResponse[models.Brand]
	if err := c.catalogGet(ctx, "/brands/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Cart

func (c *CommerceClient) AddToCart(ctx context.Context, token, productID string) (*models.AddToCartResponse, error) {
	var out models.AddToCartResponse
	return &out, c.call(ctx, http.MethodPost, "/cart", nil, token, models.AddToCartRequest{ProductID: productID}, &out)
}

// GetCart returns the remote cart. A user without a cart gets an empty one, not an error.
func (c *CommerceClient) GetCart(ctx context.Context, token string) (*models.CartResponse, error) {
	var out models.CartResponse
	err := c.call(ctx, http.MethodGet, "/cart", nil, token, nil, &out)
	if IsNotFound(err) {
		return &models.CartResponse{Status: "success"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CommerceClient) UpdateCartItem(ctx context.Context, token, itemID string, count int) (*models.CartResponse, error) {
	var out models.CartResponse
	return &out, c.call(ctx, http.MethodPut, "/cart/"+url.PathEscape(itemID), nil, token, models.UpdateCartItemRequest{Count: count}, &out)
}

func (c *CommerceClient) RemoveCartItem(ctx context.Context, token, itemID string) (*models.CartResponse, error) {
	var out models.CartResponse
	return &out, c.call(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, token, nil, &out)
}

func (c *CommerceClient) ClearCart(ctx context.Context, token string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	return &out, c.call(ctx, http.MethodDelete, "/cart", nil, token, nil, &out)
}

// Wishlist

func (c *CommerceClient) AddToWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error) {
	var out models.WishlistMutation
	return &out, c.call(ctx, http.MethodPost, "/wishlist", nil, token, models.AddToCartRequest{ProductID: productID}, &out)
}

func (c *CommerceClient) GetWishlist(ctx context.Context, token string) (*models.WishlistResponse, error) {
	var out models.WishlistResponse
	return &out, c.call(ctx, http.MethodGet, "/wishlist", nil, token, nil, &out)
}

func (c *CommerceClient) RemoveFromWishlist(ctx context.Context, token, productID string) (*models.WishlistMutation, error) {
	var out models.WishlistMutation
	return &out, c.call(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), nil, token, nil, &out)
}

// Auth

func (c *CommerceClient) SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	return &out, c.call(ctx, http.MethodPost, "/auth/signin", nil, "", models.SignInRequest{Email: email, Password: password}, &out)
}

func (c *CommerceClient) SignUp(ctx context.Context, req models.SignUpRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	return &out, c.call(ctx, http.MethodPost, "/auth/signup", nil, "", req, &out)
}

func (c *CommerceClient) ForgotPassword(ctx context.Context, email string) (*models.StatusResponse, error) {
	var out models.StatusResponse
	return &out, c.call(ctx, http.MethodPost, "/auth/forgotPasswords", nil, "", map[string]string{"email": email}, &out)
}

func (c *CommerceClient) VerifyResetCode(ctx context.Context, code string) (*models.StatusResponse, error) {
	var out models.StatusResponse
	return &out, c.call(ctx, http.MethodPost, "/auth/verifyResetCode", nil, "", map[string]string{"resetCode": code}, &out)
}

func (c *CommerceClient) ResetPassword(ctx context.Context, email, newPassword string) (*models.ResetPasswordResponse, error) {
	var out models.ResetPasswordResponse
	body := map[string]string{"email": email, "newPassword": newPassword}
	return &out, c.call(ctx, http.MethodPut, "/auth/resetPassword", nil, "", body, &out)
}

// Account

func (c *CommerceClient) UpdateMe(ctx context.Context, token string, req models.UpdateUserRequest) (*models.UpdateUserResponse, error) {
	var out models.UpdateUserResponse
	return &out, c.call(ctx, http.MethodPut, "/users/updateMe/", nil, token, req, &out)
}

func (c *CommerceClient) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (*models.ChangePasswordResponse, error) {
	var out models.ChangePasswordResponse
	return &out, c.call(ctx, http.MethodPut, "/users/changeMyPassword", nil, token, req, &out)
}

// Orders

func (c *CommerceClient) CreateCheckoutSession(ctx context.Context, token, cartID string, addr models.ShippingAddress, returnURL string) (*models.CheckoutSessionResponse, error) {
	var out models.CheckoutSessionResponse
	q := url.Values{"url": {returnURL}}
	body := models.CheckoutSessionRequest{ShippingAddress: addr}
	return &out, c.call(ctx, http.MethodPost, "/orders/checkout-session/"+url.PathEscape(cartID), q, token, body, &out)
}

func (c *CommerceClient) GetUserOrders(ctx context.Context, token, owner string) ([]models.Order, error) {
	b, err := c.raw(ctx, http.MethodGet, "/orders/user/"+url.PathEscape(owner), nil, token, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeOrders(b)
}

// Addresses

func (c *CommerceClient) AddAddress(ctx context.Context, token string, addr models.AddressForm) (*models.AddressResponse, error) {
	var out models.AddressResponse
	return &out, c.call(ctx, http.MethodPost, "/addresses", nil, token, addr, &out)
}

func (c *CommerceClient) RemoveAddress(ctx context.Context, token, id string) (*models.AddressResponse, error) {
	var out models.AddressResponse
	return &out, c.call(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(id), nil, token, nil, &out)
}

func (c *CommerceClient) GetAddresses(ctx context.Context, token string) (*models.AddressResponse, error) {
	var out models.AddressResponse
	return &out, c.call(ctx, http.MethodGet, "/addresses", nil, token, nil, &out)
}
