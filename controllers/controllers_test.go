package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-service/clients"
	commonmw "storefront-service/common/middleware"
	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/session"
	"storefront-service/store"
	"storefront-service/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// ---- fake commerce API ----

type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int
	mux   *http.ServeMux
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}, mux: http.NewServeMux()}
}

// on answers pattern (a ServeMux pattern without the /api/v1 prefix) with a fixed JSON body.
func (f *fakeAPI) on(method, path string, status int, body string) {
	f.mux.HandleFunc(method+" /api/v1"+path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()
	f.mux.ServeHTTP(w, r)
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

// ---- harness ----

type harness struct {
	t        *testing.T
	api      *fakeAPI
	router   *gin.Engine
	store    *store.MemoryStore
	sessions *session.Manager
	cookies  map[string]*http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithDebounce(t, time.Millisecond)
}

func newHarnessWithDebounce(t *testing.T, debounce time.Duration) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	commerce := clients.NewCommerceClient(clients.NewAPIClient(srv.URL, time.Second), nil)
	h := &harness{
		t:        t,
		api:      api,
		store:    store.NewMemoryStore(time.Hour),
		sessions: session.NewManager("test-secret", time.Hour, false),
		cookies:  map[string]*http.Cookie{},
	}

	carts := services.NewCartService(commerce, debounce, nil)
	catalog := services.NewCatalogService(commerce, 10)
	wishlist := services.NewWishlistService(commerce)
	accounts := services.NewAccountService(commerce)
	checkout := services.NewCheckoutService(commerce, "http://shop.test", nil)

	tmpl, err := views.Load("EGP")
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	pages := r.Group("/")
	pages.Use(middleware.Visitor(h.store, false), middleware.Session(h.sessions, carts), middleware.Gate())
	r.NoRoute(middleware.Visitor(h.store, false), controllers.NotFound)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	routes.RegisterRoutes(pages, routes.Controllers{
		Catalog:  controllers.NewCatalogController(catalog, carts, wishlist),
		Cart:     controllers.NewCartController(carts),
		Wishlist: controllers.NewWishlistController(wishlist, carts),
		Auth:     controllers.NewAuthController(accounts, carts, h.sessions),
		Account:  controllers.NewAccountController(accounts, carts, h.sessions),
		Checkout: controllers.NewCheckoutController(checkout, accounts),
	}, commonmw.NewRateLimiter(ctx, rate.Inf, 1, time.Minute))

	h.router = r
	return h
}

func (h *harness) signIn(email string) {
	signed, err := h.sessions.Sign(models.SessionUser{ID: email, Name: "Test", Email: email, Token: "tok"})
	require.NoError(h.t, err)
	h.cookies[session.CookieName] = &http.Cookie{Name: session.CookieName, Value: signed}
}

// request builds a request carrying the cookies collected so far, like a browser would.
func (h *harness) request(method, path string, form url.Values, header map[string]string) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, c := range h.cookies {
		req.AddCookie(c)
	}
	return req
}

func (h *harness) do(method, path string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	req := h.request(method, path, form, header)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c
	}
	return w
}

func (h *harness) doJSON(method, path string, form url.Values) *httptest.ResponseRecorder {
	return h.do(method, path, form, map[string]string{"Accept": "application/json"})
}

func (h *harness) visitor() *models.VisitorState {
	c, ok := h.cookies[middleware.VisitorCookie]
	require.True(h.t, ok, "no visitor cookie yet")
	state, err := h.store.Load(context.Background(), c.Value)
	require.NoError(h.t, err)
	return state
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

const (
	productsJSON = `{"results":1,"metadata":{"currentPage":1,"numberOfPages":2,"limit":10},"data":[{"_id":"p1","title":"Linen Shirt","price":450,"quantity":5,"imageCover":"https://img.test/p1.jpg","ratingsAverage":4.5}]}`
	categoriesJSON = `{"results":1,"data":[{"_id":"c1","name":"Men's Fashion","slug":"mens-fashion","image":"https://img.test/c1.jpg"}]}`
	emptyCartJSON  = `{"status":"success","numOfCartItems":0,"cartId":"cart-1","data":{"_id":"cart-1","cartOwner":"owner-1","products":[],"totalCartPrice":0}}`
	cartJSON       = `{"status":"success","numOfCartItems":1,"cartId":"cart-1","data":{"_id":"cart-1","cartOwner":"owner-1","products":[{"count":2,"_id":"l1","price":450,"product":{"_id":"p1","title":"Linen Shirt"}}],"totalCartPrice":900}}`
	addedJSON      = `{"status":"success","message":"Product added successfully to your cart","numOfCartItems":1,"cartId":"cart-1","data":{"cartOwner":"owner-1","products":[{"count":1,"product":"p1","price":450}]}}`
	wishlistJSON   = `{"status":"success","count":0,"data":[]}`
)

// ---- catalog ----

func TestHome_RendersProductsAndCategories(t *testing.T) {
	h := newHarness(t)
	h.api.on("GET", "/products", http.StatusOK, productsJSON)
	h.api.on("GET", "/categories", http.StatusOK, categoriesJSON)

	w := h.do(http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Linen Shirt")
	assert.Contains(t, w.Body.String(), "Men&#39;s Fashion")
}

func TestProducts_JSONPageModel(t *testing.T) {
	h := newHarness(t)
	h.api.on("GET", "/products", http.StatusOK, productsJSON)

	w := h.doJSON(http.MethodGet, "/products?page=1&view=list", nil)
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[struct {
		Title string `json:"title"`
		Data  struct {
			Products []models.Product `json:"products"`
			View     string           `json:"view"`
			Metadata models.Metadata  `json:"metadata"`
		} `json:"data"`
	}](t, w)
	assert.Equal(t, "Products", page.Title)
	assert.Equal(t, "list", page.Data.View)
	assert.Equal(t, 2, page.Data.Metadata.NumberOfPages)
	require.Len(t, page.Data.Products, 1)
	assert.Equal(t, "p1", page.Data.Products[0].ID)
}

func TestProduct_UpstreamNotFound(t *testing.T) {
	h := newHarness(t)
	h.api.on("GET", "/products/{id}", http.StatusNotFound, `{"message":"No product for this id"}`)

	w := h.do(http.MethodGet, "/products/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No product for this id")
}

func TestStaticPagesAndNotFound(t *testing.T) {
	h := newHarness(t)

	for _, name := range controllers.StaticPageNames() {
		w := h.do(http.MethodGet, "/"+name, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, name)
	}

	w := h.do(http.MethodGet, "/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ---- pending cart item handoff ----

func TestAddToCart_AnonymousThenLoginResumes(t *testing.T) {
	h := newHarness(t)
	h.api.on("POST", "/auth/signin", http.StatusOK, `{"message":"success","user":{"name":"Mona","email":"mona@example.com","role":"user"},"token":"api-tok"}`)
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)
	h.api.on("POST", "/cart", http.StatusOK, addedJSON)

	w := h.do(http.MethodPost, "/products/p1/cart", url.Values{"return_to": {"/products/p1"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login?callbackUrl=%2Fproducts%2Fp1", w.Header().Get("Location"))
	assert.Equal(t, "p1", h.visitor().PendingCartItem)
	assert.Equal(t, 0, h.api.count("POST /api/v1/cart"))

	w = h.do(http.MethodPost, "/auth/login", url.Values{
		"email":       {"mona@example.com"},
		"password":    {"Secret123"},
		"callbackUrl": {"/products/p1"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/products/p1", w.Header().Get("Location"))
	assert.Contains(t, h.cookies, session.CookieName)

	state := h.visitor()
	assert.Empty(t, state.PendingCartItem)
	assert.Equal(t, 1, state.CartCount)
	assert.Equal(t, "owner-1", state.CartOwner)
	assert.Equal(t, "mona@example.com", state.Email)
	require.NotEmpty(t, state.Flashes)
	assert.Equal(t, services.MsgPendingAdded+"Product added successfully to your cart", state.Flashes[len(state.Flashes)-1].Message)
	assert.Equal(t, 1, h.api.count("POST /api/v1/cart"))
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t)
	h.api.on("POST", "/auth/signin", http.StatusUnauthorized, `{"message":"Incorrect email or password","statusMsg":"fail"}`)

	w := h.do(http.MethodPost, "/auth/login", url.Values{"email": {"a@b.co"}, "password": {"nope"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "password or email is incorrect, try again")
	assert.NotContains(t, h.cookies, session.CookieName)
}

func TestLogin_MissingFieldsNeverCallAPI(t *testing.T) {
	h := newHarness(t)

	w := h.doJSON(http.MethodPost, "/auth/login", url.Values{"email": {""}, "password": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email is required")
	assert.Equal(t, 0, h.api.count("POST /api/v1/auth/signin"))
}

func TestLogout_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)

	w := h.do(http.MethodPost, "/auth/logout", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, h.cookies, session.CookieName)
}

// ---- cart ----

func TestCartPage_RefreshesCount(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)

	w := h.doJSON(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	page := decode[struct {
		CartCount int `json:"cartCount"`
		Data      struct {
			ItemCount int     `json:"itemCount"`
			Total     float64 `json:"total"`
		} `json:"data"`
	}](t, w)
	assert.Equal(t, 1, page.CartCount)
	assert.Equal(t, 2, page.Data.ItemCount)
	assert.Equal(t, 900.0, page.Data.Total)
	assert.Equal(t, "owner-1", h.visitor().CartOwner)
}

func TestUpdateQuantity(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)
	h.api.on("PUT", "/cart/{id}", http.StatusOK, strings.Replace(cartJSON, `"numOfCartItems":1`, `"numOfCartItems":3`, 1))

	w := h.doJSON(http.MethodPost, "/cart/items/p1/quantity", url.Values{"count": {"3"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[controllers.ActionResult](t, w)
	assert.Equal(t, 3, res.CartCount)
	assert.Equal(t, "/cart", res.Redirect)
	assert.Equal(t, 1, h.api.count("PUT /api/v1/cart/p1"))

	w = h.doJSON(http.MethodPost, "/cart/items/p1/quantity", url.Values{"count": {"0"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, h.api.count("PUT /api/v1/cart/p1"))
}

func TestUpdateQuantity_BurstAnswersSuperseded(t *testing.T) {
	h := newHarnessWithDebounce(t, 100*time.Millisecond)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)
	h.api.on("PUT", "/cart/{id}", http.StatusOK, strings.Replace(cartJSON, `"numOfCartItems":1`, `"numOfCartItems":4`, 1))

	// first page load settles the visitor cookie and identity
	require.Equal(t, http.StatusOK, h.doJSON(http.MethodGet, "/cart", nil).Code)

	accept := map[string]string{"Accept": "application/json"}
	recorders := []*httptest.ResponseRecorder{httptest.NewRecorder(), httptest.NewRecorder()}
	var wg sync.WaitGroup
	for i, count := range []string{"2", "4"} {
		req := h.request(http.MethodPost, "/cart/items/p1/quantity", url.Values{"count": {count}}, accept)
		wg.Add(1)
		go func(w *httptest.ResponseRecorder) {
			defer wg.Done()
			h.router.ServeHTTP(w, req)
		}(recorders[i])
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	older, newer := recorders[0], recorders[1]
	require.Equal(t, http.StatusAccepted, older.Code, older.Body.String())
	assert.Equal(t, true, decode[map[string]any](t, older)["superseded"])

	require.Equal(t, http.StatusOK, newer.Code, newer.Body.String())
	assert.Equal(t, 4, decode[controllers.ActionResult](t, newer).CartCount)
	assert.Equal(t, 1, h.api.count("PUT /api/v1/cart/p1"))
}

func TestRemoveAndClear(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)
	h.api.on("DELETE", "/cart/{id}", http.StatusOK, emptyCartJSON)
	h.api.on("DELETE", "/cart", http.StatusOK, `{"message":"success"}`)

	w := h.do(http.MethodPost, "/cart/items/p1/delete", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
	assert.Equal(t, 0, h.visitor().CartCount)

	w = h.doJSON(http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[controllers.ActionResult](t, w)
	assert.Equal(t, 0, res.CartCount)
	require.NotEmpty(t, res.Toasts)
	assert.Equal(t, services.MsgCartCleared, res.Toasts[len(res.Toasts)-1].Message)
}

// ---- checkout ----

func TestCheckoutPage_RequiresCartReferer(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)
	h.api.on("GET", "/addresses", http.StatusOK, `{"status":"success","data":[{"_id":"a1","name":"Home","details":"1 Nile St","phone":"01000000000","city":"Cairo"}]}`)

	w := h.do(http.MethodGet, "/checkout", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))

	w = h.do(http.MethodGet, "/checkout", nil, map[string]string{"Referer": "http://example.com/cart"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "1 Nile St")
}

func TestCheckout_RedirectsToPaymentSession(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, cartJSON)
	h.api.on("POST", "/orders/checkout-session/{id}", http.StatusOK, `{"status":"success","session":{"url":"https://pay.test/s/1"}}`)

	w := h.do(http.MethodPost, "/checkout", url.Values{"details": {"1 Nile St"}, "phone": {"01000000000"}, "city": {"Cairo"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "https://pay.test/s/1", w.Header().Get("Location"))
	assert.Equal(t, 1, h.api.count("POST /api/v1/orders/checkout-session/cart-1"))
}

// ---- account ----

func TestForgotPassword_Steps(t *testing.T) {
	h := newHarness(t)
	h.api.on("POST", "/auth/forgotPasswords", http.StatusOK, `{"statusMsg":"success","message":"Reset code sent to your email"}`)
	h.api.on("POST", "/auth/verifyResetCode", http.StatusOK, `{"status":"Success"}`)
	h.api.on("PUT", "/auth/resetPassword", http.StatusOK, `{"token":"new-token"}`)

	w := h.doJSON(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"email"}, "email": {"not-an-email"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email address")

	w = h.do(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"email"}, "email": {"mona@example.com"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "code", h.visitor().ResetStep())

	w = h.doJSON(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"code"}, "resetCode": {"12ab56"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Reset code must contain only numbers")

	w = h.do(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"code"}, "resetCode": {"123456"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "password", h.visitor().ResetStep())

	w = h.doJSON(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"password"}, "password": {"lowercase1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one uppercase letter")

	w = h.do(http.MethodPost, "/auth/forgotPassword", url.Values{"step": {"password"}, "password": {"Newpass123"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.Equal(t, "email", h.visitor().ResetStep())
}

func TestRegister_SurfacesAPIMessage(t *testing.T) {
	h := newHarness(t)
	h.api.on("POST", "/auth/signup", http.StatusConflict, `{"message":"fail","errors":{"msg":"Account Already Exists"}}`)

	w := h.doJSON(http.MethodPost, "/auth/register", url.Values{
		"name": {"Mona"}, "email": {"mona@example.com"}, "password": {"Secret123"},
		"rePassword": {"Secret123"}, "phone": {"01000000000"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Account Already Exists")
}

func TestUpdateProfile_EndsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)
	h.api.on("PUT", "/users/updateMe/", http.StatusOK, `{"message":"success","user":{"name":"Mona S","email":"mona@example.com","role":"user"}}`)

	w := h.do(http.MethodPost, "/profile", url.Values{"name": {"Mona S"}, "email": {"mona@example.com"}}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.NotContains(t, h.cookies, session.CookieName)
}

func TestUpdateProfile_NoChanges(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)

	w := h.doJSON(http.MethodPost, "/profile", url.Values{"name": {"Test"}, "email": {"mona@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No changes made")
	assert.Contains(t, h.cookies, session.CookieName)
}

func TestViewOrders_UsesCartOwner(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)
	h.api.on("GET", "/orders/user/{owner}", http.StatusOK, `[{"_id":"o1","id":17,"totalOrderPrice":900,"createdAt":"2024-05-01T10:00:00.000Z"}]`)

	w := h.doJSON(http.MethodGet, "/viewOrders", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[struct {
		Data struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}](t, w)
	require.Len(t, page.Data.Orders, 1)
	assert.Equal(t, 17, page.Data.Orders[0].ID)
	assert.Equal(t, 1, h.api.count("GET /api/v1/orders/user/owner-1"))
}

// ---- wishlist ----

func TestWishlistToggle_AnonymousGoesToLogin(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/products/p1/wishlist", url.Values{}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login?callbackUrl=%2Fproducts%2Fp1", w.Header().Get("Location"))
}

func TestWishlistToggle_Adds(t *testing.T) {
	h := newHarness(t)
	h.signIn("mona@example.com")
	h.api.on("GET", "/cart", http.StatusOK, emptyCartJSON)
	h.api.on("GET", "/wishlist", http.StatusOK, wishlistJSON)
	h.api.on("POST", "/wishlist", http.StatusOK, `{"status":"success","message":"Product added successfully to your wishlist","data":["p1"]}`)

	w := h.doJSON(http.MethodPost, "/products/p1/wishlist", url.Values{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[controllers.ActionResult](t, w)
	assert.Equal(t, map[string]any{"inWishlist": true}, res.Data)
	require.NotEmpty(t, res.Toasts)
	assert.Equal(t, services.MsgWishlistAdded, res.Toasts[0].Message)
}
