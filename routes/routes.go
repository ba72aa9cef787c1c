package routes

import (
	"storefront-service/common/middleware"
	"storefront-service/controllers"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every page and action handler.
type Controllers struct {
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Auth     *controllers.AuthController
	Account  *controllers.AccountController
	Checkout *controllers.CheckoutController
}

// RegisterRoutes sets up pages and form actions. Browsers post forms, so every mutation has
// a POST route; JSON clients may use the matching PUT and DELETE routes.
func RegisterRoutes(r gin.IRouter, ctl Controllers, authLimiter *middleware.RateLimiter) {
	// ===== CATALOG (PUBLIC) =====
	r.GET("/", ctl.Catalog.Home)
	r.GET("/products", ctl.Catalog.Products)
	r.GET("/products/:id", ctl.Catalog.Product)
	r.GET("/categories", ctl.Catalog.Categories)
	r.GET("/categories/:id", ctl.Catalog.Category)
	r.GET("/brands", ctl.Catalog.Brands)
	r.GET("/brands/:id", ctl.Catalog.Brand)

	// Product card actions stay outside /cart so anonymous visitors reach the login handoff.
	r.POST("/products/:id/cart", ctl.Cart.AddItem)
	r.POST("/products/:id/wishlist", ctl.Wishlist.Toggle)

	for _, name := range controllers.StaticPageNames() {
		r.GET("/"+name, controllers.StaticPage(name))
	}

	// ===== AUTH =====
	auth := r.Group("/auth")
	auth.GET("/login", ctl.Auth.LoginPage)
	auth.GET("/register", ctl.Auth.RegisterPage)
	auth.GET("/forgotPassword", ctl.Auth.ForgotPasswordPage)
	auth.POST("/logout", ctl.Auth.Logout)

	limited := auth.Group("/")
	limited.Use(middleware.RateLimit(authLimiter))
	limited.POST("/login", ctl.Auth.Login)
	limited.POST("/register", ctl.Auth.Register)
	limited.POST("/forgotPassword", ctl.Auth.ForgotPassword)

	// ===== CART (SESSION REQUIRED) =====
	cart := r.Group("/cart")
	cart.GET("", ctl.Cart.GetCart)
	cart.POST("/items/:id/quantity", ctl.Cart.UpdateQuantity)
	cart.PUT("/items/:id", ctl.Cart.UpdateQuantity)
	cart.POST("/items/:id/delete", ctl.Cart.RemoveItem)
	cart.DELETE("/items/:id", ctl.Cart.RemoveItem)
	cart.POST("/clear", ctl.Cart.ClearCart)
	cart.DELETE("", ctl.Cart.ClearCart)

	// ===== WISHLIST (SESSION REQUIRED) =====
	wishlist := r.Group("/wishlist")
	wishlist.GET("", ctl.Wishlist.GetWishlist)
	wishlist.POST("/:id/delete", ctl.Wishlist.Remove)
	wishlist.DELETE("/:id", ctl.Wishlist.Remove)

	// ===== CHECKOUT & ORDERS (SESSION REQUIRED) =====
	r.GET("/checkout", ctl.Checkout.Page)
	r.POST("/checkout", ctl.Checkout.CreateSession)
	r.GET("/allorders", ctl.Account.AllOrders)
	r.GET("/viewOrders", ctl.Account.ViewOrders)

	// ===== PROFILE (SESSION REQUIRED) =====
	profile := r.Group("/profile")
	profile.GET("", ctl.Account.Profile)
	profile.POST("", ctl.Account.UpdateProfile)
	profile.POST("/password", ctl.Account.ChangePassword)
	profile.POST("/addresses", ctl.Account.AddAddress)
	profile.POST("/addresses/:id", ctl.Account.UpdateAddress)
	profile.PUT("/addresses/:id", ctl.Account.UpdateAddress)
	profile.POST("/addresses/:id/delete", ctl.Account.RemoveAddress)
	profile.DELETE("/addresses/:id", ctl.Account.RemoveAddress)
}
