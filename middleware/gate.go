package middleware

import (
	"net/http"
	"strings"

	"storefront-service/common/errors"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

var (
	protectedPrefixes = []string{"/profile", "/cart", "/checkout", "/wishlist", "/allorders", "/viewOrders"}
	authPrefixes      = []string{"/auth/login", "/auth/register", "/auth/forgotPassword"}
)

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Gate keeps anonymous visitors out of account pages and signed-in users out of the auth
// pages. It must run after Session.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		user := UserFrom(c)

		switch {
		case user == nil && hasPrefix(path, protectedPrefixes):
			login := services.LoginURL(c.Request.URL.RequestURI())
			SaveVisitor(c)
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":    errors.ErrLoginRequired.Message,
					"redirect": login,
				})
				return
			}
			c.Redirect(http.StatusSeeOther, login)
			c.Abort()
			return
		// POSTs pass so a signed-in user can sign in as someone else
		case user != nil && hasPrefix(path, authPrefixes) && c.Request.Method == http.MethodGet:
			target := "/"
			if cb := c.Query("callbackUrl"); cb != "" {
				target = services.SafeCallback(cb)
			}
			SaveVisitor(c)
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// WantsJSON reports whether the client negotiated JSON over HTML.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
