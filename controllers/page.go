package controllers

import (
	"net/http"
	"net/url"

	"storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageData is the model every page renders with, as HTML or as JSON.
type PageData struct {
	Title     string              `json:"title"`
	User      *models.SessionUser `json:"user,omitempty"`
	CartCount int                 `json:"cartCount"`
	Toasts    []models.Flash      `json:"toasts,omitempty"`
	Data      any                 `json:"data,omitempty"`
}

// ActionResult answers a form action for JSON clients. HTML clients get a 303 instead.
type ActionResult struct {
	Toasts    []models.Flash `json:"toasts,omitempty"`
	Redirect  string         `json:"redirect,omitempty"`
	CartCount int            `json:"cartCount"`
	Data      any            `json:"data,omitempty"`
}

type errorView struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newPage(c *gin.Context, title string, data any) PageData {
	v := middleware.VisitorFrom(c)
	user := middleware.UserFrom(c)

	p := PageData{Title: title, User: user, Toasts: v.PopFlashes(), Data: data}
	if user != nil {
		p.CartCount = v.CartCount
	}
	return p
}

// render writes a page, negotiating HTML or JSON. Pending toasts are consumed.
func render(c *gin.Context, status int, name, title string, data any) {
	p := newPage(c, title, data)
	middleware.SaveVisitor(c)
	c.Negotiate(status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: name,
		HTMLData: p,
		JSONData: p,
	})
}

// renderError renders err as an error page with the status it carries.
func renderError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Wrap(errors.ErrInternalServer, err)
	}
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "page failed", err, zap.String("path", c.Request.URL.Path))
	}
	_ = c.Error(err)
	render(c, appErr.Code, "error.html", http.StatusText(appErr.Code), errorView{Code: appErr.Code, Message: appErr.Message})
}

// respond finishes a form action: a 303 to redirect for browsers, an ActionResult for JSON.
func respond(c *gin.Context, status int, redirect string, data any) {
	v := middleware.VisitorFrom(c)
	if middleware.WantsJSON(c) {
		res := ActionResult{Toasts: v.PopFlashes(), Redirect: redirect, Data: data}
		if middleware.UserFrom(c) != nil {
			res.CartCount = v.CartCount
		}
		middleware.SaveVisitor(c)
		c.JSON(status, res)
		return
	}
	middleware.SaveVisitor(c)
	c.Redirect(http.StatusSeeOther, redirect)
}

// actionFailed finishes a failed form action. Services already queued the toast.
func actionFailed(c *gin.Context, err error, redirect string) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Wrap(errors.ErrInternalServer, err)
	}
	_ = c.Error(err)
	respond(c, appErr.Code, redirect, gin.H{"error": appErr.Message})
}

// returnPath picks where an action sends the browser back to: the form's return_to, then a
// same-host referer, then fallback.
func returnPath(c *gin.Context, fallback string) string {
	if p := c.PostForm("return_to"); isLocalPath(p) {
		return p
	}
	if ref := c.Request.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Host == c.Request.Host && isLocalPath(u.RequestURI()) {
			return u.RequestURI()
		}
	}
	return fallback
}

func isLocalPath(p string) bool {
	return p != "" && services.SafeCallback(p) == p
}

// NotFound renders the 404 page for unknown paths.
func NotFound(c *gin.Context) {
	renderError(c, errors.ErrNotFound)
}
