package middleware

import (
	"net/http"
	"reflect"
	"time"

	"storefront-service/common/logger"
	"storefront-service/models"
	"storefront-service/services"
	"storefront-service/session"
	"storefront-service/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisitorCookie identifies the browser across requests.
const VisitorCookie = "storefront.vid"

const visitorCookieMaxAge = 365 * 24 * time.Hour

const (
	visitorIDKey       = "visitor_id"
	visitorKey         = "visitor_state"
	visitorSnapshotKey = "visitor_snapshot"
	visitorStoreKey    = "visitor_store"
	sessionUserKey     = "session_user"
)

// Visitor loads the visitor state for the request and persists it afterwards when it changed.
// Store failures are logged and the request continues with an empty state.
func Visitor(st store.VisitorStore, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(VisitorCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		// refresh the cookie so active visitors keep their id
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(VisitorCookie, id, int(visitorCookieMaxAge.Seconds()), "/", "", secure, true)

		state, err := st.Load(c.Request.Context(), id)
		if err != nil {
			logger.Warn(c, "visitor state unavailable", zap.String("visitor_id", id), zap.Error(err))
			state = &models.VisitorState{}
		}

		c.Set(visitorIDKey, id)
		c.Set(visitorKey, state)
		c.Set(visitorSnapshotKey, state.Clone())
		c.Set(visitorStoreKey, st)

		c.Next()

		SaveVisitor(c)
	}
}

// SaveVisitor persists the visitor state if it changed since it was loaded or last saved.
// Handlers call it before writing a response so a redirected browser reads fresh state.
func SaveVisitor(c *gin.Context) {
	raw, exists := c.Get(visitorStoreKey)
	st, ok := raw.(store.VisitorStore)
	if !exists || !ok {
		return
	}
	state := VisitorFrom(c)
	snapshot, _ := c.Get(visitorSnapshotKey)
	if reflect.DeepEqual(snapshot, state) {
		return
	}
	if err := st.Save(c.Request.Context(), VisitorIDFrom(c), state); err != nil {
		logger.Error(c, "visitor state not saved", err, zap.String("visitor_id", VisitorIDFrom(c)))
		return
	}
	c.Set(visitorSnapshotKey, state.Clone())
}

// VisitorFrom returns the request's visitor state. Outside the Visitor middleware it returns
// a throwaway empty state.
func VisitorFrom(c *gin.Context) *models.VisitorState {
	if v, ok := c.Get(visitorKey); ok {
		if state, ok := v.(*models.VisitorState); ok {
			return state
		}
	}
	state := &models.VisitorState{}
	c.Set(visitorKey, state)
	return state
}

func VisitorIDFrom(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}

// UserFrom returns the signed-in user, nil for anonymous visitors.
func UserFrom(c *gin.Context) *models.SessionUser {
	if v, ok := c.Get(sessionUserKey); ok {
		if user, ok := v.(*models.SessionUser); ok {
			return user
		}
	}
	return nil
}

// SetUser replaces the request's user, after sign-in or sign-out.
func SetUser(c *gin.Context, user *models.SessionUser) {
	c.Set(sessionUserKey, user)
}

// Session reads the session cookie. When the signed-in identity differs from the one the
// visitor state was last reconciled with, the cart is refreshed before the handler runs.
func Session(sessions *session.Manager, carts *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.Read(c)
		if err != nil {
			if _, cerr := c.Cookie(session.CookieName); cerr == nil {
				// stale or tampered cookie
				sessions.Clear(c)
			}
			c.Next()
			return
		}
		SetUser(c, user)

		v := VisitorFrom(c)
		if services.NeedsRefresh(v, user) {
			if _, err := carts.Refresh(c.Request.Context(), v, user); err != nil {
				logger.Warn(c, "cart refresh on identity change failed", zap.Error(err))
			}
		}
		c.Next()
	}
}
