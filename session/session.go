package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// CookieName is the session cookie carrying the signed session user.
const CookieName = "storefront.session"

const tokenType = "session"

// ErrNoSession is returned when the request carries no usable session.
var ErrNoSession = errors.New("no session")

// Manager issues and validates the session cookie.
type Manager struct {
	secretKey []byte
	maxAge    time.Duration
	secure    bool
}

// NewManager panics on an empty secret: the storefront cannot sign sessions without one.
func NewManager(secret string, maxAge time.Duration, secure bool) *Manager {
	if secret == "" {
		panic("session secret not set")
	}
	return &Manager{secretKey: []byte(secret), maxAge: maxAge, secure: secure}
}

// Sign encodes user as an HS256 token valid for the manager's max age.
func (m *Manager) Sign(user models.SessionUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
		"token": user.Token,
		"typ":   tokenType,
		"iat":   now.Unix(),
		"exp":   now.Add(m.maxAge).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Parse validates a token produced by Sign.
func (m *Manager) Parse(tokenStr string) (*models.SessionUser, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	if typ, _ := claims["typ"].(string); typ != tokenType {
		return nil, ErrNoSession
	}

	user := &models.SessionUser{
		ID:    stringClaim(claims, "sub"),
		Name:  stringClaim(claims, "name"),
		Email: stringClaim(claims, "email"),
		Phone: stringClaim(claims, "phone"),
		Role:  stringClaim(claims, "role"),
		Token: stringClaim(claims, "token"),
	}
	if user.Email == "" || user.Token == "" {
		return nil, ErrNoSession
	}
	return user, nil
}

// Issue signs user and sets the session cookie.
func (m *Manager) Issue(c *gin.Context, user models.SessionUser) error {
	signed, err := m.Sign(user)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, signed, int(m.maxAge.Seconds()), "/", "", m.secure, true)
	return nil
}

// Read returns the session user of the request, or ErrNoSession.
func (m *Manager) Read(c *gin.Context) (*models.SessionUser, error) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}
	return m.Parse(raw)
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
