package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.SessionUser {
	return models.SessionUser{
		ID:    "ahmed@example.com",
		Name:  "Ahmed",
		Email: "ahmed@example.com",
		Role:  "user",
		Token: "api-token",
	}
}

func TestSignAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, false)

	signed, err := m.Sign(testUser())
	require.NoError(t, err)

	user, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "ahmed@example.com", user.Email)
	assert.Equal(t, "api-token", user.Token)
	assert.Equal(t, "Ahmed", user.Name)
}

func TestParse_RejectsBadTokens(t *testing.T) {
	m := NewManager("secret", time.Hour, false)
	other := NewManager("other-secret", time.Hour, false)

	foreign, err := other.Sign(testUser())
	require.NoError(t, err)

	expired, err := NewManager("secret", -time.Minute, false).Sign(testUser())
	require.NoError(t, err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@b.c", "token": "t", "typ": "access",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":    "not-a-jwt",
		"foreign":    foreign,
		"expired":    expired,
		"wrong type": wrongType,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestIssueReadClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager("secret", time.Hour, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, m.Issue(c, testUser()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	c2.Request.AddCookie(cookies[0])

	user, err := m.Read(c2)
	require.NoError(t, err)
	assert.Equal(t, "ahmed@example.com", user.Email)

	m.Clear(c2)
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestRead_NoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager("secret", time.Hour, false)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := m.Read(c)
	assert.ErrorIs(t, err, ErrNoSession)
}
