package auth

import (
	"github.com/gin-gonic/gin"

	"goty/backend/pkg/session"
)

// CookieName is the session cookie holding the signed access token.
const CookieName = "goty_session"

// ContextAccessToken is the gin context key the middleware sets.
const ContextAccessToken = "accessToken"

// SessionMiddleware extracts the Discord access token from the session
// cookie and puts it on the context. It never aborts the request; pages
// simply render the logged-out view when no valid session is present.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(CookieName); err == nil {
			if tok, err := session.AccessToken(secret, cookie); err == nil {
				c.Set(ContextAccessToken, tok)
			}
		}
		c.Next()
	}
}
