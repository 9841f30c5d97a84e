package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goty/backend/internal/auth"
	"goty/backend/pkg/session"
)

// Callback handles the OAuth redirect from Discord: it exchanges the code
// for an access token, wraps it in a signed session cookie, and sends the
// user home.
func (a *API) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Missing code parameter from Discord")
		return
	}

	accessToken, err := a.Discord.Exchange(c.Request.Context(), code)
	if err != nil {
		c.String(http.StatusUnauthorized, "Discord login failed: %v", err)
		return
	}

	token, err := session.Issue(a.Config.SecretKey, accessToken)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.SetCookie(auth.CookieName, token, int(session.TTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie.
func (a *API) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
