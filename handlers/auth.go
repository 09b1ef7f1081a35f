package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gautam3767/product-catalog-backend/models"
)

// Login godoc
// @Summary Admin login
// @Description Returns a signed admin token and also sets it as an HttpOnly cookie for the admin shell.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginPayload true "Username and password"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope "Invalid username or password"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var payload models.LoginPayload
	if !bindJSON(c, &payload) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), payload)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.setSessionCookie(c, res.Token, time.Until(res.ExpiresAt))
	okMessage(c, "Logged in", res)
}

// Logout godoc
// @Summary Admin logout
// @Description Clears the admin cookie. Tokens are stateless and stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	okMessage(c, "Logged out", nil)
}

// Me godoc
// @Summary Current admin
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope "Missing or invalid token"
// @Router /admin/me [get]
func (h *Handler) Me(c *gin.Context) {
	claims := adminClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, "missing token")
		return
	}
	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	ok(c, http.StatusOK, gin.H{"username": claims.Username, "isAdmin": claims.IsAdmin, "expiresAt": expiresAt})
}

// setSessionCookie writes the admin cookie; a negative maxAge deletes it.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge time.Duration) {
	seconds := int(maxAge / time.Second)
	if maxAge < 0 {
		seconds = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(adminCookie, token, seconds, "/", "", h.SecureCookies, true)
}
