package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Gautam3767/product-catalog-backend/services"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// cookieTokenStore is the services.TokenStore behind the admin shell.
type cookieTokenStore struct {
	h *Handler
	c *gin.Context
}

func (s cookieTokenStore) Load() (string, bool) {
	token, err := s.c.Cookie(adminCookie)
	return token, err == nil && token != ""
}

func (s cookieTokenStore) Clear() {
	s.h.setSessionCookie(s.c, "", -1)
}

// AdminShell renders the back-office shell when the stored token looks like
// an unexpired admin token, and redirects to the login page otherwise. The
// check is not authorisation; every API call behind the shell is verified.
func (h *Handler) AdminShell(c *gin.Context) {
	s := h.Guard.Check(cookieTokenStore{h: h, c: c})
	if s.State != services.SessionAuthorized {
		h.Log.WithFields(logrus.Fields{"reason": s.Reason, "path": c.Request.URL.Path}).Debug("Admin shell redirect")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Username":  s.Username,
		"ExpiresAt": s.ExpiresAt,
	})
}

// AdminLogin renders the login form.
func (h *Handler) AdminLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}
