package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/pkg/backend"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

// ContextViewerKey is the gin context key storing the signed-in viewer.
const ContextViewerKey = "currentViewer"

// TokenValidator turns a session token into a viewer.
type TokenValidator interface {
	ValidateToken(token string) (*models.Viewer, error)
}

// SessionConfig names where the session token is read from and where pages
// redirect when it is missing.
type SessionConfig struct {
	CookieName string
	LoginURL   string
}

// JWT protects routes by requiring a valid session token, read from the session
// cookie or an Authorization bearer header. Browser page loads without a session
// are redirected to the login page; everything else gets a 401 envelope.
func JWT(auth TokenValidator, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cfg.CookieName)
		if token == "" {
			reject(c, cfg, appErrors.ErrUnauthorized)
			return
		}

		viewer, err := auth.ValidateToken(token)
		if err != nil {
			reject(c, cfg, err)
			return
		}

		attach(c, viewer)
		c.Next()
	}
}

// OptionalJWT attaches the viewer when a valid token is present but does not block.
func OptionalJWT(auth TokenValidator, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cfg.CookieName)
		if token == "" {
			c.Next()
			return
		}

		viewer, err := auth.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		attach(c, viewer)
		c.Next()
	}
}

// ViewerFrom returns the viewer stored by JWT, or nil.
func ViewerFrom(c *gin.Context) *models.Viewer {
	value, exists := c.Get(ContextViewerKey)
	if !exists {
		return nil
	}
	viewer, _ := value.(*models.Viewer)
	return viewer
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookieName == "" {
		return ""
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// attach stores the viewer and forwards its token on backend calls made with the request context.
func attach(c *gin.Context, viewer *models.Viewer) {
	c.Set(ContextViewerKey, viewer)
	c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), viewer.Token))
}

func reject(c *gin.Context, cfg SessionConfig, err error) {
	if cfg.LoginURL != "" && c.Request.Method == http.MethodGet && wantsHTML(c) {
		c.Redirect(http.StatusSeeOther, cfg.LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	response.Error(c, err)
	c.Abort()
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
