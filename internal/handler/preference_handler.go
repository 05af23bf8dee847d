package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/pkg/response"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// PreferenceHandler toggles the viewer's theme.
type PreferenceHandler struct {
	service themeService
	cookie  string
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(svc themeService, cookie string) *PreferenceHandler {
	if cookie == "" {
		cookie = "theme"
	}
	return &PreferenceHandler{service: svc, cookie: cookie}
}

// ToggleTheme godoc
// @Summary Toggle light/dark theme
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences/theme [post]
func (h *PreferenceHandler) ToggleTheme(c *gin.Context) {
	current, _ := c.Cookie(h.cookie)
	theme := h.service.ToggleTheme(c.Request.Context(), viewerFromContext(c), current)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie, string(theme), themeCookieMaxAge, "/", "", false, false)
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, gin.H{"theme": theme, "body_class": theme.BodyClass()})
		return
	}
	c.Redirect(http.StatusSeeOther, backTo(c, "/calendar"))
}
