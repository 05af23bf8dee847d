package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/middleware"
	"github.com/noah-isme/planify-web/internal/models"
)

func viewerFromContext(c *gin.Context) *models.Viewer {
	return middleware.ViewerFrom(c)
}

// toastKey is the notifier and dialog owner key of the viewer.
func toastKey(viewer *models.Viewer) string {
	if viewer == nil {
		return "anonymous"
	}
	return "user:" + strconv.FormatInt(viewer.UserID, 10)
}

func wantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") || strings.Contains(c.ContentType(), "application/json")
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// backTo returns the local path of the Referer without its dialog parameter, or fallback.
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	q := ref.Query()
	q.Del("dialog")
	if encoded := q.Encode(); encoded != "" {
		return ref.Path + "?" + encoded
	}
	return ref.Path
}

// withParam appends key=value to a local path.
func withParam(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
}
