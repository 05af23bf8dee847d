package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

// DialogHandler resolves confirm dialogs.
type DialogHandler struct {
	dialogs *ui.DialogRegistry
}

// NewDialogHandler constructs the handler.
func NewDialogHandler(dialogs *ui.DialogRegistry) *DialogHandler {
	return &DialogHandler{dialogs: dialogs}
}

// Resolve godoc
// @Summary Answer a confirm dialog
// @Description Runs the pending action when confirmed; anything but confirmed=true cancels.
// @Tags Dialogs
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Dialog ID"
// @Param confirmed formData bool true "User choice"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /dialogs/{id} [post]
func (h *DialogHandler) Resolve(c *gin.Context) {
	id := c.Param("id")
	dialog, ok := h.dialogs.Get(id)
	if !ok || dialog.Owner != toastKey(viewerFromContext(c)) {
		if wantsJSON(c) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "dialog not found"))
			return
		}
		c.Redirect(http.StatusSeeOther, backTo(c, "/calendar"))
		return
	}

	confirmed, _ := strconv.ParseBool(c.PostForm("confirmed"))
	h.dialogs.Resolve(id, confirmed)

	if wantsJSON(c) {
		response.NoContent(c)
		return
	}
	target := dialog.Action
	if !confirmed || target == "" {
		target = backTo(c, "/calendar")
	}
	c.Redirect(http.StatusSeeOther, target)
}
