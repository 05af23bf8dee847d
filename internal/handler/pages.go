package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

type pageRenderer interface {
	Page(name string, data render.Layout) ([]byte, error)
	Fragment(name string, data interface{}) ([]byte, error)
}

type themeService interface {
	Theme(ctx context.Context, viewer *models.Viewer, cookie string) ui.Theme
	ToggleTheme(ctx context.Context, viewer *models.Viewer, cookie string) ui.Theme
}

// Pages holds what every HTML handler shares: the renderer, the toast queue,
// open confirm dialogs and the viewer's theme.
type Pages struct {
	renderer    pageRenderer
	notifier    *ui.Notifier
	dialogs     *ui.DialogRegistry
	submitter   *ui.Submitter
	themes      themeService
	themeCookie string
	logger      *zap.Logger
}

// NewPages constructs the shared page state.
func NewPages(renderer pageRenderer, notifier *ui.Notifier, dialogs *ui.DialogRegistry, themes themeService, themeCookie string, logger *zap.Logger) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	if themeCookie == "" {
		themeCookie = ui.ThemeKey
	}
	return &Pages{
		renderer:    renderer,
		notifier:    notifier,
		dialogs:     dialogs,
		submitter:   ui.NewSubmitter(notifier, logger),
		themes:      themes,
		themeCookie: themeCookie,
		logger:      logger,
	}
}

func (p *Pages) theme(c *gin.Context, viewer *models.Viewer) ui.Theme {
	cookie, _ := c.Cookie(p.themeCookie)
	if p.themes == nil {
		return ui.ParseTheme(cookie)
	}
	return p.themes.Theme(c.Request.Context(), viewer, cookie)
}

// render writes a full page, draining the viewer's toasts and showing the dialog
// named by the "dialog" query parameter when the viewer owns it.
func (p *Pages) render(c *gin.Context, status int, name, title, nav string, page interface{}) {
	viewer := viewerFromContext(c)
	key := toastKey(viewer)
	layout := render.Layout{
		Title:  title,
		Nav:    nav,
		Viewer: viewer,
		Theme:  p.theme(c, viewer),
		Toasts: p.notifier.Drain(key),
		Page:   page,
	}
	if id := c.Query("dialog"); id != "" {
		if d, ok := p.dialogs.Get(id); ok && d.Owner == key {
			layout.Dialog = &d
		}
	}

	body, err := p.renderer.Page(name, layout)
	if err != nil {
		p.logger.Error("render page failed", zap.String("page", name), zap.Error(err))
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.HTML(c, status, body)
}

func (p *Pages) fragment(c *gin.Context, name string, data interface{}) {
	body, err := p.renderer.Fragment(name, data)
	if err != nil {
		p.logger.Error("render fragment failed", zap.String("fragment", name), zap.Error(err))
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.HTML(c, http.StatusOK, body)
}

func (p *Pages) toast(c *gin.Context, message string, kind ui.ToastType) {
	p.notifier.Show(toastKey(viewerFromContext(c)), message, kind)
}

// fail logs err and queues the generic error toast for the viewer.
func (p *Pages) fail(c *gin.Context, msg string, err error) {
	p.logger.Warn(msg, zap.Error(err), zap.String("path", c.Request.URL.Path))
	p.notifier.Error(toastKey(viewerFromContext(c)))
}

// failOrRedirect answers JSON clients with the error envelope and sends browsers
// to redirect with the error toast queued.
func (p *Pages) failOrRedirect(c *gin.Context, msg string, err error, redirect string) {
	if wantsJSON(c) {
		response.Error(c, err)
		return
	}
	p.fail(c, msg, err)
	c.Redirect(http.StatusSeeOther, redirect)
}

// submit runs fn with the form button in its loading state. Failures are
// logged and toasted by the submitter.
func (p *Pages) submit(c *gin.Context, label string, fn func(ctx context.Context) error) error {
	return p.submitter.Submit(c.Request.Context(), toastKey(viewerFromContext(c)), ui.NewSubmitButton(label), fn)
}

// confirm opens a confirm dialog owned by the viewer and redirects back to the
// current page with it displayed. onConfirm runs when the dialog is confirmed;
// success is toasted with done; a rejected action shows the backend's
// reason, any other failure the generic error. After the
// dialog resolves the browser goes to next.
func (p *Pages) confirm(c *gin.Context, back, next, done string, onConfirm func(ctx context.Context) error) {
	viewer := viewerFromContext(c)
	key := toastKey(viewer)
	ctx := context.WithoutCancel(c.Request.Context())

	d := p.dialogs.Open(ui.DefaultConfirmMessage, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := onConfirm(ctx); err != nil {
			p.logger.Warn("confirmed action failed", zap.String("owner", key), zap.Error(err))
			if appErr := appErrors.FromError(err); appErr.Status == http.StatusBadRequest {
				p.notifier.Show(key, appErr.Message, ui.ToastError)
				return
			}
			p.notifier.Error(key)
			return
		}
		p.notifier.Show(key, done, ui.ToastSuccess)
	}, ui.WithOwner(key), ui.WithAction(next))

	c.Redirect(http.StatusSeeOther, withParam(back, "dialog", d.ID))
}
