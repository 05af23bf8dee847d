package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

type preferenceRepository interface {
	Get(ctx context.Context, userID int64, name string) (string, error)
	Set(ctx context.Context, userID int64, name, value string) error
}

// PreferenceService persists the theme per viewer. The cookie value sent by the
// browser is used when the store has nothing.
type PreferenceService struct {
	repo   preferenceRepository
	logger *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(repo preferenceRepository, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, logger: logger}
}

// Theme returns the viewer's theme.
func (s *PreferenceService) Theme(ctx context.Context, viewer *models.Viewer, cookie string) ui.Theme {
	return ui.CurrentTheme(s.store(ctx, viewer, cookie))
}

// ToggleTheme flips and persists the viewer's theme.
func (s *PreferenceService) ToggleTheme(ctx context.Context, viewer *models.Viewer, cookie string) ui.Theme {
	return ui.ToggleTheme(s.store(ctx, viewer, cookie))
}

func (s *PreferenceService) store(ctx context.Context, viewer *models.Viewer, cookie string) ui.Store {
	return &viewerStore{ctx: ctx, svc: s, viewer: viewer, fallback: map[string]string{ui.ThemeKey: cookie}}
}

// viewerStore adapts the preference repository to ui.Store for one request.
type viewerStore struct {
	ctx      context.Context
	svc      *PreferenceService
	viewer   *models.Viewer
	fallback map[string]string
}

func (v *viewerStore) Get(key string) (string, bool) {
	if v.viewer != nil && v.svc.repo != nil {
		value, err := v.svc.repo.Get(v.ctx, v.viewer.UserID, key)
		if err == nil {
			return value, true
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			v.svc.logger.Warn("load preference failed", zap.String("key", key), zap.Error(err))
		}
	}
	value, ok := v.fallback[key]
	return value, ok && value != ""
}

func (v *viewerStore) Set(key, value string) {
	v.fallback[key] = value
	if v.viewer == nil || v.svc.repo == nil {
		return
	}
	if err := v.svc.repo.Set(v.ctx, v.viewer.UserID, key, value); err != nil {
		v.svc.logger.Warn("save preference failed", zap.String("key", key), zap.Error(err))
	}
}
