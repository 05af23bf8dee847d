package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/planify-web/internal/repository"
	"github.com/noah-isme/planify-web/pkg/backend"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

// upstreamError maps a repository failure onto the typed error surfaced to handlers.
func upstreamError(err error, message string) error {
	var rejected *repository.RejectedError
	if errors.As(err, &rejected) {
		reason := rejected.Reason
		if reason == "" {
			reason = message
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, reason)
	}
	return appErrors.Upstream(err, backend.StatusOf(err), message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func validate(v *validator.Validate, payload interface{}, message string) error {
	if err := v.Struct(payload); err != nil {
		return validationError(err, message)
	}
	return nil
}
