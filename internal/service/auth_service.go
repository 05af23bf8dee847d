package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

// AuthConfig defines how session tokens issued by the backend are verified.
type AuthConfig struct {
	Secret string
	Issuer string
}

// AuthService turns a session token into the Viewer pages are rendered for.
type AuthService struct {
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{logger: logger, config: config}
}

// ValidateToken verifies an HS256 session token and returns its viewer. The raw
// token is kept on the viewer so it can be forwarded to the backend.
func (s *AuthService) ValidateToken(tokenString string) (*models.Viewer, error) {
	if tokenString == "" {
		return nil, appErrors.ErrUnauthorized
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		s.logger.Debug("session token rejected", zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	if claims.UserID == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session token has no user")
	}
	switch claims.Role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
	default:
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, fmt.Sprintf("unknown role %q", claims.Role))
	}

	return &models.Viewer{
		UserID:   claims.UserID,
		Role:     claims.Role,
		FullName: claims.FullName,
		Token:    tokenString,
	}, nil
}
