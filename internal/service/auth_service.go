package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/config"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/internal/dto"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
)

const (
	// AdminSubject subject of every administrator token
	AdminSubject = "admin"
	// RoleAdmin the only role
	RoleAdmin = "admin"
)

// TokenBlacklist revokes tokens before they expire.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService single administrator login
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token; without a blacklist it is a no-op and the
	// token stays valid until it expires.
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	passwordHash []byte
	jwtMgr       *jwt.Manager
	tokens       TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates an AuthService. A plain admin password from config
// is hashed once here.
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, tokens TokenBlacklist, logger *zap.Logger) (AuthService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}
	return &authService{
		passwordHash: hash,
		jwtMgr:       jwtMgr,
		tokens:       tokens,
		logger:       logger,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("admin login failed")
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(AdminSubject, RoleAdmin)
	if err != nil {
		s.logger.Error("failed to issue access token", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
	}, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.tokens == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}
