package service

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"uni-analytics/backend/config"
	"uni-analytics/backend/internal/dto"
	"uni-analytics/backend/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService issues access tokens for the report gateway account.
type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	cfg    *config.AuthConfig
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, logger: logger}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.Username != s.cfg.GatewayUser {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.GatewayHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(req.Username, "admin")
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token}, nil
}
