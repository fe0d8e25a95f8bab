package services

import (
	"time"

	"conduit-api/models"
	"conduit-api/repositories"
)

// TokenService manages the persisted access and refresh token records. The
// records decide whether a signed JWT is still honored: a token is valid
// only while its record is unrevoked and unexpired.
type TokenService interface {
	IssueAccessToken(userID uint) (*models.AccessToken, error)
	IssueRefreshToken(accessTokenID uint) (*models.RefreshToken, error)
	GetAccessToken(id uint) (*models.AccessToken, error)
	GetRefreshToken(id uint) (*models.RefreshToken, error)
	RevokeAccessToken(id uint) error
	RevokeRefreshToken(id uint) error
}

type tokenService struct {
	tokenRepo       repositories.TokenRepository
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func NewTokenService(tokenRepo repositories.TokenRepository, accessLifetime, refreshLifetime time.Duration) TokenService {
	return &tokenService{
		tokenRepo:       tokenRepo,
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
	}
}

func (s *tokenService) IssueAccessToken(userID uint) (*models.AccessToken, error) {
	token := &models.AccessToken{
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.accessLifetime),
	}
	if err := s.tokenRepo.CreateAccessToken(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *tokenService) IssueRefreshToken(accessTokenID uint) (*models.RefreshToken, error) {
	token := &models.RefreshToken{
		AccessTokenID: accessTokenID,
		ExpiresAt:     time.Now().Add(s.refreshLifetime),
	}
	if err := s.tokenRepo.CreateRefreshToken(token); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *tokenService) GetAccessToken(id uint) (*models.AccessToken, error) {
	return s.tokenRepo.GetAccessToken(id)
}

func (s *tokenService) GetRefreshToken(id uint) (*models.RefreshToken, error) {
	return s.tokenRepo.GetRefreshToken(id)
}

func (s *tokenService) RevokeAccessToken(id uint) error {
	token, err := s.tokenRepo.GetAccessToken(id)
	if err != nil {
		return err
	}
	token.Revoked = true
	return s.tokenRepo.UpdateAccessToken(token)
}

func (s *tokenService) RevokeRefreshToken(id uint) error {
	token, err := s.tokenRepo.GetRefreshToken(id)
	if err != nil {
		return err
	}
	token.Revoked = true
	return s.tokenRepo.UpdateRefreshToken(token)
}
