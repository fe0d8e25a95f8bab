package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
)

type TokenRepository interface {
	CreateAccessToken(token *models.AccessToken) error
	CreateRefreshToken(token *models.RefreshToken) error
	GetAccessToken(id uint) (*models.AccessToken, error)
	GetRefreshToken(id uint) (*models.RefreshToken, error)
	UpdateAccessToken(token *models.AccessToken) error
	UpdateRefreshToken(token *models.RefreshToken) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) CreateAccessToken(token *models.AccessToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) CreateRefreshToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) GetAccessToken(id uint) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.First(&token, id).Error
	return &token, err
}

func (r *tokenRepository) GetRefreshToken(id uint) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, id).Error
	return &token, err
}

func (r *tokenRepository) UpdateAccessToken(token *models.AccessToken) error {
	return r.db.Save(token).Error
}

func (r *tokenRepository) UpdateRefreshToken(token *models.RefreshToken) error {
	return r.db.Save(token).Error
}
