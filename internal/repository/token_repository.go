package repository

import (
	"github.com/yukikurage/taskman-api/internal/models"
	"gorm.io/gorm"
)

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a new access token
func (r *GormTokenRepository) Create(token *models.AccessToken) error {
	return r.db.Create(token).Error
}

// FindUserByHash resolves a token digest to its owning user
func (r *GormTokenRepository) FindUserByHash(hash string) (*models.User, error) {
	var token models.AccessToken
	err := r.db.Preload("User").Where("token_hash = ?", hash).First(&token).Error
	if err != nil {
		return nil, err
	}

	return &token.User, nil
}

// DeleteByHash removes a token by digest. Deleting a token that no longer
// exists succeeds, which makes logout idempotent.
func (r *GormTokenRepository) DeleteByHash(hash string) error {
	return r.db.Where("token_hash = ?", hash).Delete(&models.AccessToken{}).Error
}
