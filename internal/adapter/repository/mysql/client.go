package mysql

import (
	"context"

	"gorm.io/gorm"

	clientDomain "prestoras-backend/internal/domain/client"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) GetByClientID(ctx context.Context, companyID, clientID string) (*clientDomain.Client, error) {
	var out clientDomain.Client
	res := r.db.WithContext(ctx).
		Where("company_id = ? AND client_id = ?", companyID, clientID).
		First(&out)
	return &out, res.Error
}

func (r *ClientRepository) SaveClassification(ctx context.Context, c *clientDomain.Client, classification clientDomain.Classification) error {
	c.Classification = classification
	return r.db.WithContext(ctx).
		Model(c).
		Update("classification", classification).Error
}
