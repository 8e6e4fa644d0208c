package clientmock

import (
	"context"
	"errors"

	domain "prestoras-backend/internal/domain/client"
)

var errUnimplemented = errors.New("clientmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByClientIDFn      func(ctx context.Context, companyID, clientID string) (*domain.Client, error)
	SaveClassificationFn func(ctx context.Context, c *domain.Client, classification domain.Classification) error
}

func (m *Repo) GetByClientID(ctx context.Context, companyID, clientID string) (*domain.Client, error) {
	if m.GetByClientIDFn != nil {
		return m.GetByClientIDFn(ctx, companyID, clientID)
	}
	return nil, errUnimplemented
}

func (m *Repo) SaveClassification(ctx context.Context, c *domain.Client, classification domain.Classification) error {
	if m.SaveClassificationFn != nil {
		return m.SaveClassificationFn(ctx, c, classification)
	}
	c.Classification = classification
	return nil
}
