package client

import "context"

type Repository interface {
	GetByClientID(ctx context.Context, companyID, clientID string) (*Client, error)
	// SaveClassification writes back the derived classification. Idempotent;
	// last-writer-wins is acceptable since Classify is pure.
	SaveClassification(ctx context.Context, c *Client, classification Classification) error
}
