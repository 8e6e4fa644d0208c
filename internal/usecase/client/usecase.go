package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "prestoras-backend/internal/domain/client"
	loanDomain "prestoras-backend/internal/domain/loan"
)

type Usecase struct {
	clients domain.Repository
	loans   loanDomain.Repository
}

func NewUsecase(clients domain.Repository, loans loanDomain.Repository) *Usecase {
	return &Usecase{clients: clients, loans: loans}
}

type ClassificationDTO struct {
	ClientID       string `json:"client_id"`
	Classification string `json:"classification"`
	TotalLoans     int    `json:"total_loans"`
}

// GetClassification returns the stored classification together with a fresh
// derivation from the loan history; the derived value wins if they diverge
// (the stored field is a cache, the history is the truth).
func (u *Usecase) GetClassification(ctx context.Context, companyID, clientID string) (*ClassificationDTO, error) {
	cl, err := u.clients.GetByClientID(ctx, companyID, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	loans, err := u.loans.ListByClientID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}
	return &ClassificationDTO{
		ClientID:       cl.ClientID,
		Classification: string(domain.Classify(loans)),
		TotalLoans:     len(loans),
	}, nil
}
