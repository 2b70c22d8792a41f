package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type AdvanceLeadStateUseCase struct {
	Repo LeadRepositoryInterface
}

func NewAdvanceLeadStateUseCase(repo LeadRepositoryInterface) *AdvanceLeadStateUseCase {
	return &AdvanceLeadStateUseCase{Repo: repo}
}

// Execute marks the lead as reached out. Only PENDING leads can move.
func (uc *AdvanceLeadStateUseCase) Execute(ctx context.Context, id int64) (*entity.Lead, error) {
	lead, err := uc.Repo.AdvanceState(ctx, id)
	switch {
	case errors.Is(err, entity.ErrLeadNotFound):
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "Lead not found", Err: err}
	case errors.Is(err, entity.ErrInvalidStateTransition):
		return nil, &DomainError{Code: CodeInvalidState, Message: "Can only update PENDING leads", Err: err}
	case err != nil:
		return nil, storageError(err)
	}

	log.Printf("[LEAD] lead %d moved to %s", lead.ID, lead.State)
	return lead, nil
}
