package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type ListLeadsUseCase struct {
	Repo LeadRepositoryInterface
}

func NewListLeadsUseCase(repo LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Repo: repo}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]*entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}
