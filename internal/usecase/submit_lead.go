package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/storage"
)

const notifyTimeout = 30 * time.Second

type SubmitLeadUseCase struct {
	Repo          LeadRepositoryInterface
	Files         FileStore
	Notifier      Notifier
	OperatorEmail string

	// OnNotifyError is called for every failed notification; failures never
	// reach the submitter.
	OnNotifyError func(to string, err error)

	wg sync.WaitGroup
}

func NewSubmitLeadUseCase(
	repo LeadRepositoryInterface,
	files FileStore,
	notifier Notifier,
	operatorEmail string,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Repo:          repo,
		Files:         files,
		Notifier:      notifier,
		OperatorEmail: operatorEmail,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*entity.Lead, error) {
	if errs := ValidateSubmitLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	resumePath, err := uc.Files.Save(ctx, input.ResumeFilename, input.Resume)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilename) {
			return nil, ValidationErrors{{Field: "resume", Message: "has an invalid filename"}}
		}
		return nil, &TechnicalError{Code: CodeFileStore, Message: "could not store resume", Err: err}
	}

	lead, err := entity.NewLead(input.FirstName, input.LastName, input.Email, resumePath)
	if err != nil {
		return nil, ValidationErrors{{Field: "lead", Message: err.Error()}}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, storageError(err)
	}

	log.Printf("[LEAD] lead %d submitted by %s", lead.ID, lead.Email)

	uc.notify(lead.Email, "Lead Submitted",
		fmt.Sprintf("Hello %s, your lead has been received!", lead.FirstName))
	uc.notify(uc.OperatorEmail, "New Lead",
		fmt.Sprintf("New lead from %s %s", lead.FirstName, lead.LastName))

	return lead, nil
}

// Wait blocks until every notification started by Execute has finished.
func (uc *SubmitLeadUseCase) Wait() {
	uc.wg.Wait()
}

func (uc *SubmitLeadUseCase) notify(to, subject, body string) {
	if uc.Notifier == nil || to == "" {
		return
	}

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()

		// detached from the request: the response is usually written before delivery
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.Notifier.Notify(ctx, to, subject, body); err != nil {
			log.Printf("[NOTIFY] failed to notify %s (%q): %v", to, subject, err)
			if uc.OnNotifyError != nil {
				uc.OnNotifyError(to, err)
			}
		}
	}()
}
