package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

type LeadState string

const (
	LeadStatePending    LeadState = "PENDING"
	LeadStateReachedOut LeadState = "REACHED_OUT"
)

var (
	ErrLeadNotFound           = errors.New("lead not found")
	ErrInvalidStateTransition = errors.New("can only update PENDING leads")
	ErrResumePathRequired     = errors.New("resume path is required")
	ErrLeadFieldRequired      = errors.New("lead field is required")
)

type Lead struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	ResumePath string    `json:"resume_path"`
	State      LeadState `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewLead builds an unsaved lead in its initial state. The ID is assigned by storage.
func NewLead(firstName, lastName, email, resumePath string) (*Lead, error) {
	lead := &Lead{
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.TrimSpace(email),
		ResumePath: resumePath,
		State:      LeadStatePending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.FirstName == "" || l.LastName == "" || l.Email == "" {
		return ErrLeadFieldRequired
	}
	if l.ResumePath == "" {
		return ErrResumePathRequired
	}
	return nil
}

// CanAdvance reports whether the one-way PENDING -> REACHED_OUT step is allowed.
func (l *Lead) CanAdvance() bool {
	return l.State == LeadStatePending
}

func (s LeadState) Valid() bool {
	return s == LeadStatePending || s == LeadStateReachedOut
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id int64) (*Lead, error)
	AdvanceState(ctx context.Context, id int64) (*Lead, error)
}
