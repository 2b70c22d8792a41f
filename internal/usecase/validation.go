package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field problem of a request so they can be
// reported together.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func ValidateSubmitLeadInput(input SubmitLeadInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"first_name", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"last_name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if input.Resume == nil {
		errs = append(errs, ValidationError{"resume", "is required"})
	} else if strings.TrimSpace(input.ResumeFilename) == "" {
		errs = append(errs, ValidationError{"resume", "must have a filename"})
	}

	return errs
}
