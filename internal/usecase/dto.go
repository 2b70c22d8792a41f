package usecase

import "io"

type SubmitLeadInput struct {
	FirstName      string
	LastName       string
	Email          string
	ResumeFilename string
	Resume         io.Reader
}
