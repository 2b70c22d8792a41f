package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// multipart parts above this size spill to temporary files
const maxMemoryBytes = 8 << 20

type LeadHandler struct {
	SubmitUC       *usecase.SubmitLeadUseCase
	ListUC         *usecase.ListLeadsUseCase
	AdvanceUC      *usecase.AdvanceLeadStateUseCase
	MaxUploadBytes int64
}

func NewLeadHandler(
	submitUC *usecase.SubmitLeadUseCase,
	listUC *usecase.ListLeadsUseCase,
	advanceUC *usecase.AdvanceLeadStateUseCase,
	maxUploadBytes int64,
) *LeadHandler {
	return &LeadHandler{
		SubmitUC:       submitUC,
		ListUC:         listUC,
		AdvanceUC:      advanceUC,
		MaxUploadBytes: maxUploadBytes,
	}
}

// Submit handles POST /leads/ (multipart: first_name, last_name, email, resume).
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, usecase.CodeInvalidRequest, "upload too large")
			return
		}
		writeErrorResponse(w, http.StatusUnprocessableEntity, usecase.CodeValidation, "expected multipart/form-data body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := usecase.SubmitLeadInput{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}

	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		input.Resume = file
		input.ResumeFilename = header.Filename
	case !errors.Is(err, http.ErrMissingFile):
		writeErrorResponse(w, http.StatusUnprocessableEntity, usecase.CodeValidation, "unreadable resume upload")
		return
	}

	lead, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadSubmitted()
	writeJSON(w, http.StatusCreated, lead)
}

// List handles GET /leads/.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// Advance handles PATCH /leads/{id}.
func (h *LeadHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   usecase.CodeValidation,
			Message: "lead id must be an integer",
			Details: []usecase.ValidationError{{Field: "id", Message: "must be an integer"}},
		})
		return
	}

	lead, err := h.AdvanceUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadAdvanced()
	writeJSON(w, http.StatusOK, lead)
}
